// Package notify publishes assessment events for downstream consumers.
// Delivery channels (email, SMS, webhooks) are out of scope; this is the
// boundary they subscribe at.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/pulse/internal/config"
	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/internal/domain/service"
	"github.com/turtacn/pulse/pkg/logger"
)

// AssessedEvent is the wire payload announcing a completed assessment.
type AssessedEvent struct {
	CustomerID string               `json:"customer_id"`
	ProfileID  string               `json:"profile_id"`
	Score      float64              `json:"score"`
	Severity   models.SeverityLevel `json:"severity"`
	AssessedAt time.Time            `json:"assessed_at"`
}

// KafkaPublisher writes AssessedEvents to the assessed topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    logger.Logger
}

var _ service.AssessmentPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a publisher for assessment events.
func NewKafkaPublisher(cfg config.KafkaConfig, log logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.AssessedTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer, log: log.WithComponent("KafkaPublisher")}
}

// PublishAssessed emits one event keyed by customer ID so per-customer
// ordering is preserved.
func (p *KafkaPublisher) PublishAssessed(ctx context.Context, profile *models.RiskProfile) error {
	event := AssessedEvent{
		CustomerID: profile.CustomerID,
		ProfileID:  profile.ID,
		Score:      profile.Score,
		Severity:   profile.SeverityLevel,
		AssessedAt: profile.AssessedAt,
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(profile.CustomerID),
		Value: value,
	})
}

// Close releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
