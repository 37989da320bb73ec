// Package consumers contains Kafka consumers for background processing.
package consumers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/pulse/internal/application"
	"github.com/turtacn/pulse/internal/config"
	"github.com/turtacn/pulse/pkg/constants"
	"github.com/turtacn/pulse/pkg/logger"
)

// MetricsUpdatedEvent is emitted by the analytics pipeline whenever a
// customer's metric snapshot changes.
type MetricsUpdatedEvent struct {
	CustomerID string    `json:"customer_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MetricsUpdateConsumer listens for metric mutations and proactively evicts
// the affected customer's cached assessment, so stale scores are never served
// inside the TTL window after an update.
type MetricsUpdateConsumer struct {
	reader      *kafka.Reader
	assessments application.AssessmentService
	logger      logger.Logger
	stop        chan struct{}
}

// NewMetricsUpdateConsumer creates a consumer for metric update events.
func NewMetricsUpdateConsumer(cfg config.KafkaConfig, assessments application.AssessmentService, log logger.Logger) *MetricsUpdateConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.MetricsUpdatedTopic,
		GroupID:        constants.ConsumerGroupInvalidation,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
	return &MetricsUpdateConsumer{
		reader:      reader,
		assessments: assessments,
		logger:      log.WithComponent("MetricsUpdateConsumer"),
		stop:        make(chan struct{}),
	}
}

// Start begins the consumer loop. It blocks and should run in a goroutine.
func (c *MetricsUpdateConsumer) Start(ctx context.Context) {
	c.logger.Info(ctx, "starting metrics update consumer")
	for {
		select {
		case <-c.stop:
			c.logger.Info(ctx, "stopping metrics update consumer")
			return
		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error(ctx, "failed to fetch message from kafka", err)
				continue
			}

			var event MetricsUpdatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error(ctx, "failed to unmarshal metrics update event", err,
					logger.Fields{"kafka_message": string(msg.Value)})
				// Acknowledge the message to avoid reprocessing a poison pill.
				c.reader.CommitMessages(ctx, msg)
				continue
			}

			if event.CustomerID == "" {
				c.logger.Warn(ctx, "metrics update event without customer id")
				c.reader.CommitMessages(ctx, msg)
				continue
			}

			c.assessments.Invalidate(ctx, event.CustomerID)
			c.reader.CommitMessages(ctx, msg)
		}
	}
}

// Stop gracefully shuts down the consumer.
func (c *MetricsUpdateConsumer) Stop() {
	close(c.stop)
	c.reader.Close()
}
