package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/turtacn/pulse/pkg/constants"
)

// HealthScore is the composite health of a customer at a point in time. It is
// ephemeral: recomputed on demand from current metrics and cached with a short
// TTL, never persisted as its own entity.
type HealthScore struct {
	Value      float64                              `json:"value"`
	Components map[constants.MetricCategory]float64 `json:"components"`
}

// ClampScore bounds an internally computed score to [0,100]. NaN collapses to
// 0 so no undefined value propagates into storage or comparison.
func ClampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// MetricsFingerprint computes a stable hash of a metrics snapshot. Cached
// assessments carry the fingerprint of the metrics they were computed from, so
// a metrics change is detected even inside the TTL window.
func MetricsFingerprint(metrics map[constants.MetricCategory]float64) string {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%.6f;", k, metrics[constants.MetricCategory(k)])
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
