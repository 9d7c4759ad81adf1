package sink

import (
	"sync/atomic"

	"logmill/src/internal/core"

	"github.com/lixenwraith/log"
)

// LokiAdapter re-normalizes the record timestamp to the canonical
// nanosecond-precision form and carries it to the emitted timestamp, so the
// push layer can derive the nanosecond line timestamp directly. Idempotent
// on already-canonical records.
type LokiAdapter struct {
	logger *log.Logger

	totalProcessed atomic.Uint64
}

// NewLokiAdapter creates a Loki-style adapter from configuration options.
func NewLokiAdapter(options map[string]any, logger *log.Logger) (*LokiAdapter, error) {
	return &LokiAdapter{
		logger: logger,
	}, nil
}

// Name returns the stage type name.
func (a *LokiAdapter) Name() string {
	return "loki"
}

// Process re-normalizes the timestamp. emit is always true.
func (a *LokiAdapter) Process(tag string, ts float64, record *core.Value) (bool, float64, *core.Value) {
	a.totalProcessed.Add(1)

	if record.Kind() == core.KindObject {
		ts = renormalizeTimestamp(record.Obj(), ts)
	}
	return true, ts, record
}

// GetStats returns adapter statistics.
func (a *LokiAdapter) GetStats() map[string]any {
	return map[string]any{
		"type":            "loki",
		"total_processed": a.totalProcessed.Load(),
	}
}
