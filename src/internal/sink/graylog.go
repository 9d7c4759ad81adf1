package sink

import (
	"sync/atomic"

	"logmill/src/internal/core"

	"github.com/lixenwraith/log"
)

// GraylogAdapter shapes an already-canonical record for a GELF-style
// receiver: it guarantees a non-empty message, defaults short_message from
// message, and keeps the timestamp canonical. Everything else passes
// through unchanged.
type GraylogAdapter struct {
	logger *log.Logger

	totalProcessed atomic.Uint64
}

// NewGraylogAdapter creates a Graylog-style adapter from configuration
// options.
func NewGraylogAdapter(options map[string]any, logger *log.Logger) (*GraylogAdapter, error) {
	return &GraylogAdapter{
		logger: logger,
	}, nil
}

// Name returns the stage type name.
func (a *GraylogAdapter) Name() string {
	return "graylog"
}

// Process applies the GELF shaping rules. emit is always true.
func (a *GraylogAdapter) Process(tag string, ts float64, record *core.Value) (bool, float64, *core.Value) {
	a.totalProcessed.Add(1)

	if record.Kind() != core.KindObject {
		return true, ts, record
	}
	obj := record.Obj()

	msg, ok := obj.Get(core.FieldMessage)
	if !ok || msg.IsEmptyString() {
		msg = core.String(core.DefaultMessage)
		obj.Set(core.FieldMessage, msg)
	}
	if sm, ok := obj.Get(core.FieldShortMessage); !ok || sm.IsBlank() {
		obj.Set(core.FieldShortMessage, core.String(msg.Text()))
	}

	ts = renormalizeTimestamp(obj, ts)
	return true, ts, record
}

// GetStats returns adapter statistics.
func (a *GraylogAdapter) GetStats() map[string]any {
	return map[string]any{
		"type":            "graylog",
		"total_processed": a.totalProcessed.Load(),
	}
}
