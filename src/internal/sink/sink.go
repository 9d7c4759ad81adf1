// Package sink holds per-sink post-processing adapters. Adapters run after
// the canonicalization stage, are idempotent, and never drop a record; the
// actual delivery transport lives in the embedding pipeline.
package sink

import (
	"strconv"

	"logmill/src/internal/core"
	"logmill/src/internal/norm"
)

// renormalizeTimestamp reapplies canonical timestamp normalization to the
// record and returns the timestamp to emit. Already-canonical values pass
// through unchanged; unusable ones keep the incoming timestamp.
func renormalizeTimestamp(obj *core.Object, ts float64) float64 {
	v, ok := obj.Get(core.FieldTimestamp)
	if !ok {
		return ts
	}
	text, ok := norm.Timestamp(v)
	if !ok {
		return ts
	}
	obj.Set(core.FieldTimestamp, core.Number(text))
	if out, err := strconv.ParseFloat(text, 64); err == nil {
		return out
	}
	return ts
}
