// Package process holds the top-level record canonicalization stage.
package process

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"logmill/src/internal/core"
	"logmill/src/internal/flatten"
	"logmill/src/internal/format"
	"logmill/src/internal/norm"

	"github.com/lixenwraith/log"
)

// Processor canonicalizes one raw record per call: inline JSON decoding,
// message handling, flattening, source.* rewriting, field defaulting and
// final timestamp/severity normalization. It never suppresses a record and
// holds no per-record state, so a single Processor may be shared across
// concurrent callers.
type Processor struct {
	defaultMessage string
	defaultSource  string
	logger         *log.Logger

	totalProcessed atomic.Uint64
}

// NewProcessor creates a processor from configuration options.
func NewProcessor(options map[string]any, logger *log.Logger) (*Processor, error) {
	p := &Processor{
		defaultMessage: core.DefaultMessage,
		defaultSource:  core.DefaultSource,
		logger:         logger,
	}

	if v, ok := options["default_message"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("default_message: expected string, got %T", v)
		}
		p.defaultMessage = s
	}
	if v, ok := options["default_source"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("default_source: expected string, got %T", v)
		}
		p.defaultSource = s
	}

	return p, nil
}

// Name returns the stage type name.
func (p *Processor) Name() string {
	return "process"
}

// Process runs the full stage order on record and returns the canonical
// record with its final timestamp. emit is always true: malformed input
// degrades to defaults, it is never dropped.
func (p *Processor) Process(tag string, ts float64, record *core.Value) (bool, float64, *core.Value) {
	p.totalProcessed.Add(1)

	// A non-object record still has to come out as a canonical mapping;
	// treat the whole value as the message.
	if record.Kind() != core.KindObject {
		wrapped := core.NewObject()
		if !record.IsNull() {
			wrapped.Obj().Set(core.FieldMessage, record)
		}
		record = wrapped
	}
	work := record.Obj()

	p.decodeInline(work)
	aliasLog(work)

	canon := core.NewObject()
	target := canon.Obj()

	p.materializeMessage(target, work)

	// Flatten the remainder of the record.
	for _, key := range work.Keys() {
		if key == core.FieldMessage {
			continue
		}
		if member, ok := work.Get(key); ok {
			flatten.Flatten(target, key, member)
		}
	}

	rewriteSourceKeys(target)

	// An empty short_message is noise from upstream shippers.
	if v, ok := target.Get(core.FieldShortMessage); ok && v.IsEmptyString() {
		target.Delete(core.FieldShortMessage)
	}

	p.defaultSourceField(target, tag)
	defaultServiceName(target)
	out := p.finalizeTimestamp(target, ts)
	finalizeSeverity(target)

	return true, out, canon
}

// GetStats returns processor statistics.
func (p *Processor) GetStats() map[string]any {
	return map[string]any{
		"type":            "process",
		"total_processed": p.totalProcessed.Load(),
	}
}

// decodeInline opportunistically decodes top-level string fields that parse
// as JSON. Objects splice their members over the record (last write wins,
// no conflict cascade at this stage); arrays replace the field in place;
// anything else keeps the original string. The walk covers a snapshot of
// the original keys, so spliced-in members are not decoded again.
func (p *Processor) decodeInline(work *core.Object) {
	for _, key := range work.Keys() {
		v, ok := work.Get(key)
		if !ok || v.Kind() != core.KindString || !core.LooksStructured(v.Str()) {
			continue
		}
		decoded, ok := core.DecodeJSON(v.Str())
		if !ok {
			continue
		}
		switch decoded.Kind() {
		case core.KindObject:
			work.Delete(key)
			decoded.Obj().Visit(func(member string, mv *core.Value) {
				work.Set(member, mv)
			})
		case core.KindArray:
			work.Set(key, decoded)
		}
	}
}

// aliasLog renames a bare "log" line to "message" when no usable message is
// present.
func aliasLog(work *core.Object) {
	if msg, ok := work.Get(core.FieldMessage); ok && !msg.IsEmptyString() {
		return
	}
	lg, ok := work.Get(core.FieldLog)
	if !ok || lg.Kind() != core.KindString || lg.Str() == "" {
		return
	}
	work.Delete(core.FieldLog)
	work.Set(core.FieldMessage, lg)
}

// materializeMessage resolves the message field into a plain string. A
// structured message contributes its direct scalar children to the
// canonical record first, then its nested children flattened without a
// message prefix, and is finally replaced by its logfmt rendering. Plain
// strings pass through verbatim, other scalars render as logfmt tokens, and
// a missing message falls back to the configured default.
func (p *Processor) materializeMessage(target *core.Object, work *core.Object) {
	msg, ok := work.Get(core.FieldMessage)
	switch {
	case !ok:
		target.Set(core.FieldMessage, core.String(p.defaultMessage))
	case msg.Kind() == core.KindString:
		target.Set(core.FieldMessage, msg)
	case msg.IsStructured():
		visitChildren(msg, func(key string, child *core.Value) {
			if child.IsScalar() {
				flatten.Leaf(target, key, child)
			}
		})
		visitChildren(msg, func(key string, child *core.Value) {
			if child.IsStructured() {
				flatten.Flatten(target, key, child)
			}
		})
		target.Set(core.FieldMessage, core.String(format.Logfmt(msg)))
	default:
		target.Set(core.FieldMessage, core.String(format.Scalar(msg)))
	}
}

// visitChildren yields the direct members of a structured value; array
// items get 1-based index keys, matching the flattener's convention.
func visitChildren(v *core.Value, fn func(key string, child *core.Value)) {
	switch v.Kind() {
	case core.KindObject:
		v.Obj().Visit(fn)
	case core.KindArray:
		for i, item := range v.Items() {
			fn(strconv.Itoa(i+1), item)
		}
	}
}

// rewriteSourceKeys collapses dotted source.* keys into flat source_*
// fields, conflict-aware; the dotted originals are dropped.
func rewriteSourceKeys(target *core.Object) {
	const prefix = core.FieldSource + "."
	for _, key := range target.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		v, ok := target.Get(key)
		if !ok {
			continue
		}
		target.Delete(key)
		flatten.Set(target, core.FieldSource+"_"+key[len(prefix):], v)
	}
}

func (p *Processor) defaultSourceField(target *core.Object, tag string) {
	if v, ok := target.Get(core.FieldSource); ok && !v.IsBlank() {
		return
	}
	src := p.defaultSource
	if tag != "" {
		src = tag
	}
	target.Set(core.FieldSource, core.String(src))
}

func defaultServiceName(target *core.Object) {
	if v, ok := target.Get(core.FieldServiceName); ok && !v.IsBlank() {
		return
	}
	if sv, ok := target.Get(core.FieldSourceService); ok && !sv.IsBlank() {
		target.Set(core.FieldServiceName, core.String(sv.Text()))
		return
	}
	if src, ok := target.Get(core.FieldSource); ok {
		target.Set(core.FieldServiceName, core.String(src.Text()))
	}
}

func (p *Processor) finalizeTimestamp(target *core.Object, ingest float64) float64 {
	v, present := target.Get(core.FieldTimestamp)
	text, ok := norm.Timestamp(v)
	if !ok {
		text = norm.FormatEpoch(ingest)
		if present {
			p.logger.Debug("msg", "Unparseable timestamp, using ingest time",
				"component", "processor",
				"value", v.Text())
		}
	}
	target.Set(core.FieldTimestamp, core.Number(text))

	out, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return ingest
	}
	return out
}

// finalizeSeverity normalizes the pair from level when present, falling
// back to levelname. A pair whose two halves already agree is kept intact,
// so alias text like "warning" set by the flattener intercept is not
// rewritten to the canonical name.
func finalizeSeverity(target *core.Object) {
	lv, hasLevel := target.Get(core.FieldLevel)
	name, hasName := target.Get(core.FieldLevelName)

	if hasLevel && hasName {
		fromName, text := norm.Severity(name)
		if fromLevel, _ := norm.Severity(lv); fromLevel == fromName {
			target.Set(core.FieldLevel, core.Int(fromName))
			target.Set(core.FieldLevelName, core.String(text))
			return
		}
	}
	if hasLevel {
		flatten.SetSeverity(target, lv)
		return
	}
	flatten.SetSeverity(target, name)
}
