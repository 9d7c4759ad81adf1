package flatten

import (
	"strconv"

	"logmill/src/internal/core"
	"logmill/src/internal/norm"
)

// Flatten writes the scalar leaves of v into target under dotted-path keys
// rooted at prefix. Sequence elements use 1-based index segments; empty
// sequences and empty objects write nothing. Leaves landing exactly on
// "level" or "levelname" bypass the conflict cascade and set the severity
// pair instead.
func Flatten(target *core.Object, prefix string, v *core.Value) {
	switch v.Kind() {
	case core.KindObject:
		v.Obj().Visit(func(key string, member *core.Value) {
			Flatten(target, joinKey(prefix, key), member)
		})
	case core.KindArray:
		for i, item := range v.Items() {
			Flatten(target, joinKey(prefix, strconv.Itoa(i+1)), item)
		}
	default:
		Leaf(target, prefix, v)
	}
}

// Leaf writes one scalar under key in its string form, routing severity
// keys through the normalizer.
func Leaf(target *core.Object, key string, v *core.Value) {
	if key == core.FieldLevel || key == core.FieldLevelName {
		SetSeverity(target, v)
		return
	}
	Set(target, key, core.String(v.Text()))
}

// SetSeverity normalizes v and overwrites the level/levelname pair
// unconditionally. This is the single write path that skips the conflict
// cascade: the pair is canonical state, not payload.
func SetSeverity(target *core.Object, v *core.Value) {
	level, name := norm.Severity(v)
	target.Set(core.FieldLevel, core.Int(level))
	target.Set(core.FieldLevelName, core.String(name))
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
