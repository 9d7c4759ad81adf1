package flatten

import (
	"strconv"

	"logmill/src/internal/core"
)

// Set writes value under key without ever clobbering a differing existing
// value: occupied slots cascade through key_extracted, key_extracted2, …
// until an absent, empty-string or stringwise-equal slot is found. An equal
// slot makes the write a no-op, so repeated identical writes cannot
// duplicate data.
func Set(target *core.Object, key string, value *core.Value) {
	candidate := key
	for attempt := 0; ; attempt++ {
		existing, ok := target.Get(candidate)
		if !ok || existing.IsEmptyString() {
			target.Set(candidate, value)
			return
		}
		if existing.IsScalar() && value.IsScalar() && existing.Text() == value.Text() {
			return
		}
		if attempt == 0 {
			candidate = key + "_extracted"
		} else {
			candidate = key + "_extracted" + strconv.Itoa(attempt+1)
		}
	}
}
