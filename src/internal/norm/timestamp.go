package norm

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"logmill/src/internal/core"
)

// MaxEpochSeconds is the sanity bound on numeric timestamps
// (3000-01-01T00:00:00Z). Values at or beyond it pass through unchanged.
const MaxEpochSeconds = 32503680000

// UTC designator is mandatory; no timezone offsets.
var isoPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(?:\.(\d+))?Z$`)

var decimalPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Timestamp normalizes v into the canonical "seconds.fffffffff" decimal
// text, with exactly nine fractional digits built by string manipulation,
// never by float formatting. Accepted inputs are numbers (including plain
// decimal strings, so canonical records renormalize to themselves) and
// strict "YYYY-MM-DDTHH:MM:SS[.fff]Z" strings. ok is false when v carries
// no usable timestamp; the caller supplies its own fallback.
func Timestamp(v *core.Value) (string, bool) {
	switch v.Kind() {
	case core.KindNumber:
		return numericTimestamp(v.NumberText())
	case core.KindString:
		s := strings.TrimSpace(v.Str())
		if text, ok := isoTimestamp(s); ok {
			return text, true
		}
		if decimalPattern.MatchString(s) {
			return numericTimestamp(s)
		}
	}
	return "", false
}

// FormatEpoch renders a caller-supplied epoch value in canonical form.
func FormatEpoch(ts float64) string {
	text, ok := numericTimestamp(strconv.FormatFloat(ts, 'f', -1, 64))
	if !ok {
		return "0.000000000"
	}
	return text
}

func numericTimestamp(literal string) (string, bool) {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	if f <= 0 || f >= MaxEpochSeconds {
		// Outside the sanity window: hand back unchanged, the caller
		// decides what to do with it.
		return literal, true
	}
	if strings.ContainsAny(literal, "eE") {
		literal = strconv.FormatFloat(f, 'f', -1, 64)
	}
	sec, frac, _ := strings.Cut(literal, ".")
	return sec + "." + padFraction(frac), true
}

func isoTimestamp(s string) (string, bool) {
	m := isoPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second, _ := strconv.Atoi(m[6])

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	return strconv.FormatInt(t.Unix(), 10) + "." + padFraction(m[7]), true
}

func padFraction(frac string) string {
	if len(frac) >= 9 {
		return frac[:9]
	}
	return frac + strings.Repeat("0", 9-len(frac))
}
