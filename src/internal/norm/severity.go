package norm

import (
	"math"
	"strconv"
	"strings"

	"logmill/src/internal/core"
)

// Severity levels follow the syslog-style 0 (fatal) … 7 (debug) scale.
const (
	LevelFatal  int64 = 0
	LevelAlert  int64 = 1
	LevelCrit   int64 = 2
	LevelError  int64 = 3
	LevelWarn   int64 = 4
	LevelNotice int64 = 5
	LevelInfo   int64 = 6
	LevelDebug  int64 = 7
)

// Canonical names, indexed by level.
var levelNames = [8]string{"fatal", "alert", "crit", "error", "warn", "notice", "info", "debug"}

// Alias table built once at process start; lookups are case-insensitive on
// trimmed input.
var severityAliases = map[string]int64{
	"fatal":         LevelFatal,
	"emerg":         LevelFatal,
	"emergency":     LevelFatal,
	"alert":         LevelAlert,
	"crit":          LevelCrit,
	"critical":      LevelCrit,
	"err":           LevelError,
	"eror":          LevelError,
	"error":         LevelError,
	"warn":          LevelWarn,
	"warning":       LevelWarn,
	"notice":        LevelNotice,
	"info":          LevelInfo,
	"information":   LevelInfo,
	"informational": LevelInfo,
	"dbug":          LevelDebug,
	"debug":         LevelDebug,
	"trace":         LevelDebug,
}

// Severity maps an arbitrary level encoding to the canonical (level, name)
// pair. Numeric input (including numeric strings) in range yields the
// canonical name; a matched string alias keeps the lowercased input text as
// the name. Anything else is info. The pair is always produced together.
func Severity(v *core.Value) (int64, string) {
	switch v.Kind() {
	case core.KindNumber:
		if n, ok := severityNumber(v.NumberText()); ok {
			return n, levelNames[n]
		}
	case core.KindString:
		s := strings.ToLower(strings.TrimSpace(v.Str()))
		if n, ok := severityNumber(s); ok {
			return n, levelNames[n]
		}
		if n, ok := severityAliases[s]; ok {
			return n, s
		}
	}
	return LevelInfo, levelNames[LevelInfo]
}

func severityNumber(s string) (int64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	n := int64(math.Floor(f))
	if n < 0 || n > 7 {
		return 0, false
	}
	return n, true
}
