// Package risk implements the deterministic claims-likelihood model: four
// category calculators, best-effort claims matching, weighted aggregation,
// and batch scoring over property schedules. The engine is pure and
// stateless; it performs no I/O and is safe for concurrent use.
package risk

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumeric coerces an extracted value to a float. Currency and percent
// artifacts ("$", ",", "%") are stripped before parsing. Empty or
// unparseable input returns def.
func ParseNumeric(value string, def float64) float64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return def
	}
	s = strings.NewReplacer("$", "", ",", "", "%", "").Replace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// ParseInteger is ParseNumeric truncated to an integer. ParseFloat accepts
// "NaN" and "Inf" spellings, which have no integer value and fall back to
// def.
func ParseInteger(value string, def int) int {
	f := ParseNumeric(value, float64(def))
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return int(f)
}
