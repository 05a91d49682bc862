package ingest

import (
	"strings"

	"github.com/meridian-specialty/underwriting-cli/internal/ledger"
)

// DataKind classifies what a loaded table contains.
type DataKind string

const (
	KindProperty DataKind = "property"
	KindClaims   DataKind = "claims"
	KindUnknown  DataKind = "unknown"
)

// Keyword sets scored against column names during kind detection. A keyword
// counts once no matter how many columns mention it.
var (
	claimsKeywords   = []string{"claim", "loss", "accident", "injury", "reserve", "payment", "incurred"}
	propertyKeywords = []string{"construction", "tiv", "sq ft", "square feet", "year built", "sprinkler", "roof", "address", "bpp", "building"}
)

// DetectKind classifies a table as a property schedule or a claims loss run
// by scoring its column names. Ties resolve to unknown.
func DetectKind(t *ledger.Table) DataKind {
	if t == nil {
		return KindUnknown
	}
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = strings.ToLower(c)
	}

	claimsScore := keywordScore(cols, claimsKeywords)
	propertyScore := keywordScore(cols, propertyKeywords)

	switch {
	case claimsScore > propertyScore:
		return KindClaims
	case propertyScore > claimsScore:
		return KindProperty
	default:
		return KindUnknown
	}
}

func keywordScore(cols, keywords []string) int {
	score := 0
	for _, k := range keywords {
		for _, c := range cols {
			if strings.Contains(c, k) {
				score++
				break
			}
		}
	}
	return score
}

// sheetKind classifies a worksheet by its name alone. Claims naming is
// checked first, matching the loader's precedence.
func sheetKind(name string) DataKind {
	n := strings.ToLower(name)
	if strings.Contains(n, "claim") || strings.Contains(n, "loss") {
		return KindClaims
	}
	for _, k := range []string{"property", "sov", "loc", "sched"} {
		if strings.Contains(n, k) {
			return KindProperty
		}
	}
	return KindUnknown
}
