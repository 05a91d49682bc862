package risk

import (
	"strings"

	"github.com/meridian-specialty/underwriting-cli/internal/ledger"
	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

// Claims matching is best-effort: loss runs arrive with carrier-specific
// column names and inconsistent address formatting, so rows are linked to
// the subject property by exact identifier when possible and by fuzzy
// address containment otherwise. False negatives under near-miss formatting
// are accepted; ambiguous column candidates resolve to the first in stable
// column order.

const agencyCustomerIDColumn = "Agency Customer ID"

// addressSuffixes are applied in this fixed order during normalization.
var addressSuffixes = []struct{ full, abbr string }{
	{"street", "st"},
	{"avenue", "ave"},
	{"road", "rd"},
	{"boulevard", "blvd"},
	{"drive", "dr"},
	{"place", "pl"},
	{"lane", "ln"},
	{"court", "ct"},
}

// normalizeAddress lowercases, abbreviates common street suffixes, and
// strips periods.
func normalizeAddress(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range addressSuffixes {
		s = strings.ReplaceAll(s, r.full, r.abbr)
	}
	return strings.ReplaceAll(s, ".", "")
}

func isAddressColumn(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "address") || strings.Contains(n, "location")
}

func isAmountColumn(name string) bool {
	n := strings.ToLower(name)
	for _, k := range []string{"incurred", "paid", "total amount", "payment", "claim amount"} {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

func isTypeColumn(name string) bool {
	n := strings.ToLower(name)
	for _, k := range []string{"type", "cause", "reason", "desc"} {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

// matchClaims resolves which ledger rows belong to the property. Identifier
// match is tried first; address containment second (raw, then normalized,
// first matching column wins). Returns the matched row indices and whether
// any match was found.
func matchClaims(rec model.PropertyRecord, claims *ledger.Table) ([]int, bool) {
	if claims.Empty() {
		return nil, false
	}

	if id := strings.TrimSpace(rec.AgencyCustomerID); id != "" {
		if col := claims.ColumnIndex(agencyCustomerIDColumn); col >= 0 {
			var rows []int
			for i := 0; i < claims.Len(); i++ {
				if strings.TrimSpace(claims.Cell(i, col)) == id {
					rows = append(rows, i)
				}
			}
			if len(rows) > 0 {
				return rows, true
			}
		}
	}

	addr := strings.ToLower(strings.TrimSpace(rec.StreetAddress))
	if addr == "" {
		return nil, false
	}
	addrNorm := normalizeAddress(rec.StreetAddress)

	for _, col := range claims.FindColumns(isAddressColumn) {
		var rows []int
		for i := 0; i < claims.Len(); i++ {
			if strings.Contains(strings.ToLower(claims.Cell(i, col)), addr) {
				rows = append(rows, i)
			}
		}
		if len(rows) == 0 {
			for i := 0; i < claims.Len(); i++ {
				if strings.Contains(normalizeAddress(claims.Cell(i, col)), addrNorm) {
					rows = append(rows, i)
				}
			}
		}
		if len(rows) > 0 {
			return rows, true
		}
	}

	return nil, false
}

// ledgerMetrics aggregates matched rows into a claim count, total amount,
// and the distinct loss types in first-seen order. The amount column is
// discovered by name, preferring "incurred" (total exposure) over paid.
func ledgerMetrics(claims *ledger.Table, rows []int) (count int, amount float64, types string) {
	count = len(rows)

	amountCols := claims.FindColumns(isAmountColumn)
	if len(amountCols) > 0 {
		target := amountCols[0]
		for _, c := range amountCols {
			if strings.Contains(strings.ToLower(claims.Columns[c]), "incurred") {
				target = c
				break
			}
		}
		for _, r := range rows {
			amount += ParseNumeric(claims.Cell(r, target), 0)
		}
	}

	seen := make(map[string]bool)
	var collected []string
	for _, c := range claims.FindColumns(isTypeColumn) {
		for _, r := range rows {
			v := strings.TrimSpace(claims.Cell(r, c))
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			collected = append(collected, v)
		}
	}
	return count, amount, strings.Join(collected, ", ")
}
