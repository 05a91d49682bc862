package risk

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/meridian-specialty/underwriting-cli/internal/ledger"
	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// formatDollars renders an amount as a comma-grouped whole-dollar figure.
func formatDollars(amount float64) string {
	return currencyPrinter.Sprintf("$%.0f", amount)
}

// ClaimsRisk scores loss history: claim count, total loss amount, and the
// dominant loss type. Count and amount from the submission summary are
// reconciled against the loss-run ledger by taking the larger of the two,
// since either source may be incomplete. Loss types from matched ledger rows
// replace the summary field outright; the summary often records only a
// single peril.
func (s *Scorer) ClaimsRisk(rec model.PropertyRecord, claims *ledger.Table) CategoryResult {
	var res CategoryResult
	var scores []float64

	count := ParseInteger(rec.LossCount, 0)
	amount := ParseNumeric(rec.LossTotalAmount, 0)
	types := strings.TrimSpace(rec.LossTypes)

	if rows, ok := matchClaims(rec, claims); ok {
		ledgerCount, ledgerAmount, ledgerTypes := ledgerMetrics(claims, rows)
		if ledgerCount > count {
			count = ledgerCount
		}
		if ledgerAmount > amount {
			amount = ledgerAmount
		}
		if ledgerTypes != "" {
			types = ledgerTypes
		}
	}

	var countScore float64
	switch {
	case count > 15:
		countScore = 90
		res.Notable = append(res.Notable, fmt.Sprintf("High Claim Count: %d claims", count))
	case count > 5:
		countScore = 60
	case count > 2:
		countScore = 40
	default:
		countScore = 15
	}
	scores = append(scores, countScore)

	var amountScore float64
	switch {
	case amount > 5_000_000:
		amountScore = 90
		res.Notable = append(res.Notable, fmt.Sprintf("High Loss Amount: %s", formatDollars(amount)))
	case amount > 2_000_000:
		amountScore = 65
	case amount > 500_000:
		amountScore = 40
	default:
		amountScore = 20
	}
	scores = append(scores, amountScore)

	typeScore := lossTypeScore(types, &res)
	scores = append(scores, typeScore)

	res.Breakdown = []string{
		fmt.Sprintf("**Claim Count:** %d (%.0f%%)", count, countScore),
		fmt.Sprintf("**Total Loss Amount:** %s (%.0f%%)", formatDollars(amount), amountScore),
		fmt.Sprintf("**Loss Types:** %s (%.0f%%)", displayOr(types, "None"), typeScore),
	}
	res.Score = mean(scores)
	return res
}

// lossTypeScore rates the recorded loss types by the worst peril present.
// Fire dominates, then weather perils, then crime perils.
func lossTypeScore(types string, res *CategoryResult) float64 {
	switch {
	case strings.Contains(types, "Fire"):
		res.Notable = append(res.Notable, "Fire Loss History")
		return 80
	case strings.Contains(types, "Flood"), strings.Contains(types, "Tornado"):
		return 70
	case strings.Contains(types, "Theft"), strings.Contains(types, "Vandalism"):
		return 40
	default:
		return 30
	}
}
