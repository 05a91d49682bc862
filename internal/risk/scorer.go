package risk

// Scorer evaluates property submissions against the rating model. The zero
// value is not usable; construct with NewScorer.
type Scorer struct {
	referenceYear int
}

// NewScorer returns a Scorer anchored at the given reference year for
// building-age computation. Zero or negative falls back to
// DefaultReferenceYear.
func NewScorer(referenceYear int) *Scorer {
	if referenceYear <= 0 {
		referenceYear = DefaultReferenceYear
	}
	return &Scorer{referenceYear: referenceYear}
}

// CategoryResult is the output of a single category calculator.
type CategoryResult struct {
	// Score is the unweighted arithmetic mean of the component scores,
	// in [0,100].
	Score float64
	// Notable lists the human-readable factors whose component crossed
	// its risk threshold.
	Notable []string
	// Breakdown lists one line per component regardless of threshold,
	// showing the raw value and its mapped score.
	Breakdown []string
}

func mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
