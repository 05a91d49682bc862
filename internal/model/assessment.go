package model

import "time"

// Assessment is a persisted scoring outcome keyed by a policy identifier.
// The flat score fields are written as columns so downstream report and
// policy tooling can query them without unpacking the full result.
type Assessment struct {
	ID           string          `json:"id"`
	PolicyID     string          `json:"policy_id"`
	NamedInsured string          `json:"named_insured"`
	Address      string          `json:"address"`
	TIV          float64         `json:"tiv"`
	Result       RiskScoreResult `json:"result"`
	CreatedAt    time.Time       `json:"created_at"`
}
