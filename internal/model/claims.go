package model

// ClaimsRecord is one historical loss entry from an ACORD loss history
// section or a carrier loss run. The back-reference fields are best-effort:
// matching to a property happens at scoring time by identifier or address,
// never as a structural foreign key.
type ClaimsRecord struct {
	OccurrenceDate string `json:"occurrence_date,omitempty"`
	Type           string `json:"type,omitempty"`
	ClaimDate      string `json:"claim_date,omitempty"`
	AmountPaid     string `json:"amount_paid,omitempty"`
	AmountReserved string `json:"amount_reserved,omitempty"`

	// Back-references to the owning property
	Property         string `json:"property,omitempty"`
	AgencyCustomerID string `json:"agency_customer_id,omitempty"`
	StreetAddress    string `json:"street_address,omitempty"`
}
