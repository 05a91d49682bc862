// Package model defines the typed records exchanged between the ingestion
// boundary, the risk engine, and the persistence layer.
package model

import "strings"

// PropertyRecord is one commercial property submission. Fields hold the raw
// extracted values (PDF form extraction and spreadsheet cells are both
// string-valued); every consumer reads them through the risk normalizer with
// an explicit default, so any field may be empty without error.
type PropertyRecord struct {
	// Identity
	NamedInsured     string `json:"named_insured,omitempty"`
	AgencyCustomerID string `json:"agency_customer_id,omitempty"`
	StreetAddress    string `json:"street_address,omitempty"`
	MailingAddress   string `json:"mailing_address,omitempty"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	Zip              string `json:"zip,omitempty"`

	// Construction
	ConstructionType string `json:"construction_type,omitempty"`
	YearBuilt        string `json:"year_built,omitempty"`
	RoofCondition    string `json:"roof_condition,omitempty"`
	SprinkleredPct   string `json:"sprinklered_pct,omitempty"`
	Stories          string `json:"stories,omitempty"`
	TotalArea        string `json:"total_area,omitempty"`

	// Protection
	FireProtectionClass string `json:"fire_protection_class,omitempty"`
	BurglarAlarmType    string `json:"burglar_alarm_type,omitempty"`
	FireStationDistance string `json:"fire_station_distance,omitempty"`
	FireHydrantDistance string `json:"fire_hydrant_distance,omitempty"`

	// Geographic
	WildfireScore  string `json:"wildfire_score,omitempty"`
	FloodZone      string `json:"flood_zone,omitempty"`
	EarthquakeZone string `json:"earthquake_zone,omitempty"`
	CrimeScore     string `json:"crime_score,omitempty"`

	// Claims summary carried on the record itself
	LossCount       string `json:"loss_count,omitempty"`
	LossTotalAmount string `json:"loss_total_amount,omitempty"`
	LossTypes       string `json:"loss_types,omitempty"`

	// Financial / application detail surfaced in reports
	TIV                 string `json:"tiv,omitempty"`
	CoverageLimit       string `json:"coverage_limit,omitempty"`
	SubjectOfInsurance  string `json:"subject_of_insurance,omitempty"`
	NAICSCode           string `json:"naics_code,omitempty"`
	FEIN                string `json:"fein,omitempty"`
	LegalEntityType     string `json:"legal_entity_type,omitempty"`
	YearsInBusiness     string `json:"years_in_business,omitempty"`
	PriorCarrier        string `json:"prior_carrier,omitempty"`
	BusinessDescription string `json:"business_description,omitempty"`

	// Building improvement years
	WiringYear   string `json:"wiring_year,omitempty"`
	RoofingYear  string `json:"roofing_year,omitempty"`
	PlumbingYear string `json:"plumbing_year,omitempty"`
}

// DisplayAddress composes street (falling back to mailing address), city and
// state into a single display line. Returns "N/A" when nothing is available.
func (p PropertyRecord) DisplayAddress() string {
	var parts []string
	switch {
	case p.StreetAddress != "":
		parts = append(parts, p.StreetAddress)
	case p.MailingAddress != "":
		parts = append(parts, p.MailingAddress)
	}
	if p.City != "" {
		parts = append(parts, p.City)
	}
	if p.State != "" {
		parts = append(parts, p.State)
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, ", ")
}
