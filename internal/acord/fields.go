// Package acord defines the canonical field vocabulary produced by the
// ACORD form extraction boundary and the adapters that turn the loosely
// typed field map (or a spreadsheet row) into typed records. All looseness
// tolerance lives here; the core stays type-safe.
package acord

// Canonical field names as emitted by the PDF/email extraction collaborator.
const (
	FieldNamedInsured        = "Named Insured"
	FieldAgencyCustomerID    = "Agency Customer ID"
	FieldStreetAddress       = "Street Address"
	FieldMailingAddress      = "Mailing Address"
	FieldCity                = "City"
	FieldState               = "State"
	FieldZip                 = "Zip"
	FieldConstructionType    = "Construction Type"
	FieldYearBuilt           = "Year Built"
	FieldRoofCondition       = "Verified Roof Condition"
	FieldSprinkleredPct      = "Sprinklered %"
	FieldStories             = "# of Stories"
	FieldTotalArea           = "Total Area (Sq Ft)"
	FieldFireProtectionClass = "Fire Protection Class"
	FieldBurglarAlarmType    = "Burglar Alarm Type"
	FieldFireStationDistance = "Distance to Fire Station"
	FieldFireStationMiles    = "Distance to Fire Station (miles)"
	FieldFireHydrantDistance = "Distance to Fire Hydrant"
	FieldWildfireScore       = "Wildfire Risk Score"
	FieldFloodZone           = "FEMA Flood Zone"
	FieldEarthquakeZone      = "Earthquake Zone"
	FieldCrimeScore          = "Crime Score"
	FieldLossCount           = "Loss History - Count"
	FieldLossTotalAmount     = "Loss History - Total Amount"
	FieldLossTypes           = "Loss History - Type"
	FieldLossHistory         = "Loss History"
	FieldTIV                 = "TIV (Total Insurable Value)"
	FieldCoverageLimit       = "Coverage Limit"
	FieldSubjectOfInsurance  = "Subject of Insurance"
	FieldNAICSCode           = "NAICS Code"
	FieldFEIN                = "FEIN"
	FieldLegalEntityType     = "Legal Entity Type"
	FieldYearsInBusiness     = "Years in Business"
	FieldPriorCarrier        = "Prior Carrier"
	FieldBusinessDescription = "Business Description"
	FieldWiringYear          = "Building Improvements - Wiring"
	FieldRoofingYear         = "Building Improvements - Roofing"
	FieldPlumbingYear        = "Building Improvements - Plumbing"
)

// CanonicalFields returns the field vocabulary in form order. Loaders use
// it to build property tables with a stable column layout.
func CanonicalFields() []string {
	return []string{
		FieldNamedInsured, FieldAgencyCustomerID,
		FieldStreetAddress, FieldMailingAddress, FieldCity, FieldState, FieldZip,
		FieldConstructionType, FieldYearBuilt, FieldRoofCondition,
		FieldSprinkleredPct, FieldStories, FieldTotalArea,
		FieldFireProtectionClass, FieldBurglarAlarmType,
		FieldFireStationDistance, FieldFireStationMiles, FieldFireHydrantDistance,
		FieldWildfireScore, FieldFloodZone, FieldEarthquakeZone, FieldCrimeScore,
		FieldLossCount, FieldLossTotalAmount, FieldLossTypes,
		FieldTIV, FieldCoverageLimit, FieldSubjectOfInsurance,
		FieldNAICSCode, FieldFEIN, FieldLegalEntityType,
		FieldYearsInBusiness, FieldPriorCarrier, FieldBusinessDescription,
		FieldWiringYear, FieldRoofingYear, FieldPlumbingYear,
	}
}

// Loss history entry keys within the FieldLossHistory list.
const (
	LossOccurrenceDate = "Date of Occurrence"
	LossType           = "Type"
	LossClaimDate      = "Date of Claim"
	LossAmountPaid     = "Amount Paid"
	LossAmountReserved = "Amount Reserved"
	LossProperty       = "Property"
)
