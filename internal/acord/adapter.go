package acord

import (
	"fmt"
	"strings"

	"github.com/meridian-specialty/underwriting-cli/internal/ledger"
	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

// RecordFromMap builds a PropertyRecord from the extraction field map.
// Every field is optional; values may be strings, numbers, or nil. The
// optional Loss History list becomes a claims ledger with back-reference
// columns so the matcher can link entries to the property.
func RecordFromMap(fields map[string]any) (model.PropertyRecord, *ledger.Table) {
	get := func(name string) string {
		v, ok := fields[name]
		if !ok || v == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}

	rec := model.PropertyRecord{
		NamedInsured:        get(FieldNamedInsured),
		AgencyCustomerID:    get(FieldAgencyCustomerID),
		StreetAddress:       get(FieldStreetAddress),
		MailingAddress:      get(FieldMailingAddress),
		City:                get(FieldCity),
		State:               get(FieldState),
		Zip:                 get(FieldZip),
		ConstructionType:    get(FieldConstructionType),
		YearBuilt:           get(FieldYearBuilt),
		RoofCondition:       get(FieldRoofCondition),
		SprinkleredPct:      get(FieldSprinkleredPct),
		Stories:             get(FieldStories),
		TotalArea:           get(FieldTotalArea),
		FireProtectionClass: get(FieldFireProtectionClass),
		BurglarAlarmType:    get(FieldBurglarAlarmType),
		FireStationDistance: firstNonEmpty(get(FieldFireStationMiles), get(FieldFireStationDistance)),
		FireHydrantDistance: get(FieldFireHydrantDistance),
		WildfireScore:       get(FieldWildfireScore),
		FloodZone:           get(FieldFloodZone),
		EarthquakeZone:      get(FieldEarthquakeZone),
		CrimeScore:          get(FieldCrimeScore),
		LossCount:           get(FieldLossCount),
		LossTotalAmount:     get(FieldLossTotalAmount),
		LossTypes:           get(FieldLossTypes),
		TIV:                 get(FieldTIV),
		CoverageLimit:       get(FieldCoverageLimit),
		SubjectOfInsurance:  get(FieldSubjectOfInsurance),
		NAICSCode:           get(FieldNAICSCode),
		FEIN:                get(FieldFEIN),
		LegalEntityType:     get(FieldLegalEntityType),
		YearsInBusiness:     get(FieldYearsInBusiness),
		PriorCarrier:        get(FieldPriorCarrier),
		BusinessDescription: get(FieldBusinessDescription),
		WiringYear:          get(FieldWiringYear),
		RoofingYear:         get(FieldRoofingYear),
		PlumbingYear:        get(FieldPlumbingYear),
	}

	claims := claimsFromHistory(fields[FieldLossHistory], rec)

	// Derive the summary loss-type union when the form carried a history
	// list but no explicit type field.
	if rec.LossTypes == "" && claims != nil {
		rec.LossTypes = joinDistinct(claims, LossType)
	}

	return rec, claims
}

// claimsFromHistory converts a Loss History list (entries as field maps or
// typed ClaimsRecords) into a ledger table with the property back-reference
// columns used by the matcher.
func claimsFromHistory(v any, rec model.PropertyRecord) *ledger.Table {
	entries := historyEntries(v)
	if len(entries) == 0 {
		return nil
	}

	t := ledger.New(
		LossOccurrenceDate, LossType, LossClaimDate,
		LossAmountPaid, LossAmountReserved,
		LossProperty, FieldAgencyCustomerID, FieldStreetAddress,
	)
	for _, e := range entries {
		t.Append(
			e[LossOccurrenceDate], e[LossType], e[LossClaimDate],
			e[LossAmountPaid], e[LossAmountReserved],
			rec.NamedInsured, rec.AgencyCustomerID, rec.StreetAddress,
		)
	}
	return t
}

func historyEntries(v any) []map[string]string {
	var out []map[string]string
	switch list := v.(type) {
	case []map[string]any:
		for _, m := range list {
			out = append(out, stringify(m))
		}
	case []any:
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, stringify(m))
			}
		}
	case []model.ClaimsRecord:
		for _, c := range list {
			out = append(out, map[string]string{
				LossOccurrenceDate: c.OccurrenceDate,
				LossType:           c.Type,
				LossClaimDate:      c.ClaimDate,
				LossAmountPaid:     c.AmountPaid,
				LossAmountReserved: c.AmountReserved,
			})
		}
	}
	return out
}

func stringify(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		out[k] = strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	return out
}

// ClaimsTable builds a claims ledger from typed records, carrying the
// back-reference columns. Used by the HTTP API where claims arrive as JSON.
func ClaimsTable(records []model.ClaimsRecord) *ledger.Table {
	if len(records) == 0 {
		return nil
	}
	t := ledger.New(
		LossOccurrenceDate, LossType, LossClaimDate,
		LossAmountPaid, LossAmountReserved,
		LossProperty, FieldAgencyCustomerID, FieldStreetAddress,
	)
	for _, c := range records {
		t.Append(
			c.OccurrenceDate, c.Type, c.ClaimDate,
			c.AmountPaid, c.AmountReserved,
			c.Property, c.AgencyCustomerID, c.StreetAddress,
		)
	}
	return t
}

// RecordFromRow builds a PropertyRecord from a row of a property schedule
// table whose columns use the canonical field vocabulary. Unknown columns
// are ignored; missing columns read as "".
func RecordFromRow(t *ledger.Table, row int) model.PropertyRecord {
	return model.PropertyRecord{
		NamedInsured:        t.Get(row, FieldNamedInsured),
		AgencyCustomerID:    t.Get(row, FieldAgencyCustomerID),
		StreetAddress:       t.Get(row, FieldStreetAddress),
		MailingAddress:      t.Get(row, FieldMailingAddress),
		City:                t.Get(row, FieldCity),
		State:               t.Get(row, FieldState),
		Zip:                 t.Get(row, FieldZip),
		ConstructionType:    t.Get(row, FieldConstructionType),
		YearBuilt:           t.Get(row, FieldYearBuilt),
		RoofCondition:       t.Get(row, FieldRoofCondition),
		SprinkleredPct:      t.Get(row, FieldSprinkleredPct),
		Stories:             t.Get(row, FieldStories),
		TotalArea:           t.Get(row, FieldTotalArea),
		FireProtectionClass: t.Get(row, FieldFireProtectionClass),
		BurglarAlarmType:    t.Get(row, FieldBurglarAlarmType),
		FireStationDistance: firstNonEmpty(t.Get(row, FieldFireStationMiles), t.Get(row, FieldFireStationDistance)),
		FireHydrantDistance: t.Get(row, FieldFireHydrantDistance),
		WildfireScore:       t.Get(row, FieldWildfireScore),
		FloodZone:           t.Get(row, FieldFloodZone),
		EarthquakeZone:      t.Get(row, FieldEarthquakeZone),
		CrimeScore:          t.Get(row, FieldCrimeScore),
		LossCount:           t.Get(row, FieldLossCount),
		LossTotalAmount:     t.Get(row, FieldLossTotalAmount),
		LossTypes:           t.Get(row, FieldLossTypes),
		TIV:                 t.Get(row, FieldTIV),
		CoverageLimit:       t.Get(row, FieldCoverageLimit),
		SubjectOfInsurance:  t.Get(row, FieldSubjectOfInsurance),
		NAICSCode:           t.Get(row, FieldNAICSCode),
		FEIN:                t.Get(row, FieldFEIN),
		LegalEntityType:     t.Get(row, FieldLegalEntityType),
		YearsInBusiness:     t.Get(row, FieldYearsInBusiness),
		PriorCarrier:        t.Get(row, FieldPriorCarrier),
		BusinessDescription: t.Get(row, FieldBusinessDescription),
	}
}

func joinDistinct(t *ledger.Table, column string) string {
	col := t.ColumnIndex(column)
	if col < 0 {
		return ""
	}
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < t.Len(); i++ {
		v := strings.TrimSpace(t.Cell(i, col))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return strings.Join(out, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
