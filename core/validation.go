package core

import "fmt"

// placeholderName is substituted when extraction could not determine a
// candidate name. Records are kept rather than dropped so ingestion counts
// stay auditable.
const placeholderName = "Unknown"

// ValidateAttributeRecord validates a record according to domain rules.
//
// Validation rules:
//   - record must not be nil
//   - record must carry a candidate name or at least one technical attribute
//
// NOT validated:
//   - ID (0 is valid before storage assigns one)
//   - timestamps (populated by storage)
func ValidateAttributeRecord(record *AttributeRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.Identity.Name == "" && len(record.TechnicalAttributes) == 0 {
		return fmt.Errorf("%w: no identity and no technical attributes", ErrInvalidRecord)
	}

	return nil
}

// RepairRecord fills placeholder fields into a malformed record so it can
// still be stored. Returns the record and whether any repair was applied.
func RepairRecord(record *AttributeRecord) (*AttributeRecord, bool) {
	if record == nil {
		return &AttributeRecord{
			Identity:   Identity{Name: placeholderName},
			Experience: placeholderName,
		}, true
	}

	repaired := false
	if record.Identity.Name == "" {
		record.Identity.Name = placeholderName
		repaired = true
	}
	if record.Experience == "" {
		record.Experience = placeholderName
		repaired = true
	}
	return record, repaired
}
