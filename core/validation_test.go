package core

import (
	"errors"
	"testing"
)

func TestValidateAttributeRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *AttributeRecord
		wantErr bool
	}{
		{
			name:    "nil record",
			record:  nil,
			wantErr: true,
		},
		{
			name:    "empty record",
			record:  &AttributeRecord{},
			wantErr: true,
		},
		{
			name:    "name only",
			record:  &AttributeRecord{Identity: Identity{Name: "Jane"}},
			wantErr: false,
		},
		{
			name:    "attributes only",
			record:  &AttributeRecord{TechnicalAttributes: []string{"go"}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttributeRecord(tt.record)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAttributeRecord() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("error %v does not wrap ErrInvalidRecord", err)
			}
		})
	}
}

func TestRepairRecord(t *testing.T) {
	t.Run("nil record becomes placeholder", func(t *testing.T) {
		record, repaired := RepairRecord(nil)
		if !repaired {
			t.Error("expected repair to be reported")
		}
		if record.Identity.Name != "Unknown" || record.Experience != "Unknown" {
			t.Errorf("placeholder fields not set: %+v", record)
		}
	})

	t.Run("missing fields are filled", func(t *testing.T) {
		record, repaired := RepairRecord(&AttributeRecord{TechnicalAttributes: []string{"go"}})
		if !repaired {
			t.Error("expected repair to be reported")
		}
		if record.Identity.Name != "Unknown" {
			t.Errorf("name = %q, want Unknown", record.Identity.Name)
		}
		if len(record.TechnicalAttributes) != 1 {
			t.Error("repair must not touch extracted attributes")
		}
	})

	t.Run("complete record untouched", func(t *testing.T) {
		record := &AttributeRecord{Identity: Identity{Name: "Jane"}, Experience: "5 years"}
		_, repaired := RepairRecord(record)
		if repaired {
			t.Error("complete record reported as repaired")
		}
	})
}

func TestNormalizeRequired(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "lowercases and trims",
			raw:  []string{"  Python ", "REACT"},
			want: []string{"python", "react"},
		},
		{
			name: "drops duplicates keeping first occurrence",
			raw:  []string{"go", "Python", "GO"},
			want: []string{"go", "python"},
		},
		{
			name: "drops short tokens",
			raw:  []string{"c", "r", "go"},
			want: []string{"go"},
		},
		{
			name: "empty input",
			raw:  nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRequired(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("NormalizeRequired() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("NormalizeRequired()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
