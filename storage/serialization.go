package storage

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/talentscout/resumatch/core"
)

// VectorEntry is a persisted vector index entry: the search text a record
// was indexed under and its embedding.
type VectorEntry struct {
	Text   string
	Vector []float32
}

var float32SliceMUS = ord.NewSliceSer[float32](raw.Float32)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalAttributeRecord serializes an AttributeRecord to bytes.
func MarshalAttributeRecord(record *core.AttributeRecord) []byte {
	buf := make([]byte, core.AttributeRecordMUS.Size(*record))
	core.AttributeRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalAttributeRecord deserializes an AttributeRecord from bytes.
func UnmarshalAttributeRecord(data []byte) (*core.AttributeRecord, error) {
	record, _, err := core.AttributeRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalVectorEntry serializes a VectorEntry to bytes.
func MarshalVectorEntry(entry *VectorEntry) []byte {
	size := ord.String.Size(entry.Text) + float32SliceMUS.Size(entry.Vector)
	buf := make([]byte, size)
	n := ord.String.Marshal(entry.Text, buf)
	float32SliceMUS.Marshal(entry.Vector, buf[n:])
	return buf
}

// UnmarshalVectorEntry deserializes a VectorEntry from bytes.
func UnmarshalVectorEntry(data []byte) (*VectorEntry, error) {
	text, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	vector, _, err := float32SliceMUS.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	return &VectorEntry{Text: text, Vector: vector}, nil
}
