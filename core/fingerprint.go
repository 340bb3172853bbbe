package core

import (
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint is a 128-bit content hash over the identifying subset of an
// AttributeRecord, rendered as 32 hex characters. Two records with the same
// fingerprint are considered duplicates.
//
// This is a content-addressing scheme, not a security mechanism: BLAKE2b
// collisions are astronomically unlikely at corpus scale, and nothing is
// gained by an attacker forging one.
type Fingerprint string

// fingerprintSubset is the canonical serialization input. Field order is
// fixed by the struct; the attribute list is sorted before hashing so that
// insertion order never changes the fingerprint.
type fingerprintSubset struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Technical  []string `json:"technical"`
	Experience string   `json:"experience"`
}

// ComputeFingerprint derives the deduplication fingerprint of a record from
// {identity name, email, phone, sorted technical attributes, experience}.
// Tool and soft attributes deliberately do not participate: re-extracting
// the same resume with a chattier model must still collide.
func ComputeFingerprint(record *AttributeRecord) Fingerprint {
	technical := make([]string, len(record.TechnicalAttributes))
	for i, attr := range record.TechnicalAttributes {
		technical[i] = strings.ToLower(strings.TrimSpace(attr))
	}
	slices.Sort(technical)

	subset := fingerprintSubset{
		Name:       record.Identity.Name,
		Email:      record.Identity.Email,
		Phone:      record.Identity.Phone,
		Technical:  technical,
		Experience: record.Experience,
	}

	// json.Marshal of a struct emits fields in declaration order, which
	// gives us the canonical byte representation.
	canonical, err := json.Marshal(subset)
	if err != nil {
		// Cannot happen for a struct of strings and string slices.
		panic(err)
	}

	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write(canonical)
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}
