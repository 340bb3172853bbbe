package badger

import (
	"fmt"
	"strconv"

	"github.com/talentscout/resumatch/core"
)

// Key prefixes for the three persisted artifacts
const (
	candidateRecordPrefix = "canrec"
	fingerprintPrefix     = "canfp"
	vectorIndexPrefix     = "canvec"
)

// artifactPrefixes returns the key prefixes of all persisted artifacts.
func artifactPrefixes() [][]byte {
	return [][]byte{
		[]byte(candidateRecordPrefix + ":"),
		[]byte(fingerprintPrefix + ":"),
		[]byte(vectorIndexPrefix + ":"),
	}
}

// makeCandidateKey generates a key for a candidate record by ID.
func makeCandidateKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", candidateRecordPrefix, id))
}

// makeFingerprintKey generates a key for a content fingerprint.
func makeFingerprintKey(fp core.Fingerprint) []byte {
	return []byte(fingerprintPrefix + ":" + string(fp))
}

// fingerprintFromKey recovers a fingerprint from its index key.
func fingerprintFromKey(key []byte) core.Fingerprint {
	return core.Fingerprint(key[len(fingerprintPrefix)+1:])
}

// makeVectorKey generates a key for a vector index entry by record ID.
func makeVectorKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", vectorIndexPrefix, id))
}

// idFromVectorKey recovers the record ID from a vector index key.
func idFromVectorKey(key []byte) (core.ID, error) {
	raw, err := strconv.ParseUint(string(key[len(vectorIndexPrefix)+1:]), 10, 64)
	if err != nil {
		return 0, err
	}
	return core.ID(raw), nil
}
