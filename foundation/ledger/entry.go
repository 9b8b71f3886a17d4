package ledger

import (
	"crypto/sha256"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel is the previous digest recorded by the genesis entry since there
// is no real predecessor.
const Sentinel = "0"

// Values used to construct the genesis entry.
const (
	GenesisSubject = "GENESIS"
	GenesisPayload = "No Vote"
)

// Entry represents a sealed record in the ledger.
type Entry struct {
	Sequence   uint64 `json:"sequence"`    // Position in the ledger, 0 is genesis.
	Timestamp  string `json:"timestamp"`   // Creation time, opaque and never parsed.
	SubjectID  string `json:"subject_id"`  // Voter who produced the entry.
	Payload    string `json:"payload"`     // Candidate chosen by the voter.
	PrevDigest string `json:"prev_digest"` // Digest of the previous entry.
	Digest     string `json:"digest"`      // Digest of this entry's fields at seal time.
}

// NewEntry constructs an entry and computes its digest from the provided
// fields. An empty prevDigest is replaced with the Sentinel.
func NewEntry(sequence uint64, timestamp string, subjectID string, payload string, prevDigest string) Entry {
	if prevDigest == "" {
		prevDigest = Sentinel
	}

	e := Entry{
		Sequence:   sequence,
		Timestamp:  timestamp,
		SubjectID:  subjectID,
		Payload:    payload,
		PrevDigest: prevDigest,
	}
	e.Digest = e.RecomputeDigest()

	return e
}

// RecomputeDigest hashes the current field values of the entry. The stored
// digest is not changed.
func (e Entry) RecomputeDigest() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(e.Sequence, 10))
	sb.WriteString(e.Timestamp)
	sb.WriteString(e.SubjectID)
	sb.WriteString(e.Payload)
	sb.WriteString(e.PrevDigest)

	hash := sha256.Sum256([]byte(sb.String()))
	return common.Bytes2Hex(hash[:])
}

// IsGenesis reports if this is the first entry of a ledger.
func (e Entry) IsGenesis() bool {
	return e.Sequence == 0
}
