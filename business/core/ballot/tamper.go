package ballot

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/voteledger/foundation/ledger"
)

// ErrUnknownField is returned when a tamper request names a field that
// does not exist on an entry.
var ErrUnknownField = errors.New("unknown entry field")

// Set of entry fields that can be tampered with.
const (
	FieldTimestamp  = "timestamp"
	FieldSubjectID  = "subject_id"
	FieldPayload    = "payload"
	FieldPrevDigest = "prev_digest"
	FieldDigest     = "digest"
)

// Tamper describes a change to a recorded entry that bypasses sealing.
type Tamper struct {
	Sequence uint64
	Field    string
	Value    string
}

// Tamper overwrites a field of a recorded entry without recomputing its
// digest. This simulates corruption of the ledger for demonstration and must
// only be reachable when the host explicitly enables it.
func (c *Core) Tamper(t Tamper) (ledger.Entry, error) {
	u := c.ledger.Unsafe()

	var err error
	switch t.Field {
	case FieldTimestamp:
		err = u.SetTimestamp(t.Sequence, t.Value)
	case FieldSubjectID:
		err = u.SetSubjectID(t.Sequence, t.Value)
	case FieldPayload:
		err = u.SetPayload(t.Sequence, t.Value)
	case FieldPrevDigest:
		err = u.SetPrevDigest(t.Sequence, t.Value)
	case FieldDigest:
		err = u.SetDigest(t.Sequence, t.Value)
	default:
		return ledger.Entry{}, fmt.Errorf("%w: %s", ErrUnknownField, t.Field)
	}

	if err != nil {
		return ledger.Entry{}, fmt.Errorf("tamper seq[%d]: %w", t.Sequence, err)
	}

	c.evHandler("ballot: Tamper: seq[%d]: field[%s]: value[%s]", t.Sequence, t.Field, t.Value)

	return c.ledger.Entry(t.Sequence)
}
