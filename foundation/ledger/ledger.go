// Package ledger implements a hash linked, append only, in memory log of
// entries. Every entry carries a digest of its own fields and the digest of
// the entry before it, so any change to a recorded entry can be detected by
// recomputing the chain.
package ledger

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when an entry sequence does not exist.
var ErrNotFound = errors.New("entry not found")

// Set of reasons an entry can fail validation.
const (
	ReasonDigestMismatch = "digest mismatch"
	ReasonBrokenLink     = "broken link"
)

// Failure describes an entry that did not pass validation.
type Failure struct {
	Sequence uint64 `json:"sequence"`
	Reason   string `json:"reason"`
	Got      string `json:"got"`
	Exp      string `json:"exp"`
}

// =============================================================================

// Config represents the optional settings for a ledger.
type Config struct {
	Now func() time.Time
}

// Ledger maintains the ordered set of entries. Appends and unsafe mutations
// are serialized so sequence numbers and links are assigned atomically.
type Ledger struct {
	mu      sync.RWMutex
	now     func() time.Time
	entries []Entry
}

// New constructs a ledger holding only the genesis entry.
func New(cfg Config) *Ledger {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	l := Ledger{
		now: now,
	}
	l.entries = append(l.entries, l.createGenesis())

	return &l
}

// createGenesis produces the fixed first entry of the ledger.
func (l *Ledger) createGenesis() Entry {
	return NewEntry(0, l.timestamp(), GenesisSubject, GenesisPayload, Sentinel)
}

// Append records a new entry for the subject and payload using the ledger's
// clock for the timestamp.
func (l *Ledger) Append(subjectID string, payload string) Entry {
	e := Entry{
		Timestamp: l.timestamp(),
		SubjectID: subjectID,
		Payload:   payload,
	}

	return l.AppendEntry(e)
}

// AppendEntry links the entry to the current last entry, seals it with a
// fresh digest and adds it to the end of the ledger. The state of the
// existing chain is not checked.
func (l *Ledger) AppendEntry(e Entry) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	last := l.entries[len(l.entries)-1]

	e.Sequence = uint64(len(l.entries))
	e.PrevDigest = last.Digest
	e.Digest = e.RecomputeDigest()

	l.entries = append(l.entries, e)

	return e
}

// Validate reports if every entry still matches its digest and links to the
// digest of the entry before it.
func (l *Ledger) Validate() bool {
	return len(l.Verify()) == 0
}

// Verify walks the entire chain and returns every check that failed. Digests
// are recomputed from the current field values. Links are compared against
// the stored digest of the previous entry.
func (l *Ledger) Verify() []Failure {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var failures []Failure
	for i := 1; i < len(l.entries); i++ {
		e := l.entries[i]
		prev := l.entries[i-1]

		if digest := e.RecomputeDigest(); digest != e.Digest {
			failures = append(failures, Failure{
				Sequence: e.Sequence,
				Reason:   ReasonDigestMismatch,
				Got:      e.Digest,
				Exp:      digest,
			})
		}

		if e.PrevDigest != prev.Digest {
			failures = append(failures, Failure{
				Sequence: e.Sequence,
				Reason:   ReasonBrokenLink,
				Got:      e.PrevDigest,
				Exp:      prev.Digest,
			})
		}
	}

	return failures
}

// Entries returns a copy of the entries in ledger order.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cpy := make([]Entry, len(l.entries))
	copy(cpy, l.entries)

	return cpy
}

// Entry returns a copy of the entry at the specified sequence.
func (l *Ledger) Entry(sequence uint64) (Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if sequence >= uint64(len(l.entries)) {
		return Entry{}, ErrNotFound
	}

	return l.entries[sequence], nil
}

// Last returns a copy of the most recent entry.
func (l *Ledger) Last() Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.entries[len(l.entries)-1]
}

// Len returns the number of entries including genesis.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}

// timestamp renders the ledger clock as the opaque entry timestamp.
func (l *Ledger) timestamp() string {
	return l.now().UTC().Format(time.RFC3339Nano)
}
