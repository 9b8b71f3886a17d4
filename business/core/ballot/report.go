package ballot

import (
	"sort"

	"github.com/ardanlabs/voteledger/foundation/ledger"
)

// Report is the result of validating the ledger.
type Report struct {
	Valid    bool             `json:"valid"`
	Length   int              `json:"length"`
	LastHash string           `json:"last_hash"`
	Failures []ledger.Failure `json:"failures,omitempty"`
}

// Validate recomputes the ledger and reports every entry that failed.
func (c *Core) Validate() Report {
	failures := c.ledger.Verify()

	r := Report{
		Valid:    len(failures) == 0,
		Length:   c.ledger.Len(),
		LastHash: c.ledger.Last().Digest,
		Failures: failures,
	}

	if !r.Valid {
		c.evHandler("ballot: Validate: ledger invalid: failures[%d]", len(failures))
	}

	return r
}

// =============================================================================

// Count is the number of votes recorded for a candidate.
type Count struct {
	Candidate string `json:"candidate"`
	Votes     int    `json:"votes"`
}

// Tally counts the votes recorded on the ledger per candidate. Every
// configured candidate is included even with no votes. Payloads that are
// not on the ballot, which only happens after tampering, follow in name order.
func (c *Core) Tally() []Count {
	votes := make(map[string]int)
	for _, e := range c.ledger.Entries() {
		if e.IsGenesis() {
			continue
		}
		votes[e.Payload]++
	}

	counts := make([]Count, 0, len(votes)+len(c.candidates))
	for _, name := range c.candidates {
		counts = append(counts, Count{Candidate: name, Votes: votes[name]})
		delete(votes, name)
	}

	others := make([]Count, 0, len(votes))
	for name, n := range votes {
		others = append(others, Count{Candidate: name, Votes: n})
	}
	sort.Slice(others, func(i, j int) bool {
		return others[i].Candidate < others[j].Candidate
	})

	return append(counts, others...)
}
