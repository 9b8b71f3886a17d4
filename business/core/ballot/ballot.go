// Package ballot is the core API for recording votes on the ledger. It owns
// the rules the ledger itself does not enforce: a voter id is required, the
// candidate must be on the ballot and a voter can only vote once.
package ballot

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/ardanlabs/voteledger/foundation/ledger"
	"github.com/ardanlabs/voteledger/foundation/registry"
)

// Set of errors returned when casting a vote.
var (
	ErrVoterRequired     = errors.New("voter id is required")
	ErrCandidateRequired = errors.New("candidate is required")
	ErrUnknownCandidate  = errors.New("candidate is not on the ballot")
	ErrAlreadyVoted      = errors.New("voter has already voted")
)

// EventHandler defines a function that is called when events
// occur in the processing of votes.
type EventHandler func(v string, args ...any)

// Config represents the systems required to construct the ballot core.
type Config struct {
	Ledger     *ledger.Ledger
	Registry   *registry.Registry
	Candidates []string
	EvHandler  EventHandler
}

// Core manages the voting process against the ledger.
type Core struct {
	mu         sync.Mutex
	ledger     *ledger.Ledger
	registry   *registry.Registry
	candidates []string
	evHandler  EventHandler
}

// New constructs the ballot core for use.
func New(cfg Config) (*Core, error) {
	if cfg.Ledger == nil {
		return nil, errors.New("ledger is required")
	}

	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	var candidates []string
	for _, name := range cfg.Candidates {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(candidates, name) {
			continue
		}
		candidates = append(candidates, name)
	}

	c := Core{
		ledger:     cfg.Ledger,
		registry:   cfg.Registry,
		candidates: candidates,
		evHandler:  ev,
	}

	return &c, nil
}

// CastVote records the vote of a voter for a candidate and returns the sealed
// ledger entry.
func (c *Core) CastVote(voterID string, candidate string) (ledger.Entry, error) {
	voterID = strings.TrimSpace(voterID)
	candidate = strings.TrimSpace(candidate)

	if voterID == "" {
		return ledger.Entry{}, ErrVoterRequired
	}

	if candidate == "" {
		return ledger.Entry{}, ErrCandidateRequired
	}

	if len(c.candidates) > 0 && !slices.Contains(c.candidates, candidate) {
		return ledger.Entry{}, fmt.Errorf("%w: %s", ErrUnknownCandidate, candidate)
	}

	// Registration and append happen together so the order of entries
	// matches the order voters were accepted.
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.registry.Register(voterID) {
		c.evHandler("ballot: CastVote: rejected: voter[%s]: already voted", voterID)
		return ledger.Entry{}, fmt.Errorf("%w: %s", ErrAlreadyVoted, voterID)
	}

	entry := c.ledger.Append(voterID, candidate)

	c.evHandler("ballot: CastVote: recorded: seq[%d]: voter[%s]: candidate[%s]: digest[%s]", entry.Sequence, voterID, candidate, entry.Digest)

	return entry, nil
}

// HasVoted reports if the voter has already cast a vote.
func (c *Core) HasVoted(voterID string) bool {
	return c.registry.Contains(strings.TrimSpace(voterID))
}

// Candidates returns the configured set of candidates.
func (c *Core) Candidates() []string {
	return slices.Clone(c.candidates)
}

// Entries returns a copy of the ledger entries.
func (c *Core) Entries() []ledger.Entry {
	return c.ledger.Entries()
}

// Entry returns a copy of the ledger entry at the specified sequence.
func (c *Core) Entry(sequence uint64) (ledger.Entry, error) {
	return c.ledger.Entry(sequence)
}
