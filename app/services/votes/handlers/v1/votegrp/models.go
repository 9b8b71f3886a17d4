package votegrp

import (
	"github.com/ardanlabs/voteledger/business/core/ballot"
	"github.com/ardanlabs/voteledger/foundation/ledger"
)

type newVote struct {
	VoterID   string `json:"voter_id" validate:"required,max=128"`
	Candidate string `json:"candidate" validate:"required,max=128"`
}

type entry struct {
	Sequence   uint64 `json:"sequence"`
	Timestamp  string `json:"timestamp"`
	VoterID    string `json:"voter_id"`
	Candidate  string `json:"candidate"`
	PrevDigest string `json:"prev_digest"`
	Digest     string `json:"digest"`
}

func toEntry(e ledger.Entry) entry {
	return entry{
		Sequence:   e.Sequence,
		Timestamp:  e.Timestamp,
		VoterID:    e.SubjectID,
		Candidate:  e.Payload,
		PrevDigest: e.PrevDigest,
		Digest:     e.Digest,
	}
}

func toEntries(entries []ledger.Entry) []entry {
	out := make([]entry, len(entries))
	for i, e := range entries {
		out[i] = toEntry(e)
	}
	return out
}

type ledgerInfo struct {
	Valid   bool    `json:"valid"`
	Length  int     `json:"length"`
	Entries []entry `json:"entries"`
}

type tally struct {
	Valid  bool           `json:"valid"`
	Total  int            `json:"total"`
	Counts []ballot.Count `json:"counts"`
}
