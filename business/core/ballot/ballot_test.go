package ballot_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ardanlabs/voteledger/business/core/ballot"
	"github.com/ardanlabs/voteledger/foundation/ledger"
	"github.com/ardanlabs/voteledger/foundation/registry"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newCore(t *testing.T, candidates ...string) (*ballot.Core, *[]string) {
	var evts []string
	ev := func(v string, args ...any) {
		evts = append(evts, fmt.Sprintf(v, args...))
	}

	core, err := ballot.New(ballot.Config{
		Ledger:     ledger.New(ledger.Config{}),
		Registry:   registry.New(),
		Candidates: candidates,
		EvHandler:  ev,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the ballot core: %v", failed, err)
	}

	return core, &evts
}

// =============================================================================

func TestCastVote(t *testing.T) {
	type table struct {
		name      string
		voterID   string
		candidate string
		err       error
	}

	tt := []table{
		{name: "accepted", voterID: "V2", candidate: "Meera"},
		{name: "trimmed", voterID: "  V3 ", candidate: " Kabir "},
		{name: "empty-voter", voterID: "  ", candidate: "Arjun", err: ballot.ErrVoterRequired},
		{name: "empty-candidate", voterID: "V4", candidate: "", err: ballot.ErrCandidateRequired},
		{name: "unknown-candidate", voterID: "V5", candidate: "Nobody", err: ballot.ErrUnknownCandidate},
		{name: "duplicate", voterID: "V1", candidate: "Meera", err: ballot.ErrAlreadyVoted},
		{name: "duplicate-trimmed", voterID: " V1", candidate: "Arjun", err: ballot.ErrAlreadyVoted},
	}

	t.Log("Given the need to cast votes onto the ledger.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen casting a %s vote.", testID, tst.name)
			{
				f := func(t *testing.T) {
					core, _ := newCore(t, "Arjun", "Meera", "Kabir")

					if _, err := core.CastVote("V1", "Arjun"); err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to cast the first vote: %v", failed, testID, err)
					}

					entry, err := core.CastVote(tst.voterID, tst.candidate)
					if !errors.Is(err, tst.err) {
						t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, err)
						t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, tst.err)
						t.Fatalf("\t%s\tTest %d:\tShould get the expected error.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected error.", success, testID)

					exp := 3
					if tst.err != nil {
						exp = 2
					}
					if n := len(core.Entries()); n != exp {
						t.Fatalf("\t%s\tTest %d:\tShould have %d entries: got %d", failed, testID, exp, n)
					}
					t.Logf("\t%s\tTest %d:\tShould have %d entries.", success, testID, exp)

					if tst.err == nil {
						if entry.Sequence != 2 || !core.HasVoted(tst.voterID) {
							t.Fatalf("\t%s\tTest %d:\tShould record the voter: %+v", failed, testID, entry)
						}
						t.Logf("\t%s\tTest %d:\tShould record the voter.", success, testID)
					}

					if !core.Validate().Valid {
						t.Fatalf("\t%s\tTest %d:\tShould keep the ledger valid.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould keep the ledger valid.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestOpenBallot(t *testing.T) {
	t.Log("Given a ballot with no configured candidates.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen voting for any candidate.", testID)
		{
			core, evts := newCore(t)

			if _, err := core.CastVote("V1", "Anyone"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould accept any candidate: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould accept any candidate.", success, testID)

			if len(*evts) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould emit one event: got %v", failed, testID, *evts)
			}
			t.Logf("\t%s\tTest %d:\tShould emit one event.", success, testID)
		}
	}
}

func TestTally(t *testing.T) {
	t.Log("Given the need to count votes from the ledger.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen votes have been cast.", testID)
		{
			core, _ := newCore(t, "Arjun", "Meera", "Kabir")

			core.CastVote("V1", "Arjun")
			core.CastVote("V2", "Kabir")
			core.CastVote("V3", "Arjun")

			exp := []ballot.Count{
				{Candidate: "Arjun", Votes: 2},
				{Candidate: "Meera", Votes: 0},
				{Candidate: "Kabir", Votes: 1},
			}

			got := core.Tally()
			if fmt.Sprint(got) != fmt.Sprint(exp) {
				t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, got)
				t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, exp)
				t.Fatalf("\t%s\tTest %d:\tShould count every candidate in ballot order.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould count every candidate in ballot order.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen a vote has been tampered with.", testID)
		{
			core, _ := newCore(t, "Arjun", "Meera")

			core.CastVote("V1", "Arjun")
			core.CastVote("V2", "Arjun")
			core.Tamper(ballot.Tamper{Sequence: 2, Field: ballot.FieldPayload, Value: "X"})

			exp := []ballot.Count{
				{Candidate: "Arjun", Votes: 1},
				{Candidate: "Meera", Votes: 0},
				{Candidate: "X", Votes: 1},
			}

			got := core.Tally()
			if fmt.Sprint(got) != fmt.Sprint(exp) {
				t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, got)
				t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, exp)
				t.Fatalf("\t%s\tTest %d:\tShould count what the ledger holds.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould count what the ledger holds.", success, testID)
		}
	}
}

func TestTamper(t *testing.T) {
	t.Log("Given the need to simulate corruption of the ledger.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen tampering with a recorded vote.", testID)
		{
			core, _ := newCore(t, "Arjun", "Meera")
			core.CastVote("V1", "Arjun")

			entry, err := core.Tamper(ballot.Tamper{Sequence: 1, Field: ballot.FieldPayload, Value: "X"})
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to tamper: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to tamper.", success, testID)

			if entry.Payload != "X" || core.Entries()[1].Payload != "X" {
				t.Fatalf("\t%s\tTest %d:\tShould show the tampered payload.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould show the tampered payload.", success, testID)

			report := core.Validate()
			if report.Valid || len(report.Failures) != 1 || report.Failures[0].Sequence != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould report entry 1 as invalid: %+v", failed, testID, report)
			}
			t.Logf("\t%s\tTest %d:\tShould report entry 1 as invalid.", success, testID)

			if _, err := core.CastVote("V2", "Meera"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould still accept votes: %v", failed, testID, err)
			}
			if core.Validate().Valid {
				t.Fatalf("\t%s\tTest %d:\tShould remain invalid.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould still accept votes and remain invalid.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the tamper request is bad.", testID)
		{
			core, _ := newCore(t)

			if _, err := core.Tamper(ballot.Tamper{Sequence: 0, Field: "nonce"}); !errors.Is(err, ballot.ErrUnknownField) {
				t.Fatalf("\t%s\tTest %d:\tShould reject an unknown field: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject an unknown field.", success, testID)

			if _, err := core.Tamper(ballot.Tamper{Sequence: 5, Field: ballot.FieldPayload}); !errors.Is(err, ledger.ErrNotFound) {
				t.Fatalf("\t%s\tTest %d:\tShould reject an unknown entry: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject an unknown entry.", success, testID)
		}
	}
}
