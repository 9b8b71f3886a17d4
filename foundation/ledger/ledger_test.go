package ledger_test

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/ardanlabs/voteledger/foundation/ledger"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func clock() func() time.Time {
	t := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// =============================================================================

func TestEntryDigest(t *testing.T) {
	t.Log("Given the need to seal an entry with a digest.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen constructing an entry.", testID)
		{
			e := ledger.NewEntry(3, "2024-03-01T10:00:00Z", "V1", "Arjun", "abc")

			sum := sha256.Sum256([]byte("32024-03-01T10:00:00ZV1Arjunabc"))
			exp := hex.EncodeToString(sum[:])

			if e.Digest != exp {
				t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, e.Digest)
				t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, exp)
				t.Fatalf("\t%s\tTest %d:\tShould hash the concatenated fields.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould hash the concatenated fields.", success, testID)

			if e.RecomputeDigest() != e.RecomputeDigest() || e.RecomputeDigest() != e.Digest {
				t.Fatalf("\t%s\tTest %d:\tShould recompute the same digest.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould recompute the same digest.", success, testID)

			e.Payload = "X"
			if e.RecomputeDigest() == e.Digest {
				t.Fatalf("\t%s\tTest %d:\tShould produce a different digest after a change.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould produce a different digest after a change.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen constructing an entry with no previous digest.", testID)
		{
			e := ledger.NewEntry(0, "ts", "s", "p", "")
			if e.PrevDigest != ledger.Sentinel {
				t.Fatalf("\t%s\tTest %d:\tShould use the sentinel: got %q", failed, testID, e.PrevDigest)
			}
			t.Logf("\t%s\tTest %d:\tShould use the sentinel.", success, testID)
		}
	}
}

func TestGenesis(t *testing.T) {
	t.Log("Given the need to start a ledger with a genesis entry.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen constructing a new ledger.", testID)
		{
			l := ledger.New(ledger.Config{Now: clock()})

			if l.Len() != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould have one entry: got %d", failed, testID, l.Len())
			}
			t.Logf("\t%s\tTest %d:\tShould have one entry.", success, testID)

			g := l.Entries()[0]
			if g.Sequence != 0 || g.PrevDigest != ledger.Sentinel {
				t.Fatalf("\t%s\tTest %d:\tShould have sequence 0 and the sentinel link: %+v", failed, testID, g)
			}
			t.Logf("\t%s\tTest %d:\tShould have sequence 0 and the sentinel link.", success, testID)

			if g.SubjectID != ledger.GenesisSubject || g.Payload != ledger.GenesisPayload || !g.IsGenesis() {
				t.Fatalf("\t%s\tTest %d:\tShould have the genesis subject and payload: %+v", failed, testID, g)
			}
			t.Logf("\t%s\tTest %d:\tShould have the genesis subject and payload.", success, testID)

			if g.Digest != g.RecomputeDigest() {
				t.Fatalf("\t%s\tTest %d:\tShould have a sealed digest.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould have a sealed digest.", success, testID)

			if !l.Validate() {
				t.Fatalf("\t%s\tTest %d:\tShould be valid.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould be valid.", success, testID)
		}
	}
}

func TestAppend(t *testing.T) {
	type table struct {
		name  string
		votes [][2]string
	}

	tt := []table{
		{name: "one", votes: [][2]string{{"V1", "Arjun"}}},
		{name: "many", votes: [][2]string{{"V1", "Arjun"}, {"V2", "Meera"}, {"V3", "Arjun"}, {"V4", "Kabir"}}},
		{name: "unchecked", votes: [][2]string{{"", ""}, {"V1", "V1"}}},
	}

	t.Log("Given the need to append entries to the ledger.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %d appends.", testID, len(tst.votes))
			{
				f := func(t *testing.T) {
					l := ledger.New(ledger.Config{Now: clock()})

					for _, vote := range tst.votes {
						prev := l.Last()
						e := l.Append(vote[0], vote[1])

						if e.PrevDigest != prev.Digest {
							t.Fatalf("\t%s\tTest %d:\tShould link to the previous entry.", failed, testID)
						}

						if e.Sequence != prev.Sequence+1 {
							t.Fatalf("\t%s\tTest %d:\tShould have the next sequence: got %d", failed, testID, e.Sequence)
						}

						if !l.Validate() {
							t.Fatalf("\t%s\tTest %d:\tShould be valid after append.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould link, sequence and stay valid on every append.", success, testID)

					entries := l.Entries()
					if len(entries) != len(tst.votes)+1 {
						t.Fatalf("\t%s\tTest %d:\tShould have %d entries: got %d", failed, testID, len(tst.votes)+1, len(entries))
					}
					t.Logf("\t%s\tTest %d:\tShould have all entries.", success, testID)

					for i, vote := range tst.votes {
						e := entries[i+1]
						if e.SubjectID != vote[0] || e.Payload != vote[1] {
							t.Fatalf("\t%s\tTest %d:\tShould keep the entry fields: %+v", failed, testID, e)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould keep the entry fields.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestAppendEntry(t *testing.T) {
	t.Log("Given the need to append a caller constructed entry.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the entry carries its own sequence and links.", testID)
		{
			l := ledger.New(ledger.Config{Now: clock()})

			e := l.AppendEntry(ledger.Entry{
				Sequence:   99,
				Timestamp:  "later",
				SubjectID:  "V1",
				Payload:    "Arjun",
				PrevDigest: "bogus",
				Digest:     "bogus",
			})

			if e.Sequence != 1 || e.PrevDigest != l.Entries()[0].Digest || e.Digest != e.RecomputeDigest() {
				t.Fatalf("\t%s\tTest %d:\tShould stamp sequence, link and digest: %+v", failed, testID, e)
			}
			t.Logf("\t%s\tTest %d:\tShould stamp sequence, link and digest.", success, testID)

			if !l.Validate() {
				t.Fatalf("\t%s\tTest %d:\tShould be valid.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould be valid.", success, testID)
		}
	}
}

func TestSnapshot(t *testing.T) {
	t.Log("Given the need to hand out entries without exposing the ledger.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen changing a returned entry.", testID)
		{
			l := ledger.New(ledger.Config{Now: clock()})
			l.Append("V1", "Arjun")

			entries := l.Entries()
			entries[1].Payload = "X"

			e, err := l.Entry(1)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to read entry 1: %v", failed, testID, err)
			}

			if e.Payload != "Arjun" || !l.Validate() {
				t.Fatalf("\t%s\tTest %d:\tShould not change the ledger.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould not change the ledger.", success, testID)

			if _, err := l.Entry(2); !errors.Is(err, ledger.ErrNotFound) {
				t.Fatalf("\t%s\tTest %d:\tShould not find entry 2: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould not find entry 2.", success, testID)
		}
	}
}
