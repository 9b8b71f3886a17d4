// Package votegrp maintains the group of handlers for casting votes and
// reading the ledger.
package votegrp

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/voteledger/business/core/ballot"
	"github.com/ardanlabs/voteledger/business/web/errs"
	"github.com/ardanlabs/voteledger/foundation/events"
	"github.com/ardanlabs/voteledger/foundation/ledger"
	"github.com/ardanlabs/voteledger/foundation/validate"
	"github.com/ardanlabs/voteledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of vote endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	Ballot *ballot.Core
	WS     websocket.Upgrader
	Evts   *events.Events
}

// CastVote records a new vote on the ledger.
func (h Handlers) CastVote(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nv newVote
	if err := web.Decode(r, &nv); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("cast vote", "traceid", v.TraceID, "voter", nv.VoterID, "candidate", nv.Candidate)

	e, err := h.Ballot.CastVote(nv.VoterID, nv.Candidate)
	if err != nil {
		switch {
		case errors.Is(err, ballot.ErrAlreadyVoted):
			return errs.NewTrusted(err, http.StatusConflict)

		case errors.Is(err, ballot.ErrVoterRequired),
			errors.Is(err, ballot.ErrCandidateRequired),
			errors.Is(err, ballot.ErrUnknownCandidate):
			return errs.NewTrusted(err, http.StatusBadRequest)
		}

		return err
	}

	return web.Respond(ctx, w, toEntry(e), http.StatusCreated)
}

// Ledger returns every entry on the ledger along with its validity.
func (h Handlers) Ledger(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	entries := h.Ballot.Entries()

	info := ledgerInfo{
		Valid:   h.Ballot.Validate().Valid,
		Length:  len(entries),
		Entries: toEntries(entries),
	}

	return web.Respond(ctx, w, info, http.StatusOK)
}

// Entry returns the ledger entry for the specified sequence.
func (h Handlers) Entry(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	seq, err := strconv.ParseUint(web.Param(r, "sequence"), 10, 64)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	e, err := h.Ballot.Entry(seq)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return err
	}

	return web.Respond(ctx, w, toEntry(e), http.StatusOK)
}

// Validate recomputes the ledger and reports any failures.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Ballot.Validate(), http.StatusOK)
}

// Candidates returns the set of candidates on the ballot.
func (h Handlers) Candidates(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Ballot.Candidates(), http.StatusOK)
}

// Tally returns the number of votes per candidate.
func (h Handlers) Tally(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	counts := h.Ballot.Tally()

	var total int
	for _, c := range counts {
		total += c.Votes
	}

	t := tally{
		Valid:  h.Ballot.Validate().Valid,
		Total:  total,
		Counts: counts,
	}

	return web.Respond(ctx, w, t, http.StatusOK)
}

// Events handles a web socket to provide ledger events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
