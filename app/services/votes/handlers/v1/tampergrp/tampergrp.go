// Package tampergrp maintains the group of handlers used to simulate
// corruption of the ledger. These routes are only bound when the service
// is configured to allow tampering.
package tampergrp

import (
	"context"
	"errors"
	"net/http"

	"github.com/ardanlabs/voteledger/business/core/ballot"
	"github.com/ardanlabs/voteledger/business/web/errs"
	"github.com/ardanlabs/voteledger/foundation/ledger"
	"github.com/ardanlabs/voteledger/foundation/validate"
	"github.com/ardanlabs/voteledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of tamper endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	Ballot *ballot.Core
}

type tamper struct {
	Sequence *uint64 `json:"sequence" validate:"required"`
	Field    string  `json:"field" validate:"required,oneof=timestamp subject_id payload prev_digest digest"`
	Value    string  `json:"value"`
}

type tamperResult struct {
	Entry  ledger.Entry  `json:"entry"`
	Report ballot.Report `json:"report"`
}

// Tamper overwrites a field of a recorded entry without resealing it.
func (h Handlers) Tamper(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tr tamper
	if err := web.Decode(r, &tr); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Warnw("tamper", "traceid", v.TraceID, "sequence", *tr.Sequence, "field", tr.Field, "value", tr.Value)

	e, err := h.Ballot.Tamper(ballot.Tamper{
		Sequence: *tr.Sequence,
		Field:    tr.Field,
		Value:    tr.Value,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			return errs.NewTrusted(err, http.StatusNotFound)
		case errors.Is(err, ballot.ErrUnknownField):
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	res := tamperResult{
		Entry:  e,
		Report: h.Ballot.Validate(),
	}

	return web.Respond(ctx, w, res, http.StatusOK)
}
