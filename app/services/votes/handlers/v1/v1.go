// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/voteledger/app/services/votes/handlers/v1/tampergrp"
	"github.com/ardanlabs/voteledger/app/services/votes/handlers/v1/votegrp"
	"github.com/ardanlabs/voteledger/business/core/ballot"
	"github.com/ardanlabs/voteledger/foundation/events"
	"github.com/ardanlabs/voteledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log    *zap.SugaredLogger
	Ballot *ballot.Core
	Evts   *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	vgh := votegrp.Handlers{
		Log:    cfg.Log,
		Ballot: cfg.Ballot,
		WS:     websocket.Upgrader{},
		Evts:   cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", vgh.Events)
	app.Handle(http.MethodGet, version, "/candidates", vgh.Candidates)
	app.Handle(http.MethodGet, version, "/ledger", vgh.Ledger)
	app.Handle(http.MethodGet, version, "/ledger/entry/:sequence", vgh.Entry)
	app.Handle(http.MethodGet, version, "/ledger/validate", vgh.Validate)
	app.Handle(http.MethodGet, version, "/tally", vgh.Tally)
	app.Handle(http.MethodPost, version, "/votes", vgh.CastVote)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	tgh := tampergrp.Handlers{
		Log:    cfg.Log,
		Ballot: cfg.Ballot,
	}

	app.Handle(http.MethodPost, version, "/ledger/tamper", tgh.Tamper)
}
