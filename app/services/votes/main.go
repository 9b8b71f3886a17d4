package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/voteledger/app/services/votes/handlers"
	"github.com/ardanlabs/voteledger/business/core/ballot"
	"github.com/ardanlabs/voteledger/foundation/events"
	"github.com/ardanlabs/voteledger/foundation/ledger"
	"github.com/ardanlabs/voteledger/foundation/logger"
	"github.com/ardanlabs/voteledger/foundation/registry"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("VOTES")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			PublicHost      string        `conf:"default:0.0.0.0:8080"`
			PrivateHost     string        `conf:"default:127.0.0.1:9080"`
			CORSOrigins     []string      `conf:"default:*"`
		}
		Ballot struct {
			Candidates  []string `conf:"default:Arjun;Meera;Kabir;Ananya"`
			AllowTamper bool     `conf:"default:false"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "hash linked vote ledger",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "VOTES"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Ledger Support

	// Ledger events are logged and sent to any websocket client that is
	// connected into the system through the events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
		evts.Send(s)
	}

	// The ledger lives in memory for the life of the process. It is owned by
	// the ballot core which enforces the voting rules.
	lgr := ledger.New(ledger.Config{})
	genesis := lgr.Last()
	log.Infow("startup", "status", "ledger created", "genesis", genesis.Digest)

	core, err := ballot.New(ballot.Config{
		Ledger:     lgr,
		Registry:   registry.New(),
		Candidates: cfg.Ballot.Candidates,
		EvHandler:  ev,
	})
	if err != nil {
		return fmt.Errorf("constructing ballot: %w", err)
	}

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	// The Debug function returns a mux to listen and serve on for all the debug
	// related endpoints. This includes the standard library endpoints.

	// Construct the mux for the debug calls.
	debugMux := handlers.DebugMux(build, log, core)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 2)

	muxCfg := handlers.MuxConfig{
		Shutdown:    shutdown,
		Log:         log,
		Ballot:      core,
		Evts:        evts,
		CORSOrigins: cfg.Web.CORSOrigins,
	}

	// =========================================================================
	// Start Public Service

	log.Infow("startup", "status", "initializing V1 public API support")

	public := http.Server{
		Addr:         cfg.Web.PublicHost,
		Handler:      handlers.PublicMux(muxCfg),
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	go func() {
		log.Infow("startup", "status", "public api router started", "host", public.Addr)
		serverErrors <- public.ListenAndServe()
	}()

	// =========================================================================
	// Start Private Service

	// The private service exposes the routes that corrupt the ledger. It is
	// only started when explicitly allowed.
	var private *http.Server
	if cfg.Ballot.AllowTamper {
		log.Warnw("startup", "status", "initializing V1 private API support, ledger tampering enabled")

		private = &http.Server{
			Addr:         cfg.Web.PrivateHost,
			Handler:      handlers.PrivateMux(muxCfg),
			ReadTimeout:  cfg.Web.ReadTimeout,
			WriteTimeout: cfg.Web.WriteTimeout,
			IdleTimeout:  cfg.Web.IdleTimeout,
			ErrorLog:     zap.NewStdLog(log.Desugar()),
		}

		go func() {
			log.Infow("startup", "status", "private api router started", "host", private.Addr)
			serverErrors <- private.ListenAndServe()
		}()
	}

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if private != nil {
			log.Infow("shutdown", "status", "shutdown private API started")
			if err := private.Shutdown(ctx); err != nil {
				private.Close()
				return fmt.Errorf("could not stop private service gracefully: %w", err)
			}
		}

		// Asking listener to shut down and shed load.
		log.Infow("shutdown", "status", "shutdown public API started")
		if err := public.Shutdown(ctx); err != nil {
			public.Close()
			return fmt.Errorf("could not stop public service gracefully: %w", err)
		}

		report := core.Validate()
		log.Infow("shutdown", "status", "final ledger state", "valid", report.Valid, "length", report.Length, "lastHash", report.LastHash)
	}

	return nil
}
