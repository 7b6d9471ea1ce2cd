package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"umabank.org/internal/audit"
	"umabank.org/internal/cli"
	"umabank.org/internal/config"
	"umabank.org/internal/ledger"
	"umabank.org/internal/obs"
	storefile "umabank.org/internal/store/file"
)

var (
	version = "1.2.0"
	commit  = "dev"
)

func main() {
	cfg := config.Load()

	obs.Init()
	obs.InitBuildInfo(version, commit)

	store := &storefile.Store{Path: cfg.DataFile, Delim: cfg.Delimiter}
	bank := ledger.NewBank(cfg.StartNumber, store)

	accounts, err := store.Load()
	if err != nil {
		// Start with an empty book rather than refusing to run.
		log.Printf("load %s: %v", cfg.DataFile, err)
	}
	bank.Restore(accounts)

	// Optional Prometheus endpoint.
	var srv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", obs.Handler())
		srv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 15 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("metrics listen: %v", err)
			}
		}()
	}

	ctx := audit.WithSessionID(context.Background(), uuid.NewString())

	// SIGINT/SIGTERM: the book is already saved after every mutation,
	// so a final save and a clean exit is all that is left to do.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		if err := bank.Save(); err != nil {
			log.Printf("save %s: %v", cfg.DataFile, err)
		}
		os.Exit(0)
	}()

	shell := cli.New(bank, cfg.Currency, os.Stdin, os.Stdout)
	if err := shell.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("shell: %v", err)
	}

	// Final save; mutating operations already saved as they went.
	if err := bank.Save(); err != nil {
		log.Printf("save %s: %v", cfg.DataFile, err)
	}

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		shutdownCancel()
	}
}
