// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mythenpark/parkvote/cliparse"
	"github.com/mythenpark/parkvote/events"
	"github.com/mythenpark/parkvote/ledger"
	"github.com/mythenpark/parkvote/middleware"
	"github.com/mythenpark/parkvote/router"
	"github.com/mythenpark/parkvote/store"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the storage backend chosen by configuration. The handle is
	// process-wide: opened once, reused by every request.
	openCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.Open(openCtx, cfg)
	cancel()
	if err != nil {
		slog.Error("storage backend open failed", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("Storage backend ready", "store", cfg.StoreType)

	// Event catalog for denormalized titles
	dir, err := events.Load(cfg.EventsFile)
	if err != nil {
		slog.Error("event catalog load failed", "error", err)
		os.Exit(1)
	}

	svc := ledger.New(st, dir, cfg.StoreTimeout)

	mux := router.NewRouter(svc, dir, cfg)

	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
