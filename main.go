package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/questbridge/server/cliparse"
	"github.com/questbridge/server/ledger"
	"github.com/questbridge/server/metrics"
	"github.com/questbridge/server/router"
	"github.com/questbridge/server/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	// Open storage and create schema (tables)
	st, err := openStore(cfg)
	if err != nil {
		slog.Error("storage setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("Storage ready", "type", cfg.DatabaseType)

	m := metrics.New()
	svc := ledger.NewService(st, m)

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(svc, m),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", server.Addr, "error", err)
		os.Exit(1)
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	if err := serve(&server, ln, ctrlc); err != nil {
		slog.Error("Server closed", "error", err)
		return
	}
	slog.Info("Server closed")
}

// serve runs server on ln until stop fires, then lets in-flight requests
// finish. It returns only after Shutdown completes; the store must stay open
// until then.
func serve(server *http.Server, ln net.Listener, stop <-chan os.Signal) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	err := server.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

func openStore(cfg cliparse.Config) (store.Store, error) {
	switch cfg.DatabaseType {
	case cliparse.TypeSQLite, cliparse.TypePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return store.OpenSQL(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	case cliparse.TypeFile:
		slog.Warn("file storage is not safe for more than one process", "dir", cfg.DataDir)
		return store.OpenFile(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}
}

func newLogger(cfg cliparse.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
