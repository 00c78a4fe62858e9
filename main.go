// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/onomate/agents"
	"github.com/danielhkuo/onomate/cliparse"
	"github.com/danielhkuo/onomate/db"
	"github.com/danielhkuo/onomate/facilitator"
	"github.com/danielhkuo/onomate/middleware"
	"github.com/danielhkuo/onomate/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		slog.Error("unsupported database", "error", err)
		os.Exit(1)
	}

	dbConn, err := sql.Open(dialect.DriverName(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// SQLite allows a single writer
	if dialect == db.DialectSQLite {
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", dialect)

	store := db.NewStore(dbConn, dialect)

	// Both collaborators share one client
	llm := agents.NewLLMClient(cfg.LLMEndpoint, cfg.LLMModel, cfg.LLMAPIKey)
	if cfg.LLMEndpoint == "" {
		slog.Warn("no LLM endpoint configured; name generation and alignment summaries will be unavailable")
	}

	fac := facilitator.New(llm, llm,
		facilitator.WithRandomizer(facilitator.NewRandomizer(cfg.TieBreakSeed)),
		facilitator.WithSuggestionCount(cfg.SuggestionCount),
		facilitator.WithLogger(slog.Default()),
	)

	// Create router
	mux := router.NewRouter(store, fac, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
