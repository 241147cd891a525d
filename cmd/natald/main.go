// Command natald serves natal charts and comparisons over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/api"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/config"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/engine"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/ephemeris"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/persistence"
)

func main() {
	// ── Config ────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	port := pflag.IntP("port", "p", cfg.Port, "HTTP port (overrides NATAL_PORT)")
	dbPath := pflag.String("db", cfg.DBPath, "SQLite profile database (overrides NATAL_DB_PATH)")
	rulesPath := pflag.String("rules", cfg.RulesPath, "YAML rules file (overrides NATAL_RULES)")
	noDB := pflag.Bool("no-db", false, "Run without profile storage")
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	rules, err := config.LoadRules(*rulesPath)
	if err != nil {
		slog.Error("failed to load rules", "error", err)
		os.Exit(1)
	}
	if *rulesPath != "" {
		slog.Info("rules loaded", "path", *rulesPath, "aspects", len(rules.Aspects))
	}

	// ── Ephemeris ─────────────────────────────────────────────────────
	provider, err := ephemeris.Select(cfg.EphemerisURL, cfg.CacheSize)
	if err != nil {
		slog.Error("failed to build ephemeris", "error", err)
		os.Exit(1)
	}
	if cfg.EphemerisURL != "" {
		slog.Info("remote ephemeris", "url", cfg.EphemerisURL, "cache", cfg.CacheSize)
	} else {
		slog.Info("built-in orbital ephemeris", "cache", cfg.CacheSize)
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.New(provider,
		engine.WithAspects(rules.Aspects),
		engine.WithCompat(rules.Compat),
		engine.WithSolver(rules.Solver),
		engine.WithLogger(logger),
	)
	if err := eng.Validate(); err != nil {
		slog.Error("invalid rule tables", "error", err)
		os.Exit(1)
	}
	slog.Info("engine ready", "rules_version", eng.RulesVersion())

	// ── Database ──────────────────────────────────────────────────────
	var db *persistence.DB
	if !*noDB {
		if dir := filepath.Dir(*dbPath); dir != "" {
			os.MkdirAll(dir, 0755)
		}
		db, err = persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if last, err := db.GetMeta("last_start"); err == nil {
			slog.Info("database opened", "path", *dbPath, "last_start", last)
		} else {
			slog.Info("database opened", "path", *dbPath)
		}
		if err := db.SaveMeta("last_start", time.Now().UTC().Format(time.RFC3339)); err != nil {
			slog.Warn("failed to record start", "error", err)
		}
		if err := db.SaveMeta("rules_version", eng.RulesVersion()); err != nil {
			slog.Warn("failed to record rules version", "error", err)
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.AdminKey == "" {
		slog.Warn("NATAL_ADMIN_KEY not set, profile writes will be disabled")
	}
	server := &api.Server{
		Engine:      eng,
		DB:          db,
		Port:        *port,
		AdminKey:    cfg.AdminKey,
		CORSOrigins: cfg.CORSOrigins,
	}
	server.Start()
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", *port)

	// ── Shutdown ──────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	if c, ok := provider.(*ephemeris.Cached); ok {
		st := c.Stats()
		slog.Info("ephemeris cache", "hits", st.Hits, "misses", st.Misses, "entries", st.Entries)
	}
}
