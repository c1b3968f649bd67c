package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/orangecloud/blogd/internal/auth"
	"github.com/orangecloud/blogd/internal/config"
	"github.com/orangecloud/blogd/internal/httpapi"
	"github.com/orangecloud/blogd/internal/store"
	"github.com/orangecloud/blogd/internal/views"
)

func main() {
	// Fast JSON logs by default; pretty if running in a TTY/dev
	if isatty() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
	}

	cfg := config.Load()

	var dsnFlag string
	flag.StringVar(&dsnFlag, "dsn", "", "SQLite DSN (overrides env DB_DSN)")
	flag.Parse()
	if dsnFlag != "" {
		cfg.DBDSN = dsnFlag
	}

	if cfg.JWTSecret == "" || cfg.AdminPassword == "" {
		log.Warn().Msg("ADMIN_JWT_SECRET or ADMIN_PASSWORD unset; admin surface is locked out")
	}

	db, err := sql.Open("sqlite3", cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open sqlite")
	}
	defer db.Close()

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Migrate schema
	if err := store.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}

	sqlStore := store.NewSQLite(db)
	codec := auth.NewCodec(cfg.JWTSecret, auth.TokenTTL)
	svc := views.NewService(sqlStore)

	// HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           httpapi.NewRouter(cfg, codec, svc, sqlStore),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("bye")
}

func isatty() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
