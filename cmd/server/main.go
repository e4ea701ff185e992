package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "messenger/internal/adapters/http"
	"messenger/internal/adapters/ws"
	"messenger/internal/app"
	"messenger/internal/auth"
	"messenger/internal/config"
	"messenger/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Secret == "" {
		// Tokens do not survive a restart without a configured secret.
		cfg.Secret = randomSecret()
		log.Warn().Msg("no secret configured, generated an ephemeral one")
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := store.Seed(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	users := store.NewUsers(db)
	messages := store.NewMessages(db)
	authSvc := auth.NewService(users, auth.NewTokenManager(cfg.Secret, cfg.TokenTTL))

	orch := app.NewOrchestrator(app.NewRoster(), authSvc, messages)
	wsCtl := ws.NewController(orch, cfg.SendBuffer, cfg.WriteTimeout)

	r := router.SetupRouter(cfg, authSvc, messages, wsCtl)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Messenger server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}

func randomSecret() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		log.Fatal().Err(err).Msg("failed to generate secret")
	}
	return hex.EncodeToString(b)
}
