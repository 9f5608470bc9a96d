package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atolyedev/atolye/internal/api"
	"github.com/atolyedev/atolye/internal/auth"
	"github.com/atolyedev/atolye/internal/config"
	"github.com/atolyedev/atolye/internal/course"
	"github.com/atolyedev/atolye/internal/crypto"
	"github.com/atolyedev/atolye/internal/mailer"
	"github.com/atolyedev/atolye/internal/material"
	"github.com/atolyedev/atolye/internal/message"
	"github.com/atolyedev/atolye/internal/metrics"
	"github.com/atolyedev/atolye/internal/ratelimit"
	"github.com/atolyedev/atolye/internal/team"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Atolye platform server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required (set ATOLYE_JWT_SECRET)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	slog.Info("connected to database")

	cipher, err := crypto.NewCipher(cfg.Storage.EncryptionKey)
	if err != nil {
		return err
	}
	if cipher == nil {
		slog.Warn("material encryption disabled, no encryption key configured")
	}

	teamStore := team.NewStore(pool)
	materialStore := material.NewStore(pool, cipher)
	messageStore := message.NewStore(pool)
	courseStore := course.NewStore(pool)

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	limiter := ratelimit.New(cfg.RateLimit.Default, cfg.RateLimit.Window)

	m := metrics.New()
	m.RegisterDBPoolCollector(func() (total, idle, acquired int32) {
		s := pool.Stat()
		return s.TotalConns(), s.IdleConns(), s.AcquiredConns()
	})

	router := api.NewRouter(api.RouterDeps{
		Teams:           teamStore,
		Materials:       materialStore,
		Messages:        messageStore,
		Courses:         courseStore,
		Issuer:          issuer,
		Limiter:         limiter,
		Metrics:         m,
		Notifier:        mailer.LogNotifier{},
		MaxMaterialSize: cfg.Storage.MaxMaterialSize,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		DB:              pool,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCh
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}
