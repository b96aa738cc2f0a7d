// Command httpd runs the grievance portal HTTP server.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/openseva/grievance/internal/api"
	"github.com/openseva/grievance/internal/auth"
	"github.com/openseva/grievance/internal/classifier"
	"github.com/openseva/grievance/internal/config"
	"github.com/openseva/grievance/internal/database"
	"github.com/openseva/grievance/internal/images"
	"github.com/openseva/grievance/internal/logger"
	"github.com/openseva/grievance/internal/logging"
	"github.com/openseva/grievance/internal/mailer"
	"github.com/openseva/grievance/internal/telemetry"
)

const defaultConfigPath = "config.yml"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetConfigPath(defaultConfigPath))
	if err != nil {
		logger.Must(logger.Config{}).Error("Failed to load configuration", logger.Error(err))
		return err
	}

	log := logger.Must(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	defer func() { _ = log.Sync() }()

	log.Info("Starting grievance service",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
	)

	ctx := context.Background()

	db, err := database.NewClient(ctx, cfg.Mongo)
	if err != nil {
		log.Error("Failed to connect to MongoDB", logger.Error(err))
		return err
	}
	defer db.Close(ctx)

	complaintsRepo := database.NewComplaintsRepository(db)
	usersRepo := database.NewUsersRepository(db)
	if err := complaintsRepo.EnsureIndexes(ctx); err != nil {
		log.Error("Failed to ensure complaint indexes", logger.Error(err))
		return err
	}
	if err := usersRepo.EnsureIndexes(ctx); err != nil {
		log.Error("Failed to ensure user indexes", logger.Error(err))
		return err
	}

	rules := classifier.DefaultRules()
	if !rules.Validate() {
		log.Error("Built-in classification rules failed validation")
		return errors.New("invalid classification rules")
	}
	engine := classifier.New(logging.NewAdapter(log), rules)

	metrics := telemetry.NewProvider()
	notifier := mailer.New(cfg.SMTP, log, metrics)
	if notifier.Enabled() {
		log.Info("Email notifications enabled", logger.String("smtp_host", cfg.SMTP.Host))
	} else {
		log.Info("Email notifications disabled")
	}

	imageStore, err := images.NewStore(cfg.Images)
	if err != nil {
		log.Error("Failed to initialize image storage", logger.Error(err))
		return err
	}

	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	handler := api.NewHandler(
		engine,
		complaintsRepo,
		usersRepo,
		imageStore,
		notifier,
		metrics,
		jwtMgr,
		cfg,
		logging.NewAdapter(log),
	)

	opts := api.ServerOptions{
		JWT:            jwtMgr,
		MetricsHandler: metrics.Handler(),
		UploadsDir:     imageStore.Dir(),
		DatabasePing:   db.Ping,
	}
	if notifier.Enabled() {
		opts.MailerPing = notifier.Ping
	}

	server := api.NewServer(handler, cfg, log, opts)

	if err := server.RunWithGracefulShutdown(ctx); err != nil {
		log.Error("Server exited with error", logger.Error(err))
		return err
	}

	log.Info("Grievance service stopped")
	return nil
}
