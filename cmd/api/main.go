// @title Community Hub API
// @version 1.0
// @description Events, speakers and talk proposals of the community site.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	"communityhub/config"
	"communityhub/internal/adapters/auth"
	"communityhub/internal/adapters/email"
	"communityhub/internal/adapters/notify"
	"communityhub/internal/datasource"
	delivery "communityhub/internal/delivery/http"
	"communityhub/internal/delivery/http/controllers"
	"communityhub/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)
	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	notifications := services.NewNotificationService(emailService, cfg.Notify.Recipient, cfg.Notify.ReviewURL)
	notifier, err := notify.NewNotifier(notify.Config{
		Provider:     cfg.Notify.Provider,
		WebhookURL:   cfg.Notify.WebhookURL,
		WebhookToken: cfg.Notify.WebhookToken,
	}, notifications, logger)
	if err != nil {
		return err
	}

	factory, err := datasource.NewFactory(datasource.Config{
		Environment:       cfg.Environment,
		DataSource:        cfg.DataSource,
		AuthSource:        cfg.AuthSource,
		DatabaseURL:       cfg.DBUrl,
		LocalStorePath:    cfg.LocalStorePath,
		SimulatedLatency:  cfg.SimulatedLatency,
		ProviderJWTSecret: cfg.ProviderJWTSecret,
	}, notifier, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := factory.Close(); err != nil {
			logger.Error("failed to close data sources", "err", err)
		}
	}()
	repos, err := factory.Repositories()
	if err != nil {
		return err
	}

	authService := services.NewAuthService(repos.Auth, auth.NewJWTVerifier(cfg.ProviderJWTSecret), auth.NewJWTIssuer(cfg.JWTSecret), auth.NewJWTVerifier(cfg.JWTSecret), cfg.JWTExpiry, logger)
	eventService := services.NewEventService(repos.Events, cfg.RequestTimeout)
	speakerService := services.NewSpeakerService(repos.Speakers, cfg.RequestTimeout)
	proposalService := services.NewProposalService(repos.Proposals, repos.Events, repos.Speakers, logger, cfg.RequestTimeout)

	router := delivery.NewRouter(delivery.Controllers{
		Events:        controllers.NewEventController(logger, eventService),
		Speakers:      controllers.NewSpeakerController(logger, speakerService),
		Proposals:     controllers.NewProposalController(logger, proposalService),
		Auth:          controllers.NewAuthController(logger, authService),
		Notifications: controllers.NewNotificationController(logger, notifications, cfg.Notify.WebhookToken),
	}, authService, logger, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment, "data_source", cfg.DataSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
