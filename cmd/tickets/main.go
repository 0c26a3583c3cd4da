package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	authpkg "github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/observability"
	"github.com/spec-kit/ticket-tracker/internal/service"
	"github.com/spec-kit/ticket-tracker/internal/storage"
	"github.com/spec-kit/ticket-tracker/internal/worker"
	"github.com/spec-kit/ticket-tracker/pkg/util"
)

// Demo credentials seeded into every fresh registry unless disabled.
const (
	demoName     = "Demo User"
	demoEmail    = "demo@example.com"
	demoPassword = "password123"
)

// app wires config, logger, store, and services together, the role the
// server entrypoint plays in a hosted deployment.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   storage.Store
	auth    *service.AuthService
	tickets *service.TicketService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	registry := authpkg.NewRegistry(cfg.Auth.BcryptCost)
	if cfg.Auth.SeedDemoUser {
		if _, err := registry.Register(demoName, demoEmail, demoPassword); err != nil {
			logger.Warn("seed demo user", zap.Error(err))
		}
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger))

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Store:      store,
		Registry:   registry,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		Store:      store,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	if err := authService.RestoreSession(ctx); err != nil {
		logger.Warn("restore session", zap.Error(err))
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		auth:    authService,
		tickets: ticketService,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close storage", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// requireAuth gates ticket commands behind a signed-in session.
func (a *app) requireAuth() error {
	if !a.auth.State().IsAuthenticated {
		return errors.New("not logged in; run 'tickets login' first")
	}
	return nil
}

// renderError flattens a DomainError (including per-field validation
// details) into a printable message.
func renderError(err error) error {
	domainErr := util.ToDomainError(err)
	fieldErrs, ok := domainErr.Details["field_errors"].([]domain.ValidationError)
	if !ok {
		return domainErr
	}
	var b strings.Builder
	b.WriteString(domainErr.Message)
	for _, fieldErr := range fieldErrs {
		fmt.Fprintf(&b, "\n  %s: %s", fieldErr.Field, fieldErr.Message)
	}
	return errors.New(b.String())
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "tickets",
		Short:         "Local ticket tracker",
		Long:          `Create, list, filter, edit, and delete support tickets kept in a local store, behind a simulated sign-in.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newLoginCommand(),
		newSignupCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newCreateCommand(),
		newListCommand(),
		newUpdateCommand(),
		newDeleteCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
