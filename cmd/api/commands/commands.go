package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/housekeep/core/internal/adapters/catalog"
	"github.com/housekeep/core/internal/adapters/terminal"
	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/cache"
	"github.com/housekeep/core/internal/infrastructure/config"
	"github.com/housekeep/core/internal/infrastructure/database"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/infrastructure/server"
	"github.com/housekeep/core/internal/ports"
)

const (
	version   = "1.0.0"
	buildDate = "development"
)

// app holds what every command needs once configuration is loaded
type app struct {
	cfg    *config.Config
	logger *logger.Logger
	db     *database.DB
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		appLogger.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &app{cfg: cfg, logger: appLogger, db: db}, nil
}

func (a *app) close() {
	a.db.Close()
	a.logger.Close()
}

// services wires the application layer, connecting to Redis when enabled
func (a *app) services(ctx context.Context) (*server.Services, func(), error) {
	redisClient, err := cache.Connect(ctx, a.cfg.Redis, a.logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if redisClient != nil {
			redisClient.Close()
		}
	}

	svc, err := server.NewServices(a.cfg, a.db, redisClient, nil, a.logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Housekeep API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Apply pending migrations before serving")
	return cmd
}

func runServer(ctx context.Context, autoMigrate bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if autoMigrate {
		if _, err := a.db.MigrateUp(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.Connect(ctx, a.cfg.Redis, a.logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	srv, err := server.New(a.cfg, a.db, redisClient, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infow("Starting Housekeep API server",
			"port", a.cfg.Server.Port,
			"environment", a.cfg.App.Environment,
			"database", a.db.Driver(),
		)
		errCh <- srv.Start(fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port))
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, (*database.DB).MigrateUp, "up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, (*database.DB).MigrateDown, "down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			v, dirty, err := a.db.MigrationVersion()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\nDirty: %t\n", v, dirty)
			return nil
		},
	})

	return migrateCmd
}

func runMigration(cmd *cobra.Command, run func(*database.DB) (bool, error), direction string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	changed, err := run(a.db)
	if err != nil {
		return err
	}

	if changed {
		fmt.Fprintf(cmd.OutOrStdout(), "Migration %s completed successfully\n", direction)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations to run")
	}
	return nil
}

// NewCatalogCommand loads space types and templates from a YAML file
func NewCatalogCommand() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the space type and task template catalog",
	}

	var file string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Upsert space types and templates from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := catalog.LoadFile(file)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			svc, cleanup, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Catalog.Import(cmd.Context(), in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d space types and %d templates\n", len(in.SpaceTypes), len(in.Templates))
			return nil
		},
	}
	importCmd.Flags().StringVar(&file, "file", "", "Catalog YAML file (required)")
	importCmd.MarkFlagRequired("file")

	catalogCmd.AddCommand(importCmd)
	return catalogCmd
}

// NewDashboardCommand prints a user's dashboard to the terminal
func NewDashboardCommand() *cobra.Command {
	var (
		userID    string
		section   string
		daysAhead int
		page      int
		limit     int
		sort      string
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print overdue, today's and upcoming tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			user, err := resolveUser(userID, a.cfg)
			if err != nil {
				return err
			}
			if daysAhead == 0 {
				daysAhead = a.cfg.Dashboard.DefaultDaysAhead
			}

			svc, cleanup, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if section == "" {
				overview, err := svc.Dashboard.GetOverview(cmd.Context(), user, daysAhead, limit)
				if err != nil {
					return err
				}
				return terminal.RenderOverview(cmd.OutOrStdout(), overview)
			}

			s := entities.DashboardSection(section)
			if !s.IsValid() {
				return fmt.Errorf("unknown section %q", section)
			}
			result, err := svc.Dashboard.GetSection(cmd.Context(), user, ports.DashboardQuery{
				Section:   s,
				DaysAhead: daysAhead,
				Page:      page,
				Limit:     limit,
				Sort:      sort,
			})
			if err != nil {
				return err
			}
			return terminal.RenderSection(cmd.OutOrStdout(), s, result, svc.Dashboard.Now())
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID (defaults to DEFAULT_USER_ID)")
	cmd.Flags().StringVar(&section, "section", "", "overdue, today, upcoming or all; empty prints the overview")
	cmd.Flags().IntVar(&daysAhead, "days-ahead", 0, "Horizon of upcoming and all in days")
	cmd.Flags().IntVar(&page, "page", 1, "Page")
	cmd.Flags().IntVar(&limit, "limit", 20, "Tasks per section")
	cmd.Flags().StringVar(&sort, "sort", "due_date.asc", "Sort field and order")
	return cmd
}

// NewTokenCommand issues a bearer token for a user
func NewTokenCommand() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			user := uuid.New()
			if userID != "" || a.cfg.Auth.DevUserID != "" {
				if user, err = resolveUser(userID, a.cfg); err != nil {
					return err
				}
			}

			svc, err := server.NewServices(a.cfg, a.db, nil, nil, a.logger)
			if err != nil {
				return err
			}
			token, err := svc.Auth.IssueToken(user, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID; a new one is generated when empty")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to JWT_EXPIRES_IN)")
	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Housekeep version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Housekeep Core v%s\nBuild Date: %s\n", version, buildDate)
		},
	}
}

// resolveUser parses id, falling back to the configured dev user
func resolveUser(id string, cfg *config.Config) (uuid.UUID, error) {
	if id == "" {
		id = cfg.Auth.DevUserID
	}
	if id == "" {
		return uuid.Nil, errors.New("no user given: pass --user or set DEFAULT_USER_ID")
	}

	user, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	return user, nil
}
