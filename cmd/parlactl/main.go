package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"parlaseramik/config"
	"parlaseramik/internal/domain/lifecycle"
	"parlaseramik/internal/infra/auth"
	"parlaseramik/internal/infra/cache"
	logs "parlaseramik/internal/infra/log"
	"parlaseramik/internal/infra/persistence/postgres"
	"parlaseramik/internal/usecase"
	"parlaseramik/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

// Supported commands:
// - migrate up:      apply every pending migration
// - migrate down:    roll back migrations (one by default)
// - migrate version: print the schema version
// - seed:            create the admin account and the sample catalog

func main() {
	app := &cli.App{
		Name:  "parlactl",
		Usage: "Parla Seramik operations",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Manage the database schema",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "Apply every pending migration",
						Action: migrateUp,
					},
					{
						Name:  "down",
						Usage: "Roll back migrations",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
							&cli.BoolFlag{Name: "all", Usage: "roll back every migration"},
						},
						Action: migrateDown,
					},
					{
						Name:   "version",
						Usage:  "Print the current schema version",
						Action: migrateVersion,
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Create the admin account and the sample catalog",
				Action: seed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// deps are the objects a command may need. Populated by fx.
type deps struct {
	fx.In

	Migrator *postgres.Migrator
	Seeder   usecase.SeedUsecase
	Logger   *slog.Logger
}

// withDeps builds the dependency graph, starts it (which pings the database),
// runs fn and stops the graph again.
func withDeps(ctx context.Context, fn func(ctx context.Context, d deps) error) error {
	var d deps
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
			postgres.NewMigrator,
			postgres.NewTransactionManager,
			auth.NewBcryptHasher,
			cache.NewLRUCache,
			impl.NewSeedService,
		),
		fx.Populate(&d),
	)
	if err := app.Err(); err != nil {
		return errors.Wrap(err, "failed to build dependencies")
	}

	startCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return errors.Wrap(err, "failed to start")
	}

	runErr := fn(ctx, d)

	if err := d.Migrator.Close(); err != nil {
		d.Logger.Warn("Failed to close migrator", slog.Any("error", err))
	}

	stopCtx, stopCancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return errors.Wrap(err, "failed to stop")
	}

	return runErr
}

func migrateUp(c *cli.Context) error {
	return withDeps(c.Context, func(_ context.Context, d deps) error {
		return d.Migrator.Up()
	})
}

func migrateDown(c *cli.Context) error {
	steps := c.Int("steps")
	if c.Bool("all") {
		steps = 0
	} else if steps <= 0 {
		return errors.New("--steps must be positive, use --all to roll back everything")
	}

	return withDeps(c.Context, func(_ context.Context, d deps) error {
		return d.Migrator.Down(steps)
	})
}

func migrateVersion(c *cli.Context) error {
	return withDeps(c.Context, func(_ context.Context, d deps) error {
		version, dirty, ok, err := d.Migrator.Version()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.App.Writer, "no migrations applied")

			return nil
		}

		fmt.Fprintf(c.App.Writer, "version %d (dirty: %t)\n", version, dirty)

		return nil
	})
}

func seed(c *cli.Context) error {
	return withDeps(c.Context, func(ctx context.Context, d deps) error {
		report, err := d.Seeder.Seed(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(c.App.Writer, "admin created: %t, categories created: %d, products created: %d\n",
			report.AdminCreated, report.CategoriesCreated, report.ProductsCreated)

		return nil
	})
}
