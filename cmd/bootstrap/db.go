package bootstrap

import (
	"context"

	"petcare-hub/internal/infra/db"
	"petcare-hub/internal/infra/migrate"
	"petcare-hub/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
	fx.Invoke(RunMigrations),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

// RunMigrations brings the schema up before any handler takes traffic.
func RunMigrations(cfg config.Config, _ *pgxpool.Pool) error {
	return migrate.Up(cfg.DB.BuildDSN())
}
