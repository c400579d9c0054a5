package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Dosada05/futbol5/config"
	"github.com/Dosada05/futbol5/db"
	"github.com/Dosada05/futbol5/repositories"
)

type repositorySet struct {
	players      repositories.PlayerRepository
	matches      repositories.MatchRepository
	matchPlayers repositories.MatchPlayerRepository
	guests       repositories.GuestRepository
	schedules    repositories.ScheduleRepository
}

// openStore connects the configured backend. The returned closer releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositorySet, io.Closer, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverBolt:
		boltDB, err := repositories.OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("bolt database opened", slog.String("path", cfg.BoltPath))
		return &repositorySet{
			players:      repositories.NewBoltPlayerRepository(boltDB),
			matches:      repositories.NewBoltMatchRepository(boltDB),
			matchPlayers: repositories.NewBoltMatchPlayerRepository(boltDB),
			guests:       repositories.NewBoltGuestRepository(boltDB),
			schedules:    repositories.NewBoltScheduleRepository(boltDB),
		}, boltDB, nil

	case config.StorageDriverPostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx, dbConn); err != nil {
			dbConn.Close()
			return nil, nil, err
		}
		logger.Info("database connection established")
		return &repositorySet{
			players:      repositories.NewPostgresPlayerRepository(dbConn),
			matches:      repositories.NewPostgresMatchRepository(dbConn),
			matchPlayers: repositories.NewPostgresMatchPlayerRepository(dbConn),
			guests:       repositories.NewPostgresGuestRepository(dbConn),
			schedules:    repositories.NewPostgresScheduleRepository(dbConn),
		}, dbConn, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
