package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context, now time.Time) (models.DashboardStats, error)
}

type dashboardService struct {
	matchRepo     repositories.MatchRepository
	playerRepo    repositories.PlayerRepository
	matchService  MatchService
	playerService PlayerService
}

func NewDashboardService(
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	matchService MatchService,
	playerService PlayerService,
) DashboardService {
	return &dashboardService{
		matchRepo:     matchRepo,
		playerRepo:    playerRepo,
		matchService:  matchService,
		playerService: playerService,
	}
}

// GetStats collects what the index page shows. TopPlayer and NextMatch are
// nil when there is none.
func (s *dashboardService) GetStats(ctx context.Context, now time.Time) (models.DashboardStats, error) {
	var stats models.DashboardStats
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.matchRepo.Count(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count matches: %w", err)
		}
		stats.MatchCount = n
		return nil
	})
	g.Go(func() error {
		n, err := s.playerRepo.Count(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count players: %w", err)
		}
		stats.PlayerCount = n
		return nil
	})
	g.Go(func() error {
		top, err := s.playerService.TopPlayer(gCtx)
		if err != nil {
			if errors.Is(err, ErrPlayerNotFound) {
				return nil
			}
			return err
		}
		stats.TopPlayer = top
		return nil
	})
	g.Go(func() error {
		next, err := s.matchService.NextMatch(gCtx, now)
		if err != nil {
			if errors.Is(err, ErrMatchNotFound) {
				return nil
			}
			return err
		}
		stats.NextMatch = next
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
