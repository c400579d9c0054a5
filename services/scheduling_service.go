package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/repositories"
	"github.com/Dosada05/futbol5/utils"
)

type DecisionAction string

const (
	ActionNone            DecisionAction = "none"
	ActionCreateAndInvite DecisionAction = "create_and_invite"
	ActionSendStatus      DecisionAction = "send_status"
)

// Decision is what the daily run concluded. Match and Players are nil for ActionNone.
type Decision struct {
	Action  DecisionAction  `json:"action"`
	Match   *models.Match   `json:"match,omitempty"`
	Players []models.Player `json:"-"`
}

// NotificationKind maps the action to the email every player receives.
func (d *Decision) NotificationKind() (models.NotificationKind, bool) {
	switch d.Action {
	case ActionCreateAndInvite:
		return models.NotificationInvite, true
	case ActionSendStatus:
		return models.NotificationStatus, true
	default:
		return "", false
	}
}

type SchedulingService interface {
	// Run decides what to do on the given day. It may create a match but never
	// sends anything itself.
	Run(ctx context.Context, today time.Time) (*Decision, error)
}

type schedulingService struct {
	schedules  ScheduleService
	matchRepo  repositories.MatchRepository
	playerRepo repositories.PlayerRepository
	logger     *slog.Logger
}

func NewSchedulingService(
	schedules ScheduleService,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	logger *slog.Logger,
) SchedulingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &schedulingService{
		schedules:  schedules,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		logger:     logger.With(slog.String("component", "scheduling")),
	}
}

func (s *schedulingService) Run(ctx context.Context, today time.Time) (*Decision, error) {
	log := s.logger.With(slog.Time("today", today))

	if utils.IsWeekend(today) {
		log.Info("weekend, nothing to do")
		return &Decision{Action: ActionNone}, nil
	}

	schedule, err := s.schedules.FindScheduleForInviteWeekday(ctx, today)
	switch {
	case err == nil:
		return s.runForSchedule(ctx, log, *schedule, today)
	case errors.Is(err, ErrScheduleNotFound):
		return s.statusForUpcoming(ctx, log, today)
	default:
		return nil, err
	}
}

func (s *schedulingService) runForSchedule(ctx context.Context, log *slog.Logger, schedule models.WeeklySchedule, today time.Time) (*Decision, error) {
	log = log.With(slog.Int("schedule_id", schedule.ID), slog.String("schedule", schedule.String()))

	existing, err := s.schedules.FindNextMatchForSchedule(ctx, schedule, today)
	if err == nil {
		log.Info("match already created, sending status", slog.Int("match_id", existing.ID))
		return s.sendStatus(ctx, existing)
	}
	if !errors.Is(err, ErrMatchNotFound) {
		return nil, err
	}

	at, err := s.schedules.FindNextMatchDatetime(schedule, today)
	if err != nil {
		return nil, err
	}

	match := &models.Match{Date: at, Place: schedule.Place}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		if !errors.Is(err, repositories.ErrDuplicateMatch) {
			return nil, fmt.Errorf("failed to create match at %s: %w", at.Format(time.RFC3339), err)
		}
		// someone else created it between the lookup and the insert
		existing, err := s.matchRepo.GetByDate(ctx, at)
		if err != nil {
			return nil, fmt.Errorf("failed to load concurrently created match at %s: %w", at.Format(time.RFC3339), err)
		}
		log.Warn("match created concurrently, sending status instead", slog.Int("match_id", existing.ID))
		return s.sendStatus(ctx, existing)
	}

	players, err := s.allPlayers(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("match created, inviting players",
		slog.Int("match_id", match.ID), slog.Time("date", match.Date), slog.Int("players", len(players)))
	return &Decision{Action: ActionCreateAndInvite, Match: match, Players: players}, nil
}

func (s *schedulingService) statusForUpcoming(ctx context.Context, log *slog.Logger, today time.Time) (*Decision, error) {
	next, err := s.matchRepo.NextAfter(ctx, today)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			log.Info("no invite due and no upcoming match")
			return &Decision{Action: ActionNone}, nil
		}
		return nil, fmt.Errorf("failed to find next match: %w", err)
	}
	log.Info("sending status for upcoming match", slog.Int("match_id", next.ID))
	return s.sendStatus(ctx, next)
}

func (s *schedulingService) sendStatus(ctx context.Context, match *models.Match) (*Decision, error) {
	players, err := s.allPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return &Decision{Action: ActionSendStatus, Match: match, Players: players}, nil
}

func (s *schedulingService) allPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}
