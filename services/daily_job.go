package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/futbol5/hub"
	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/utils"
)

// DailyJob runs the scheduling decision and delivers its emails.
type DailyJob struct {
	engine      SchedulingService
	matches     MatchService
	notifier    NotificationService
	broadcaster Broadcaster
	logger      *slog.Logger
}

func NewDailyJob(engine SchedulingService, matches MatchService, notifier NotificationService, broadcaster Broadcaster, logger *slog.Logger) *DailyJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &DailyJob{
		engine:      engine,
		matches:     matches,
		notifier:    notifier,
		broadcaster: broadcaster,
		logger:      logger.With(slog.String("component", "daily_job")),
	}
}

// Run decides for today and emails every player. Delivery failures are
// logged; the decision is returned regardless.
func (j *DailyJob) Run(ctx context.Context, today time.Time) (*Decision, error) {
	decision, err := j.engine.Run(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("scheduling run failed: %w", err)
	}
	if decision.Match == nil {
		return decision, nil
	}

	// status mails need the current roster
	match, err := j.matches.GetMatch(ctx, decision.Match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match %d: %w", decision.Match.ID, err)
	}
	decision.Match = match

	sent, err := j.notifier.DeliverDecision(ctx, decision)
	if err != nil {
		j.logger.Error("some daily emails failed", slog.Int("match_id", match.ID), slog.Any("error", err))
	}
	j.logger.Info("daily run finished",
		slog.String("action", string(decision.Action)),
		slog.Int("match_id", match.ID),
		slog.Int("emails_sent", sent))

	if decision.Action == ActionCreateAndInvite && j.broadcaster != nil {
		j.broadcaster.BroadcastToRoom(hub.LobbyRoom, hub.Message{
			Type:    hub.EventMatchCreated,
			Payload: map[string]interface{}{"match": match},
			RoomID:  hub.LobbyRoom,
		})
	}
	return decision, nil
}

// Start runs the job every day at the given local time until ctx is done.
func (j *DailyJob) Start(ctx context.Context, at models.TimeOfDay, loc *time.Location) {
	j.logger.Info("daily job started", slog.String("at", at.String()), slog.String("time_zone", loc.String()))
	for {
		next := nextDailyRun(time.Now(), at, loc)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			j.logger.Info("daily job stopped")
			return
		case <-timer.C:
			if _, err := j.Run(ctx, time.Now().In(loc)); err != nil {
				j.logger.Error("daily run failed", slog.Any("error", err))
			}
		}
	}
}

// nextDailyRun is the first instant strictly after now at the given wall time in loc.
func nextDailyRun(now time.Time, at models.TimeOfDay, loc *time.Location) time.Time {
	local := now.In(loc)
	next := utils.SetTime(local, at)
	if !next.After(now) {
		next = utils.SetTime(local.AddDate(0, 0, 1), at)
	}
	return next
}
