package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/Dosada05/futbol5/models"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentSends = 4

// NotificationService emails players about a match. Every method expects the
// match with its players loaded and returns how many messages were sent.
type NotificationService interface {
	DeliverDecision(ctx context.Context, decision *Decision) (int, error)
	NotifyJoin(ctx context.Context, match *models.Match, joining models.Player) (int, error)
	NotifyLeave(ctx context.Context, match *models.Match, leaving models.Player) (int, error)
	NotifyGuestAdded(ctx context.Context, match *models.Match, guest models.Guest, inviting models.Player) (int, error)
	NotifyGuestRemoved(ctx context.Context, match *models.Match, guest models.Guest, inviting models.Player) (int, error)
}

type notificationService struct {
	mailer  Mailer
	builder *MessageBuilder
	logger  *slog.Logger
}

func NewNotificationService(mailer Mailer, builder *MessageBuilder, logger *slog.Logger) NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationService{
		mailer:  mailer,
		builder: builder,
		logger:  logger.With(slog.String("component", "notifications")),
	}
}

func (s *notificationService) DeliverDecision(ctx context.Context, decision *Decision) (int, error) {
	kind, ok := decision.NotificationKind()
	if !ok {
		return 0, nil
	}
	notifications := make([]models.Notification, 0, len(decision.Players))
	for _, p := range decision.Players {
		notifications = append(notifications, models.Notification{Kind: kind, Match: decision.Match, Recipient: p})
	}
	return s.deliver(ctx, notifications)
}

func (s *notificationService) NotifyJoin(ctx context.Context, match *models.Match, joining models.Player) (int, error) {
	return s.notifyPlayers(ctx, models.NotificationJoin, match, &joining, nil, joining.ID)
}

func (s *notificationService) NotifyLeave(ctx context.Context, match *models.Match, leaving models.Player) (int, error) {
	return s.notifyPlayers(ctx, models.NotificationLeave, match, &leaving, nil, leaving.ID)
}

func (s *notificationService) NotifyGuestAdded(ctx context.Context, match *models.Match, guest models.Guest, inviting models.Player) (int, error) {
	return s.notifyPlayers(ctx, models.NotificationGuestAdded, match, &inviting, &guest, inviting.ID)
}

func (s *notificationService) NotifyGuestRemoved(ctx context.Context, match *models.Match, guest models.Guest, inviting models.Player) (int, error) {
	return s.notifyPlayers(ctx, models.NotificationGuestRemoved, match, &inviting, &guest, inviting.ID)
}

// notifyPlayers mails every player signed up for match except excludedID.
func (s *notificationService) notifyPlayers(ctx context.Context, kind models.NotificationKind, match *models.Match, actor *models.Player, guest *models.Guest, excludedID int) (int, error) {
	recipients := playersExcept(match.Players, excludedID)
	notifications := make([]models.Notification, 0, len(recipients))
	for _, p := range recipients {
		notifications = append(notifications, models.Notification{Kind: kind, Match: match, Recipient: p, Actor: actor, Guest: guest})
	}
	return s.deliver(ctx, notifications)
}

// deliver sends every notification even when some fail; the first failure is returned.
func (s *notificationService) deliver(ctx context.Context, notifications []models.Notification) (int, error) {
	var (
		g    errgroup.Group
		sent atomic.Int32
	)
	g.SetLimit(maxConcurrentSends)

	for _, n := range notifications {
		n := n
		g.Go(func() error {
			msg, err := s.builder.Build(n)
			if err != nil {
				return err
			}
			if err := s.mailer.Send(ctx, msg); err != nil {
				s.logger.Error("failed to send email",
					slog.String("kind", string(n.Kind)),
					slog.Int("match_id", n.Match.ID),
					slog.Int("player_id", n.Recipient.ID),
					slog.Any("error", err))
				return fmt.Errorf("failed to email %s: %w", n.Recipient.Email, err)
			}
			sent.Add(1)
			return nil
		})
	}
	err := g.Wait()

	if len(notifications) > 0 {
		s.logger.Info("emails sent",
			slog.String("kind", string(notifications[0].Kind)),
			slog.Int("match_id", notifications[0].Match.ID),
			slog.Int("sent", int(sent.Load())),
			slog.Int("total", len(notifications)))
	}
	return int(sent.Load()), err
}
