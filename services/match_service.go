package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/futbol5/hub"
	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/repositories"
	"github.com/Dosada05/futbol5/storage"
)

// Broadcaster pushes realtime events to websocket rooms.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type MatchService interface {
	CreateMatch(ctx context.Context, input MatchInput) (*models.Match, error)
	GetMatch(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
	NextMatch(ctx context.Context, now time.Time) (*models.Match, error)
	UpdateMatch(ctx context.Context, id int, input MatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error

	// JoinMatch signs the player up and emails the other players. Joining twice is a no-op.
	JoinMatch(ctx context.Context, matchID, playerID int, now time.Time) (*models.Match, error)
	// LeaveMatch removes the sign-up and emails the remaining players. Leaving
	// a match the player never joined is a no-op.
	LeaveMatch(ctx context.Context, matchID, playerID int, now time.Time) (*models.Match, error)

	ListGuests(ctx context.Context, matchID int) ([]models.Guest, error)
	AddGuest(ctx context.Context, matchID int, input GuestInput, now time.Time) (*models.Guest, error)
	RemoveGuest(ctx context.Context, guestID int, now time.Time) (*models.Guest, error)
}

type MatchInput struct {
	Date  time.Time `json:"date" validate:"required"`
	Place string    `json:"place" validate:"required,max=50"`
}

type GuestInput struct {
	InvitingPlayerID int    `json:"inviting_player_id" validate:"required,gt=0"`
	Name             string `json:"name" validate:"required,max=50"`
}

type matchService struct {
	matchRepo       repositories.MatchRepository
	matchPlayerRepo repositories.MatchPlayerRepository
	guestRepo       repositories.GuestRepository
	playerRepo      repositories.PlayerRepository
	notifier        NotificationService
	broadcaster     Broadcaster
	uploader        storage.FileUploader
	logger          *slog.Logger
}

// NewMatchService wires the match operations. broadcaster and uploader may be nil.
func NewMatchService(
	matchRepo repositories.MatchRepository,
	matchPlayerRepo repositories.MatchPlayerRepository,
	guestRepo repositories.GuestRepository,
	playerRepo repositories.PlayerRepository,
	notifier NotificationService,
	broadcaster Broadcaster,
	uploader storage.FileUploader,
	logger *slog.Logger,
) MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &matchService{
		matchRepo:       matchRepo,
		matchPlayerRepo: matchPlayerRepo,
		guestRepo:       guestRepo,
		playerRepo:      playerRepo,
		notifier:        notifier,
		broadcaster:     broadcaster,
		uploader:        uploader,
		logger:          logger.With(slog.String("component", "matches")),
	}
}

func mapMatchRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrDuplicateMatch):
		return ErrMatchDateConflict
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrGuestNotFound):
		return ErrGuestNotFound
	case errors.Is(err, repositories.ErrGuestConflict):
		return ErrGuestConflict
	case errors.Is(err, repositories.ErrMatchOrPlayerNotFound):
		return ErrMatchNotFound
	default:
		return err
	}
}

func (in MatchInput) toModel() (*models.Match, error) {
	in.Place = strings.TrimSpace(in.Place)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return &models.Match{Date: in.Date, Place: in.Place}, nil
}

func (s *matchService) CreateMatch(ctx context.Context, input MatchInput) (*models.Match, error) {
	match, err := input.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, mapMatchRepoError(err)
	}
	match.Players = []models.Player{}
	match.Guests = []models.Guest{}
	s.broadcast(hub.LobbyRoom, hub.EventMatchCreated, map[string]interface{}{"match": match})
	return match, nil
}

func (s *matchService) GetMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	if err := s.loadRoster(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// loadRoster fills the match players and guests and refreshes the count.
func (s *matchService) loadRoster(ctx context.Context, match *models.Match) error {
	players, err := s.matchPlayerRepo.ListPlayers(ctx, match.ID)
	if err != nil {
		return fmt.Errorf("failed to list players of match %d: %w", match.ID, err)
	}
	guests, err := s.guestRepo.ListByMatch(ctx, match.ID)
	if err != nil {
		return fmt.Errorf("failed to list guests of match %d: %w", match.ID, err)
	}
	populatePlayerListAvatarURLsFunc(players, s.uploader)
	for i := range guests {
		populatePlayerAvatarURLFunc(guests[i].InvitingPlayer, s.uploader)
	}
	if players == nil {
		players = []models.Player{}
	}
	if guests == nil {
		guests = []models.Guest{}
	}
	match.Players = players
	match.Guests = guests
	match.CountPlayers()
	return nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	if matches == nil {
		return []models.Match{}, nil
	}
	return matches, nil
}

func (s *matchService) NextMatch(ctx context.Context, now time.Time) (*models.Match, error) {
	match, err := s.matchRepo.NextAfter(ctx, now)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	if err := s.loadRoster(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, id int, input MatchInput) (*models.Match, error) {
	match, err := input.toModel()
	if err != nil {
		return nil, err
	}
	match.ID = id
	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, mapMatchRepoError(err)
	}
	return s.GetMatch(ctx, id)
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		return mapMatchRepoError(err)
	}
	return nil
}

// openMatch loads the match and rejects it when already played.
func (s *matchService) openMatch(ctx context.Context, matchID int, now time.Time) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	if match.IsPlayed(now) {
		return nil, ErrMatchAlreadyPlayed
	}
	return match, nil
}

func (s *matchService) getPlayer(ctx context.Context, playerID int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", playerID, err)
	}
	populatePlayerAvatarURLFunc(player, s.uploader)
	return player, nil
}

func (s *matchService) JoinMatch(ctx context.Context, matchID, playerID int, now time.Time) (*models.Match, error) {
	match, err := s.openMatch(ctx, matchID, now)
	if err != nil {
		return nil, err
	}
	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	joined := true
	if _, err := s.matchPlayerRepo.Add(ctx, matchID, playerID); err != nil {
		if !errors.Is(err, repositories.ErrAlreadyJoined) {
			return nil, mapMatchRepoError(err)
		}
		joined = false
	}

	if err := s.loadRoster(ctx, match); err != nil {
		return nil, err
	}
	if !joined {
		return match, nil
	}

	sent, err := s.notifier.NotifyJoin(ctx, match, *player)
	if err != nil {
		s.logger.Error("join emails failed", slog.Int("match_id", matchID), slog.Any("error", err))
	}
	s.logger.Info("player joined match",
		slog.Int("match_id", matchID), slog.Int("player_id", playerID), slog.Int("emails_sent", sent))
	s.broadcast(hub.MatchRoom(matchID), hub.EventPlayerJoined, rosterPayload(match, player, nil))
	return match, nil
}

func (s *matchService) LeaveMatch(ctx context.Context, matchID, playerID int, now time.Time) (*models.Match, error) {
	match, err := s.openMatch(ctx, matchID, now)
	if err != nil {
		return nil, err
	}
	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	left := true
	if err := s.matchPlayerRepo.Remove(ctx, matchID, playerID); err != nil {
		if !errors.Is(err, repositories.ErrMatchPlayerNotFound) {
			return nil, mapMatchRepoError(err)
		}
		left = false
	}

	if err := s.loadRoster(ctx, match); err != nil {
		return nil, err
	}
	if !left {
		return match, nil
	}

	sent, err := s.notifier.NotifyLeave(ctx, match, *player)
	if err != nil {
		s.logger.Error("leave emails failed", slog.Int("match_id", matchID), slog.Any("error", err))
	}
	s.logger.Info("player left match",
		slog.Int("match_id", matchID), slog.Int("player_id", playerID), slog.Int("emails_sent", sent))
	s.broadcast(hub.MatchRoom(matchID), hub.EventPlayerLeft, rosterPayload(match, player, nil))
	return match, nil
}

func (s *matchService) ListGuests(ctx context.Context, matchID int) ([]models.Guest, error) {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return nil, mapMatchRepoError(err)
	}
	guests, err := s.guestRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests of match %d: %w", matchID, err)
	}
	if guests == nil {
		return []models.Guest{}, nil
	}
	return guests, nil
}

func (s *matchService) AddGuest(ctx context.Context, matchID int, input GuestInput, now time.Time) (*models.Guest, error) {
	input.Name = strings.TrimSpace(input.Name)
	match, err := s.openMatch(ctx, matchID, now)
	if err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	inviting, err := s.getPlayer(ctx, input.InvitingPlayerID)
	if err != nil {
		return nil, err
	}

	guest := &models.Guest{MatchID: matchID, InvitingPlayerID: inviting.ID, Name: input.Name}
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, mapMatchRepoError(err)
	}
	guest.InvitingPlayer = inviting

	if err := s.loadRoster(ctx, match); err != nil {
		return nil, err
	}
	sent, err := s.notifier.NotifyGuestAdded(ctx, match, *guest, *inviting)
	if err != nil {
		s.logger.Error("guest emails failed", slog.Int("match_id", matchID), slog.Any("error", err))
	}
	s.logger.Info("guest added",
		slog.Int("match_id", matchID), slog.Int("guest_id", guest.ID),
		slog.Int("inviting_player_id", inviting.ID), slog.Int("emails_sent", sent))
	s.broadcast(hub.MatchRoom(matchID), hub.EventGuestAdded, rosterPayload(match, inviting, guest))
	return guest, nil
}

func (s *matchService) RemoveGuest(ctx context.Context, guestID int, now time.Time) (*models.Guest, error) {
	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	match, err := s.openMatch(ctx, guest.MatchID, now)
	if err != nil {
		return nil, err
	}
	inviting, err := s.getPlayer(ctx, guest.InvitingPlayerID)
	if err != nil {
		return nil, err
	}

	if err := s.guestRepo.Delete(ctx, guestID); err != nil {
		return nil, mapMatchRepoError(err)
	}
	guest.InvitingPlayer = inviting

	if err := s.loadRoster(ctx, match); err != nil {
		return nil, err
	}
	sent, err := s.notifier.NotifyGuestRemoved(ctx, match, *guest, *inviting)
	if err != nil {
		s.logger.Error("guest emails failed", slog.Int("match_id", match.ID), slog.Any("error", err))
	}
	s.logger.Info("guest removed",
		slog.Int("match_id", match.ID), slog.Int("guest_id", guestID), slog.Int("emails_sent", sent))
	s.broadcast(hub.MatchRoom(match.ID), hub.EventGuestRemoved, rosterPayload(match, inviting, guest))
	return guest, nil
}

func rosterPayload(match *models.Match, player *models.Player, guest *models.Guest) map[string]interface{} {
	payload := map[string]interface{}{
		"match_id":     match.ID,
		"player":       player,
		"player_count": match.PlayerCount,
	}
	if guest != nil {
		payload["guest"] = guest
	}
	return payload
}

func (s *matchService) broadcast(room, event string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastToRoom(room, hub.Message{Type: event, Payload: payload, RoomID: room})
}
