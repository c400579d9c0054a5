package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/repositories"
	"github.com/Dosada05/futbol5/storage"
	"github.com/google/uuid"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input PlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
	// TopPlayer is the player with the most matches joined.
	TopPlayer(ctx context.Context) (*models.Player, error)
	UpdatePlayerAvatar(ctx context.Context, id int, contentType string, file io.Reader) (*models.Player, error)
}

type PlayerInput struct {
	Name  string `json:"name" validate:"required,max=50"`
	Email string `json:"email" validate:"required,email,max=254"`
}

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

// NewPlayerService builds the player service. uploader may be nil, which
// disables avatars.
func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader, logger *slog.Logger) PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &playerService{playerRepo: playerRepo, uploader: uploader, logger: logger.With(slog.String("component", "players"))}
}

func mapPlayerRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPlayerNameConflict):
		return ErrPlayerNameConflict
	case errors.Is(err, repositories.ErrPlayerEmailConflict):
		return ErrPlayerEmailConflict
	default:
		return err
	}
}

func (in PlayerInput) toModel() (*models.Player, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return &models.Player{Name: in.Name, Email: in.Email}, nil
}

func (s *playerService) CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error) {
	player, err := input.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, mapPlayerRepoError(err)
	}
	return player, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}
	populatePlayerAvatarURLFunc(player, s.uploader)
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if players == nil {
		return []models.Player{}, nil
	}
	populatePlayerListAvatarURLsFunc(players, s.uploader)
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input PlayerInput) (*models.Player, error) {
	current, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}
	player, err := input.toModel()
	if err != nil {
		return nil, err
	}
	current.Name = player.Name
	current.Email = player.Email
	if err := s.playerRepo.Update(ctx, current); err != nil {
		return nil, mapPlayerRepoError(err)
	}
	populatePlayerAvatarURLFunc(current, s.uploader)
	return current, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return mapPlayerRepoError(err)
	}
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return mapPlayerRepoError(err)
	}
	if player.AvatarKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *player.AvatarKey); err != nil {
			s.logger.Warn("failed to delete avatar of removed player", slog.Int("player_id", id), slog.Any("error", err))
		}
	}
	return nil
}

func (s *playerService) TopPlayer(ctx context.Context) (*models.Player, error) {
	player, err := s.playerRepo.GetTopPlayer(ctx)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}
	populatePlayerAvatarURLFunc(player, s.uploader)
	return player, nil
}

func (s *playerService) UpdatePlayerAvatar(ctx context.Context, id int, contentType string, file io.Reader) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrAvatarStorage
	}
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, ErrAvatarContentType
	}

	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}

	key := fmt.Sprintf("players/%d/%s%s", id, uuid.NewString(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload avatar for player %d: %w", id, err)
	}

	previous := player.AvatarKey
	player.AvatarKey = &key
	if err := s.playerRepo.Update(ctx, player); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to clean up uploaded avatar", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, mapPlayerRepoError(err)
	}
	if previous != nil && *previous != "" {
		if err := s.uploader.Delete(ctx, *previous); err != nil {
			s.logger.Warn("failed to delete previous avatar", slog.String("key", *previous), slog.Any("error", err))
		}
	}

	populatePlayerAvatarURLFunc(player, s.uploader)
	return player, nil
}
