package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/futbol5/models"
)

var (
	ErrAlreadyJoined         = errors.New("player already joined the match")
	ErrMatchPlayerNotFound   = errors.New("player is not signed up for the match")
	ErrMatchOrPlayerNotFound = errors.New("match or player does not exist")
)

type MatchPlayerRepository interface {
	Add(ctx context.Context, matchID, playerID int) (*models.MatchPlayer, error)
	Remove(ctx context.Context, matchID, playerID int) error
	Exists(ctx context.Context, matchID, playerID int) (bool, error)
	// ListPlayers returns the players of a match in sign-up order.
	ListPlayers(ctx context.Context, matchID int) ([]models.Player, error)
}

type postgresMatchPlayerRepository struct {
	db *sql.DB
}

func NewPostgresMatchPlayerRepository(db *sql.DB) MatchPlayerRepository {
	return &postgresMatchPlayerRepository{db: db}
}

func (r *postgresMatchPlayerRepository) Add(ctx context.Context, matchID, playerID int) (*models.MatchPlayer, error) {
	query := `INSERT INTO match_players (match_id, player_id) VALUES ($1, $2) RETURNING join_date`

	mp := &models.MatchPlayer{MatchID: matchID, PlayerID: playerID}
	err := r.db.QueryRowContext(ctx, query, matchID, playerID).Scan(&mp.JoinDate)
	if err != nil {
		if uniqueViolation(err) == "match_players_pkey" {
			return nil, ErrAlreadyJoined
		}
		if isForeignKeyViolation(err) {
			return nil, ErrMatchOrPlayerNotFound
		}
		return nil, err
	}
	return mp, nil
}

func (r *postgresMatchPlayerRepository) Remove(ctx context.Context, matchID, playerID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM match_players WHERE match_id = $1 AND player_id = $2`, matchID, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchPlayerNotFound)
}

func (r *postgresMatchPlayerRepository) Exists(ctx context.Context, matchID, playerID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM match_players WHERE match_id = $1 AND player_id = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, matchID, playerID).Scan(&exists)
	return exists, err
}

func (r *postgresMatchPlayerRepository) ListPlayers(ctx context.Context, matchID int) ([]models.Player, error) {
	query := `
		SELECT p.id, p.name, p.email, p.avatar_key, p.created_at
		FROM match_players mp
		JOIN players p ON p.id = mp.player_id
		WHERE mp.match_id = $1
		ORDER BY mp.join_date ASC, p.id ASC`
	return queryPlayers(ctx, r.db, query, matchID)
}
