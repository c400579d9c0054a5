package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/futbol5/models"
)

var (
	ErrGuestNotFound = errors.New("guest not found")
	ErrGuestConflict = errors.New("guest already invited by this player")
)

type GuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	GetByID(ctx context.Context, id int) (*models.Guest, error)
	Delete(ctx context.Context, id int) error
	// ListByMatch returns the guests of a match with their inviting player loaded.
	ListByMatch(ctx context.Context, matchID int) ([]models.Guest, error)
}

type postgresGuestRepository struct {
	db *sql.DB
}

func NewPostgresGuestRepository(db *sql.DB) GuestRepository {
	return &postgresGuestRepository{db: db}
}

func (r *postgresGuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	query := `
		INSERT INTO guests (match_id, inviting_player_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, inviting_date`

	err := r.db.QueryRowContext(ctx, query, guest.MatchID, guest.InvitingPlayerID, guest.Name).
		Scan(&guest.ID, &guest.InvitingDate)
	if err != nil {
		if uniqueViolation(err) == "guests_match_inviter_name_key" {
			return ErrGuestConflict
		}
		if isForeignKeyViolation(err) {
			return ErrMatchOrPlayerNotFound
		}
		return err
	}
	return nil
}

func (r *postgresGuestRepository) GetByID(ctx context.Context, id int) (*models.Guest, error) {
	query := `SELECT id, match_id, inviting_player_id, name, inviting_date FROM guests WHERE id = $1`

	var g models.Guest
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.MatchID, &g.InvitingPlayerID, &g.Name, &g.InvitingDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *postgresGuestRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGuestNotFound)
}

func (r *postgresGuestRepository) ListByMatch(ctx context.Context, matchID int) ([]models.Guest, error) {
	query := `
		SELECT g.id, g.match_id, g.inviting_player_id, g.name, g.inviting_date,
		       p.id, p.name, p.email, p.avatar_key, p.created_at
		FROM guests g
		JOIN players p ON p.id = g.inviting_player_id
		WHERE g.match_id = $1
		ORDER BY g.inviting_date ASC, g.id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := make([]models.Guest, 0)
	for rows.Next() {
		var g models.Guest
		var p models.Player
		if err := rows.Scan(&g.ID, &g.MatchID, &g.InvitingPlayerID, &g.Name, &g.InvitingDate,
			&p.ID, &p.Name, &p.Email, &p.AvatarKey, &p.CreatedAt); err != nil {
			return nil, err
		}
		g.InvitingPlayer = &p
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return guests, nil
}
