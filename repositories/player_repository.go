package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/futbol5/models"
)

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerNameConflict  = errors.New("player name conflict")
	ErrPlayerEmailConflict = errors.New("player email conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
	// GetTopPlayer returns the player with the most sign-ups, lowest id first on ties.
	GetTopPlayer(ctx context.Context) (*models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func mapPlayerConflict(err error) error {
	switch uniqueViolation(err) {
	case "players_name_key":
		return ErrPlayerNameConflict
	case "players_email_key":
		return ErrPlayerEmailConflict
	}
	return err
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `INSERT INTO players (name, email, avatar_key) VALUES ($1, $2, $3) RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, player.Name, player.Email, player.AvatarKey).
		Scan(&player.ID, &player.CreatedAt)
	if err != nil {
		return mapPlayerConflict(err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT id, name, email, avatar_key, created_at FROM players WHERE id = $1`

	var p models.Player
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Email, &p.AvatarKey, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT id, name, email, avatar_key, created_at FROM players ORDER BY name ASC`
	return queryPlayers(ctx, r.db, query)
}

func queryPlayers(ctx context.Context, q SQLExecutor, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.AvatarKey, &p.CreatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `UPDATE players SET name = $1, email = $2, avatar_key = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, player.Name, player.Email, player.AvatarKey, player.ID)
	if err != nil {
		return mapPlayerConflict(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count)
	return count, err
}

func (r *postgresPlayerRepository) GetTopPlayer(ctx context.Context) (*models.Player, error) {
	query := `
		SELECT p.id, p.name, p.email, p.avatar_key, p.created_at
		FROM players p
		LEFT JOIN match_players mp ON mp.player_id = p.id
		GROUP BY p.id
		ORDER BY COUNT(mp.match_id) DESC, p.id ASC
		LIMIT 1`

	var p models.Player
	err := r.db.QueryRowContext(ctx, query).Scan(&p.ID, &p.Name, &p.Email, &p.AvatarKey, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}
