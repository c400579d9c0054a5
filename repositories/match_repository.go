package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/futbol5/models"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrDuplicateMatch = errors.New("a match already exists at that date")
)

type MatchRepository interface {
	// Create fails with ErrDuplicateMatch when a match exists at the same instant.
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	GetByDate(ctx context.Context, date time.Time) (*models.Match, error)
	// NextAfter returns the earliest match strictly after from.
	NextAfter(ctx context.Context, from time.Time) (*models.Match, error)
	List(ctx context.Context) ([]models.Match, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, date, place, created_at`

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	if err := row.Scan(&m.ID, &m.Date, &m.Place, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `INSERT INTO matches (date, place) VALUES ($1, $2) RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, match.Date, match.Place).Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		if uniqueViolation(err) == "matches_date_key" {
			return ErrDuplicateMatch
		}
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.Match, error) {
	m, err := scanMatch(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	return r.getOne(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
}

func (r *postgresMatchRepository) GetByDate(ctx context.Context, date time.Time) (*models.Match, error) {
	return r.getOne(ctx, `SELECT `+matchColumns+` FROM matches WHERE date = $1`, date)
}

func (r *postgresMatchRepository) NextAfter(ctx context.Context, from time.Time) (*models.Match, error) {
	return r.getOne(ctx, `SELECT `+matchColumns+` FROM matches WHERE date > $1 ORDER BY date ASC LIMIT 1`, from)
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	result, err := r.db.ExecContext(ctx, `UPDATE matches SET date = $1, place = $2 WHERE id = $3`,
		match.Date, match.Place, match.ID)
	if err != nil {
		if uniqueViolation(err) == "matches_date_key" {
			return ErrDuplicateMatch
		}
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
