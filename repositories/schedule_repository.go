package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/futbol5/models"
)

var (
	ErrScheduleNotFound        = errors.New("weekly schedule not found")
	ErrScheduleWeekdayConflict = errors.New("a weekly schedule already exists for that weekday")
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.WeeklySchedule) error
	GetByID(ctx context.Context, id int) (*models.WeeklySchedule, error)
	// List returns every schedule ordered by weekday.
	List(ctx context.Context) ([]models.WeeklySchedule, error)
	Update(ctx context.Context, schedule *models.WeeklySchedule) error
	Delete(ctx context.Context, id int) error
}

type postgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) ScheduleRepository {
	return &postgresScheduleRepository{db: db}
}

func (r *postgresScheduleRepository) Create(ctx context.Context, s *models.WeeklySchedule) error {
	query := `
		INSERT INTO weekly_schedules (weekday, time, place, invite_weekday)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, int(s.Weekday), s.Time, s.Place, int(s.InviteWeekday)).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if uniqueViolation(err) == "weekly_schedules_weekday_key" {
			return ErrScheduleWeekdayConflict
		}
		return err
	}
	return nil
}

func (r *postgresScheduleRepository) GetByID(ctx context.Context, id int) (*models.WeeklySchedule, error) {
	query := `SELECT id, weekday, time, place, invite_weekday, created_at FROM weekly_schedules WHERE id = $1`

	var s models.WeeklySchedule
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Weekday, &s.Time, &s.Place, &s.InviteWeekday, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresScheduleRepository) List(ctx context.Context) ([]models.WeeklySchedule, error) {
	query := `SELECT id, weekday, time, place, invite_weekday, created_at FROM weekly_schedules ORDER BY weekday ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]models.WeeklySchedule, 0)
	for rows.Next() {
		var s models.WeeklySchedule
		if err := rows.Scan(&s.ID, &s.Weekday, &s.Time, &s.Place, &s.InviteWeekday, &s.CreatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *postgresScheduleRepository) Update(ctx context.Context, s *models.WeeklySchedule) error {
	query := `UPDATE weekly_schedules SET weekday = $1, time = $2, place = $3, invite_weekday = $4 WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, int(s.Weekday), s.Time, s.Place, int(s.InviteWeekday), s.ID)
	if err != nil {
		if uniqueViolation(err) == "weekly_schedules_weekday_key" {
			return ErrScheduleWeekdayConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrScheduleNotFound)
}

func (r *postgresScheduleRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM weekly_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScheduleNotFound)
}
