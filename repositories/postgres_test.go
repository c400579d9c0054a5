package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dosada05/futbol5/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestPostgresMatchCreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMatchRepository(db)
	date := time.Date(2015, 3, 25, 19, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO matches (date, place) VALUES ($1, $2) RETURNING id, created_at`)).
		WithArgs(date, "River").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "matches_date_key"})

	err := repo.Create(context.Background(), &models.Match{Date: date, Place: "River"})
	assert.ErrorIs(t, err, ErrDuplicateMatch)
}

func TestPostgresMatchCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMatchRepository(db)
	date := time.Date(2015, 3, 25, 19, 0, 0, 0, time.UTC)
	created := time.Date(2015, 3, 23, 7, 15, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO matches`)).
		WithArgs(date, "River").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, created))

	m := &models.Match{Date: date, Place: "River"}
	require.NoError(t, repo.Create(context.Background(), m))
	assert.Equal(t, 7, m.ID)
	assert.Equal(t, created, m.CreatedAt)
}

func TestPostgresMatchNextAfter(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMatchRepository(db)
	from := time.Date(2015, 3, 25, 15, 0, 0, 0, time.UTC)
	date := time.Date(2015, 3, 25, 19, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM matches WHERE date > $1 ORDER BY date ASC LIMIT 1`)).
		WithArgs(from).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "place", "created_at"}).AddRow(1, date, "River", from))

	m, err := repo.NextAfter(context.Background(), from)
	require.NoError(t, err)
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, date, m.Date)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM matches WHERE date > $1`)).
		WithArgs(date).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.NextAfter(context.Background(), date)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestPostgresPlayerConflicts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresPlayerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO players`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "players_email_key"})
	err := repo.Create(context.Background(), &models.Player{Name: "juan", Email: "juan@example.com"})
	assert.ErrorIs(t, err, ErrPlayerEmailConflict)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE players SET`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "players_name_key"})
	err = repo.Update(context.Background(), &models.Player{ID: 1, Name: "pedro", Email: "juan@example.com"})
	assert.ErrorIs(t, err, ErrPlayerNameConflict)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM players WHERE id = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 99), ErrPlayerNotFound)
}

func TestPostgresMatchPlayerAdd(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMatchPlayerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO match_players`)).
		WithArgs(1, 2).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "match_players_pkey"})
	_, err := repo.Add(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO match_players`)).
		WithArgs(1, 3).
		WillReturnError(&pq.Error{Code: "23503"})
	_, err = repo.Add(context.Background(), 1, 3)
	assert.ErrorIs(t, err, ErrMatchOrPlayerNotFound)
}

func TestPostgresScheduleList(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresScheduleRepository(db)
	created := time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM weekly_schedules ORDER BY weekday ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "weekday", "time", "place", "invite_weekday", "created_at"}).
			AddRow(1, 2, "19:00:00", "River", 0, created).
			AddRow(2, 4, "20:00:00", "Boca", 3, created))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.Wednesday, list[0].Weekday)
	assert.Equal(t, models.TimeOfDay{Hour: 19}, list[0].Time)
	assert.Equal(t, models.Monday, list[0].InviteWeekday)
	assert.Equal(t, models.Friday, list[1].Weekday)
	assert.Equal(t, models.Thursday, list[1].InviteWeekday)
}

func TestPostgresScheduleWeekdayConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresScheduleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO weekly_schedules`)).
		WithArgs(2, models.TimeOfDay{Hour: 19}, "River", 0).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "weekly_schedules_weekday_key"})

	err := repo.Create(context.Background(), &models.WeeklySchedule{
		Weekday: models.Wednesday, Time: models.TimeOfDay{Hour: 19}, Place: "River", InviteWeekday: models.Monday,
	})
	assert.ErrorIs(t, err, ErrScheduleWeekdayConflict)
}
