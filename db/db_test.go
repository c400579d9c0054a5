package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAppliesSchema(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec(schema).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), conn))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateWrapsError(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer conn.Close()

	boom := errors.New("permission denied")
	mock.ExpectExec(schema).WillReturnError(boom)

	err = Migrate(context.Background(), conn)
	assert.ErrorIs(t, err, boom)
}

func TestSchemaDeclaresConstraints(t *testing.T) {
	for _, name := range []string{
		"players_name_key",
		"players_email_key",
		"matches_date_key",
		"match_players_pkey",
		"guests_match_inviter_name_key",
		"weekly_schedules_weekday_key",
	} {
		assert.Contains(t, schema, name)
	}
}
