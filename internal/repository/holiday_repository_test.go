package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
)

func newHolidayRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestHolidayRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newHolidayRepoMock(t)
	defer cleanup()

	repo := NewHolidayRepository(db)
	eid := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "holiday_date", "name", "created_at"}).
		AddRow("h1", eid, "Eid", time.Now())
	mock.ExpectQuery("SELECT id, holiday_date, name, created_at FROM holidays").
		WillReturnRows(rows)

	holidays, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Eid", holidays[0].Name)
	assert.Equal(t, eid, holidays[0].Date)
}

func TestHolidayRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newHolidayRepoMock(t)
	defer cleanup()

	repo := NewHolidayRepository(db)
	mock.ExpectExec("INSERT INTO holidays").
		WillReturnResult(sqlmock.NewResult(1, 1))

	holiday := &models.Holiday{
		Date: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		Name: "Eid",
	}
	require.NoError(t, repo.Create(context.Background(), holiday))
	assert.NotEmpty(t, holiday.ID)
	assert.False(t, holiday.CreatedAt.IsZero())
}

func TestHolidayRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newHolidayRepoMock(t)
	defer cleanup()

	repo := NewHolidayRepository(db)
	mock.ExpectExec("DELETE FROM holidays").
		WithArgs("h1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "h1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
