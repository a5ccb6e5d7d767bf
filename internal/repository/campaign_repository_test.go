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

func newCampaignRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func campaignRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"task_id", "brand", "location", "sales_person", "task_type",
		"campaign_start_date", "campaign_end_date", "time_block",
		"filming_date", "status", "created_at", "updated_at",
	})
}

func TestCampaignRepositoryListPending(t *testing.T) {
	db, mock, cleanup := newCampaignRepoMock(t)
	defer cleanup()

	repo := NewCampaignRepository(db)
	rows := campaignRows().
		AddRow("task-1", "Al Dar", "Galleria Mall", "Sara", "video",
			"03-03-2026", "20-03-2026", "day", "", "pending", time.Now(), time.Now()).
		AddRow("task-2", "Etihad", "Al Qana", "Omar", "photo",
			"05-03-2026", "", "night", "", "pending", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM campaigns WHERE status").
		WithArgs(models.CampaignStatusPending).
		WillReturnRows(rows)

	campaigns, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, "task-1", campaigns[0].TaskID)
	assert.Equal(t, "night", campaigns[1].TimeBlock)
}

func TestCampaignRepositoryListFiltersAndCounts(t *testing.T) {
	db, mock, cleanup := newCampaignRepoMock(t)
	defer cleanup()

	repo := NewCampaignRepository(db)
	mock.ExpectQuery("SELECT (.+) FROM campaigns WHERE 1=1 AND status").
		WithArgs("pending", "%Galleria%").
		WillReturnRows(campaignRows().
			AddRow("task-1", "Al Dar", "Galleria Mall", "", "video",
				"03-03-2026", "", "day", "", "pending", time.Now(), time.Now()))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("pending", "%Galleria%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	campaigns, total, err := repo.List(context.Background(), models.CampaignFilter{
		Status:   "pending",
		Location: "Galleria",
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	assert.Len(t, campaigns, 1)
	assert.Equal(t, 7, total)
}

func TestCampaignRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newCampaignRepoMock(t)
	defer cleanup()

	repo := NewCampaignRepository(db)
	mock.ExpectExec("INSERT INTO campaigns").
		WillReturnResult(sqlmock.NewResult(1, 1))

	campaign := &models.Campaign{
		TaskID:    "task-1",
		Brand:     "Al Dar",
		Location:  "Galleria Mall",
		StartDate: "03-03-2026",
		TimeBlock: "day",
	}
	require.NoError(t, repo.Create(context.Background(), campaign))
	assert.Equal(t, models.CampaignStatusPending, campaign.Status)
	assert.False(t, campaign.CreatedAt.IsZero())
}

func TestCampaignRepositoryUpdateFilmingDates(t *testing.T) {
	db, mock, cleanup := newCampaignRepoMock(t)
	defer cleanup()

	repo := NewCampaignRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE campaigns SET filming_date").
		WithArgs("06-03-2026", sqlmock.AnyArg(), "task-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateFilmingDates(context.Background(), map[string]string{"task-1": "06-03-2026"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepositoryUpdateFilmingDatesRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newCampaignRepoMock(t)
	defer cleanup()

	repo := NewCampaignRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE campaigns SET filming_date").
		WithArgs("06-03-2026", sqlmock.AnyArg(), "task-1").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.UpdateFilmingDates(context.Background(), map[string]string{"task-1": "06-03-2026"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepositoryUpdateFilmingDatesEmptyMapIsNoop(t *testing.T) {
	db, mock, cleanup := newCampaignRepoMock(t)
	defer cleanup()

	repo := NewCampaignRepository(db)
	require.NoError(t, repo.UpdateFilmingDates(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
