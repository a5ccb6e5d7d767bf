package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amrtamer711/ironforge-sub001/internal/dto"
	"github.com/Amrtamer711/ironforge-sub001/internal/models"
	"github.com/Amrtamer711/ironforge-sub001/internal/service"
)

type campaignStoreMock struct {
	campaigns map[string]*models.Campaign
	listed    []models.Campaign
	total     int
}

func (m *campaignStoreMock) List(ctx context.Context, filter models.CampaignFilter) ([]models.Campaign, int, error) {
	return m.listed, m.total, nil
}

func (m *campaignStoreMock) FindByID(ctx context.Context, taskID string) (*models.Campaign, error) {
	if c, ok := m.campaigns[taskID]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *campaignStoreMock) Create(ctx context.Context, campaign *models.Campaign) error {
	return nil
}

func newCampaignHandlerForTest(store *campaignStoreMock) *CampaignHandler {
	return NewCampaignHandler(service.NewCampaignService(store, nil, nil, nil))
}

func TestCampaignHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCampaignHandlerForTest(&campaignStoreMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.CreateCampaignRequest{
		TaskID:    "task-1",
		Brand:     "Al Dar",
		Location:  "Galleria Mall",
		StartDate: "03-03-2026",
	})
	req, _ := http.NewRequest(http.MethodPost, "/campaigns", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "task-1")
}

func TestCampaignHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCampaignHandlerForTest(&campaignStoreMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/campaigns", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCampaignHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCampaignHandlerForTest(&campaignStoreMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/campaigns/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "taskId", Value: "missing"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCampaignHandlerListPaginates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCampaignHandlerForTest(&campaignStoreMock{
		listed: []models.Campaign{{TaskID: "task-1"}},
		total:  41,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/campaigns?page=3&pageSize=10", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_count":41`)
	assert.Contains(t, w.Body.String(), `"page":3`)
}
