package handler

import (
	"bytes"
	"context"
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

type holidayStoreMock struct {
	holidays []models.Holiday
	deleted  []string
}

func (m *holidayStoreMock) ListAll(ctx context.Context) ([]models.Holiday, error) {
	return m.holidays, nil
}

func (m *holidayStoreMock) Create(ctx context.Context, holiday *models.Holiday) error {
	m.holidays = append(m.holidays, *holiday)
	return nil
}

func (m *holidayStoreMock) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestHolidayHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &holidayStoreMock{}
	handler := NewHolidayHandler(service.NewHolidayService(store, nil, nil, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.CreateHolidayRequest{Date: "09-03-2026", Name: "Eid"})
	req, _ := http.NewRequest(http.MethodPost, "/holidays", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.holidays, 1)
}

func TestHolidayHandlerCreateInvalidDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHolidayHandler(service.NewHolidayService(&holidayStoreMock{}, nil, nil, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.CreateHolidayRequest{Date: "2026-03-09", Name: "Eid"})
	req, _ := http.NewRequest(http.MethodPost, "/holidays", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHolidayHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &holidayStoreMock{}
	handler := NewHolidayHandler(service.NewHolidayService(store, nil, nil, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/holidays/h1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "h1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"h1"}, store.deleted)
}
