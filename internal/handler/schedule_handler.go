package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Amrtamer711/ironforge-sub001/internal/dto"
	"github.com/Amrtamer711/ironforge-sub001/internal/models"
	"github.com/Amrtamer711/ironforge-sub001/internal/service"
	"github.com/Amrtamer711/ironforge-sub001/pkg/dates"
	appErrors "github.com/Amrtamer711/ironforge-sub001/pkg/errors"
	"github.com/Amrtamer711/ironforge-sub001/pkg/response"
)

// ScheduleHandler exposes the scheduling run, advisory and export endpoints.
type ScheduleHandler struct {
	scheduler *service.SchedulerService
	exports   *service.ExportService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(scheduler *service.SchedulerService, exports *service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{scheduler: scheduler, exports: exports}
}

// Run godoc
// @Summary Execute a scheduling run over the pending campaign pool
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.ScheduleRunRequest false "Run options"
// @Success 200 {object} response.Envelope
// @Router /schedule/runs [post]
func (h *ScheduleHandler) Run(c *gin.Context) {
	var req dto.ScheduleRunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid run payload"))
			return
		}
	}

	result, err := h.scheduler.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if !req.DryRun {
		if err := h.scheduler.Apply(c.Request.Context(), result); err != nil {
			response.Error(c, err)
			return
		}
	}

	response.JSON(c, http.StatusOK, dto.ScheduleRunResponse{
		RunID:       result.RunID,
		DryRun:      req.DryRun,
		Assignments: result.Assignments,
		RescueTiers: result.RescueTiers,
		Unscheduled: result.Unscheduled,
		Weeks:       planToWeeks(result.Plan),
	}, nil)
}

// AdviseFilmingDate godoc
// @Summary Advise a filming date for a campaign being created
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.FilmingDateRequest true "Campaign window"
// @Success 200 {object} response.Envelope
// @Router /schedule/filming-date [post]
func (h *ScheduleHandler) AdviseFilmingDate(c *gin.Context) {
	var req dto.FilmingDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid filming date payload"))
		return
	}
	date, err := h.scheduler.AdviseFilmingDate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.FilmingDateResponse{FilmingDate: date}, nil)
}

// Plan godoc
// @Summary Preview the schedule a run would produce, without persisting
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/plan [get]
func (h *ScheduleHandler) Plan(c *gin.Context) {
	result, err := h.scheduler.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ScheduleRunResponse{
		RunID:       result.RunID,
		DryRun:      true,
		Assignments: result.Assignments,
		RescueTiers: result.RescueTiers,
		Unscheduled: result.Unscheduled,
		Weeks:       planToWeeks(result.Plan),
	}, nil)
}

// ExportPlan godoc
// @Summary Render the current plan preview as a downloadable file
// @Tags Schedule
// @Produce json
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {object} response.Envelope
// @Router /schedule/plan/export [post]
func (h *ScheduleHandler) ExportPlan(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrPreconditionFailed, "plan exports are disabled"))
		return
	}
	result, err := h.scheduler.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	exported, err := h.exports.Generate(result.RunID, result.Plan, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"run_id":     result.RunID,
		"format":     exported.Format,
		"url":        exported.URL,
		"expires_at": exported.ExpiresAt,
	}, nil)
}

// DownloadExport godoc
// @Summary Download a previously rendered plan export
// @Tags Schedule
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Router /schedule/export/{token} [get]
func (h *ScheduleHandler) DownloadExport(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrPreconditionFailed, "plan exports are disabled"))
		return
	}
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	_, relPath, _, err := h.exports.ParseToken(token, false)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrNotFound.Code, http.StatusNotFound, "export not found or expired"))
		return
	}
	file, err := h.exports.Open(relPath)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrNotFound.Code, http.StatusNotFound, "export file missing"))
		return
	}
	defer file.Close() //nolint:errcheck
	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export file"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(relPath)))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentTypeFor(relPath), file, nil)
}

func contentTypeFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return "application/pdf"
	}
	return "text/csv"
}

func planToWeeks(plan models.SchedulePlan) []dto.PlanWeekView {
	weekKeys := make([]string, 0, len(plan))
	for key := range plan {
		weekKeys = append(weekKeys, key)
	}
	sort.Strings(weekKeys)

	weeks := make([]dto.PlanWeekView, 0, len(weekKeys))
	for _, key := range weekKeys {
		days := append([]*models.ShootDay(nil), plan.Week(key)...)
		sort.Slice(days, func(i, j int) bool {
			if days[i].Date.Equal(days[j].Date) {
				return days[i].Area < days[j].Area
			}
			return days[i].Date.Before(days[j].Date)
		})
		views := make([]dto.ShootDayView, 0, len(days))
		for _, day := range days {
			views = append(views, dto.ShootDayView{
				ID:         day.ID,
				Date:       dates.Format(day.Date),
				Area:       day.Area,
				TimeBlocks: day.TimeBlocks,
				TaskIDs:    day.TaskIDs,
				Score:      day.Score,
			})
		}
		weeks = append(weeks, dto.PlanWeekView{Week: key, ShootDays: views})
	}
	return weeks
}
