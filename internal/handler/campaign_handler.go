package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Amrtamer711/ironforge-sub001/internal/dto"
	"github.com/Amrtamer711/ironforge-sub001/internal/models"
	"github.com/Amrtamer711/ironforge-sub001/internal/service"
	appErrors "github.com/Amrtamer711/ironforge-sub001/pkg/errors"
	"github.com/Amrtamer711/ironforge-sub001/pkg/response"
)

// CampaignHandler exposes campaign intake and lookup endpoints.
type CampaignHandler struct {
	service *service.CampaignService
}

// NewCampaignHandler constructs handler.
func NewCampaignHandler(svc *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{service: svc}
}

// Create godoc
// @Summary Create a campaign in the pending pool
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param payload body dto.CreateCampaignRequest true "Campaign payload"
// @Success 201 {object} response.Envelope
// @Router /campaigns [post]
func (h *CampaignHandler) Create(c *gin.Context) {
	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid campaign payload"))
		return
	}
	campaign, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, campaign)
}

// List godoc
// @Summary List campaigns
// @Tags Campaigns
// @Produce json
// @Param status query string false "Filter by status"
// @Param location query string false "Filter by location substring"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /campaigns [get]
func (h *CampaignHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	filter := models.CampaignFilter{
		Status:   c.Query("status"),
		Location: c.Query("location"),
		Page:     page,
		PageSize: pageSize,
	}
	campaigns, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campaigns, &models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	})
}

// Get godoc
// @Summary Get a campaign by task id
// @Tags Campaigns
// @Produce json
// @Param taskId path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Router /campaigns/{taskId} [get]
func (h *CampaignHandler) Get(c *gin.Context) {
	campaign, err := h.service.Get(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campaign, nil)
}
