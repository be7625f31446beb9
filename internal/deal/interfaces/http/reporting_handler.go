package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"

	"github.com/wyfcoding/dealflow/internal/deal/application"
	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

// ReportingHandler 报表 HTTP 处理器：列表、时间线、敞口查询
type ReportingHandler struct {
	reporting *application.ReportingService
	exposure  *application.ExposureService
}

func NewReportingHandler(reporting *application.ReportingService, exposure *application.ExposureService) *ReportingHandler {
	return &ReportingHandler{reporting: reporting, exposure: exposure}
}

func (h *ReportingHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/deals", h.ListDeals)
		api.GET("/deals/:id/timeline", h.GetTimeline)
		api.GET("/exposure", h.GetExposure)
	}
}

func (h *ReportingHandler) ListDeals(c *gin.Context) {
	filter := domain.DealListFilter{
		Status:       c.Query("status"),
		CreditRating: c.Query("creditRating"),
	}

	if raw := c.Query("minAmount"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid minAmount", "")
			return
		}
		filter.MinAmount = &min
	}

	deals, err := h.reporting.ListDeals(c.Request.Context(), filter)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list deals", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, deals)
}

func (h *ReportingHandler) GetTimeline(c *gin.Context) {
	id := c.Param("id")

	timeline, err := h.reporting.Timeline(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDealNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "deal not found", "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to load timeline", "deal_id", id, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, timeline)
}

func (h *ReportingHandler) GetExposure(c *gin.Context) {
	searchType := c.Query("searchType")
	name := c.Query("name")
	includePastDeals := c.Query("includePastDeals") == "true"

	report, err := h.exposure.Lookup(c.Request.Context(), searchType, name, includePastDeals)
	if err != nil {
		if errors.Is(err, application.ErrMissingPartyName) || errors.Is(err, application.ErrInvalidSearchType) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Exposure lookup failed",
			"search_type", searchType, "name", name, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	if report == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":     "No deals found",
			"search_type": searchType,
			"name":        name,
		})
		return
	}

	response.Success(c, report)
}
