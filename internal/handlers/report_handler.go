package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/services"
)

// ReportHandler handles income-statement and metrics reporting requests.
type ReportHandler struct {
	reportService  services.ReportServicer
	metricsService services.MetricsServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, metricsService services.MetricsServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, metricsService: metricsService}
}

// GetStatement handles computing the income statement for one period.
// @Summary     Get income statement
// @Description Compute the income statement for one period, with vertical and horizontal analysis
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       company_id path  string true "Company ID"
// @Param       month      query int    true "Period month (1-12)"
// @Param       year       query int    true "Period year"
// @Success     200 {object} dre.Statement "Income statement"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     422 {object} ErrorResponse "Malformed financial data"
// @Failure     503 {object} ErrorResponse "Data source unreachable"
// @Router      /companies/{company_id}/reports/statement [get]
func (h *ReportHandler) GetStatement(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	companyID, err := parsePathID(c, "company_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statement, err := h.reportService.GetStatement(userID, companyID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statement": statement})
}

// GetHistoricalSeries handles computing the monthly trend series.
// @Summary     Get historical series
// @Description Compute one income statement per month over a trailing window
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       company_id path  string true  "Company ID"
// @Param       months     query int    false "Window size in months (default 12)"
// @Success     200 {array} dre.PeriodResult "Historical series, chronological"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     503 {object} ErrorResponse "Data source unreachable"
// @Router      /companies/{company_id}/reports/historical [get]
func (h *ReportHandler) GetHistoricalSeries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	companyID, err := parsePathID(c, "company_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := 12
	if v := c.Query("months"); v != "" {
		months, err = strconv.Atoi(v)
		if err != nil || months < 1 || months > 60 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be between 1 and 60"))
			return
		}
	}

	series, err := h.reportService.GetHistoricalSeries(userID, companyID, months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": series})
}

// GetMetrics handles retrieving a period's unit-economics metrics.
// @Summary     Get metrics
// @Description Get the period's unit-economics metrics (CAC, LTV, ROI, break-even), cached per period
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       company_id path  string true "Company ID"
// @Param       month      query int    true "Period month (1-12)"
// @Param       year       query int    true "Period year"
// @Success     200 {object} models.MetricsSnapshot "Metrics snapshot"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     422 {object} ErrorResponse "Malformed financial data"
// @Failure     503 {object} ErrorResponse "Data source unreachable"
// @Router      /companies/{company_id}/reports/metrics [get]
func (h *ReportHandler) GetMetrics(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	companyID, err := parsePathID(c, "company_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	metrics, err := h.metricsService.GetMetrics(userID, companyID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}
