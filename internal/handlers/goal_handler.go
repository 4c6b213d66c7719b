package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/services"
)

// GoalHandler handles goal-related requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// UpsertGoalRequest represents the request payload for setting a goal.
type UpsertGoalRequest struct {
	PeriodMonth int             `json:"period_month" binding:"required,min=1,max=12"`
	PeriodYear  int             `json:"period_year" binding:"required,min=1900,max=9999"`
	MetricName  string          `json:"metric_name" binding:"required,metric_name"`
	TargetValue decimal.Decimal `json:"target_value" binding:"required"`
}

// UpsertGoal handles creating or updating a goal.
// @Summary     Set a goal
// @Description Create or update the target for one metric in one period
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       company_id path string            true "Company ID"
// @Param       request    body UpsertGoalRequest true "Goal details"
// @Success     200 {object} models.Goal "Goal saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies/{company_id}/goals [put]
func (h *GoalHandler) UpsertGoal(c *gin.Context) {
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

	var req UpsertGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpsertGoal(userID, companyID, req.PeriodMonth, req.PeriodYear, req.MetricName, req.TargetValue)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPSERT_GOAL", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"metric_name": req.MetricName, "target_value": req.TargetValue.String()})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// GetGoals handles listing a company's goals for a period.
// @Summary     Get goals
// @Description Get a company's goals for one period
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       company_id path  string true "Company ID"
// @Param       month      query int    true "Period month (1-12)"
// @Param       year       query int    true "Period year"
// @Success     200 {array} models.Goal "Goals for the period"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies/{company_id}/goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
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

	goals, err := h.goalService.GetCompanyGoals(userID, companyID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// DeleteGoal handles deleting a goal.
// @Summary     Delete goal
// @Description Delete a goal by ID
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       company_id path string true "Company ID"
// @Param       id         path string true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies/{company_id}/goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
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

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, companyID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GOAL", "goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

// GetGoalProgress handles comparing a period's goals against computed metrics.
// @Summary     Get goal progress
// @Description Compare each of the period's goals against the computed metric values
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       company_id path  string true "Company ID"
// @Param       month      query int    true "Period month (1-12)"
// @Param       year       query int    true "Period year"
// @Success     200 {array} services.GoalProgress "Goal progress"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies/{company_id}/goals/progress [get]
func (h *GoalHandler) GetGoalProgress(c *gin.Context) {
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

	progress, err := h.goalService.GetGoalProgress(userID, companyID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
