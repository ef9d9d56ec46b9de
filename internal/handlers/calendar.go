package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/business-management-api/internal/constants"
	"github.com/mkravets/business-management-api/internal/dto"
	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/middleware"
	"github.com/mkravets/business-management-api/internal/services"
)

// CalendarHandler coordinates calendar view HTTP handlers.
type CalendarHandler struct {
	calendarService *services.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
	}
}

// GetByDate returns the team's tasks and meetings for one day.
func (h *CalendarHandler) GetByDate(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		apierrors.BadRequest(c, "Date is required")
		return
	}
	date, err := time.Parse(constants.DateLayout, dateStr)
	if err != nil {
		apierrors.BadRequest(c, "Invalid date")
		return
	}

	tasks, meetings, err := h.calendarService.ByDate(teamID, date)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCalendarDayDTO(date, tasks, meetings))
}

// GetByMonth returns the team's tasks and meetings for one month.
func (h *CalendarHandler) GetByMonth(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		apierrors.BadRequest(c, "Invalid year")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		apierrors.BadRequest(c, "Invalid month")
		return
	}

	tasks, meetings, err := h.calendarService.ByMonth(teamID, year, time.Month(month))
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCalendarMonthDTO(year, time.Month(month), tasks, meetings))
}
