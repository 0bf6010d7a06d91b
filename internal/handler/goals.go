package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"dealflow/internal/models"
	"dealflow/internal/service"
)

type GoalHandler struct {
	Service *service.GoalService
}

func (h *GoalHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/goals")
	group.GET("", h.list)
	group.GET("/:year", h.getByYear)
	group.PUT("/:year", h.upsert)
}

// @Summary List annual goals
// @Tags goals
// @Success 200 {array} models.Goal
// @Router /api/v1/goals [get]
func (h *GoalHandler) list(c *gin.Context) {
	items, err := h.Service.List(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary Create or replace the goal for a year
// @Tags goals
// @Param year path int true "Reporting year"
// @Param goal body models.Goal true "Goal"
// @Success 200 {object} models.Goal
// @Router /api/v1/goals/{year} [put]
func (h *GoalHandler) upsert(c *gin.Context) {
	year, err := strconv.Atoi(strings.TrimSpace(c.Param("year")))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid year", nil)
		return
	}
	var goal models.Goal
	if err := c.ShouldBindJSON(&goal); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	goal.Year = year
	if err := h.Service.Upsert(c.Request.Context(), &goal); err != nil {
		Error(c, statusForServiceError(err), err.Error(), nil)
		return
	}
	Ok(c, goal, nil)
}

// @Summary Get the goal for a year
// @Tags goals
// @Param year path int true "Reporting year"
// @Success 200 {object} models.Goal
// @Router /api/v1/goals/{year} [get]
func (h *GoalHandler) getByYear(c *gin.Context) {
	year, err := strconv.Atoi(strings.TrimSpace(c.Param("year")))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid year", nil)
		return
	}
	goal, err := h.Service.GetByYear(c.Request.Context(), year)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if goal == nil {
		Error(c, http.StatusNotFound, "no goal for year", map[string]any{"year": year})
		return
	}
	Ok(c, goal, nil)
}
