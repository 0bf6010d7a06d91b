package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dealflow/internal/engine"
	"dealflow/internal/models"
	"dealflow/internal/repository"
	"dealflow/internal/service"
)

type OpportunityHandler struct {
	Service *service.OpportunityService
	Repo    repository.Repository
	Engine  *engine.Engine
}

func (h *OpportunityHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/opportunities")
	group.GET("", h.list)
	group.POST("", h.create)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.remove)
	group.POST("/:id/status", h.changeStatus)
}

// opportunityItem decorates an opportunity with the win probability the
// dashboard displays: the explicit one when set, otherwise inferred from stage.
type opportunityItem struct {
	models.Opportunity
	EffectiveProbabilityPct float64 `json:"effective_probability_percent"`
}

func (h *OpportunityHandler) decorate(items []models.Opportunity) []opportunityItem {
	out := make([]opportunityItem, 0, len(items))
	for _, item := range items {
		out = append(out, opportunityItem{
			Opportunity:             item,
			EffectiveProbabilityPct: h.Engine.InferProbability(item),
		})
	}
	return out
}

// @Summary List opportunities
// @Tags opportunities
// @Param status query string false "Filter by pipeline stage"
// @Param year query int false "Filter by expected close year"
// @Param client query string false "Filter by client name (substring)"
// @Param sort_by query string false "client_name|status|calculated_tcv_brl|expected_close_date|created_at|updated_at"
// @Param order query string false "asc|desc"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]any
// @Router /api/v1/opportunities [get]
func (h *OpportunityHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var statusPtr *models.Status
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := models.Status(strings.ToLower(raw))
		if !status.Valid() {
			Error(c, http.StatusBadRequest, "unknown status "+raw, nil)
			return
		}
		statusPtr = &status
	}
	yearPtr := intQueryPtr(c, "year")
	var clientPtr *string
	if client := strings.TrimSpace(c.Query("client")); client != "" {
		clientPtr = &client
	}
	orderBy := parseOrder(c.Query("sort_by"), map[string]string{
		"client_name":         "client_name",
		"status":              "status",
		"calculated_tcv_brl":  "calculated_tcv_brl",
		"expected_close_date": "expected_close_date",
		"created_at":          "created_at",
		"updated_at":          "updated_at",
	})
	if orderBy == "" {
		orderBy = "created_at"
	}
	asc := strings.EqualFold(strings.TrimSpace(c.Query("order")), "asc")
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	params := repository.ListOpportunitiesParams{
		Limit:      limit,
		Offset:     offset,
		Status:     statusPtr,
		Year:       yearPtr,
		ClientName: clientPtr,
		OrderBy:    orderBy,
		Asc:        boolPtr(asc),
	}
	items, err := h.Repo.ListOpportunities(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountOpportunities(c.Request.Context(), repository.ListOpportunitiesParams{
		Status:     statusPtr,
		Year:       yearPtr,
		ClientName: clientPtr,
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, h.decorate(items), paginationMeta(limit, offset, total))
}

// @Summary Create an opportunity
// @Tags opportunities
// @Param opportunity body models.Opportunity true "Opportunity"
// @Success 200 {object} models.Opportunity
// @Router /api/v1/opportunities [post]
func (h *OpportunityHandler) create(c *gin.Context) {
	var item models.Opportunity
	if err := c.ShouldBindJSON(&item); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	if err := h.Service.Create(c.Request.Context(), &item); err != nil {
		Error(c, statusForServiceError(err), err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Get an opportunity
// @Tags opportunities
// @Param id path string true "Opportunity id"
// @Success 200 {object} models.Opportunity
// @Router /api/v1/opportunities/{id} [get]
func (h *OpportunityHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	item, err := h.Repo.GetOpportunityByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "opportunity not found", nil)
		return
	}
	Ok(c, opportunityItem{
		Opportunity:             *item,
		EffectiveProbabilityPct: h.Engine.InferProbability(*item),
	}, nil)
}

// @Summary Update an opportunity
// @Tags opportunities
// @Param id path string true "Opportunity id"
// @Param opportunity body models.Opportunity true "Opportunity"
// @Success 200 {object} models.Opportunity
// @Router /api/v1/opportunities/{id} [put]
func (h *OpportunityHandler) update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var item models.Opportunity
	if err := c.ShouldBindJSON(&item); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	item.ID = id
	if err := h.Service.Update(c.Request.Context(), &item); err != nil {
		Error(c, statusForServiceError(err), err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete an opportunity
// @Tags opportunities
// @Param id path string true "Opportunity id"
// @Success 200 {object} map[string]any
// @Router /api/v1/opportunities/{id} [delete]
func (h *OpportunityHandler) remove(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		Error(c, statusForServiceError(err), err.Error(), nil)
		return
	}
	Ok(c, map[string]any{"id": id, "deleted": true}, nil)
}

// @Summary Change pipeline stage
// @Tags opportunities
// @Param id path string true "Opportunity id"
// @Param body body map[string]string true "{\"status\": \"signed_contract\"}"
// @Success 200 {object} map[string]any
// @Router /api/v1/opportunities/{id}/status [post]
func (h *OpportunityHandler) changeStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status models.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	if err := h.Service.ChangeStatus(c.Request.Context(), id, req.Status); err != nil {
		Error(c, statusForServiceError(err), err.Error(), nil)
		return
	}
	Ok(c, map[string]any{"id": id, "status": req.Status}, nil)
}

func statusForServiceError(err error) int {
	if errors.Is(err, service.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func uuidParam(c *gin.Context, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(key)))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func intQueryPtr(c *gin.Context, key string) *int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return &i
		}
	}
	return nil
}

func boolQueryDefault(c *gin.Context, key string, def bool) bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}

func parseOrder(value string, allow map[string]string) string {
	key := strings.TrimSpace(strings.ToLower(value))
	if key == "" {
		return ""
	}
	if mapped, ok := allow[key]; ok {
		return mapped
	}
	return ""
}

func paginationMeta(limit, offset int, total int64) map[string]any {
	if limit <= 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	hasNext := int64(offset+limit) < total
	return map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": hasNext,
	}
}

func boolPtr(v bool) *bool { return &v }
