package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promoter-service/internal/events"
	"promoter-service/internal/repository"
	"promoter-service/internal/services"
)

// LeadHandler serves the team lead's roster, floor, dashboard and settings endpoints
type LeadHandler struct {
	repo      repository.RepositoryInterface
	promoters *services.PromoterService
	floors    *services.FloorService
	sales     *services.SalesService
	settings  *services.SettingsService
	view      *services.DashboardView
	publisher *events.Publisher
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(
	repo repository.RepositoryInterface,
	promoters *services.PromoterService,
	floors *services.FloorService,
	sales *services.SalesService,
	settings *services.SettingsService,
	view *services.DashboardView,
	publisher *events.Publisher,
) *LeadHandler {
	return &LeadHandler{
		repo:      repo,
		promoters: promoters,
		floors:    floors,
		sales:     sales,
		settings:  settings,
		view:      view,
		publisher: publisher,
	}
}

// CreatePromoter adds a promoter to the roster
// @Summary Create promoter
// @Tags Lead
// @Accept json
// @Produce json
// @Param request body services.CreatePromoterInput true "Promoter"
// @Success 201 {object} models.PromoterProfile
// @Router /api/v1/lead/promoters [post]
func (h *LeadHandler) CreatePromoter(c *gin.Context) {
	var input services.CreatePromoterInput
	if !bindJSON(c, &input) {
		return
	}

	promoter, err := h.promoters.CreatePromoter(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, promoter.Profile())
}

// RenamePromoter changes a promoter's display name
// @Summary Rename promoter
// @Tags Lead
// @Accept json
// @Produce json
// @Param id path string true "Promoter ID"
// @Param request body services.RenamePromoterInput true "Name"
// @Success 200 {object} models.PromoterProfile
// @Router /api/v1/lead/promoters/{id} [put]
func (h *LeadHandler) RenamePromoter(c *gin.Context) {
	var input services.RenamePromoterInput
	if !bindJSON(c, &input) {
		return
	}

	promoter, err := h.promoters.RenamePromoter(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, promoter.Profile())
}

// DeletePromoter removes a promoter. Their sales and feedback are kept.
// @Summary Delete promoter
// @Tags Lead
// @Param id path string true "Promoter ID"
// @Success 204
// @Router /api/v1/lead/promoters/{id} [delete]
func (h *LeadHandler) DeletePromoter(c *gin.Context) {
	if err := h.promoters.DeletePromoter(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetFloors replaces a promoter's floor assignment
// @Summary Set promoter floors
// @Tags Lead
// @Accept json
// @Produce json
// @Param id path string true "Promoter ID"
// @Param request body services.SetFloorsInput true "Floors"
// @Success 200 {object} models.PromoterProfile
// @Router /api/v1/lead/promoters/{id}/floors [put]
func (h *LeadHandler) SetFloors(c *gin.Context) {
	var input services.SetFloorsInput
	if !bindJSON(c, &input) {
		return
	}

	promoter, err := h.promoters.SetFloors(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, promoter.Profile())
}

// ToggleFloor adds or removes one floor from a promoter
// @Summary Toggle promoter floor
// @Tags Lead
// @Accept json
// @Produce json
// @Param id path string true "Promoter ID"
// @Param request body services.ToggleFloorInput true "Floor"
// @Success 200 {object} models.PromoterProfile
// @Router /api/v1/lead/promoters/{id}/floors/toggle [post]
func (h *LeadHandler) ToggleFloor(c *gin.Context) {
	var input services.ToggleFloorInput
	if !bindJSON(c, &input) {
		return
	}

	promoter, err := h.promoters.ToggleFloor(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, promoter.Profile())
}

// ListFloors lists the venue floors
// @Summary List floors
// @Tags Lead
// @Produce json
// @Success 200 {array} models.Floor
// @Router /api/v1/lead/floors [get]
func (h *LeadHandler) ListFloors(c *gin.Context) {
	floors, err := h.floors.ListFloors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, floors)
}

// CreateFloor adds a floor
// @Summary Create floor
// @Tags Lead
// @Accept json
// @Produce json
// @Param request body services.CreateFloorInput true "Floor"
// @Success 201 {object} models.Floor
// @Router /api/v1/lead/floors [post]
func (h *LeadHandler) CreateFloor(c *gin.Context) {
	var input services.CreateFloorInput
	if !bindJSON(c, &input) {
		return
	}

	floor, err := h.floors.CreateFloor(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, floor)
}

// DeleteFloor removes a floor
// @Summary Delete floor
// @Tags Lead
// @Param id path string true "Floor ID"
// @Success 204
// @Router /api/v1/lead/floors/{id} [delete]
func (h *LeadHandler) DeleteFloor(c *gin.Context) {
	if err := h.floors.DeleteFloor(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dashboard returns the last refreshed dashboard. Before the first refresh
// it is built from a fresh read.
// @Summary Lead dashboard
// @Tags Lead
// @Produce json
// @Success 200 {object} services.DashboardSummary
// @Router /api/v1/lead/dashboard [get]
func (h *LeadHandler) Dashboard(c *gin.Context) {
	if summary, ok := h.view.Current(); ok {
		c.JSON(http.StatusOK, summary)
		return
	}

	snapshot, err := services.LoadSnapshot(c.Request.Context(), h.repo)
	if err != nil {
		respondError(c, err)
		return
	}
	h.view.Apply(snapshot)
	summary, _ := h.view.Current()
	c.JSON(http.StatusOK, summary)
}

// KPIs returns per-promoter statistics computed from current data
// @Summary Promoter KPIs
// @Tags Lead
// @Produce json
// @Success 200 {array} models.KPIStats
// @Router /api/v1/lead/kpis [get]
func (h *LeadHandler) KPIs(c *gin.Context) {
	ctx := c.Request.Context()
	promoters, err := h.promoters.ListPromoters(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	sales, err := h.sales.ListSales(ctx, "")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.AggregateKPIs(promoters, sales))
}

// Activity lists recent workflow events, newest first
// @Summary Recent activity
// @Tags Lead
// @Produce json
// @Success 200 {array} events.Event
// @Router /api/v1/lead/activity [get]
func (h *LeadHandler) Activity(c *gin.Context) {
	c.JSON(http.StatusOK, h.publisher.Recent())
}

// GetLogo returns the configured logo
// @Summary Get logo
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Settings
// @Router /api/v1/settings/logo [get]
func (h *LeadHandler) GetLogo(c *gin.Context) {
	logo, err := h.settings.GetLogo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logoUrl": logo})
}

// SaveLogo replaces the logo
// @Summary Save logo
// @Tags Settings
// @Accept json
// @Param request body services.SaveLogoInput true "Logo"
// @Success 204
// @Router /api/v1/lead/settings/logo [put]
func (h *LeadHandler) SaveLogo(c *gin.Context) {
	var input services.SaveLogoInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.settings.SaveLogo(c.Request.Context(), input); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
