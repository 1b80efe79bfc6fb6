package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promoter-service/internal/middleware"
	"promoter-service/internal/services"
)

// PromoterHandler serves the promoter-facing endpoints
type PromoterHandler struct {
	promoters *services.PromoterService
	sales     *services.SalesService
	feedback  *services.FeedbackService
}

// NewPromoterHandler creates a new PromoterHandler
func NewPromoterHandler(promoters *services.PromoterService, sales *services.SalesService, feedback *services.FeedbackService) *PromoterHandler {
	return &PromoterHandler{
		promoters: promoters,
		sales:     sales,
		feedback:  feedback,
	}
}

// ListPromoters lists promoter profiles for the login picker
// @Summary List promoters
// @Tags Promoters
// @Produce json
// @Success 200 {array} models.PromoterProfile
// @Router /api/v1/promoters [get]
func (h *PromoterHandler) ListPromoters(c *gin.Context) {
	profiles, err := h.promoters.ListProfiles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// SetPassword creates a promoter's password
// @Summary Create promoter password
// @Tags Promoters
// @Accept json
// @Param id path string true "Promoter ID"
// @Param request body services.SetPasswordInput true "Password"
// @Success 204
// @Router /api/v1/promoters/{id}/password [post]
func (h *PromoterHandler) SetPassword(c *gin.Context) {
	var input services.SetPasswordInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.promoters.SetPassword(c.Request.Context(), c.Param("id"), input); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Login checks a promoter's password
// @Summary Promoter login
// @Tags Promoters
// @Accept json
// @Produce json
// @Param id path string true "Promoter ID"
// @Param request body services.LoginInput true "Password"
// @Success 200 {object} models.PromoterProfile
// @Router /api/v1/promoters/{id}/login [post]
func (h *PromoterHandler) Login(c *gin.Context) {
	var input services.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	promoter, err := h.promoters.Login(c.Request.Context(), c.Param("id"), input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, promoter.Profile())
}

// ResetPassword clears a promoter's password with the admin secret
// @Summary Reset promoter password
// @Tags Promoters
// @Accept json
// @Param id path string true "Promoter ID"
// @Param request body services.ResetPasswordInput true "Admin secret"
// @Success 204
// @Router /api/v1/promoters/{id}/password/reset [post]
func (h *PromoterHandler) ResetPassword(c *gin.Context) {
	var input services.ResetPasswordInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.promoters.ResetPassword(c.Request.Context(), c.Param("id"), input); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitSale records a sale for the authenticated promoter
// @Summary Submit sale
// @Tags Promoters
// @Accept json
// @Produce json
// @Param id path string true "Promoter ID"
// @Param X-Promoter-Password header string true "Promoter password"
// @Param request body services.SubmitSaleInput true "Sale"
// @Success 201 {object} models.SaleRecord
// @Router /api/v1/promoters/{id}/sales [post]
func (h *PromoterHandler) SubmitSale(c *gin.Context) {
	promoter, ok := middleware.CurrentPromoter(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "promoter is not authenticated"})
		return
	}

	var input services.SubmitSaleInput
	if !bindJSON(c, &input) {
		return
	}

	sale, err := h.sales.SubmitSale(c.Request.Context(), promoter.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// ListSales returns the authenticated promoter's sales, newest first
// @Summary List own sales
// @Tags Promoters
// @Produce json
// @Param id path string true "Promoter ID"
// @Param X-Promoter-Password header string true "Promoter password"
// @Success 200 {array} models.SaleRecord
// @Router /api/v1/promoters/{id}/sales [get]
func (h *PromoterHandler) ListSales(c *gin.Context) {
	promoter, ok := middleware.CurrentPromoter(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "promoter is not authenticated"})
		return
	}

	sales, err := h.sales.ListPromoterSales(c.Request.Context(), promoter.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// SubmitFeedback records customer feedback for the authenticated promoter
// @Summary Submit feedback
// @Tags Promoters
// @Accept json
// @Produce json
// @Param id path string true "Promoter ID"
// @Param X-Promoter-Password header string true "Promoter password"
// @Param request body services.SubmitFeedbackInput true "Feedback"
// @Success 201 {object} models.FeedbackRecord
// @Router /api/v1/promoters/{id}/feedback [post]
func (h *PromoterHandler) SubmitFeedback(c *gin.Context) {
	promoter, ok := middleware.CurrentPromoter(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "promoter is not authenticated"})
		return
	}

	var input services.SubmitFeedbackInput
	if !bindJSON(c, &input) {
		return
	}

	feedback, err := h.feedback.SubmitFeedback(c.Request.Context(), promoter.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, feedback)
}

// ListFeedback returns the authenticated promoter's feedback, newest first
// @Summary List own feedback
// @Tags Promoters
// @Produce json
// @Param id path string true "Promoter ID"
// @Param X-Promoter-Password header string true "Promoter password"
// @Success 200 {array} models.FeedbackRecord
// @Router /api/v1/promoters/{id}/feedback [get]
func (h *PromoterHandler) ListFeedback(c *gin.Context) {
	promoter, ok := middleware.CurrentPromoter(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "promoter is not authenticated"})
		return
	}

	feedback, err := h.feedback.ListPromoterFeedbacks(c.Request.Context(), promoter.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}
