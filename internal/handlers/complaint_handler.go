package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promoter-service/internal/services"
)

// ComplaintHandler serves complaint intake for customer service and
// complaint management for the lead
type ComplaintHandler struct {
	complaints *services.ComplaintService
}

// NewComplaintHandler creates a new ComplaintHandler
func NewComplaintHandler(complaints *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints}
}

// SubmitComplaint logs a customer complaint
// @Summary Submit complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Param request body services.SubmitComplaintInput true "Complaint"
// @Success 201 {object} models.ComplaintRecord
// @Router /api/v1/cs/complaints [post]
func (h *ComplaintHandler) SubmitComplaint(c *gin.Context) {
	var input services.SubmitComplaintInput
	if !bindJSON(c, &input) {
		return
	}

	complaint, err := h.complaints.SubmitComplaint(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

// SubmitInternal logs an issue raised by the lead
// @Summary Submit internal complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Param request body services.InternalComplaintInput true "Issue"
// @Success 201 {object} models.ComplaintRecord
// @Router /api/v1/lead/complaints [post]
func (h *ComplaintHandler) SubmitInternal(c *gin.Context) {
	var input services.InternalComplaintInput
	if !bindJSON(c, &input) {
		return
	}

	complaint, err := h.complaints.SubmitInternalComplaint(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

// ListComplaints lists every complaint, archived ones included
// @Summary List all complaints
// @Tags Complaints
// @Produce json
// @Success 200 {array} models.ComplaintRecord
// @Router /api/v1/lead/complaints/all [get]
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	complaints, err := h.complaints.ListComplaints(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// ListActive lists complaints that are not archived
// @Summary List active complaints
// @Tags Complaints
// @Produce json
// @Success 200 {array} models.ComplaintRecord
// @Router /api/v1/lead/complaints [get]
func (h *ComplaintHandler) ListActive(c *gin.Context) {
	complaints, err := h.complaints.ListActiveComplaints(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// Resolve resolves a complaint with notes
// @Summary Resolve complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param request body services.ResolveComplaintInput true "Resolution"
// @Success 200 {object} models.ComplaintRecord
// @Router /api/v1/lead/complaints/{id}/resolve [post]
func (h *ComplaintHandler) Resolve(c *gin.Context) {
	var input services.ResolveComplaintInput
	if !bindJSON(c, &input) {
		return
	}

	complaint, err := h.complaints.ResolveComplaint(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	if complaint == nil {
		respondError(c, errComplaintNotFound)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// Archive archives one resolved complaint
// @Summary Archive complaint
// @Tags Complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} models.ComplaintRecord
// @Router /api/v1/lead/complaints/{id}/archive [post]
func (h *ComplaintHandler) Archive(c *gin.Context) {
	complaint, err := h.complaints.ArchiveComplaint(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if complaint == nil {
		respondError(c, errComplaintNotFound)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// ArchiveResolved archives every resolved complaint
// @Summary Clear resolved complaints
// @Tags Complaints
// @Produce json
// @Success 200 {object} map[string]int
// @Router /api/v1/lead/complaints/archive-resolved [post]
func (h *ComplaintHandler) ArchiveResolved(c *gin.Context) {
	count, err := h.complaints.ArchiveResolved(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"archived": count})
}
