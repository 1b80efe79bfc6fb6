package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"promoter-service/internal/reports"
	"promoter-service/internal/repository"
	"promoter-service/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves report downloads and backup/restore
type ReportHandler struct {
	repo   repository.RepositoryInterface
	backup *services.BackupService
	loc    *time.Location
	now    func() time.Time
}

// NewReportHandler creates a new ReportHandler. Report days are calendar days in loc.
func NewReportHandler(repo repository.RepositoryInterface, backup *services.BackupService, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ReportHandler{
		repo:   repo,
		backup: backup,
		loc:    loc,
		now:    time.Now,
	}
}

// Report exports complaints, sales or feedback for a day range
// @Summary Download report
// @Tags Reports
// @Produce text/csv
// @Param kind path string true "complaints, sales or feedback"
// @Param start query string true "First day, YYYY-MM-DD"
// @Param end query string true "Last day, YYYY-MM-DD"
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file
// @Router /api/v1/lead/reports/{kind} [get]
func (h *ReportHandler) Report(c *gin.Context) {
	kind, ok := reports.ParseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown report %q", c.Param("kind"))})
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	rng, err := reports.ParseDayRange(c.Query("start"), c.Query("end"), h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.build(c, kind, rng)
	if err != nil {
		respondError(c, err)
		return
	}
	if report.Empty() {
		c.JSON(http.StatusNotFound, gin.H{"error": report.EmptyMessage()})
		return
	}

	if format == "xlsx" {
		body, err := report.XLSX()
		if err != nil {
			respondError(c, err)
			return
		}
		attachment(c, report.Filename("xlsx"))
		c.Data(http.StatusOK, xlsxContentType, body)
		return
	}

	attachment(c, report.Filename("csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", report.CSV())
}

func (h *ReportHandler) build(c *gin.Context, kind reports.Kind, rng reports.DayRange) (*reports.Report, error) {
	ctx := c.Request.Context()
	switch kind {
	case reports.KindComplaints:
		records, err := h.repo.ListComplaints(ctx)
		if err != nil {
			return nil, err
		}
		return reports.Complaints(records, rng, h.loc), nil
	case reports.KindSales:
		records, err := h.repo.ListSales(ctx)
		if err != nil {
			return nil, err
		}
		return reports.Sales(records, rng, h.loc), nil
	default:
		records, err := h.repo.ListFeedbacks(ctx)
		if err != nil {
			return nil, err
		}
		return reports.Feedback(records, rng, h.loc), nil
	}
}

// Backup downloads every collection as one JSON document
// @Summary Download backup
// @Tags Backup
// @Produce json
// @Success 200 {object} models.BackupDocument
// @Router /api/v1/lead/backup [get]
func (h *ReportHandler) Backup(c *gin.Context) {
	body, err := h.backup.ExportJSON(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	attachment(c, services.BackupFilename(h.now().In(h.loc)))
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Restore overwrites collections from an uploaded backup document.
// Collections written before a failure stay written and are listed in the response.
// @Summary Restore backup
// @Tags Backup
// @Accept json
// @Produce json
// @Param request body models.BackupDocument true "Backup document"
// @Success 200 {object} map[string][]string
// @Router /api/v1/lead/restore [post]
func (h *ReportHandler) Restore(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	restored, err := h.backup.Restore(c.Request.Context(), data)
	if restored == nil {
		restored = []string{}
	}
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error(), "restored": restored})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": restored})
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
