package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"promoter-service/internal/middleware"
	"promoter-service/internal/services"
)

// Router bundles the handlers and access settings mounted by RegisterRoutes
type Router struct {
	Promoters  *PromoterHandler
	Verifier   *VerifierHandler
	Complaints *ComplaintHandler
	Lead       *LeadHandler
	Reports    *ReportHandler

	// PromoterAuth checks the X-Promoter-Password header
	PromoterAuth middleware.PromoterAuthenticator

	LeadAccounts gin.Accounts
	CSAccounts   gin.Accounts

	// AuthRate limits password endpoints, e.g. "10-M"
	AuthRate string

	// Ready backs /ready when set
	Ready func(ctx context.Context) error
}

// RegisterRoutes mounts the API under /api/v1
func RegisterRoutes(r *gin.Engine, rt *Router) error {
	authRate := rt.AuthRate
	if authRate == "" {
		authRate = middleware.DefaultAuthRate
	}
	authLimit, err := middleware.RateLimit(authRate)
	if err != nil {
		return err
	}

	r.GET("/health", HealthCheck)
	r.GET("/ready", ReadinessCheck(rt.Ready))

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)
		api.GET("/ready", ReadinessCheck(rt.Ready))
		api.GET("/settings/logo", rt.Lead.GetLogo)

		promoters := api.Group("/promoters")
		{
			promoters.GET("", rt.Promoters.ListPromoters)
			promoters.POST("/:id/password", authLimit, rt.Promoters.SetPassword)
			promoters.POST("/:id/login", authLimit, rt.Promoters.Login)
			promoters.POST("/:id/password/reset", authLimit, rt.Promoters.ResetPassword)

			own := promoters.Group("/:id", middleware.RequirePromoterPassword(rt.PromoterAuth))
			{
				own.POST("/sales", rt.Promoters.SubmitSale)
				own.GET("/sales", rt.Promoters.ListSales)
				own.POST("/feedback", rt.Promoters.SubmitFeedback)
				own.GET("/feedback", rt.Promoters.ListFeedback)
			}
		}

		verifier := api.Group("/verifier")
		{
			verifier.GET("/sales", rt.Verifier.ListSales)
			verifier.GET("/sales/pending", rt.Verifier.ListPending)
			verifier.GET("/sales/code/:code", rt.Verifier.FindByCode)
			verifier.POST("/sales/:id/status", rt.Verifier.UpdateStatus)
		}

		cs := api.Group("/cs", gin.BasicAuth(rt.CSAccounts))
		{
			cs.POST("/complaints", rt.Complaints.SubmitComplaint)
			cs.GET("/complaints", rt.Complaints.ListActive)
		}

		lead := api.Group("/lead", gin.BasicAuth(rt.LeadAccounts))
		{
			lead.POST("/promoters", rt.Lead.CreatePromoter)
			lead.PUT("/promoters/:id", rt.Lead.RenamePromoter)
			lead.DELETE("/promoters/:id", rt.Lead.DeletePromoter)
			lead.PUT("/promoters/:id/floors", rt.Lead.SetFloors)
			lead.POST("/promoters/:id/floors/toggle", rt.Lead.ToggleFloor)

			lead.GET("/floors", rt.Lead.ListFloors)
			lead.POST("/floors", rt.Lead.CreateFloor)
			lead.DELETE("/floors/:id", rt.Lead.DeleteFloor)

			lead.GET("/complaints", rt.Complaints.ListActive)
			lead.GET("/complaints/all", rt.Complaints.ListComplaints)
			lead.POST("/complaints", rt.Complaints.SubmitInternal)
			lead.POST("/complaints/archive-resolved", rt.Complaints.ArchiveResolved)
			lead.POST("/complaints/:id/resolve", rt.Complaints.Resolve)
			lead.POST("/complaints/:id/archive", rt.Complaints.Archive)

			lead.GET("/dashboard", rt.Lead.Dashboard)
			lead.GET("/kpis", rt.Lead.KPIs)
			lead.GET("/activity", rt.Lead.Activity)

			lead.GET("/reports/:kind", rt.Reports.Report)
			lead.GET("/backup", rt.Reports.Backup)
			lead.POST("/restore", rt.Reports.Restore)

			lead.PUT("/settings/logo", rt.Lead.SaveLogo)
		}
	}

	return nil
}

// compile-time check that the promoter service can gate promoter routes
var _ middleware.PromoterAuthenticator = (*services.PromoterService)(nil)
