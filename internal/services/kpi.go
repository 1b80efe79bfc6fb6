package services

import (
	"github.com/shopspring/decimal"

	"promoter-service/internal/models"
)

// AggregateKPIs summarizes verified sales per promoter. Every promoter gets
// exactly one entry, in input order, zero-filled when it has no verified sales.
// Pending and rejected sales never count.
func AggregateKPIs(promoters []models.Promoter, sales []models.SaleRecord) []models.KPIStats {
	totals := make(map[string]*models.KPIStats, len(promoters))
	for _, p := range promoters {
		if totals[p.ID] == nil {
			totals[p.ID] = &models.KPIStats{PromoterID: p.ID, Revenue: decimal.Zero}
		}
	}

	for _, sale := range sales {
		if sale.Status != models.SaleStatusVerified {
			continue
		}
		kpi := totals[sale.PromoterID]
		if kpi == nil {
			continue
		}
		kpi.TotalKiddo += sale.Quantity(models.TicketKiddo)
		kpi.TotalExtreme += sale.Quantity(models.TicketExtreme)
		kpi.TotalIndividual += sale.Quantity(models.TicketIndividual)
		kpi.TotalEntry += sale.Quantity(models.TicketEntryOnly)
		kpi.TotalSalesLeads++
		if sale.Customer.HasEmail() {
			kpi.TotalMailCollect++
		}
	}

	stats := make([]models.KPIStats, 0, len(promoters))
	for _, p := range promoters {
		stats = append(stats, *totals[p.ID])
	}
	return stats
}
