package models

import "github.com/shopspring/decimal"

// KPIStats summarizes a promoter's verified sales.
// Revenue stays zero until tickets carry a price.
type KPIStats struct {
	PromoterID       string          `json:"promoterId"`
	TotalKiddo       int             `json:"totalKiddo"`
	TotalExtreme     int             `json:"totalExtreme"`
	TotalIndividual  int             `json:"totalIndividual"`
	TotalEntry       int             `json:"totalEntry"`
	TotalSalesLeads  int             `json:"totalSalesLeads"`
	TotalMailCollect int             `json:"totalMailCollect"`
	Revenue          decimal.Decimal `json:"revenue"`
}
