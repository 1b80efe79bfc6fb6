package seeders

import "promoter-service/internal/models"

// DefaultPromoters returns the promoters written the first time the promoter
// collection is read and found absent.
func DefaultPromoters() []models.Promoter {
	return []models.Promoter{
		{ID: "p1", Name: "Alice Johnson", AssignedFloors: []string{"Ground Floor - Main Entrance"}},
		{ID: "p2", Name: "Bob Smith", AssignedFloors: []string{"1st Floor - Food Court"}},
	}
}

// DefaultFloors returns the initial floor list
func DefaultFloors() []models.Floor {
	return []models.Floor{
		{ID: "f1", Name: "Ground Floor - Main Entrance"},
		{ID: "f2", Name: "1st Floor - Food Court"},
		{ID: "f3", Name: "2nd Floor - Arcade Zone"},
	}
}

// DefaultSettings returns the single empty settings record
func DefaultSettings() []models.Settings {
	return []models.Settings{{}}
}
