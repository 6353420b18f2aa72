package pricing

import "tripdeck/models"

func testCatalog() *models.Catalog {
	return &models.Catalog{
		HotelData: map[string][]models.Hotel{
			"Bhuj": {
				{Name: "Prince Residency", Tier: models.TierBudget, Type: "CP", RoomTypes: []models.RoomType{
					{Name: "Deluxe", Capacity: 2, Rate: 2500},
					{Name: "Family Suite", Capacity: 4, Rate: 4200},
				}},
				{Name: "Regenta Resort", Tier: models.TierPremium, Type: "MAP", RoomTypes: []models.RoomType{
					{Name: "Club Room", Capacity: 2, Rate: 5500},
				}},
			},
			"Dhordo": {
				{Name: "Rann Tent City", Tier: models.TierBudget, Type: "AP", RoomTypes: []models.RoomType{
					{Name: "Swiss Tent", Capacity: 3, Rate: 6000},
				}},
			},
			"Lakhpat": {
				{Name: "Fort Guest House", Tier: models.TierBudget, Type: "EP"},
			},
		},
		SightseeingData: map[string][]models.Sightseeing{},
		VehicleData: []models.Vehicle{
			{Name: "Sedan (Dzire)", Rate: 2000, Capacity: 4},
			{Name: "Innova", Rate: 3000, Capacity: 6},
			{Name: "Tempo Traveller", Rate: 4500, Capacity: 12},
		},
		Packages: []models.ItineraryPackage{
			{ID: "rann-5d", Name: "White Rann Escape", Days: 5, Route: []string{"Bhuj", "Bhuj", "Dhordo", "Dhordo", "Mandvi"}},
		},
	}
}
