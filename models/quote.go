package models

import "time"

// Quote is the renderer payload: ordered days plus pricing, so that neither the
// text nor the PDF export has to derive any price.
type Quote struct {
	Title       string         `json:"title"`
	Destination string         `json:"destination"`
	PackageID   string         `json:"packageId"`
	GuestName   string         `json:"guestName"`
	PreparedBy  string         `json:"preparedBy,omitempty"`
	Pax         int            `json:"pax"`
	Tier        Tier           `json:"tier"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     time.Time      `json:"endDate"`
	CoverImg    string         `json:"coverImg,omitempty"`
	Stays       []StaySegment  `json:"stays"`
	Days        []QuoteDay     `json:"days"`
	Fleet       []QuoteVehicle `json:"fleet"`
	Pricing     PricingResult  `json:"pricing"`
	ShareURL    string         `json:"shareUrl,omitempty"`
}

type QuoteDay struct {
	Day          int           `json:"day"` // 1-based
	Date         time.Time     `json:"date"`
	City         string        `json:"city"`
	HotelName    string        `json:"hotelName,omitempty"`
	RoomTypeName string        `json:"roomTypeName,omitempty"`
	RoomsNeeded  int           `json:"roomsNeeded"`
	MealPlan     string        `json:"mealPlan,omitempty"`
	Sightseeing  []Sightseeing `json:"sightseeing"`
	Departure    bool          `json:"departure"`
}

type QuoteVehicle struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
