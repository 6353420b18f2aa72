package models

import "time"

// CustomPackageID identifies the package produced by the custom builder.
const CustomPackageID = "custom"

// FleetItem is one line of the vehicle allocation. Name refers to Vehicle.Name.
type FleetItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StayOverride pins the hotel and room type for one day of a route.
// RoomType must belong to Hotel.RoomTypes.
type StayOverride struct {
	Hotel    Hotel    `json:"hotel"`
	RoomType RoomType `json:"roomType"`
}

// HotelOverrides is keyed by 0-based day index within the package route.
// A missing key means "use the tier default for that day's city".
type HotelOverrides map[int]StayOverride

// Clone returns an independent copy. Catalog slices inside a StayOverride
// are shared since snapshots are never mutated.
func (o HotelOverrides) Clone() HotelOverrides {
	out := make(HotelOverrides, len(o))
	for day, so := range o {
		out[day] = so
	}
	return out
}

// SightseeingOverrides is keyed by day index. A present key with an empty
// list means "explicitly none"; a missing key means "show every spot".
type SightseeingOverrides map[int][]string

// Clone returns a deep copy, keeping empty selections non-nil.
func (o SightseeingOverrides) Clone() SightseeingOverrides {
	out := make(SightseeingOverrides, len(o))
	for day, spots := range o {
		out[day] = append([]string{}, spots...)
	}
	return out
}

// CustomDay is a builder entry before it is folded into a package.
type CustomDay struct {
	ID               string    `json:"id"`
	City             string    `json:"city"`
	Hotel            *Hotel    `json:"hotel,omitempty"`
	SelectedRoomType *RoomType `json:"selectedRoomType,omitempty"`
	Sightseeing      []string  `json:"sightseeing"`
}

// StaySegment groups consecutive route days spent in the same city.
type StaySegment struct {
	City     string `json:"city"`
	FirstDay int    `json:"firstDay"`
	Nights   int    `json:"nights"`
}

// DayView is everything a renderer needs for one day of the timeline.
type DayView struct {
	Index         int           `json:"index"`
	Date          time.Time     `json:"date"`
	City          string        `json:"city"`
	Hotel         *Hotel        `json:"hotel,omitempty"`
	RoomType      *RoomType     `json:"roomType,omitempty"`
	RoomsNeeded   int           `json:"roomsNeeded"`
	MealPlanLabel string        `json:"mealPlanLabel"`
	Sightseeing   []Sightseeing `json:"sightseeing"`
	Overridden    bool          `json:"overridden"`
	Departure     bool          `json:"departure"`
}
