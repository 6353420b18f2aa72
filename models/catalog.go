package models

// Money is an amount in the destination's currency. Rates come from the
// catalog as whole units but markup can produce fractions.
type Money float64

type Tier string

const (
	TierBudget  Tier = "Budget"
	TierPremium Tier = "Premium"
)

// Valid reports whether t is one of the known hotel tiers.
func (t Tier) Valid() bool {
	return t == TierBudget || t == TierPremium
}

type RoomType struct {
	Name     string `json:"name" bson:"name"`
	Capacity int    `json:"capacity" bson:"capacity"`
	Rate     Money  `json:"rate" bson:"rate"`
}

type Hotel struct {
	Name      string     `json:"name" bson:"name"`
	Tier      Tier       `json:"tier" bson:"tier"`
	Type      string     `json:"type" bson:"type"` // meal plan code: EP/CP/MAP/AP
	Img       string     `json:"img" bson:"img"`
	RoomTypes []RoomType `json:"roomTypes" bson:"roomTypes"`
}

// HasRoomType reports whether rt is declared by the hotel.
func (h Hotel) HasRoomType(rt RoomType) bool {
	for _, r := range h.RoomTypes {
		if r == rt {
			return true
		}
	}
	return false
}

type Sightseeing struct {
	Name string `json:"name" bson:"name"`
	Desc string `json:"desc" bson:"desc"`
	Img  string `json:"img" bson:"img"`
}

type Vehicle struct {
	Name     string `json:"name" bson:"name"`
	Rate     Money  `json:"rate" bson:"rate"` // per day
	Capacity int    `json:"capacity" bson:"capacity"`
	Img      string `json:"img" bson:"img"`
}

// ItineraryPackage is a predefined (or composed) trip. Route[i] is the city
// for day i; the last entry is the departure day.
type ItineraryPackage struct {
	ID    string   `json:"id" bson:"id"`
	Name  string   `json:"name" bson:"name"`
	Img   string   `json:"img" bson:"img"`
	Days  int      `json:"days" bson:"days"`
	Route []string `json:"route" bson:"route"`
}

// Catalog is one destination's inventory. A loaded Catalog is never mutated;
// a refresh produces a new value.
type Catalog struct {
	HotelData       map[string][]Hotel       `json:"hotelData" bson:"hotelData"`
	SightseeingData map[string][]Sightseeing `json:"sightseeingData" bson:"sightseeingData"`
	VehicleData     []Vehicle                `json:"vehicleData" bson:"vehicleData"`
	Packages        []ItineraryPackage       `json:"packages" bson:"packages"`
}

// EmptyCatalog returns a catalog with all maps and lists allocated and empty.
func EmptyCatalog() *Catalog {
	return &Catalog{
		HotelData:       map[string][]Hotel{},
		SightseeingData: map[string][]Sightseeing{},
		VehicleData:     []Vehicle{},
		Packages:        []ItineraryPackage{},
	}
}

// HotelsIn returns the hotels of a city in catalog order. Safe on a nil catalog.
func (c *Catalog) HotelsIn(city string) []Hotel {
	if c == nil {
		return nil
	}
	return c.HotelData[city]
}

func (c *Catalog) SpotsIn(city string) []Sightseeing {
	if c == nil {
		return nil
	}
	return c.SightseeingData[city]
}

// Vehicle looks a vehicle up by its display name.
func (c *Catalog) Vehicle(name string) (Vehicle, bool) {
	if c == nil {
		return Vehicle{}, false
	}
	for _, v := range c.VehicleData {
		if v.Name == name {
			return v, true
		}
	}
	return Vehicle{}, false
}

func (c *Catalog) Package(id string) (ItineraryPackage, bool) {
	if c == nil {
		return ItineraryPackage{}, false
	}
	for _, p := range c.Packages {
		if p.ID == id {
			return p, true
		}
	}
	return ItineraryPackage{}, false
}

// Cities lists every city that has hotels or sightseeing, unsorted.
func (c *Catalog) Cities() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for city := range c.HotelData {
		if !seen[city] {
			seen[city] = true
			out = append(out, city)
		}
	}
	for city := range c.SightseeingData {
		if !seen[city] {
			seen[city] = true
			out = append(out, city)
		}
	}
	return out
}
