package catalog

import (
	"encoding/json"
	"fmt"
	"log"

	"tripdeck/models"
)

// normalize fills nil collections and derives missing package day counts so
// that every snapshot has the same shape. Rooms with a capacity below 1 are
// kept; the room allocation treats them as single occupancy.
func normalize(c *models.Catalog) *models.Catalog {
	if c == nil {
		return models.EmptyCatalog()
	}
	if c.HotelData == nil {
		c.HotelData = map[string][]models.Hotel{}
	}
	if c.SightseeingData == nil {
		c.SightseeingData = map[string][]models.Sightseeing{}
	}
	if c.VehicleData == nil {
		c.VehicleData = []models.Vehicle{}
	}
	if c.Packages == nil {
		c.Packages = []models.ItineraryPackage{}
	}

	for city, hotels := range c.HotelData {
		for _, h := range hotels {
			for _, rt := range h.RoomTypes {
				if rt.Capacity < 1 {
					log.Printf("[Catalog] %s / %s / %s has capacity %d, treated as 1", city, h.Name, rt.Name, rt.Capacity)
				}
			}
		}
	}
	for i := range c.Packages {
		p := &c.Packages[i]
		if p.Route == nil {
			p.Route = []string{}
		}
		if p.Days == 0 {
			p.Days = len(p.Route)
		}
	}
	return c
}

// decodeRoute accepts a route stored either as a JSON array or as a string
// holding one.
func decodeRoute(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var route []string
	if err := json.Unmarshal(raw, &route); err == nil {
		return route, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode route: %w", err)
	}
	if err := json.Unmarshal([]byte(s), &route); err != nil {
		return nil, fmt.Errorf("decode route string: %w", err)
	}
	return route, nil
}
