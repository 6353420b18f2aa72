package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"tripdeck/models"
)

// PostgresLoader reads inventory from the relational schema the booking
// back office writes: hotels and sightseeing belong to a location, room types
// belong to a hotel, package routes are JSON arrays of city names.
type PostgresLoader struct {
	DB *sql.DB
}

func NewPostgresLoader(db *sql.DB) *PostgresLoader {
	return &PostgresLoader{DB: db}
}

const (
	hotelsQuery = `
	SELECT h.id::text, h.name, COALESCE(h.type, ''), COALESCE(h.tier, ''), COALESCE(h.image_url, ''), l.name
	FROM hotels h
	JOIN locations l ON l.id = h.location_id
	ORDER BY h.id;
	`
	roomTypesQuery = `
	SELECT hotel_id::text, name, capacity, rate
	FROM room_types
	ORDER BY hotel_id, id;
	`
	sightseeingQuery = `
	SELECT s.name, COALESCE(s.description, ''), COALESCE(s.image_url, ''), l.name
	FROM sightseeing s
	JOIN locations l ON l.id = s.location_id
	ORDER BY s.id;
	`
	vehiclesQuery = `
	SELECT name, rate, capacity, COALESCE(image_url, '')
	FROM vehicles
	ORDER BY id;
	`
	packagesQuery = `
	SELECT id::text, name, COALESCE(image_url, ''), days, route::text
	FROM packages
	ORDER BY id;
	`
)

func (l *PostgresLoader) Load(ctx context.Context) (*models.Catalog, error) {
	if l.DB == nil {
		return nil, ErrEmptySource
	}
	c := models.EmptyCatalog()

	rooms, err := l.roomTypes(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.hotels(ctx, c, rooms); err != nil {
		return nil, err
	}
	if err := l.sightseeing(ctx, c); err != nil {
		return nil, err
	}
	if err := l.vehicles(ctx, c); err != nil {
		return nil, err
	}
	if err := l.packages(ctx, c); err != nil {
		return nil, err
	}
	return normalize(c), nil
}

func (l *PostgresLoader) roomTypes(ctx context.Context) (map[string][]models.RoomType, error) {
	rows, err := l.DB.QueryContext(ctx, roomTypesQuery)
	if err != nil {
		return nil, fmt.Errorf("load room types: query: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.RoomType)
	for rows.Next() {
		var hotelID string
		var rt models.RoomType
		var rate float64
		if err := rows.Scan(&hotelID, &rt.Name, &rt.Capacity, &rate); err != nil {
			return nil, fmt.Errorf("load room types: scan: %w", err)
		}
		rt.Rate = models.Money(rate)
		out[hotelID] = append(out[hotelID], rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load room types: rows: %w", err)
	}
	return out, nil
}

func (l *PostgresLoader) hotels(ctx context.Context, c *models.Catalog, rooms map[string][]models.RoomType) error {
	rows, err := l.DB.QueryContext(ctx, hotelsQuery)
	if err != nil {
		return fmt.Errorf("load hotels: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, tier, city string
		var h models.Hotel
		if err := rows.Scan(&id, &h.Name, &h.Type, &tier, &h.Img, &city); err != nil {
			return fmt.Errorf("load hotels: scan: %w", err)
		}
		h.Tier = models.Tier(tier)
		h.RoomTypes = rooms[id]
		if h.RoomTypes == nil {
			h.RoomTypes = []models.RoomType{}
		}
		c.HotelData[city] = append(c.HotelData[city], h)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load hotels: rows: %w", err)
	}
	return nil
}

func (l *PostgresLoader) sightseeing(ctx context.Context, c *models.Catalog) error {
	rows, err := l.DB.QueryContext(ctx, sightseeingQuery)
	if err != nil {
		return fmt.Errorf("load sightseeing: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Sightseeing
		var city string
		if err := rows.Scan(&s.Name, &s.Desc, &s.Img, &city); err != nil {
			return fmt.Errorf("load sightseeing: scan: %w", err)
		}
		c.SightseeingData[city] = append(c.SightseeingData[city], s)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load sightseeing: rows: %w", err)
	}
	return nil
}

func (l *PostgresLoader) vehicles(ctx context.Context, c *models.Catalog) error {
	rows, err := l.DB.QueryContext(ctx, vehiclesQuery)
	if err != nil {
		return fmt.Errorf("load vehicles: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v models.Vehicle
		var rate float64
		if err := rows.Scan(&v.Name, &rate, &v.Capacity, &v.Img); err != nil {
			return fmt.Errorf("load vehicles: scan: %w", err)
		}
		v.Rate = models.Money(rate)
		c.VehicleData = append(c.VehicleData, v)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load vehicles: rows: %w", err)
	}
	return nil
}

func (l *PostgresLoader) packages(ctx context.Context, c *models.Catalog) error {
	rows, err := l.DB.QueryContext(ctx, packagesQuery)
	if err != nil {
		return fmt.Errorf("load packages: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.ItineraryPackage
		var route sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Img, &p.Days, &route); err != nil {
			return fmt.Errorf("load packages: scan: %w", err)
		}
		if p.Route, err = decodeRoute([]byte(route.String)); err != nil {
			return fmt.Errorf("load packages: package %s: %w", p.ID, err)
		}
		c.Packages = append(c.Packages, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load packages: rows: %w", err)
	}
	return nil
}
