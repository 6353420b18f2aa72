// Package composer builds a custom itinerary one day at a time and folds it
// into a package that prices and renders like a predefined one.
package composer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tripdeck/models"
	"tripdeck/pricing"
)

const CustomName = "Your Custom Journey"

// FallbackImg is shown for packages without their own picture.
const FallbackImg = "https://images.unsplash.com/photo-1609920658906-8223bd289001?auto=format&fit=crop&w=800&q=80"

var (
	ErrNoCity          = errors.New("no city staged")
	ErrNoDays          = errors.New("custom itinerary has no days")
	ErrIndexOutOfRange = errors.New("day index out of range")
	ErrRoomNotInHotel  = errors.New("room type does not belong to hotel")
)

// Stage is the selection being prepared for the next day.
type Stage struct {
	City        string           `json:"city"`
	Hotel       *models.Hotel    `json:"hotel,omitempty"`
	RoomType    *models.RoomType `json:"roomType,omitempty"`
	Sightseeing []string         `json:"sightseeing"`
}

func (s Stage) validate() error {
	if s.RoomType == nil {
		return nil
	}
	if s.Hotel == nil || !s.Hotel.HasRoomType(*s.RoomType) {
		return ErrRoomNotInHotel
	}
	return nil
}

type Builder struct {
	days  []models.CustomDay
	stage Stage
}

func NewBuilder() *Builder {
	return &Builder{days: []models.CustomDay{}, stage: Stage{Sightseeing: []string{}}}
}

func (b *Builder) Stage() Stage {
	st := b.stage
	st.Sightseeing = append([]string{}, b.stage.Sightseeing...)
	return st
}

// SetStage replaces the staged selection. A room type must come with the
// hotel that declares it.
func (b *Builder) SetStage(st Stage) error {
	if err := st.validate(); err != nil {
		return err
	}
	if st.Sightseeing == nil {
		st.Sightseeing = []string{}
	}
	b.stage = st
	return nil
}

// SetCity stages a city. Changing city drops the staged hotel, room and spots.
func (b *Builder) SetCity(city string) {
	if city == b.stage.City {
		return
	}
	b.stage = Stage{City: city, Sightseeing: []string{}}
}

// SelectHotel stages a hotel and clears the room type chosen for the previous one.
func (b *Builder) SelectHotel(h models.Hotel) {
	b.stage.Hotel = &h
	b.stage.RoomType = nil
}

func (b *Builder) SelectRoomType(rt models.RoomType) error {
	if b.stage.Hotel == nil || !b.stage.Hotel.HasRoomType(rt) {
		return ErrRoomNotInHotel
	}
	b.stage.RoomType = &rt
	return nil
}

// ToggleSightseeing adds the spot if it is not staged yet and removes it otherwise.
func (b *Builder) ToggleSightseeing(name string) {
	for i, s := range b.stage.Sightseeing {
		if s == name {
			b.stage.Sightseeing = append(b.stage.Sightseeing[:i], b.stage.Sightseeing[i+1:]...)
			return
		}
	}
	b.stage.Sightseeing = append(b.stage.Sightseeing, name)
}

// Append turns the stage into a new day. The staged city is kept so the next
// day can continue a multi-night stay; hotel, room and spots are cleared.
func (b *Builder) Append() (models.CustomDay, error) {
	if b.stage.City == "" {
		return models.CustomDay{}, ErrNoCity
	}
	day := models.CustomDay{
		ID:               uuid.NewString(),
		City:             b.stage.City,
		Hotel:            b.stage.Hotel,
		SelectedRoomType: b.stage.RoomType,
		Sightseeing:      append([]string{}, b.stage.Sightseeing...),
	}
	b.days = append(b.days, day)
	b.stage = Stage{City: b.stage.City, Sightseeing: []string{}}
	return day, nil
}

// DuplicateAt inserts a copy of day i right after it, under a new id.
func (b *Builder) DuplicateAt(i int) (models.CustomDay, error) {
	if i < 0 || i >= len(b.days) {
		return models.CustomDay{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	dup := b.days[i]
	dup.ID = uuid.NewString()
	dup.Sightseeing = append([]string{}, dup.Sightseeing...)

	b.days = append(b.days, models.CustomDay{})
	copy(b.days[i+2:], b.days[i+1:])
	b.days[i+1] = dup
	return dup, nil
}

// RemoveAt deletes day i. Remaining days keep their content.
func (b *Builder) RemoveAt(i int) error {
	if i < 0 || i >= len(b.days) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	b.days = append(b.days[:i], b.days[i+1:]...)
	return nil
}

func (b *Builder) Days() []models.CustomDay {
	out := make([]models.CustomDay, len(b.days))
	copy(out, b.days)
	return out
}

// Estimate is the running cost while composing. Transport counts at least one
// day so an empty draft still shows vehicle cost; only days with both a hotel
// and a room type add lodging.
func (b *Builder) Estimate(c *models.Catalog, fleet []models.FleetItem, pax int) pricing.Breakdown {
	days := len(b.days)
	if days < 1 {
		days = 1
	}
	out := pricing.Breakdown{Transport: pricing.TransportCost(c, fleet, days)}
	for _, d := range b.days {
		if d.Hotel == nil || d.SelectedRoomType == nil {
			continue
		}
		rt := d.SelectedRoomType
		out.Lodging += rt.Rate * models.Money(pricing.RoomsNeeded(pax, rt.Capacity))
	}
	return out
}

// Finalize folds the drafted days into a package. It fails only when there is
// nothing to fold.
func (b *Builder) Finalize() (models.ItineraryPackage, models.HotelOverrides, models.SightseeingOverrides, error) {
	if len(b.days) == 0 {
		return models.ItineraryPackage{}, nil, nil, ErrNoDays
	}
	pkg, hotels, spots := Finalize(b.days)
	return pkg, hotels, spots, nil
}

// Finalize builds the custom package and its override maps from days.
//
// Hotel overrides are written only for days with both a hotel and a room type.
// Sightseeing overrides are written for every day, empty when nothing was
// picked, so downstream "explicitly none" differs from "not chosen".
// Override keys are the positions in days at the time of the call.
func Finalize(days []models.CustomDay) (models.ItineraryPackage, models.HotelOverrides, models.SightseeingOverrides) {
	route := make([]string, len(days))
	hotels := models.HotelOverrides{}
	spots := models.SightseeingOverrides{}

	for i, d := range days {
		route[i] = d.City
		if d.Hotel != nil && d.SelectedRoomType != nil {
			hotels[i] = models.StayOverride{Hotel: *d.Hotel, RoomType: *d.SelectedRoomType}
		}
		spots[i] = append([]string{}, d.Sightseeing...)
	}

	pkg := models.ItineraryPackage{
		ID:    models.CustomPackageID,
		Name:  CustomName,
		Img:   FallbackImg,
		Days:  len(route),
		Route: route,
	}
	return pkg, hotels, spots
}
