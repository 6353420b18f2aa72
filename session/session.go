// Package session holds one operator's itinerary being priced and edited.
// A Session is not safe for concurrent use; Store serialises access.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripdeck/composer"
	"tripdeck/fleet"
	"tripdeck/models"
	"tripdeck/pricing"
)

const DefaultGuestName = "Guest"

var (
	ErrNotFound       = errors.New("session not found")
	ErrNoPackage      = errors.New("no package selected")
	ErrUnknownPackage = errors.New("unknown package")
	ErrDayOutOfRange  = errors.New("day index out of range")
	ErrRoomNotInHotel = errors.New("room type does not belong to hotel")
	ErrInvalidPax     = errors.New("pax must not be negative")
	ErrInvalidTier    = errors.New("unknown tier")
	ErrInvalidMarkup  = errors.New("unknown markup type")
	ErrNoBuilder      = errors.New("custom builder is not open")
)

type Session struct {
	ID        string
	GuestName string
	StartDate time.Time
	Pax       int
	Tier      models.Tier

	PackageID            string
	Custom               *models.ItineraryPackage
	HotelOverrides       models.HotelOverrides
	SightseeingOverrides models.SightseeingOverrides
	Markup               models.Markup

	Fleet   *fleet.Manager
	Builder *composer.Builder

	// overrides authored in the builder, restored when custom is reselected
	customHotels models.HotelOverrides
	customSpots  models.SightseeingOverrides

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New starts an itinerary with an automatic fleet for pax travellers.
func New(guestName string, startDate time.Time, pax int) (*Session, error) {
	if pax < 0 {
		return nil, ErrInvalidPax
	}
	if guestName == "" {
		guestName = DefaultGuestName
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}
	now := time.Now()
	return &Session{
		ID:                   uuid.NewString(),
		GuestName:            guestName,
		StartDate:            truncateDay(startDate),
		Pax:                  pax,
		Tier:                 models.TierBudget,
		HotelOverrides:       models.HotelOverrides{},
		SightseeingOverrides: models.SightseeingOverrides{},
		Markup:               models.Markup{Type: models.MarkupPercent},
		Fleet:                fleet.NewManager(pax),
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Session) touch() { s.UpdatedAt = time.Now() }

// SetPax changes the party size; the fleet follows unless edited by hand.
func (s *Session) SetPax(pax int) error {
	if pax < 0 {
		return ErrInvalidPax
	}
	s.Pax = pax
	s.Fleet.SyncPax(pax)
	s.touch()
	return nil
}

func (s *Session) SetMeta(guestName string, startDate time.Time) {
	if guestName != "" {
		s.GuestName = guestName
	}
	if !startDate.IsZero() {
		s.StartDate = truncateDay(startDate)
	}
	s.touch()
}

// AddVehicle appends a sedan. Any fleet edit stops the fleet following pax.
func (s *Session) AddVehicle() models.FleetItem {
	s.touch()
	return s.Fleet.Add()
}

func (s *Session) UpdateVehicle(id string, u fleet.Update) (models.FleetItem, bool) {
	s.touch()
	return s.Fleet.Update(id, u)
}

func (s *Session) RemoveVehicle(id string) bool {
	s.touch()
	return s.Fleet.Remove(id)
}

// SelectPackage opens a package for editing at a tier and resets the markup
// value. A predefined package starts with no overrides; the custom package
// gets back the overrides it was finalized with.
func (s *Session) SelectPackage(c *models.Catalog, id string, tier models.Tier) error {
	if !tier.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTier, tier)
	}
	if id == models.CustomPackageID {
		if s.Custom == nil {
			return fmt.Errorf("%w: %q", ErrUnknownPackage, id)
		}
	} else if _, ok := c.Package(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPackage, id)
	}
	s.PackageID = id
	s.Tier = tier
	if id == models.CustomPackageID {
		s.HotelOverrides = s.customHotels.Clone()
		s.SightseeingOverrides = s.customSpots.Clone()
	} else {
		s.HotelOverrides = models.HotelOverrides{}
		s.SightseeingOverrides = models.SightseeingOverrides{}
	}
	s.Markup.Value = 0
	s.touch()
	return nil
}

// ActivePackage returns the package being edited. A predefined package is
// looked up in the given snapshot, so a refresh that drops it closes it.
func (s *Session) ActivePackage(c *models.Catalog) (models.ItineraryPackage, bool) {
	switch s.PackageID {
	case "":
		return models.ItineraryPackage{}, false
	case models.CustomPackageID:
		if s.Custom == nil {
			return models.ItineraryPackage{}, false
		}
		return *s.Custom, true
	default:
		return c.Package(s.PackageID)
	}
}

func (s *Session) checkDay(c *models.Catalog, day int) error {
	pkg, ok := s.ActivePackage(c)
	if !ok {
		return ErrNoPackage
	}
	if day < 0 || day >= len(pkg.Route) {
		return fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	return nil
}

// OverrideStay pins hotel and room for a day. The room must be one of the
// hotel's room types; the hotel itself is not checked against the catalog.
func (s *Session) OverrideStay(c *models.Catalog, day int, hotel models.Hotel, room models.RoomType) error {
	if err := s.checkDay(c, day); err != nil {
		return err
	}
	if !hotel.HasRoomType(room) {
		return ErrRoomNotInHotel
	}
	s.HotelOverrides[day] = models.StayOverride{Hotel: hotel, RoomType: room}
	s.touch()
	return nil
}

// ClearStay returns a day to its tier default.
func (s *Session) ClearStay(day int) {
	delete(s.HotelOverrides, day)
	s.touch()
}

// SetSightseeing records the spots chosen for a day; an empty list means none.
func (s *Session) SetSightseeing(c *models.Catalog, day int, spots []string) error {
	if err := s.checkDay(c, day); err != nil {
		return err
	}
	s.SightseeingOverrides[day] = append([]string{}, spots...)
	s.touch()
	return nil
}

// ClearSightseeing goes back to showing every spot of the day's city.
func (s *Session) ClearSightseeing(day int) {
	delete(s.SightseeingOverrides, day)
	s.touch()
}

func (s *Session) SetMarkup(m models.Markup) error {
	if m.Type != models.MarkupPercent && m.Type != models.MarkupFixed {
		return fmt.Errorf("%w: %q", ErrInvalidMarkup, m.Type)
	}
	s.Markup = m
	s.touch()
	return nil
}

// Breakdown is the net cost of the active package by component.
func (s *Session) Breakdown(c *models.Catalog) (pricing.Breakdown, error) {
	pkg, ok := s.ActivePackage(c)
	if !ok {
		return pricing.Breakdown{}, ErrNoPackage
	}
	return pricing.Compute(c, pkg, s.Tier, s.Fleet.Items(), s.Pax, s.HotelOverrides), nil
}

// Pricing recomputes the sell price from the current pax, fleet, overrides
// and markup against snapshot c.
func (s *Session) Pricing(c *models.Catalog) (models.PricingResult, error) {
	b, err := s.Breakdown(c)
	if err != nil {
		return models.PricingResult{}, err
	}
	return pricing.ApplyMarkup(b.Net(), s.Pax, s.Markup), nil
}

// OpenBuilder starts (or returns the already open) custom builder.
func (s *Session) OpenBuilder() *composer.Builder {
	if s.Builder == nil {
		s.Builder = composer.NewBuilder()
	}
	s.touch()
	return s.Builder
}

// CancelBuilder throws the draft away.
func (s *Session) CancelBuilder() {
	s.Builder = nil
	s.touch()
}

func (s *Session) BuilderEstimate(c *models.Catalog) (pricing.Breakdown, error) {
	if s.Builder == nil {
		return pricing.Breakdown{}, ErrNoBuilder
	}
	return s.Builder.Estimate(c, s.Fleet.Items(), s.Pax), nil
}

// FinalizeBuilder turns the draft into the active custom package, replacing
// both override maps with the ones authored in the builder.
func (s *Session) FinalizeBuilder() (models.ItineraryPackage, error) {
	if s.Builder == nil {
		return models.ItineraryPackage{}, ErrNoBuilder
	}
	pkg, hotels, spots, err := s.Builder.Finalize()
	if err != nil {
		return models.ItineraryPackage{}, err
	}
	s.Custom = &pkg
	s.PackageID = models.CustomPackageID
	s.customHotels, s.customSpots = hotels, spots
	s.HotelOverrides = hotels.Clone()
	s.SightseeingOverrides = spots.Clone()
	s.Builder = nil
	s.touch()
	return pkg, nil
}
