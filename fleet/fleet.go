// Package fleet allocates vehicles to a travelling party.
package fleet

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tripdeck/models"
)

// Vehicle names used by the default allocation. They must match catalog
// Vehicle names for transport to be costed.
const (
	SedanName = "Sedan (Dzire)"
	MUVName   = "Innova"
	VanName   = "Tempo Traveller"
)

const vanSeats = 12

// AutoFleet is the default allocation for a party size:
// up to 4 a sedan, 5-6 an MUV, 7-12 one van, beyond that ceil(pax/12) vans.
// Every call returns fresh item ids.
func AutoFleet(pax int) []models.FleetItem {
	item := models.FleetItem{ID: uuid.NewString(), Count: 1}
	switch {
	case pax <= 4:
		item.Name = SedanName
	case pax <= 6:
		item.Name = MUVName
	case pax <= vanSeats:
		item.Name = VanName
	default:
		item.Name = VanName
		item.Count = (pax + vanSeats - 1) / vanSeats
	}
	return []models.FleetItem{item}
}

// Update is a typed change to one fleet line.
type Update interface {
	apply(*models.FleetItem)
}

// NameUpdate switches the vehicle of a line.
type NameUpdate string

// CountUpdate sets how many of the vehicle are booked. Values below 1 are raised to 1.
type CountUpdate int

func (u NameUpdate) apply(it *models.FleetItem) { it.Name = string(u) }

func (u CountUpdate) apply(it *models.FleetItem) {
	it.Count = int(u)
	if it.Count < 1 {
		it.Count = 1
	}
}

var ErrUnknownField = errors.New("unknown fleet field")

// ParseUpdate decodes a {field, value} pair as sent by the fleet editor.
func ParseUpdate(field string, value json.RawMessage) (Update, error) {
	switch field {
	case "name":
		var name string
		if err := json.Unmarshal(value, &name); err != nil {
			return nil, fmt.Errorf("fleet name: %w", err)
		}
		if name == "" {
			return nil, errors.New("fleet name: empty")
		}
		return NameUpdate(name), nil
	case "count":
		var n int
		if err := json.Unmarshal(value, &n); err != nil {
			return nil, fmt.Errorf("fleet count: %w", err)
		}
		if n < 1 {
			return nil, fmt.Errorf("fleet count: %d is below 1", n)
		}
		return CountUpdate(n), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// Manager holds a session's fleet. It follows AutoFleet as the party size
// changes until the first manual edit; after that it is never regenerated.
type Manager struct {
	items  []models.FleetItem
	manual bool
}

func NewManager(pax int) *Manager {
	return &Manager{items: AutoFleet(pax)}
}

// Items returns a copy of the current fleet.
func (m *Manager) Items() []models.FleetItem {
	out := make([]models.FleetItem, len(m.items))
	copy(out, m.items)
	return out
}

// Manual reports whether the fleet has been edited by hand.
func (m *Manager) Manual() bool {
	return m.manual
}

// SyncPax regenerates the fleet for a new party size unless it was edited by
// hand. It reports whether the fleet changed.
func (m *Manager) SyncPax(pax int) bool {
	if m.manual {
		return false
	}
	m.items = AutoFleet(pax)
	return true
}

// Add appends one sedan.
func (m *Manager) Add() models.FleetItem {
	m.manual = true
	item := models.FleetItem{ID: uuid.NewString(), Name: SedanName, Count: 1}
	m.items = append(m.items, item)
	return item
}

func (m *Manager) Remove(id string) bool {
	m.manual = true
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Manager) Update(id string, u Update) (models.FleetItem, bool) {
	m.manual = true
	for i := range m.items {
		if m.items[i].ID == id {
			u.apply(&m.items[i])
			return m.items[i], true
		}
	}
	return models.FleetItem{}, false
}
