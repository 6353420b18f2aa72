package models

type MarkupType string

const (
	MarkupPercent MarkupType = "percent"
	MarkupFixed   MarkupType = "fixed"
)

type Markup struct {
	Type  MarkupType `json:"type"`
	Value Money      `json:"value"`
}

// PricingResult is derived on demand and never stored.
type PricingResult struct {
	NetTotal   Money `json:"netTotal"`
	FinalTotal Money `json:"finalTotal"`
	PerPerson  Money `json:"perPerson"`
}

// Sharing is the room occupancy used by gallery estimates.
type Sharing string

const (
	SharingDouble Sharing = "Double"
	SharingQuad   Sharing = "Quad"
)

// Capacity returns the room capacity a sharing mode asks for.
func (s Sharing) Capacity() int {
	if s == SharingQuad {
		return 4
	}
	return 2
}

// PackageEstimate is a gallery card price, computed before a package is opened.
type PackageEstimate struct {
	Package   ItineraryPackage `json:"package"`
	Tier      Tier             `json:"tier"`
	Sharing   Sharing          `json:"sharing"`
	Total     Money            `json:"total"`
	PerPerson Money            `json:"perPerson"`
}
