// Package quote turns a resolved quote payload into shareable output: a plain
// text block for messaging apps and a paginated PDF.
package quote

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tripdeck/models"
	"tripdeck/utils"
)

const currency = "INR"

var printer = message.NewPrinter(language.English)

// formatMoney renders whole currency units with thousands separators.
func formatMoney(m models.Money) string {
	return printer.Sprintf("%s %d", currency, int64(math.Round(float64(m))))
}

func formatDate(d models.QuoteDay) string {
	if d.Date.IsZero() {
		return ""
	}
	return d.Date.Format("Mon, 02 Jan")
}

// Duration is the "4D/3N" tag shown next to the title.
func Duration(days int) string {
	if days <= 0 {
		return ""
	}
	return fmt.Sprintf("%dD/%dN", days, days-1)
}

// StayLine summarises nights per city, e.g. "1N Bhuj, 2N Dhordo".
func StayLine(stays []models.StaySegment) string {
	parts := make([]string, 0, len(stays))
	for _, s := range stays {
		parts = append(parts, fmt.Sprintf("%dN %s", s.Nights, s.City))
	}
	return strings.Join(parts, ", ")
}

func spotNames(spots []models.Sightseeing) string {
	names := make([]string, 0, len(spots))
	for _, s := range spots {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func hotelLine(d models.QuoteDay) string {
	if d.HotelName == "" {
		return ""
	}
	line := d.HotelName
	if d.RoomTypeName != "" {
		line += fmt.Sprintf(" - %s x%d", d.RoomTypeName, d.RoomsNeeded)
	}
	if d.MealPlan != "" {
		line += " (" + d.MealPlan + ")"
	}
	return line
}

// Text renders the copy-to-clipboard quotation. Prices come from q.Pricing;
// nothing is recomputed here.
func Text(q models.Quote) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s*", q.Title)
	if d := Duration(len(q.Days)); d != "" {
		fmt.Fprintf(&b, " (%s)", d)
	}
	b.WriteString("\n")
	if q.Destination != "" {
		fmt.Fprintf(&b, "%s\n", q.Destination)
	}
	fmt.Fprintf(&b, "Guest: %s | %d Pax | %s\n", q.GuestName, q.Pax, q.Tier)
	if !q.StartDate.IsZero() {
		fmt.Fprintf(&b, "Dates: %s - %s\n", q.StartDate.Format("02 Jan 2006"), q.EndDate.Format("02 Jan 2006"))
	}
	if line := StayLine(q.Stays); line != "" {
		fmt.Fprintf(&b, "Stays: %s\n", line)
	}

	for _, d := range q.Days {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Day %d", d.Day)
		if date := formatDate(d); date != "" {
			fmt.Fprintf(&b, " (%s)", date)
		}
		fmt.Fprintf(&b, ": %s", d.City)
		if d.Departure {
			b.WriteString(" - Departure")
		}
		b.WriteString("\n")
		if h := hotelLine(d); h != "" {
			fmt.Fprintf(&b, "  Hotel: %s\n", h)
		}
		if len(d.Sightseeing) > 0 {
			fmt.Fprintf(&b, "  Sightseeing: %s\n", spotNames(d.Sightseeing))
		}
	}

	if len(q.Fleet) > 0 {
		vehicles := make([]string, 0, len(q.Fleet))
		for _, v := range q.Fleet {
			vehicles = append(vehicles, fmt.Sprintf("%d x %s", v.Count, v.Name))
		}
		fmt.Fprintf(&b, "\nVehicles: %s\n", strings.Join(vehicles, ", "))
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", formatMoney(q.Pricing.FinalTotal))
	fmt.Fprintf(&b, "Per person: %s\n", formatMoney(q.Pricing.PerPerson))
	if q.PreparedBy != "" {
		fmt.Fprintf(&b, "Prepared by %s\n", q.PreparedBy)
	}
	if q.ShareURL != "" {
		fmt.Fprintf(&b, "View online: %s\n", q.ShareURL)
	}
	return b.String()
}

// Filename is the download name for a quote PDF, e.g.
// "Asha_Kutch_Itinerary_4Pax.pdf".
func Filename(guest, destination string, pax int) string {
	if guest == "" {
		guest = "Guest"
	}
	if destination == "" {
		destination = "Trip"
	}
	return fmt.Sprintf("%s_%s_Itinerary_%dPax.pdf", utils.SanitizeFilename(guest), utils.SanitizeFilename(destination), pax)
}
