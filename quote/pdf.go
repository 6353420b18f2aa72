package quote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"tripdeck/models"
)

// ImageSource opens images referenced by a quote, such as the package cover.
type ImageSource interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// HTTPImages fetches images over HTTP.
type HTTPImages struct {
	Client *http.Client
}

func (h HTTPImages) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", ref, resp.Status)
	}
	return resp.Body, nil
}

type PDFOptions struct {
	// Images resolves the cover image. Nil skips the cover picture.
	Images ImageSource
}

const (
	margin     = 15.0
	lineHeight = 6.0
	coverW     = 180.0
	coverH     = 75.0
	qrSize     = 32.0
)

// PDF renders q as an A4 document: cover, one section per day, fleet and
// pricing. A section that does not fit on the current page starts a new one.
func PDF(ctx context.Context, q models.Quote, opts PDFOptions) ([]byte, error) {
	pdf, err := render(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type doc struct {
	*gofpdf.Fpdf
	tr func(string) string
}

func render(ctx context.Context, q models.Quote, opts PDFOptions) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(q.Title, true)
	if q.PreparedBy != "" {
		pdf.SetAuthor(q.PreparedBy, true)
	}
	d := &doc{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.AddPage()
	d.cover(ctx, q, opts.Images)
	for _, day := range q.Days {
		d.day(day)
	}
	d.fleet(q.Fleet)
	d.pricing(q)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}

// ensure starts a new page when h more millimetres would cross the bottom margin.
func (d *doc) ensure(h float64) {
	_, pageH := d.GetPageSize()
	if d.GetY()+h > pageH-margin {
		d.AddPage()
	}
}

func (d *doc) heading(size float64, s string) {
	d.SetFont("Arial", "B", size)
	d.SetTextColor(40, 40, 60)
	d.CellFormat(0, size*0.5, d.tr(s), "", 1, "L", false, 0, "")
}

func (d *doc) text(style, s string) {
	d.SetFont("Arial", style, 11)
	d.SetTextColor(60, 60, 60)
	d.MultiCell(0, lineHeight, d.tr(s), "", "L", false)
}

// lines estimates how many wrapped lines s takes at the body font.
func (d *doc) lines(s string) int {
	d.SetFont("Arial", "", 11)
	w, _ := d.GetPageSize()
	n := len(d.SplitLines([]byte(d.tr(s)), w-2*margin))
	if n == 0 {
		return 1
	}
	return n
}

func (d *doc) cover(ctx context.Context, q models.Quote, images ImageSource) {
	if images != nil && q.CoverImg != "" {
		if img, err := coverImage(ctx, images, q.CoverImg); err != nil {
			log.Printf("[Quote] cover image skipped: %v", err)
		} else {
			opts := gofpdf.ImageOptions{ImageType: "JPG"}
			d.RegisterImageOptionsReader("cover", opts, bytes.NewReader(img))
			d.ImageOptions("cover", margin, d.GetY(), coverW, coverH, true, opts, 0, "")
			d.Ln(4)
		}
	}

	title := q.Title
	if dur := Duration(len(q.Days)); dur != "" {
		title += " (" + dur + ")"
	}
	d.heading(20, title)
	if q.Destination != "" {
		d.text("", q.Destination)
	}
	d.Ln(2)

	top := d.GetY()
	d.text("", fmt.Sprintf("Guest: %s", q.GuestName))
	d.text("", fmt.Sprintf("Travellers: %d | Hotels: %s", q.Pax, q.Tier))
	if !q.StartDate.IsZero() {
		d.text("", fmt.Sprintf("Dates: %s - %s", q.StartDate.Format("02 Jan 2006"), q.EndDate.Format("02 Jan 2006")))
	}
	if line := StayLine(q.Stays); line != "" {
		d.text("", "Stays: "+line)
	}
	if q.PreparedBy != "" {
		d.text("I", "Prepared by "+q.PreparedBy)
	}

	if q.ShareURL != "" {
		png, err := qrcode.Encode(q.ShareURL, qrcode.Medium, 256)
		if err != nil {
			log.Printf("[Quote] QR code skipped: %v", err)
		} else {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			w, _ := d.GetPageSize()
			d.RegisterImageOptionsReader("share-qr", opts, bytes.NewReader(png))
			d.ImageOptions("share-qr", w-margin-qrSize, top, qrSize, qrSize, false, opts, 0, "")
			if d.GetY() < top+qrSize {
				d.SetY(top + qrSize)
			}
		}
	}
	d.Ln(6)
}

func (d *doc) dayHeight(day models.QuoteDay) float64 {
	h := 10.0
	if hl := hotelLine(day); hl != "" {
		h += float64(d.lines("Stay: "+hl)) * lineHeight
	}
	for _, s := range day.Sightseeing {
		h += float64(d.lines(spotLine(s))) * lineHeight
	}
	return h + 4
}

func spotLine(s models.Sightseeing) string {
	if s.Desc == "" {
		return "- " + s.Name
	}
	return fmt.Sprintf("- %s: %s", s.Name, s.Desc)
}

func (d *doc) day(day models.QuoteDay) {
	d.ensure(d.dayHeight(day))

	title := fmt.Sprintf("Day %d: %s", day.Day, day.City)
	if date := formatDate(day); date != "" {
		title += " (" + date + ")"
	}
	if day.Departure {
		title += " - Departure"
	}
	d.heading(14, title)
	d.Ln(2)
	if hl := hotelLine(day); hl != "" {
		d.text("", "Stay: "+hl)
	}
	for _, s := range day.Sightseeing {
		d.text("", spotLine(s))
	}
	d.Ln(4)
}

func (d *doc) fleet(items []models.QuoteVehicle) {
	if len(items) == 0 {
		return
	}
	d.ensure(10 + float64(len(items))*lineHeight + 4)
	d.heading(14, "Transport")
	d.Ln(2)
	for _, v := range items {
		d.text("", fmt.Sprintf("%d x %s", v.Count, v.Name))
	}
	d.Ln(4)
}

func (d *doc) pricing(q models.Quote) {
	d.ensure(10 + 3*lineHeight)
	d.heading(14, "Price")
	d.Ln(2)
	d.SetFont("Arial", "B", 12)
	d.SetTextColor(20, 20, 20)
	d.CellFormat(0, 8, d.tr("Total: "+formatMoney(q.Pricing.FinalTotal)), "", 1, "L", false, 0, "")
	d.text("", fmt.Sprintf("Per person: %s (%d travellers)", formatMoney(q.Pricing.PerPerson), q.Pax))
}

// coverImage fetches ref and crops it to the cover band as a JPEG.
func coverImage(ctx context.Context, images ImageSource, ref string) ([]byte, error) {
	rc, err := images.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}
	thumb := imaging.Fill(img, 1200, 500, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("encode cover: %w", err)
	}
	return buf.Bytes(), nil
}
