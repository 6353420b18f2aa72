package itinerary_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"tripdeck/catalog"
	"tripdeck/fleet"
	"tripdeck/globals"
	"tripdeck/itinerary"
	"tripdeck/live"
	"tripdeck/middleware"
	"tripdeck/models"
	"tripdeck/pricing"
	"tripdeck/ratelim"
	"tripdeck/routes"
	"tripdeck/session"
)

func kutch() *models.Catalog {
	return &models.Catalog{
		HotelData: map[string][]models.Hotel{
			"Bhuj": {
				{Name: "Prince Residency", Tier: models.TierBudget, Type: "CP", RoomTypes: []models.RoomType{
					{Name: "Deluxe", Capacity: 2, Rate: 2500},
				}},
				{Name: "Regenta Resort", Tier: models.TierPremium, Type: "MAP", RoomTypes: []models.RoomType{
					{Name: "Club Room", Capacity: 2, Rate: 5500},
				}},
			},
			"Dhordo": {
				{Name: "Rann Tent City", Tier: models.TierBudget, Type: "AP", RoomTypes: []models.RoomType{
					{Name: "Swiss Tent", Capacity: 3, Rate: 6000},
				}},
			},
		},
		SightseeingData: map[string][]models.Sightseeing{
			"Bhuj":   {{Name: "Aina Mahal"}, {Name: "Prag Mahal"}},
			"Dhordo": {{Name: "White Rann"}},
		},
		VehicleData: []models.Vehicle{
			{Name: fleet.SedanName, Rate: 2000, Capacity: 4},
			{Name: fleet.MUVName, Rate: 3000, Capacity: 6},
			{Name: fleet.VanName, Rate: 4500, Capacity: 12},
		},
		Packages: []models.ItineraryPackage{
			{ID: "rann-4d", Name: "Rann Utsav", Days: 4, Route: []string{"Bhuj", "Dhordo", "Dhordo", "Bhuj"}},
		},
	}
}

type staticLoader struct{ c *models.Catalog }

func (l staticLoader) Load(context.Context) (*models.Catalog, error) { return l.c, nil }

func newServer(t *testing.T) (*httprouter.Router, *itinerary.Handler) {
	t.Helper()
	store := catalog.NewStore()
	store.Swap(kutch())
	h := &itinerary.Handler{
		Catalog:       store,
		Sessions:      session.NewStore(),
		Refresher:     &catalog.Refresher{Store: store, Loader: staticLoader{kutch()}},
		Destination:   "Kutch",
		ShareBaseURL:  "https://desk.example.com/",
		EstimateRates: pricing.DefaultEstimateRates,
	}
	router := httprouter.New()
	routes.RoutesWrapper(router, h, ratelim.NewRateLimiter(60, 10))
	return router, h
}

func call(t *testing.T, router http.Handler, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type view struct {
	ID          string             `json:"id"`
	PackageID   string             `json:"packageId"`
	Fleet       []models.FleetItem `json:"fleet"`
	FleetManual bool               `json:"fleetManual"`
	Pricing     *struct {
		NetTotal   models.Money `json:"netTotal"`
		FinalTotal models.Money `json:"finalTotal"`
		PerPerson  models.Money `json:"perPerson"`
	} `json:"pricing"`
	BuilderOpen bool `json:"builderOpen"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d: %s", rec.Code, status, rec.Body.String())
	}
}

func createSession(t *testing.T, router http.Handler, pax int) string {
	t.Helper()
	rec := call(t, router, http.MethodPost, "/api/sessions", map[string]any{
		"guestName": "Mehta Family",
		"startDate": "2026-12-20",
		"pax":       pax,
	})
	expect(t, rec, http.StatusCreated)
	var v view
	decode(t, rec, &v)
	return v.ID
}

func TestHealth(t *testing.T) {
	router, _ := newServer(t)
	expect(t, call(t, router, http.MethodGet, "/health", nil), http.StatusOK)
}

func TestSessionPricingFlow(t *testing.T) {
	router, _ := newServer(t)
	id := createSession(t, router, 2)
	base := "/api/sessions/" + id

	var v view
	rec := call(t, router, http.MethodPost, base+"/package", map[string]string{"packageId": "rann-4d", "tier": "Budget"})
	expect(t, rec, http.StatusOK)
	decode(t, rec, &v)
	// sedan 2000 x 4 days + Bhuj 2500 x 2 days + Dhordo 6000 x 2 days
	if v.Pricing == nil || v.Pricing.NetTotal != 25000 || v.Pricing.PerPerson != 12500 {
		t.Fatalf("pricing = %+v", v.Pricing)
	}

	rec = call(t, router, http.MethodPut, base+"/days/0/stay", map[string]string{"hotel": "Regenta Resort", "roomType": "Club Room"})
	expect(t, rec, http.StatusOK)
	decode(t, rec, &v)
	if v.Pricing.NetTotal != 28000 {
		t.Errorf("net after override = %v, want 28000", v.Pricing.NetTotal)
	}

	rec = call(t, router, http.MethodPut, base+"/days/0/stay", map[string]string{"hotel": "Regenta Resort", "roomType": "Deluxe"})
	expect(t, rec, http.StatusNotFound)
	rec = call(t, router, http.MethodPut, base+"/days/9/stay", map[string]string{"hotel": "Regenta Resort", "roomType": "Club Room"})
	expect(t, rec, http.StatusBadRequest)

	expect(t, call(t, router, http.MethodDelete, base+"/days/0/stay", nil), http.StatusOK)

	rec = call(t, router, http.MethodPut, base+"/markup", map[string]any{"type": "percent", "value": 10})
	expect(t, rec, http.StatusOK)
	decode(t, rec, &v)
	if v.Pricing.FinalTotal != 27500 || v.Pricing.PerPerson != 13750 {
		t.Errorf("after markup = %+v", v.Pricing)
	}

	expect(t, call(t, router, http.MethodPut, base+"/markup", map[string]any{"type": "bogus", "value": 1}), http.StatusBadRequest)
	expect(t, call(t, router, http.MethodPut, base+"/pax", map[string]int{"pax": -1}), http.StatusBadRequest)

	rec = call(t, router, http.MethodGet, base+"/days", nil)
	expect(t, rec, http.StatusOK)
	var days []models.DayView
	decode(t, rec, &days)
	if len(days) != 4 || !days[3].Departure || days[3].Hotel != nil {
		t.Errorf("days = %+v", days)
	}
}

func TestFleetEditsLatch(t *testing.T) {
	router, _ := newServer(t)
	id := createSession(t, router, 2)
	base := "/api/sessions/" + id

	var v view
	rec := call(t, router, http.MethodPost, base+"/fleet", nil)
	expect(t, rec, http.StatusCreated)
	decode(t, rec, &v)
	if !v.FleetManual || len(v.Fleet) != 2 {
		t.Fatalf("fleet = %+v manual=%v", v.Fleet, v.FleetManual)
	}

	item := v.Fleet[1].ID
	rec = call(t, router, http.MethodPut, base+"/fleet/"+item, map[string]any{"field": "count", "value": 3})
	expect(t, rec, http.StatusOK)
	decode(t, rec, &v)
	if v.Fleet[1].Count != 3 {
		t.Errorf("count = %d", v.Fleet[1].Count)
	}
	expect(t, call(t, router, http.MethodPut, base+"/fleet/"+item, map[string]any{"field": "colour", "value": "red"}), http.StatusBadRequest)
	expect(t, call(t, router, http.MethodDelete, base+"/fleet/nope", nil), http.StatusNotFound)

	rec = call(t, router, http.MethodPut, base+"/pax", map[string]int{"pax": 10})
	expect(t, rec, http.StatusOK)
	decode(t, rec, &v)
	if len(v.Fleet) != 2 {
		t.Errorf("latched fleet changed with pax: %+v", v.Fleet)
	}
}

func TestBuilderFlow(t *testing.T) {
	router, _ := newServer(t)
	id := createSession(t, router, 2)
	base := "/api/sessions/" + id + "/builder"

	expect(t, call(t, router, http.MethodGet, base, nil), http.StatusConflict)

	rec := call(t, router, http.MethodPost, base+"/stage", map[string]any{
		"city": "Bhuj", "hotel": "Prince Residency", "roomType": "Deluxe", "sightseeing": []string{"Aina Mahal"},
	})
	expect(t, rec, http.StatusOK)
	expect(t, call(t, router, http.MethodPost, base+"/days", nil), http.StatusOK)

	expect(t, call(t, router, http.MethodPost, base+"/stage", map[string]any{"city": "Dhordo"}), http.StatusOK)
	expect(t, call(t, router, http.MethodPost, base+"/days", nil), http.StatusOK)
	expect(t, call(t, router, http.MethodPost, base+"/days/1/duplicate", nil), http.StatusOK)
	expect(t, call(t, router, http.MethodDelete, base+"/days/7", nil), http.StatusBadRequest)

	rec = call(t, router, http.MethodGet, base, nil)
	expect(t, rec, http.StatusOK)
	var b struct {
		Days []models.CustomDay `json:"days"`
		Net  models.Money       `json:"net"`
	}
	decode(t, rec, &b)
	// sedan 2000 x 3 days + one Deluxe night
	if len(b.Days) != 3 || b.Net != 8500 {
		t.Fatalf("builder = %+v", b)
	}

	var v view
	rec = call(t, router, http.MethodPost, base+"/finalize", nil)
	expect(t, rec, http.StatusOK)
	decode(t, rec, &v)
	if v.PackageID != models.CustomPackageID || v.BuilderOpen {
		t.Fatalf("after finalize = %+v", v)
	}

	rec = call(t, router, http.MethodGet, "/api/sessions/"+id+"/days", nil)
	expect(t, rec, http.StatusOK)
	var days []models.DayView
	decode(t, rec, &days)
	if len(days) != 3 || days[0].Hotel == nil || days[0].Hotel.Name != "Prince Residency" {
		t.Fatalf("custom days = %+v", days)
	}
	if len(days[1].Sightseeing) != 0 {
		t.Errorf("day without picks shows sightseeing: %+v", days[1].Sightseeing)
	}
}

func TestQuoteExport(t *testing.T) {
	router, _ := newServer(t)
	id := createSession(t, router, 2)
	base := "/api/sessions/" + id

	expect(t, call(t, router, http.MethodGet, base+"/quote", nil), http.StatusConflict)
	expect(t, call(t, router, http.MethodPost, base+"/package", map[string]string{"packageId": "rann-4d"}), http.StatusOK)

	rec := call(t, router, http.MethodGet, base+"/quote", nil)
	expect(t, rec, http.StatusOK)
	var q struct {
		Quote models.Quote `json:"quote"`
		Text  string       `json:"text"`
	}
	decode(t, rec, &q)
	if q.Quote.ShareURL != "https://desk.example.com/s/"+id {
		t.Errorf("share url = %q", q.Quote.ShareURL)
	}
	if !strings.Contains(q.Text, "Total: INR 25,000") {
		t.Errorf("text = %s", q.Text)
	}

	rec = call(t, router, http.MethodGet, base+"/quote.pdf", nil)
	expect(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Mehta_Family_Kutch_Itinerary_2Pax.pdf") {
		t.Errorf("content disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}
}

func TestCatalogEndpoints(t *testing.T) {
	router, h := newServer(t)

	rec := call(t, router, http.MethodGet, "/api/catalog/hotels/Bhuj", nil)
	expect(t, rec, http.StatusOK)
	var hotels []models.Hotel
	decode(t, rec, &hotels)
	if len(hotels) != 2 {
		t.Errorf("Bhuj hotels = %d, want both tiers", len(hotels))
	}

	rec = call(t, router, http.MethodGet, "/api/catalog/hotels/Bhuj?q=regenta", nil)
	expect(t, rec, http.StatusOK)
	hotels = nil
	decode(t, rec, &hotels)
	if len(hotels) != 1 || hotels[0].Name != "Regenta Resort" {
		t.Errorf("filtered hotels = %+v", hotels)
	}

	rec = call(t, router, http.MethodGet, "/api/packages?pax=4&sharing=Quad", nil)
	expect(t, rec, http.StatusOK)
	var cards []models.PackageEstimate
	decode(t, rec, &cards)
	if len(cards) != 2 || cards[0].Tier != models.TierBudget || cards[1].Tier != models.TierPremium {
		t.Errorf("gallery = %+v", cards)
	}
	expect(t, call(t, router, http.MethodGet, "/api/packages?sharing=Triple", nil), http.StatusBadRequest)

	expect(t, call(t, router, http.MethodPost, "/api/catalog/refresh", nil), http.StatusUnauthorized)

	globals.JwtSecret = []byte("test-secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		Username: "desk-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatal(err)
	}
	h.Catalog.Swap(nil)
	rec = call(t, router, http.MethodPost, "/api/catalog/refresh", nil, "Authorization", "Bearer "+token)
	expect(t, rec, http.StatusOK)
	if len(h.Catalog.Current().Packages) != 1 {
		t.Error("catalog not reloaded")
	}
}

func TestUnknownSession(t *testing.T) {
	router, _ := newServer(t)
	expect(t, call(t, router, http.MethodGet, "/api/sessions/nope", nil), http.StatusNotFound)
	expect(t, call(t, router, http.MethodPut, "/api/sessions/nope/pax", map[string]int{"pax": 2}), http.StatusNotFound)
	expect(t, call(t, router, http.MethodDelete, "/api/sessions/nope", nil), http.StatusNotFound)
}

// Views are encoded after the session lock is released, so overlapping
// edits of one session must not share maps with an in-flight response.
// Run with -race.
func TestConcurrentSightseeingEdits(t *testing.T) {
	router, h := newServer(t)
	hub := live.NewHub()
	go hub.Run()
	defer hub.Stop()
	h.Hub = hub

	id := createSession(t, router, 2)
	base := "/api/sessions/" + id
	expect(t, call(t, router, http.MethodPost, base+"/package", map[string]string{"packageId": "rann-4d"}), http.StatusOK)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				day := (g + i) % 4
				path := base + "/days/" + strconv.Itoa(day) + "/sightseeing"

				var req *http.Request
				switch i % 3 {
				case 0:
					req = httptest.NewRequest(http.MethodPut, path, strings.NewReader(`{"spots":["Aina Mahal","White Rann"]}`))
				case 1:
					req = httptest.NewRequest(http.MethodDelete, path, nil)
				default:
					req = httptest.NewRequest(http.MethodGet, base, nil)
				}
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)
				if rec.Code != http.StatusOK {
					t.Errorf("%s %s = %d: %s", req.Method, req.URL.Path, rec.Code, rec.Body.String())
					return
				}
			}
		}(g)
	}
	wg.Wait()
}
