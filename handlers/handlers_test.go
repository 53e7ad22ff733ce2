package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"fomezero/models"
	"fomezero/services"
	"fomezero/utils"
)

func testSnapshot() *services.Snapshot {
	rs := []models.Restaurant{}
	add := func(id int64, country, city, cuisine string, rating float64) {
		rs = append(rs, models.Restaurant{
			RestaurantID:              id,
			RestaurantName:            "R" + strconv.FormatInt(id, 10),
			CountryName:               country,
			City:                      city,
			Cuisines:                  cuisine,
			AggregateRating:           rating,
			AverageCostForTwoUSDollar: float64(id),
			Votes:                     id * 10,
		})
	}
	for i := int64(1); i <= 15; i++ {
		add(i, "India", "Pune", "Italian", 3+float64(i)/10)
	}
	for i := int64(16); i <= 20; i++ {
		add(i, "Brazil", "Rio de Janeiro", "Brazilian", 4.0)
	}
	add(21, "Canada", "Toronto", "Japanese", 4.9)

	return &services.Snapshot{
		Restaurants: rs,
		Warnings:    []services.DataQualityWarning{{Kind: services.WarnOutlierExcluded, Message: "excluded"}},
		Source:      "test.csv",
		PreparedAt:  time.Date(2024, 3, 28, 12, 0, 0, 0, time.UTC),
		RawRows:     22,
	}
}

func newTestMux(snap *services.Snapshot) http.Handler {
	mux := http.NewServeMux()
	Register(mux, services.NewHolder(snap))
	return mux
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestParseFilterParams(t *testing.T) {
	q := url.Values{}
	q.Add("countries", "India, Brazil")
	q.Add("countries", "South Africa")
	q.Set("cuisines", "Italian,,")
	q.Set("limit", "20")
	q.Set("page", "-3")

	p, err := ParseFilterParams(q)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(p.Countries, "|") != "India|Brazil|South Africa" {
		t.Fatalf("unexpected countries %v", p.Countries)
	}
	if len(p.Cuisines) != 1 || p.Cuisines[0] != "Italian" {
		t.Fatalf("unexpected cuisines %v", p.Cuisines)
	}
	if p.Limit != 20 || p.Page != 1 {
		t.Fatalf("unexpected limit/page %d/%d", p.Limit, p.Page)
	}

	defaults, err := ParseFilterParams(url.Values{})
	if err != nil || defaults.Limit != services.DefaultTableLimit || defaults.Page != 1 || defaults.Countries != nil {
		t.Fatalf("unexpected defaults %+v, %v", defaults, err)
	}
}

func TestParseFilterParamsRejects(t *testing.T) {
	tests := []struct {
		param, value string
	}{
		{"limit", "0"},
		{"limit", "21"},
		{"limit", "ten"},
		{"page", "two"},
	}
	for _, tt := range tests {
		_, err := ParseFilterParams(url.Values{tt.param: {tt.value}})
		var perr *ParamError
		if !errors.As(err, &perr) || perr.Param != tt.param {
			t.Errorf("%s=%s: expected ParamError, got %v", tt.param, tt.value, err)
		}
	}
}

func TestEndpointsReturn503WithoutSnapshot(t *testing.T) {
	h := newTestMux(nil)
	for _, path := range []string{"/health", "/api/filters", "/api/overview", "/api/map", "/api/countries", "/api/cities", "/api/cuisines", "/api/restaurants", "/api/warnings"} {
		if rec := get(t, h, path); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: expected 503, got %d", path, rec.Code)
		}
	}
}

func TestBadLimitIs400(t *testing.T) {
	h := newTestMux(testSnapshot())
	if rec := get(t, h, "/api/cuisines?limit=50"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := get(t, h, "/api/restaurants?page=x"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	holder := services.NewHolder(testSnapshot())
	now := func() time.Time { return time.Date(2024, 3, 28, 12, 1, 30, 0, time.UTC) }

	rec := httptest.NewRecorder()
	healthHandler(holder, now)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body struct {
		Status     string              `json:"status"`
		AgeSeconds int64               `json:"age_seconds"`
		Snapshot   models.SnapshotInfo `json:"snapshot"`
	}
	decode(t, rec, &body)
	if body.Status != "ok" || body.AgeSeconds != 90 || body.Snapshot.Rows != 21 {
		t.Fatalf("unexpected health %+v", body)
	}
}

func TestFiltersAndOverview(t *testing.T) {
	h := newTestMux(testSnapshot())

	var opts models.FilterOptions
	decode(t, get(t, h, "/api/filters"), &opts)
	if strings.Join(opts.Countries, ",") != "India,Brazil,Canada" {
		t.Fatalf("unexpected countries %v", opts.Countries)
	}
	if opts.MaxLimit != 20 {
		t.Fatalf("unexpected max limit %d", opts.MaxLimit)
	}

	var home models.HomePage
	decode(t, get(t, h, "/api/overview"), &home)
	if home.Overview.Restaurants != 21 || home.Overview.Cities != 3 || home.Snapshot.Source != "test.csv" {
		t.Fatalf("unexpected overview %+v", home)
	}
}

func TestCuisinesHonoursLimit(t *testing.T) {
	h := newTestMux(testSnapshot())
	for _, limit := range []int{1, 7, 20} {
		var page models.CuisinesPage
		decode(t, get(t, h, "/api/cuisines?countries=India&cuisines=Italian&limit="+strconv.Itoa(limit)), &page)
		want := limit
		if want > 15 {
			want = 15
		}
		if len(page.Table) != want {
			t.Fatalf("limit %d: got %d rows", limit, len(page.Table))
		}
		if len(page.TopRated) != 5 || page.TopRated[0].RestaurantID != 21 {
			t.Fatalf("unexpected top rated %+v", page.TopRated)
		}
	}
}

func TestCountriesAndCities(t *testing.T) {
	h := newTestMux(testSnapshot())

	var countries models.CountriesPage
	decode(t, get(t, h, "/api/countries?countries=Brazil,Canada"), &countries)
	if len(countries.Leaders) != 6 || countries.Leaders[0].Label != "India" {
		t.Fatalf("unexpected leaders %+v", countries.Leaders)
	}
	if len(countries.Restaurants) != 2 || countries.Restaurants[0].CountryName != "Brazil" {
		t.Fatalf("unexpected series %+v", countries.Restaurants)
	}

	var cities models.CitiesPage
	decode(t, get(t, h, "/api/cities?countries=India,Brazil"), &cities)
	if len(cities.TopRestaurants) != 2 || cities.TopRestaurants[0].City != "Pune" {
		t.Fatalf("unexpected cities %+v", cities.TopRestaurants)
	}
}

func TestMapDefaultsToTopCountries(t *testing.T) {
	var page models.MapPage
	decode(t, get(t, newTestMux(testSnapshot()), "/api/map"), &page)
	if len(page.Countries) != 3 || len(page.Markers) != 21 {
		t.Fatalf("got %d countries and %d markers", len(page.Countries), len(page.Markers))
	}
}

func TestRestaurantsPaging(t *testing.T) {
	h := newTestMux(testSnapshot())

	var body struct {
		Restaurants []models.Restaurant `json:"restaurants"`
		Pages       int                 `json:"pages"`
		TotalCount  int                 `json:"total_count"`
	}
	decode(t, get(t, h, "/api/restaurants?countries=India&page=2"), &body)
	if body.TotalCount != 15 || body.Pages != 2 || len(body.Restaurants) != 3 {
		t.Fatalf("unexpected page %d/%d with %d rows", body.TotalCount, body.Pages, len(body.Restaurants))
	}

	decode(t, get(t, h, "/api/restaurants?page=9"), &body)
	if body.Restaurants == nil || len(body.Restaurants) != 0 {
		t.Fatalf("past the end should be an empty list, got %v", body.Restaurants)
	}
}

func TestWarnings(t *testing.T) {
	var body struct {
		Count int `json:"count"`
	}
	decode(t, get(t, newTestMux(testSnapshot()), "/api/warnings"), &body)
	if body.Count != 1 {
		t.Fatalf("expected 1 warning, got %d", body.Count)
	}
}

func TestRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := utils.NewWriterLogger(utils.LevelWarn, &buf)
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
		http.Error(w, "nope", http.StatusBadRequest)
	})
	h := RequestID(logger, inner)

	rec := get(t, h, "/api/map")
	id := rec.Header().Get(RequestIDHeader)
	if id == "" || id != seen {
		t.Fatalf("request id not propagated: header %q, context %q", id, seen)
	}
	if !strings.Contains(buf.String(), id) || !strings.Contains(buf.String(), "400") {
		t.Fatalf("failed request not logged with id: %q", buf.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("caller id should be kept, got %q", rec.Header().Get(RequestIDHeader))
	}
}
