package handlers

import (
	"net/http"

	"fomezero/services"
)

// OverviewHandler serves the home page metrics over the whole dataset.
func OverviewHandler(holder *services.Holder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshotOr503(w, holder)
		if !ok {
			return
		}
		writeJSON(w, services.HomePage(snap))
	}
}

// MapHandler serves restaurant markers for the selected countries.
func MapHandler(holder *services.Holder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := parseOr400(w, r)
		if !ok {
			return
		}
		snap, ok := snapshotOr503(w, holder)
		if !ok {
			return
		}
		writeJSON(w, services.MapPage(snap, p.Countries))
	}
}

func CountriesHandler(holder *services.Holder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := parseOr400(w, r)
		if !ok {
			return
		}
		snap, ok := snapshotOr503(w, holder)
		if !ok {
			return
		}
		writeJSON(w, services.CountriesPage(snap, p.Countries))
	}
}

func CitiesHandler(holder *services.Holder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := parseOr400(w, r)
		if !ok {
			return
		}
		snap, ok := snapshotOr503(w, holder)
		if !ok {
			return
		}
		writeJSON(w, services.CitiesPage(snap, p.Countries))
	}
}

// CuisinesHandler serves the restaurant and cuisine rankings. limit sizes the
// filtered restaurant table.
func CuisinesHandler(holder *services.Holder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := parseOr400(w, r)
		if !ok {
			return
		}
		snap, ok := snapshotOr503(w, holder)
		if !ok {
			return
		}
		writeJSON(w, services.CuisinesPage(snap, p.Countries, p.Cuisines, p.Limit))
	}
}

// Register mounts every dashboard route on mux.
func Register(mux *http.ServeMux, holder *services.Holder) {
	mux.HandleFunc("GET /health", HealthHandler(holder))
	mux.HandleFunc("GET /api/health", HealthHandler(holder))

	mux.HandleFunc("GET /api/filters", FiltersHandler(holder))
	mux.HandleFunc("GET /api/warnings", WarningsHandler(holder))
	mux.HandleFunc("GET /api/overview", OverviewHandler(holder))
	mux.HandleFunc("GET /api/map", MapHandler(holder))
	mux.HandleFunc("GET /api/countries", CountriesHandler(holder))
	mux.HandleFunc("GET /api/cities", CitiesHandler(holder))
	mux.HandleFunc("GET /api/cuisines", CuisinesHandler(holder))
	mux.HandleFunc("GET /api/restaurants", RestaurantsHandler(holder))
}
