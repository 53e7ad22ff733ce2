package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"fomezero/services"
)

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// snapshotOr503 returns the current snapshot, or answers 503 when none is loaded yet.
func snapshotOr503(w http.ResponseWriter, holder *services.Holder) (*services.Snapshot, bool) {
	snap := holder.Get()
	if snap == nil {
		http.Error(w, "Dataset not loaded", http.StatusServiceUnavailable)
		return nil, false
	}
	return snap, true
}

// FiltersHandler lists the countries and cuisines the selectors can offer,
// along with the default selection of each page.
func FiltersHandler(holder *services.Holder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshotOr503(w, holder)
		if !ok {
			return
		}
		writeJSON(w, services.FilterOptions(snap))
	}
}

// WarningsHandler returns the data quality findings of the current snapshot.
func WarningsHandler(holder *services.Holder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshotOr503(w, holder)
		if !ok {
			return
		}
		warnings := snap.Warnings
		if warnings == nil {
			warnings = []services.DataQualityWarning{}
		}
		writeJSON(w, map[string]interface{}{
			"warnings": warnings,
			"count":    len(warnings),
		})
	}
}

// HealthHandler reports whether a snapshot is being served and how old it is.
func HealthHandler(holder *services.Holder) http.HandlerFunc {
	return healthHandler(holder, time.Now)
}

func healthHandler(holder *services.Holder, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := holder.Get()
		if snap == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, map[string]interface{}{
			"status":      "ok",
			"snapshot":    snap.Info(),
			"age_seconds": int64(now().Sub(snap.PreparedAt).Seconds()),
		})
	}
}
