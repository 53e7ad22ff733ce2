package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fomezero/models"
	"fomezero/services"
)

const (
	DefaultPageSize = 12
)

type FilterParams struct {
	Countries []string
	Cuisines  []string
	Limit     int
	Page      int
}

// ParamError is a query parameter the API cannot accept.
type ParamError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Param, e.Value, e.Reason)
}

// ParseFilterParams extracts the page selectors from the URL query. Lists may
// be comma separated, repeated, or both. An absent limit or page falls back
// to its default; a malformed one is an error.
func ParseFilterParams(query url.Values) (FilterParams, error) {
	p := FilterParams{
		Countries: splitList(query["countries"]),
		Cuisines:  splitList(query["cuisines"]),
		Limit:     services.DefaultTableLimit,
		Page:      1,
	}

	if v := query.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, &ParamError{Param: "limit", Value: v, Reason: "not a number"}
		}
		if n < services.MinTableLimit || n > services.MaxTableLimit {
			return p, &ParamError{Param: "limit", Value: v,
				Reason: fmt.Sprintf("must be between %d and %d", services.MinTableLimit, services.MaxTableLimit)}
		}
		p.Limit = n
	}

	if v := query.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, &ParamError{Param: "page", Value: v, Reason: "not a number"}
		}
		if n > 0 {
			p.Page = n
		}
	}
	return p, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parseOr400 parses the query, answering 400 on a bad parameter.
func parseOr400(w http.ResponseWriter, r *http.Request) (FilterParams, bool) {
	p, err := ParseFilterParams(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return p, false
	}
	return p, true
}

// RestaurantsHandler returns the prepared records matching the country and
// cuisine filters, DefaultPageSize per page. No filter means every record.
func RestaurantsHandler(holder *services.Holder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := parseOr400(w, r)
		if !ok {
			return
		}
		snap, ok := snapshotOr503(w, holder)
		if !ok {
			return
		}

		matched := services.Filter{Countries: p.Countries, Cuisines: p.Cuisines}.Apply(snap.Restaurants)
		results, totalPages := services.Page(matched, p.Page, DefaultPageSize)
		if results == nil {
			results = []models.Restaurant{}
		}

		writeJSON(w, map[string]interface{}{
			"restaurants": results,
			"pages":       totalPages,
			"total_count": len(matched),
		})
	}
}
