package storage

import "fomezero/services"

// SnapshotWriter exports a prepared snapshot to some sink.
type SnapshotWriter interface {
	WriteSnapshot(snap *services.Snapshot) error
	Close() error
}

// columns is the export layout shared by every sink, in order.
var columns = []string{
	"restaurant_id", "restaurant_name", "country_code", "country_name", "city",
	"address", "locality", "latitude", "longitude", "cuisines",
	"currency", "currency_code", "average_cost_for_two", "average_cost_for_two_us_dollar",
	"price_range", "votes", "aggregate_rating", "rating_color", "rating_text",
	"has_table_booking", "has_online_delivery", "is_delivering_now",
}

// Columns returns a copy of the export column names.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}
