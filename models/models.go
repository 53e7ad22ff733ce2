package models

// RawRecord is one data row of the source file keyed by canonical column name.
// Line is the 1-based line number in the file (the header is line 1).
type RawRecord struct {
	Line   int
	Values map[string]string
}

// Restaurant is a prepared record: typed, cleaned and carrying the derived
// fields every dashboard page reads.
type Restaurant struct {
	RestaurantID   int64  `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`

	CountryCode int     `json:"country_code"`
	CountryName string  `json:"country_name"`
	City        string  `json:"city"`
	Address     string  `json:"address,omitempty"`
	Locality    string  `json:"locality,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	// Cuisines holds only the first cuisine of the source list.
	Cuisines string `json:"cuisines"`

	Currency                  string  `json:"currency"`
	CurrencyCode              string  `json:"currency_code"`
	AverageCostForTwo         float64 `json:"average_cost_for_two"`
	AverageCostForTwoUSDollar float64 `json:"average_cost_for_two_us_dollar"`
	PriceRange                int     `json:"price_range,omitempty"`

	Votes           int64   `json:"votes"`
	AggregateRating float64 `json:"aggregate_rating"`
	RatingColor     string  `json:"rating_color,omitempty"`
	RatingText      string  `json:"rating_text,omitempty"`

	HasTableBooking   bool `json:"has_table_booking"`
	HasOnlineDelivery bool `json:"has_online_delivery"`
	IsDeliveringNow   bool `json:"is_delivering_now"`

	// Line is where the record came from in the source file.
	Line int `json:"-"`
}

// GroupStat is one row of an aggregated table. Only the keys the table was
// grouped by are set.
type GroupStat struct {
	CountryName string  `json:"country_name,omitempty"`
	City        string  `json:"city,omitempty"`
	Cuisine     string  `json:"cuisine,omitempty"`
	Value       float64 `json:"value"`
}

// Leader is a "top of the board" metric card.
type Leader struct {
	Title string  `json:"title"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Marker is a restaurant pin on the map page.
type Marker struct {
	RestaurantName  string  `json:"restaurant_name"`
	CountryName     string  `json:"country_name"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	AggregateRating float64 `json:"aggregate_rating"`
}

// RestaurantRow is the row shape of the "top restaurants" table.
type RestaurantRow struct {
	RestaurantID              int64   `json:"restaurant_id"`
	RestaurantName            string  `json:"restaurant_name"`
	CountryName               string  `json:"country_name"`
	City                      string  `json:"city"`
	Cuisines                  string  `json:"cuisines"`
	AverageCostForTwoUSDollar float64 `json:"average_cost_for_two_us_dollar"`
	AggregateRating           float64 `json:"aggregate_rating"`
	Votes                     int64   `json:"votes"`
}

// Warning is a data-quality finding raised while preparing the dataset.
type Warning struct {
	Kind           string  `json:"kind"`
	Line           int     `json:"line,omitempty"`
	RestaurantID   int64   `json:"restaurant_id,omitempty"`
	RestaurantName string  `json:"restaurant_name,omitempty"`
	CostUSD        float64 `json:"cost_usd,omitempty"`
	Message        string  `json:"message"`
}

// Overview holds the whole-dataset numbers shown on the home page.
type Overview struct {
	Restaurants int   `json:"restaurants"`
	Countries   int   `json:"countries"`
	Cities      int   `json:"cities"`
	Cuisines    int   `json:"cuisines"`
	TotalVotes  int64 `json:"total_votes"`
}

// SnapshotInfo describes where the served dataset came from.
type SnapshotInfo struct {
	Source            string `json:"source"`
	PreparedAt        string `json:"prepared_at"`
	CurrencyMode      string `json:"currency_mode"`
	RawRows           int    `json:"raw_rows"`
	DroppedIncomplete int    `json:"dropped_incomplete"`
	Excluded          int    `json:"excluded"`
	Rows              int    `json:"rows"`
	Warnings          int    `json:"warnings"`
}

// FilterOptions feeds the sidebar multi-selects.
type FilterOptions struct {
	Countries        []string `json:"countries"`
	Cuisines         []string `json:"cuisines"`
	DefaultCountries []string `json:"default_countries"`
	PageCountries    []string `json:"page_countries"`
	PageCuisines     []string `json:"page_cuisines"`
	MinLimit         int      `json:"min_limit"`
	MaxLimit         int      `json:"max_limit"`
	DefaultLimit     int      `json:"default_limit"`
}

type HomePage struct {
	Overview Overview     `json:"overview"`
	Snapshot SnapshotInfo `json:"snapshot"`
}

type MapPage struct {
	Countries []string `json:"countries"`
	Markers   []Marker `json:"markers"`
}

type CountriesPage struct {
	Countries   []string    `json:"countries"`
	Leaders     []Leader    `json:"leaders"`
	Restaurants []GroupStat `json:"restaurants"`
	Cities      []GroupStat `json:"cities"`
	Votes       []GroupStat `json:"votes"`
	Rating      []GroupStat `json:"rating"`
	Cuisines    []GroupStat `json:"cuisines"`
	CostUSD     []GroupStat `json:"cost_usd"`
	Share       []GroupStat `json:"share"`
}

type CitiesPage struct {
	Countries       []string    `json:"countries"`
	TopRestaurants  []GroupStat `json:"top_restaurants"`
	TopCuisines     []GroupStat `json:"top_cuisines"`
	TopCostUSD      []GroupStat `json:"top_cost_usd"`
	HighRatedCities []GroupStat `json:"high_rated_cities"`
	LowRatedCities  []GroupStat `json:"low_rated_cities"`
}

type CuisinesPage struct {
	Countries     []string        `json:"countries"`
	Cuisines      []string        `json:"cuisines"`
	TopRated      []RestaurantRow `json:"top_rated"`
	Table         []RestaurantRow `json:"table"`
	BestCuisines  []GroupStat     `json:"best_cuisines"`
	WorstCuisines []GroupStat     `json:"worst_cuisines"`
}
