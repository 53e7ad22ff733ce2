package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"fomezero/models"
	"fomezero/services"
	"fomezero/utils"
)

// dialect holds what differs between the SQL sinks.
type dialect struct {
	name        string
	placeholder func(i int) string
	real        string
	integer     string
	boolean     string
}

var (
	postgresDialect = dialect{
		name:        "PostgreSQL",
		placeholder: func(i int) string { return fmt.Sprintf("$%d", i) },
		real:        "DOUBLE PRECISION",
		integer:     "BIGINT",
		boolean:     "BOOLEAN",
	}
	sqliteDialect = dialect{
		name:        "SQLite",
		placeholder: func(int) string { return "?" },
		real:        "REAL",
		integer:     "INTEGER",
		boolean:     "INTEGER",
	}
)

// SQLWriter stores a snapshot in the restaurants and data_quality_warnings
// tables. Every export replaces the previous contents in one transaction.
type SQLWriter struct {
	db      *sql.DB
	dialect dialect
	logger  *utils.Logger
}

// NewPostgresWriter wraps a connection from database.Connect.
func NewPostgresWriter(db *sql.DB, logger *utils.Logger) *SQLWriter {
	return &SQLWriter{db: db, dialect: postgresDialect, logger: logger}
}

// NewSQLiteWriter wraps a connection from database.OpenSQLite.
func NewSQLiteWriter(db *sql.DB, logger *utils.Logger) *SQLWriter {
	return &SQLWriter{db: db, dialect: sqliteDialect, logger: logger}
}

func (w *SQLWriter) columnType(col string) string {
	switch col {
	case "restaurant_id", "country_code", "price_range", "votes":
		return w.dialect.integer
	case "latitude", "longitude", "average_cost_for_two", "average_cost_for_two_us_dollar", "aggregate_rating":
		return w.dialect.real
	case "has_table_booking", "has_online_delivery", "is_delivering_now":
		return w.dialect.boolean
	default:
		return "TEXT"
	}
}

// CreateTables creates the export tables and their indexes if missing.
func (w *SQLWriter) CreateTables() error {
	defs := make([]string, 0, len(columns))
	for _, c := range columns {
		defs = append(defs, fmt.Sprintf("%s %s", c, w.columnType(c)))
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (` + strings.Join(defs, ", ") + `)`,
		`CREATE INDEX IF NOT EXISTS idx_restaurants_country ON restaurants (country_name)`,
		`CREATE INDEX IF NOT EXISTS idx_restaurants_cuisines ON restaurants (cuisines)`,
		`CREATE INDEX IF NOT EXISTS idx_restaurants_rating ON restaurants (aggregate_rating)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS data_quality_warnings (
			kind            TEXT NOT NULL,
			line            %[1]s,
			restaurant_id   %[1]s,
			restaurant_name TEXT,
			cost_usd        %[2]s,
			message         TEXT NOT NULL
		)`, w.dialect.integer, w.dialect.real),
	}
	for _, s := range statements {
		if _, err := w.db.Exec(s); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	w.logger.Info("%s tables are ready", w.dialect.name)
	return nil
}

func (w *SQLWriter) insertSQL(table string, cols []string) string {
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = w.dialect.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), strings.Join(ph, ", "))
}

// WriteSnapshot creates the tables if needed and replaces their contents.
func (w *SQLWriter) WriteSnapshot(snap *services.Snapshot) (err error) {
	if err := w.CreateTables(); err != nil {
		return err
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"restaurants", "data_quality_warnings"} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	stmt, err := tx.Prepare(w.insertSQL("restaurants", columns))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range snap.Restaurants {
		if _, err = stmt.Exec(restaurantArgs(r)...); err != nil {
			return fmt.Errorf("failed to insert restaurant %d %q: %w", r.RestaurantID, r.RestaurantName, err)
		}
	}

	warnStmt, err := tx.Prepare(w.insertSQL("data_quality_warnings",
		[]string{"kind", "line", "restaurant_id", "restaurant_name", "cost_usd", "message"}))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer warnStmt.Close()

	for _, wr := range snap.Warnings {
		if _, err = warnStmt.Exec(wr.Kind, wr.Line, wr.RestaurantID, wr.RestaurantName, wr.CostUSD, wr.Message); err != nil {
			return fmt.Errorf("failed to insert warning: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.logger.Info("Inserted %d restaurants and %d warnings into %s", len(snap.Restaurants), len(snap.Warnings), w.dialect.name)
	return nil
}

func (w *SQLWriter) Close() error {
	if w.db == nil {
		return nil
	}
	return w.db.Close()
}

func restaurantArgs(r models.Restaurant) []interface{} {
	return []interface{}{
		r.RestaurantID, r.RestaurantName, r.CountryCode, r.CountryName, r.City,
		r.Address, r.Locality, r.Latitude, r.Longitude, r.Cuisines,
		r.Currency, r.CurrencyCode, r.AverageCostForTwo, r.AverageCostForTwoUSDollar,
		r.PriceRange, r.Votes, r.AggregateRating, r.RatingColor, r.RatingText,
		r.HasTableBooking, r.HasOnlineDelivery, r.IsDeliveringNow,
	}
}
