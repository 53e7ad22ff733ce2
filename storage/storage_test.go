package storage

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"fomezero/database"
	"fomezero/models"
	"fomezero/services"
	"fomezero/utils"
)

func testLogger() *utils.Logger {
	return utils.NewWriterLogger(utils.LevelError, io.Discard)
}

func testSnapshot() *services.Snapshot {
	return &services.Snapshot{
		Restaurants: []models.Restaurant{
			{RestaurantID: 1, RestaurantName: "Cantina", CountryCode: 30, CountryName: "Brazil", City: "Rio de Janeiro",
				Cuisines: "Brazilian", Currency: "Brazilian Real(R$)", CurrencyCode: "BRL", AverageCostForTwo: 100,
				AverageCostForTwoUSDollar: 20, Votes: 50, AggregateRating: 4.2, HasOnlineDelivery: true},
			{RestaurantID: 2, RestaurantName: "Trattoria, \"Da Mario\"", CountryCode: 216, CountryName: "United States of America",
				City: "Austin", Cuisines: "Italian", Currency: "Dollar($)", CurrencyCode: "USD", AverageCostForTwo: 60,
				AverageCostForTwoUSDollar: 60, Votes: 300, AggregateRating: 4.6},
		},
		Warnings: []services.DataQualityWarning{
			{Kind: services.WarnOutlierUnmatched, RestaurantName: "d'Arry's Verandah Restaurant", Message: "no match"},
		},
	}
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "prepared.csv")
	w := NewCSVWriter(path, testLogger())
	if err := w.WriteSnapshot(testSnapshot()); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != len(Columns()) || rows[0][13] != "average_cost_for_two_us_dollar" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[2][1] != "Trattoria, \"Da Mario\"" {
		t.Fatalf("name not round-tripped: %q", rows[2][1])
	}
	if rows[1][13] != "20" || rows[1][20] != "Yes" || rows[1][19] != "No" {
		t.Fatalf("unexpected values %v", rows[1])
	}
}

func readBack(t *testing.T, w *SQLWriter) (int, float64, int) {
	t.Helper()
	var n, warnings int
	var usd float64
	if err := w.db.QueryRow(`SELECT COUNT(*) FROM restaurants`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if err := w.db.QueryRow(`SELECT average_cost_for_two_us_dollar FROM restaurants WHERE restaurant_id = 2`).Scan(&usd); err != nil {
		t.Fatal(err)
	}
	if err := w.db.QueryRow(`SELECT COUNT(*) FROM data_quality_warnings`).Scan(&warnings); err != nil {
		t.Fatal(err)
	}
	return n, usd, warnings
}

func TestSQLiteWriterReplacesContents(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "prepared.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	w := NewSQLiteWriter(db, testLogger())
	defer w.Close()

	for i := 0; i < 2; i++ {
		if err := w.WriteSnapshot(testSnapshot()); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	n, usd, warnings := readBack(t, w)
	if n != 2 || usd != 60 || warnings != 1 {
		t.Fatalf("got %d rows, usd %v, %d warnings", n, usd, warnings)
	}

	var name string
	var delivery bool
	if err := w.db.QueryRow(`SELECT restaurant_name, has_online_delivery FROM restaurants WHERE restaurant_id = 1`).Scan(&name, &delivery); err != nil {
		t.Fatal(err)
	}
	if name != "Cantina" || !delivery {
		t.Fatalf("unexpected row %q %v", name, delivery)
	}
}

func TestPostgresWriter(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := database.Connect(dsn)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	w := NewPostgresWriter(db, testLogger())
	defer w.Close()

	if err := w.WriteSnapshot(testSnapshot()); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	n, usd, warnings := readBack(t, w)
	if n != 2 || usd != 60 || warnings != 1 {
		t.Fatalf("got %d rows, usd %v, %d warnings", n, usd, warnings)
	}
}

func TestInsertSQLPlaceholders(t *testing.T) {
	pg := &SQLWriter{dialect: postgresDialect}
	if got := pg.insertSQL("t", []string{"a", "b"}); got != "INSERT INTO t (a, b) VALUES ($1, $2)" {
		t.Fatalf("postgres: %s", got)
	}
	lite := &SQLWriter{dialect: sqliteDialect}
	if got := lite.insertSQL("t", []string{"a", "b"}); got != "INSERT INTO t (a, b) VALUES (?, ?)" {
		t.Fatalf("sqlite: %s", got)
	}
}
