package main

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fomezero/config"
	"fomezero/utils"
)

const sampleDataset = `Restaurant ID,Restaurant Name,Country Code,City,Address,Locality,Locality Verbose,Longitude,Latitude,Cuisines,Average Cost for two,Currency,Has Table booking,Has Online delivery,Is delivering now,Switch to order menu,Price range,Aggregate rating,Rating color,Rating text,Votes
1,Cantina,30,Rio de Janeiro,Rua A,Centro,"Centro, Rio",-43.17,-22.90,"Brazilian, Bar Food",100,Brazilian Real(R$),No,No,No,No,2,4.2,Green,Very Good,50
2,Diner,216,Austin,Main St,Downtown,"Downtown, Austin",-97.74,30.26,American,20,Dollar($),No,Yes,No,No,1,3.9,Yellow,Good,80
3,Empty,1,Pune,,Camp,"Camp, Pune",73.87,18.52,Cafe,500,Indian Rupees(Rs.),No,No,No,No,1,3.5,Orange,Average,7
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zomato.csv")
	if err := os.WriteFile(path, []byte(sampleDataset), 0644); err != nil {
		t.Fatal(err)
	}
	return &config.Config{
		DatasetPath:       path,
		CurrencyMode:      config.CurrencyModeCompat,
		OutlierName:       "d'Arry's Verandah Restaurant",
		OutlierMinCostUSD: 1000000,
		CostSanityUSD:     10000,
	}
}

func TestRunExportsCSVAndSQLite(t *testing.T) {
	cfg := testConfig(t)
	out := t.TempDir()
	csvOut := filepath.Join(out, "prepared.csv")
	sqliteOut := filepath.Join(out, "prepared.db")
	logger := utils.NewWriterLogger(utils.LevelError, io.Discard)

	if err := run(cfg, csvOut, sqliteOut, false, logger); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(csvOut)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// the row with an empty address is dropped
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][9] != "Brazilian" || rows[2][11] != "USD" {
		t.Fatalf("unexpected rows %v", rows[1:])
	}
	if _, err := os.Stat(sqliteOut); err != nil {
		t.Fatalf("sqlite file not written: %v", err)
	}
}

func TestRunRejectsBadMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.CurrencyMode = "guess"
	err := run(cfg, "", "", false, utils.NewWriterLogger(utils.LevelError, io.Discard))
	if err == nil || !strings.Contains(err.Error(), "CURRENCY_MODE") {
		t.Fatalf("expected mode error, got %v", err)
	}
}
