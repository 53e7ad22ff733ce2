package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fomezero/models"
	"fomezero/services"
	"fomezero/utils"
)

// CSVWriter writes the prepared restaurants to a CSV file.
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// WriteSnapshot replaces the file with one row per prepared restaurant.
func (w *CSVWriter) WriteSnapshot(snap *services.Snapshot) error {
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range snap.Restaurants {
		if err := writer.Write(csvRow(r)); err != nil {
			return fmt.Errorf("failed to write CSV row for %q: %w", r.RestaurantName, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	w.logger.Info("Prepared restaurants written to: %s (%d rows)", w.filePath, len(snap.Restaurants))
	return nil
}

func (w *CSVWriter) Close() error { return nil }

func csvRow(r models.Restaurant) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{
		strconv.FormatInt(r.RestaurantID, 10),
		r.RestaurantName,
		strconv.Itoa(r.CountryCode),
		r.CountryName,
		r.City,
		r.Address,
		r.Locality,
		f(r.Latitude),
		f(r.Longitude),
		r.Cuisines,
		r.Currency,
		r.CurrencyCode,
		f(r.AverageCostForTwo),
		f(r.AverageCostForTwoUSDollar),
		strconv.Itoa(r.PriceRange),
		strconv.FormatInt(r.Votes, 10),
		f(r.AggregateRating),
		r.RatingColor,
		r.RatingText,
		yesNo(r.HasTableBooking),
		yesNo(r.HasOnlineDelivery),
		yesNo(r.IsDeliveringNow),
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
