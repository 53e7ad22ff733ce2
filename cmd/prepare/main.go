package main

import (
	"flag"
	"fmt"
	"os"

	"fomezero/config"
	"fomezero/database"
	"fomezero/services"
	"fomezero/storage"
	"fomezero/utils"
)

// prepare runs the dataset preparer once and exports the result.
//
//	prepare -dataset dataset/zomato.csv -csv out/prepared.csv -sqlite out/prepared.db
func main() {
	cfg := config.Load()

	dataset := flag.String("dataset", cfg.DatasetPath, "raw Zomato CSV file")
	rates := flag.String("rates", cfg.RatesPath, "rate history CSV (empty: bundled table)")
	mode := flag.String("mode", cfg.CurrencyMode, "currency mode: compat or corrected")
	csvOut := flag.String("csv", "", "write prepared rows to this CSV file")
	sqliteOut := flag.String("sqlite", cfg.SQLitePath, "write prepared rows to this SQLite file")
	postgres := flag.Bool("postgres", false, "write prepared rows to PostgreSQL (DATABASE_URL)")
	logLevel := flag.String("log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	cfg.DatasetPath = *dataset
	cfg.RatesPath = *rates
	cfg.CurrencyMode = *mode
	logger := utils.NewWriterLogger(utils.ParseLevel(*logLevel), os.Stderr)

	if err := run(cfg, *csvOut, *sqliteOut, *postgres, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, csvOut, sqliteOut string, postgres bool, logger *utils.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	preparer, err := services.PreparerFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("load reference tables: %w", err)
	}
	snap, err := preparer.PrepareFile(cfg.DatasetPath)
	if err != nil {
		return fmt.Errorf("prepare %s: %w", cfg.DatasetPath, err)
	}

	var sinks []storage.SnapshotWriter
	defer func() {
		for _, s := range sinks {
			s.Close()
		}
	}()
	if csvOut != "" {
		sinks = append(sinks, storage.NewCSVWriter(csvOut, logger))
	}
	if sqliteOut != "" {
		db, err := database.OpenSQLite(sqliteOut)
		if err != nil {
			return err
		}
		sinks = append(sinks, storage.NewSQLiteWriter(db, logger))
	}
	if postgres {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		sinks = append(sinks, storage.NewPostgresWriter(db, logger))
	}

	for _, s := range sinks {
		if err := s.WriteSnapshot(snap); err != nil {
			return err
		}
	}

	fmt.Println(snap.Describe())
	return nil
}
