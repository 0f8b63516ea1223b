package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	sim "github.com/traysim/traysim/sim"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// exportPath derives a per-scenario output path when several scenarios share
// one --output flag: report.csv becomes report.lunch-rush.csv.
func exportPath(path, scenario string, multi bool) string {
	if !multi {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + scenario + ext
}

// WriteRecordsCSV writes the ordered per-tray completion records.
func WriteRecordsCSV(path string, report *sim.RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"item_id", "completed_at_min", "wall_clock"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range report.Records {
		row := []string{
			strconv.Itoa(r.ItemID),
			strconv.FormatFloat(r.CompletedAt, 'f', 4, 64),
			r.WallClock.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for tray %d: %w", r.ItemID, err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteReportJSON writes the full report, records included.
func WriteReportJSON(path string, report *sim.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
