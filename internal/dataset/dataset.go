// Package dataset loads the historical country emissions time series used by
// the analytics page. The datasets are external, read-only CSV files, one per
// country; none of the state stores depend on them.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmissionsData is one year of a country's emissions record.
type EmissionsData struct {
	Country            string
	Year               int
	TotalEmissions     float64 // billion tonnes CO2
	PerCapitaEmissions float64 // tonnes CO2 per person
}

// Statistics summarizes a slice of the time series.
type Statistics struct {
	AverageTotalEmissions float64
	AveragePerCapita      float64
}

// Loader reads country CSV files from a datasets directory.
type Loader struct {
	dir string
	log zerolog.Logger
}

// NewLoader creates a loader for the given datasets directory.
func NewLoader(dir string, log zerolog.Logger) *Loader {
	return &Loader{
		dir: dir,
		log: log.With().Str("component", "dataset").Logger(),
	}
}

// Countries lists the available countries, alphabetically. A country is
// available when a <name>.csv file exists in the datasets directory.
func (l *Loader) Countries() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read datasets directory: %w", err)
	}

	var countries []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		countries = append(countries, strings.TrimSuffix(name, ".csv"))
	}
	sort.Strings(countries)
	return countries, nil
}

// Load parses the time series for one country. Rows that fail to parse are
// skipped and logged, not fatal.
func (l *Loader) Load(country string) ([]EmissionsData, error) {
	path := filepath.Join(l.dir, country+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset for %s: %w", country, err)
	}
	defer f.Close()

	data, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset for %s: %w", country, err)
	}
	l.log.Debug().Str("country", country).Int("rows", len(data)).Msg("dataset loaded")
	return data, nil
}

// Parse reads the emissions CSV format: a header row, then
// country,year,_,_,totalEmissions,perCapitaEmissions columns. Total emissions
// are stored in tonnes and scaled to billions. Malformed rows are dropped.
func Parse(r io.Reader) ([]EmissionsData, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) > 0 {
		rows = rows[1:] // header
	}

	var data []EmissionsData
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			continue
		}
		total, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil {
			continue
		}
		perCapita, _ := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		data = append(data, EmissionsData{
			Country:            row[0],
			Year:               year,
			TotalEmissions:     total / 1e9,
			PerCapitaEmissions: perCapita,
		})
	}
	return data, nil
}

// Years returns the distinct years present in the series, ascending.
func Years(data []EmissionsData) []int {
	seen := make(map[int]bool)
	var years []int
	for _, d := range data {
		if !seen[d.Year] {
			seen[d.Year] = true
			years = append(years, d.Year)
		}
	}
	sort.Ints(years)
	return years
}

// FilterByYearRange keeps the rows with startYear <= year <= endYear.
func FilterByYearRange(data []EmissionsData, startYear, endYear int) []EmissionsData {
	var out []EmissionsData
	for _, d := range data {
		if d.Year >= startYear && d.Year <= endYear {
			out = append(out, d)
		}
	}
	return out
}

// Calculate returns the averages over the given slice of the series.
func Calculate(data []EmissionsData) Statistics {
	if len(data) == 0 {
		return Statistics{}
	}
	var total, perCapita float64
	for _, d := range data {
		total += d.TotalEmissions
		perCapita += d.PerCapitaEmissions
	}
	n := float64(len(data))
	return Statistics{
		AverageTotalEmissions: total / n,
		AveragePerCapita:      perCapita / n,
	}
}
