package dataset

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"costpulse/internal/domain/cpih"
	"costpulse/pkg/errors"
)

// headlineColumn is the aggregate all-category column of the wide extract
const headlineColumn = "Headline"

// dateFormats accepted in the extract's date column, tried in order
var dateFormats = []string{"2006-01-02", "2006-01", time.RFC3339}

// CSVStore reads the published ONS wide extract (one row per month, one
// column per category plus Headline) straight from disk. The file is
// re-read on every Latest call.
type CSVStore struct {
	path string
}

// NewCSVStore creates a store over the wide CSV extract at path
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Latest implements Store
func (s *CSVStore) Latest(ctx context.Context) (*cpih.IndexRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrDataUnavailable, err.Error())
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDataUnavailable, "open %s: %v", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDataUnavailable, "parse %s: %v", s.path, err)
	}
	if len(rows) < 2 {
		return nil, errors.Wrapf(errors.ErrDataUnavailable, "%s has no data rows", s.path)
	}

	columns, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var latest *cpih.IndexRecord
	for _, row := range rows[1:] {
		record, err := parseRow(row, columns)
		if err != nil {
			return nil, err
		}
		// Not-Before rather than After: a corrected re-release appended for
		// the same month must win over the earlier row, matching the SQLite
		// store's upsert behavior.
		if latest == nil || !record.Date.Before(latest.Date) {
			latest = record
		}
	}

	return latest, nil
}

// columnIndex maps required column names to positions in the header row
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	required := []string{"date", headlineColumn}
	for _, c := range cpih.Categories() {
		required = append(required, c.String())
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, errors.Wrapf(errors.ErrDataUnavailable, "dataset lacks column %q", name)
		}
	}

	return index, nil
}

func parseRow(row []string, columns map[string]int) (*cpih.IndexRecord, error) {
	date, err := parseDate(row[columns["date"]])
	if err != nil {
		return nil, err
	}

	values := make(map[cpih.Category]float64, cpih.CategoryCount)
	for _, c := range cpih.Categories() {
		v, err := strconv.ParseFloat(row[columns[c.String()]], 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrDataUnavailable,
				"bad %s value in row dated %s: %v", c, row[columns["date"]], err)
		}
		values[c] = v
	}

	headline, err := strconv.ParseFloat(row[columns[headlineColumn]], 64)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDataUnavailable,
			"bad headline value in row dated %s: %v", row[columns["date"]], err)
	}

	return &cpih.IndexRecord{Date: date, Values: values, Headline: headline}, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(errors.ErrDataUnavailable, "unparsable date %q", raw)
}
