// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/securecheck/internal/logging"
)

var (
	// ErrMissingColumn is returned when the CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMalformedRow is returned when a cell cannot be parsed into its column type.
	ErrMalformedRow = errors.New("malformed row")
)

// Accepted layouts for stop_date_time, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Accepted layouts for stop_date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// LoadFile reads the traffic stop CSV at path into a Snapshot.
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	start := time.Now()
	snap, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	logging.Info().
		Str("path", path).
		Int("rows", snap.Len()).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")

	return snap, nil
}

// ReadCSV parses a traffic stop CSV. Header names are matched
// case-insensitively after trimming; columns outside Columns are ignored.
// Any unparseable cell fails the whole read.
func ReadCSV(r io.Reader) (*Snapshot, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []TrafficStopRecord
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
		}
		records = append(records, rec)
	}

	return NewSnapshot(records), nil
}

// columnIndex maps each required column to its position in the header.
func columnIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	index := make(map[string]int, len(Columns))
	var missing []string
	for _, col := range Columns {
		pos, ok := positions[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		index[col] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRow(row []string, index map[string]int) (TrafficStopRecord, error) {
	var (
		rec  TrafficStopRecord
		errs []error
	)

	cell := func(col string) string {
		pos := index[col]
		if pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}
	text := func(col string) *string {
		v := cell(col)
		if v == "" {
			return nil
		}
		return &v
	}
	flag := func(col string) *bool {
		b, err := parseBool(cell(col))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", col, err))
		}
		return b
	}
	stamp := func(col string, layouts []string) *time.Time {
		ts, err := parseTime(cell(col), layouts)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", col, err))
		}
		return ts
	}

	rec.VehicleNumber = text(ColVehicleNumber)
	rec.ViolationRaw = text(ColViolationRaw)
	rec.SearchConducted = flag(ColSearchConducted)
	rec.IsArrested = flag(ColIsArrested)
	rec.DriverGender = text(ColDriverGender)
	rec.DriverRace = text(ColDriverRace)
	rec.CountryName = text(ColCountryName)
	rec.StopDateTime = stamp(ColStopDateTime, timestampLayouts)
	rec.StopDate = stamp(ColStopDate, dateLayouts)
	rec.StopTime12hr = text(ColStopTime12hr)
	rec.StopDuration = text(ColStopDuration)
	rec.DrugsRelatedStop = flag(ColDrugsRelatedStop)
	rec.StopOutcome = text(ColStopOutcome)

	age, err := parseAge(cell(ColDriverAgeRaw))
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", ColDriverAgeRaw, err))
	}
	rec.DriverAgeRaw = age

	return rec, errors.Join(errs...)
}

// parseBool accepts the spellings dataframe and spreadsheet exports produce.
func parseBool(s string) (*bool, error) {
	var v bool
	switch strings.ToLower(s) {
	case "":
		return nil, nil
	case "true", "t", "1", "yes", "y":
		v = true
	case "false", "f", "0", "no", "n":
		v = false
	default:
		return nil, fmt.Errorf("invalid boolean %q", s)
	}
	return &v, nil
}

// parseAge accepts integral values, including float spellings such as "30.0"
// that appear when a column with gaps is exported from a dataframe.
func parseAge(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		if strings.EqualFold(s, "nan") {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid age %q", s)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-integral age %q", s)
	}
	n := int(f)
	return &n, nil
}

func parseTime(s string, layouts []string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts, nil
		}
	}
	return nil, fmt.Errorf("unrecognized time %q", s)
}
