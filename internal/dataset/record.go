// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package dataset

import "time"

// TableName is the fixed name of the relational table holding the dataset.
const TableName = "traffic_stop"

// Source column names, in the canonical order used for the table schema.
const (
	ColVehicleNumber    = "vehicle_number"
	ColViolationRaw     = "violation_raw"
	ColSearchConducted  = "search_conducted"
	ColIsArrested       = "is_arrested"
	ColDriverAgeRaw     = "driver_age_raw"
	ColDriverGender     = "driver_gender"
	ColDriverRace       = "driver_race"
	ColCountryName      = "country_name"
	ColStopDateTime     = "stop_date_time"
	ColStopDate         = "stop_date"
	ColStopTime12hr     = "stop_time_12hr"
	ColStopDuration     = "stop_duration"
	ColDrugsRelatedStop = "drugs_related_stop"
	ColStopOutcome      = "stop_outcome"
)

// Columns lists every column a source CSV must provide.
var Columns = []string{
	ColVehicleNumber,
	ColViolationRaw,
	ColSearchConducted,
	ColIsArrested,
	ColDriverAgeRaw,
	ColDriverGender,
	ColDriverRace,
	ColCountryName,
	ColStopDateTime,
	ColStopDate,
	ColStopTime12hr,
	ColStopDuration,
	ColDrugsRelatedStop,
	ColStopOutcome,
}

// Stored driver gender codes.
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Stop duration buckets. The set is closed.
const (
	DurationShort  = "0-15"
	DurationMedium = "16-30"
	DurationLong   = "30+"
)

// DurationBuckets lists the stop duration buckets in ascending order.
var DurationBuckets = []string{DurationShort, DurationMedium, DurationLong}

// IsDurationBucket reports whether s is one of the three literal buckets.
func IsDurationBucket(s string) bool {
	for _, b := range DurationBuckets {
		if s == b {
			return true
		}
	}
	return false
}

// TrafficStopRecord is one stop as read from the source CSV.
//
// A nil field means the source cell was empty. Records held by a Snapshot
// are shared between readers and must not be modified.
type TrafficStopRecord struct {
	// RowID is the zero-based position of the row in the source file.
	RowID int `json:"row_id"`

	VehicleNumber    *string    `json:"vehicle_number"`
	ViolationRaw     *string    `json:"violation_raw"`
	SearchConducted  *bool      `json:"search_conducted"`
	IsArrested       *bool      `json:"is_arrested"`
	DriverAgeRaw     *int       `json:"driver_age_raw"`
	DriverGender     *string    `json:"driver_gender"`
	DriverRace       *string    `json:"driver_race"`
	CountryName      *string    `json:"country_name"`
	StopDateTime     *time.Time `json:"stop_date_time"`
	StopDate         *time.Time `json:"stop_date"`
	StopTime12hr     *string    `json:"stop_time_12hr"`
	StopDuration     *string    `json:"stop_duration"`
	DrugsRelatedStop *bool      `json:"drugs_related_stop"`
	StopOutcome      *string    `json:"stop_outcome"`
}

// Values returns the column values in Columns order, with nil for empty
// cells. Dates are passed as time.Time.
func (r *TrafficStopRecord) Values() []any {
	return []any{
		strOrNil(r.VehicleNumber),
		strOrNil(r.ViolationRaw),
		boolOrNil(r.SearchConducted),
		boolOrNil(r.IsArrested),
		intOrNil(r.DriverAgeRaw),
		strOrNil(r.DriverGender),
		strOrNil(r.DriverRace),
		strOrNil(r.CountryName),
		timeOrNil(r.StopDateTime),
		timeOrNil(r.StopDate),
		strOrNil(r.StopTime12hr),
		strOrNil(r.StopDuration),
		boolOrNil(r.DrugsRelatedStop),
		strOrNil(r.StopOutcome),
	}
}

func strOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func boolOrNil(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}

func intOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func timeOrNil(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}
