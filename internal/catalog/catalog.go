// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package catalog

// QueryID identifies one analytical question. The set is closed.
type QueryID int

const (
	// Placeholder means no query has been chosen.
	Placeholder QueryID = iota
	DrugRelatedVehicles
	MostSearchedViolations
	ArrestsByDriverAge
	GenderByCountry
	SearchesByRaceAndGender
	StopsByTimeOfDay
	AverageDurationByViolation
	NightTimeArrests
	ViolationsWithSearchAndArrest
	ViolationsUnder25
	ViolationsRarelySearched
	DrugStopsByCountry
	ArrestRateByCountryAndViolation
	TopSearchCountry
	YearlyBreakdownByCountry
	ViolationTrendsByAgeAndRace
	StopsByPeriod
	ViolationSearchAndArrestRates
	DemographicsByCountry
	TopArrestRateViolations

	queryCount
)

// PlaceholderLabel is shown first in the selector and runs nothing.
const PlaceholderLabel = "--📋Available Queries!--"

// PlaceholderSlug addresses the placeholder over HTTP.
const PlaceholderSlug = "placeholder"

// Definition is the immutable description of one catalog entry.
type Definition struct {
	ID    QueryID `json:"-"`
	Slug  string  `json:"slug"`
	Label string  `json:"label"`
	SQL   string  `json:"-"`
}

// IsPlaceholder reports whether d is the no-query entry.
func (d Definition) IsPlaceholder() bool {
	return d.ID == Placeholder
}

// String returns the selector label.
func (id QueryID) String() string {
	if d, ok := Lookup(id); ok {
		return d.Label
	}
	return "QueryID(unknown)"
}

// Valid reports whether id is a member of the enumeration.
func (id QueryID) Valid() bool {
	return id >= Placeholder && id < queryCount
}

// DurationMidpoint maps each stop duration bucket to the minutes used when
// averaging durations.
var DurationMidpoint = map[string]float64{
	"0-15":  7.5,
	"16-30": 23,
	"30+":   35,
}

var placeholder = Definition{ID: Placeholder, Slug: PlaceholderSlug, Label: PlaceholderLabel}

var (
	bySlug  = make(map[string]Definition, int(queryCount))
	byLabel = make(map[string]Definition, int(queryCount))
)

func init() {
	if len(definitions) != int(queryCount)-1 {
		panic("catalog: definitions out of sync with QueryID constants")
	}
	register(placeholder)
	for i, d := range definitions {
		if d.ID != QueryID(i+1) {
			panic("catalog: definition " + d.Slug + " is out of order")
		}
		register(d)
	}
}

func register(d Definition) {
	if _, dup := bySlug[d.Slug]; dup {
		panic("catalog: duplicate slug " + d.Slug)
	}
	if _, dup := byLabel[d.Label]; dup {
		panic("catalog: duplicate label " + d.Label)
	}
	bySlug[d.Slug] = d
	byLabel[d.Label] = d
}

// All returns the runnable definitions in display order.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Options returns the selector labels with the placeholder first.
func Options() []string {
	out := make([]string, 0, len(definitions)+1)
	out = append(out, PlaceholderLabel)
	for _, d := range definitions {
		out = append(out, d.Label)
	}
	return out
}

// Lookup returns the definition for id.
func Lookup(id QueryID) (Definition, bool) {
	switch {
	case id == Placeholder:
		return placeholder, true
	case id.Valid():
		return definitions[id-1], true
	default:
		return Definition{}, false
	}
}

// ByLabel resolves a selector label.
func ByLabel(label string) (Definition, bool) {
	d, ok := byLabel[label]
	return d, ok
}

// BySlug resolves a URL slug.
func BySlug(slug string) (Definition, bool) {
	d, ok := bySlug[slug]
	return d, ok
}
