// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package summary

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tomtom215/securecheck/internal/dataset"
	"github.com/tomtom215/securecheck/internal/logging"
	"github.com/tomtom215/securecheck/internal/metrics"
)

// ErrNoMatch reports that no record satisfies every criterion. It is an
// expected outcome, not a failure.
var ErrNoMatch = errors.New("no entries match the criteria")

// Result is a successful lookup.
type Result struct {
	// Sentence describes First.
	Sentence string `json:"sentence"`
	// First is the earliest match in load order.
	First dataset.TrafficStopRecord `json:"first"`
	// Matches holds every matching record in load order.
	Matches []dataset.TrafficStopRecord `json:"matches"`
}

// Engine matches criteria against an immutable snapshot. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	snap *dataset.Snapshot
}

// NewEngine returns an Engine over snap.
func NewEngine(snap *dataset.Snapshot) *Engine {
	return &Engine{snap: snap}
}

// Generate returns every record equal to c on all eight fields. Violation,
// stop time and outcome compare under Unicode case folding; the rest compare
// exactly. A record with a null in any compared field never matches.
func (e *Engine) Generate(c Criteria) (Result, error) {
	fold := cases.Fold()
	violation := fold.String(c.Violation)
	stopTime := fold.String(c.StopTime)
	outcome := fold.String(c.Outcome)

	var matches []dataset.TrafficStopRecord
	e.snap.Each(func(rec *dataset.TrafficStopRecord) bool {
		if rec.DriverAgeRaw == nil || *rec.DriverAgeRaw != c.Age ||
			rec.DriverGender == nil || *rec.DriverGender != c.Gender ||
			rec.SearchConducted == nil || *rec.SearchConducted != c.SearchConducted ||
			rec.DrugsRelatedStop == nil || *rec.DrugsRelatedStop != c.DrugRelated ||
			rec.StopDuration == nil || *rec.StopDuration != c.Duration {
			return true
		}
		if rec.ViolationRaw == nil || fold.String(*rec.ViolationRaw) != violation ||
			rec.StopTime12hr == nil || fold.String(*rec.StopTime12hr) != stopTime ||
			rec.StopOutcome == nil || fold.String(*rec.StopOutcome) != outcome {
			return true
		}
		matches = append(matches, *rec)
		return true
	})

	if len(matches) == 0 {
		metrics.RecordSummary("no_match", 0)
		logging.Debug().Int("age", c.Age).Str("violation", c.Violation).Msg("Summary lookup found no match")
		return Result{}, ErrNoMatch
	}

	metrics.RecordSummary("match", len(matches))
	return Result{
		Sentence: Render(&matches[0]),
		First:    matches[0],
		Matches:  matches,
	}, nil
}

// Render formats the narrative sentence for rec. Every field it reads is
// non-null on a matched record.
func Render(rec *dataset.TrafficStopRecord) string {
	gender := "female"
	if *rec.DriverGender == dataset.GenderMale {
		gender = "male"
	}
	search := "No search was conducted"
	if *rec.SearchConducted {
		search = "A search was conducted"
	}
	drugs := "not drug-related"
	if *rec.DrugsRelatedStop {
		drugs = "drug-related"
	}

	return fmt.Sprintf(
		"A %d-year-old %s driver was stopped for %s at %s. %s, and the driver received a %s. The stop lasted %s minutes and was %s.",
		*rec.DriverAgeRaw, gender, *rec.ViolationRaw, *rec.StopTime12hr,
		search, cases.Lower(language.Und).String(*rec.StopOutcome),
		*rec.StopDuration, drugs,
	)
}
