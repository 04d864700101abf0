// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package summary

import (
	"errors"
	"fmt"

	"github.com/tomtom215/securecheck/internal/dataset"
)

// ErrInvalidCriteria is returned when a form value has no stored equivalent.
var ErrInvalidCriteria = errors.New("invalid summary criteria")

// Display labels accepted by the form.
const (
	LabelMale   = "Male"
	LabelFemale = "Female"
	LabelYes    = "Yes"
	LabelNo     = "No"
)

// Input holds the eight raw form values.
type Input struct {
	Age         int    `json:"driver_age" validate:"min=16,max=100"`
	Gender      string `json:"driver_gender" validate:"oneof=Male Female"`
	Violation   string `json:"violation" validate:"required,max=128"`
	StopTime    string `json:"stop_time" validate:"required,max=32"`
	Search      string `json:"search_conducted" validate:"yesno"`
	Outcome     string `json:"stop_outcome" validate:"required,max=64"`
	Duration    string `json:"stop_duration" validate:"duration_bucket"`
	DrugRelated string `json:"drugs_related_stop" validate:"yesno"`
}

// Criteria are the normalized values compared against each record.
type Criteria struct {
	Age             int
	Gender          string // dataset.GenderMale or dataset.GenderFemale
	Violation       string
	StopTime        string
	SearchConducted bool
	Outcome         string
	Duration        string
	DrugRelated     bool
}

// Normalize maps display labels onto stored values. Any value outside the
// two accepted labels, or a duration outside the three buckets, fails with
// ErrInvalidCriteria. Free-text fields pass through unchanged.
func Normalize(in Input) (Criteria, error) {
	var errs []error

	gender, err := ParseGender(in.Gender)
	if err != nil {
		errs = append(errs, err)
	}
	search, err := ParseYesNo(in.Search)
	if err != nil {
		errs = append(errs, fmt.Errorf("search_conducted: %w", err))
	}
	drugs, err := ParseYesNo(in.DrugRelated)
	if err != nil {
		errs = append(errs, fmt.Errorf("drugs_related_stop: %w", err))
	}
	if !dataset.IsDurationBucket(in.Duration) {
		errs = append(errs, fmt.Errorf("%w: stop duration %q", ErrInvalidCriteria, in.Duration))
	}
	if len(errs) > 0 {
		return Criteria{}, errors.Join(errs...)
	}

	return Criteria{
		Age:             in.Age,
		Gender:          gender,
		Violation:       in.Violation,
		StopTime:        in.StopTime,
		SearchConducted: search,
		Outcome:         in.Outcome,
		Duration:        in.Duration,
		DrugRelated:     drugs,
	}, nil
}

// ParseGender maps "Male" and "Female" to the stored gender codes.
func ParseGender(label string) (string, error) {
	switch label {
	case LabelMale:
		return dataset.GenderMale, nil
	case LabelFemale:
		return dataset.GenderFemale, nil
	default:
		return "", fmt.Errorf("%w: gender %q", ErrInvalidCriteria, label)
	}
}

// ParseYesNo maps "Yes" and "No" to booleans.
func ParseYesNo(label string) (bool, error) {
	switch label {
	case LabelYes:
		return true, nil
	case LabelNo:
		return false, nil
	default:
		return false, fmt.Errorf("%w: expected Yes or No, got %q", ErrInvalidCriteria, label)
	}
}
