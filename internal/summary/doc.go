// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

// Package summary implements the narrative stop lookup.
//
// A form submission is normalized into Criteria, then matched by an Engine
// against the dataset snapshot with a conjunction of eight equality tests.
// The first match in load order is rendered as a sentence:
//
//	crit, err := summary.Normalize(in)
//	res, err := summary.NewEngine(snap).Generate(crit)
//	if errors.Is(err, summary.ErrNoMatch) {
//	    // show "No entries match your filters.."
//	}
package summary
