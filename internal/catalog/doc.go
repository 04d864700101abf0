// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

// Package catalog is the fixed set of analytical questions the dashboard
// can answer.
//
// Each question is a QueryID constant mapped to an immutable Definition
// holding its slug, selector label and SQL. Placeholder stands for "nothing
// selected" and is always the first selector option; executing it is a
// no-op, not an error.
//
//	exec := catalog.NewExecutor(db)
//	res, err := exec.Execute(ctx, catalog.YearlyBreakdownByCountry)
//	if errors.Is(err, catalog.ErrDataAccess) {
//	    // store failure, surfaced as-is
//	}
package catalog
