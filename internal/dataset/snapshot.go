// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package dataset

import "time"

// Snapshot is the dataset as loaded at startup. It is built once and never
// modified, so it can be shared by the summary engine, the loader and any
// number of concurrent requests without locking.
//
// Records keep source file order; RowID equals the position in that order.
type Snapshot struct {
	records  []TrafficStopRecord
	loadedAt time.Time
}

// NewSnapshot copies records into a new Snapshot and assigns RowIDs in the
// order given.
func NewSnapshot(records []TrafficStopRecord) *Snapshot {
	owned := make([]TrafficStopRecord, len(records))
	copy(owned, records)
	for i := range owned {
		owned[i].RowID = i
	}
	return &Snapshot{records: owned, loadedAt: time.Now()}
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// At returns the record at position i in load order.
func (s *Snapshot) At(i int) TrafficStopRecord {
	return s.records[i]
}

// Records returns a copy of the record slice.
func (s *Snapshot) Records() []TrafficStopRecord {
	out := make([]TrafficStopRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Each calls fn for every record in load order until fn returns false.
func (s *Snapshot) Each(fn func(rec *TrafficStopRecord) bool) {
	for i := range s.records {
		if !fn(&s.records[i]) {
			return
		}
	}
}

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}
