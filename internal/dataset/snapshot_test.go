// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package dataset

import "testing"

func TestNewSnapshotAssignsRowIDs(t *testing.T) {
	t.Parallel()

	in := []TrafficStopRecord{
		{RowID: 99, VehicleNumber: ptr("A")},
		{RowID: 42, VehicleNumber: ptr("B")},
	}
	snap := NewSnapshot(in)

	for i := 0; i < snap.Len(); i++ {
		if snap.At(i).RowID != i {
			t.Errorf("At(%d).RowID = %d, want %d", i, snap.At(i).RowID, i)
		}
	}
	if in[0].RowID != 99 {
		t.Error("NewSnapshot must not modify the caller's slice")
	}
}

func TestSnapshotRecordsIsCopy(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot([]TrafficStopRecord{{VehicleNumber: ptr("A")}})

	out := snap.Records()
	out[0].VehicleNumber = ptr("changed")

	if *snap.At(0).VehicleNumber != "A" {
		t.Error("Records() must return a copy")
	}
}

func TestSnapshotEachStopsEarly(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot(make([]TrafficStopRecord, 5))

	visited := 0
	snap.Each(func(rec *TrafficStopRecord) bool {
		visited++
		return rec.RowID < 2
	})
	if visited != 3 {
		t.Errorf("visited %d records, want 3", visited)
	}
	if snap.LoadedAt().IsZero() {
		t.Error("LoadedAt() should be set")
	}
}
