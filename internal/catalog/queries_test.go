// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package catalog

import (
	"context"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/tomtom215/securecheck/internal/config"
	"github.com/tomtom215/securecheck/internal/database"
	"github.com/tomtom215/securecheck/internal/dataset"
)

// testDBSemaphore keeps a single DuckDB instance open at a time.
var testDBSemaphore = make(chan struct{}, 1)

func ptr[T any](v T) *T { return &v }

type stop struct {
	vehicle   string
	violation string
	country   string
	gender    string
	race      string
	age       *int
	duration  string
	searched  bool
	arrested  bool
	drugs     bool
	at        string
}

var stops = []stop{
	{"KA01", "Speeding", "India", "M", "Asian", ptr(30), "0-15", false, false, false, "2020-01-01 22:15:00"},
	{"KA02", "Speeding", "India", "F", "White", ptr(22), "16-30", true, true, true, "2020-06-01 08:00:00"},
	{"ON01", "Seatbelt", "Canada", "M", "Black", ptr(45), "30+", false, true, false, "2021-03-04 09:30:00"},
	{"KA01", "Speeding", "India", "M", "Asian", nil, "0-15", false, false, true, "2021-01-01 22:15:00"},
	{"DL01", "DUI", "USA", "F", "Hispanic", ptr(19), "30+", true, true, true, "2020-02-02 01:00:00"},
	{"KA03", "Seatbelt", "India", "M", "White", ptr(50), "16-30", true, false, false, "2022-05-05 13:00:00"},
	{"KA04", "Speeding", "India", "F", "Black", ptr(24), "30+", false, true, false, "2021-07-07 14:00:00"},
}

func buildSnapshot(t *testing.T) *dataset.Snapshot {
	t.Helper()

	records := make([]dataset.TrafficStopRecord, 0, len(stops))
	for _, s := range stops {
		ts, err := time.Parse("2006-01-02 15:04:05", s.at)
		if err != nil {
			t.Fatalf("bad fixture time %q: %v", s.at, err)
		}
		date := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		label := ts.Format("03:04 PM")
		records = append(records, dataset.TrafficStopRecord{
			VehicleNumber:    ptr(s.vehicle),
			ViolationRaw:     ptr(s.violation),
			SearchConducted:  ptr(s.searched),
			IsArrested:       ptr(s.arrested),
			DriverAgeRaw:     s.age,
			DriverGender:     ptr(s.gender),
			DriverRace:       ptr(s.race),
			CountryName:      ptr(s.country),
			StopDateTime:     &ts,
			StopDate:         &date,
			StopTime12hr:     &label,
			StopDuration:     ptr(s.duration),
			DrugsRelatedStop: ptr(s.drugs),
			StopOutcome:      ptr("Ticket"),
		})
	}
	return dataset.NewSnapshot(records)
}

// setupLoadedStore opens an in-memory DuckDB store loaded with snap.
func setupLoadedStore(t *testing.T, snap *dataset.Snapshot) *Executor {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.New(&config.DatabaseConfig{
		Driver:          config.DriverDuckDB,
		Path:            ":memory:",
		MaxMemory:       "512MB",
		Threads:         1,
		InsertBatchSize: 100,
		QueryTimeout:    30 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.ResetAndLoad(context.Background(), snap); err != nil {
		t.Fatalf("ResetAndLoad() error = %v", err)
	}
	return NewExecutor(db)
}

func run(t *testing.T, exec *Executor, id QueryID) Result {
	t.Helper()
	res, err := exec.Execute(context.Background(), id)
	if err != nil {
		t.Fatalf("Execute(%s) error = %v", id, err)
	}
	if !res.Executed {
		t.Fatalf("Execute(%s) did not run", id)
	}
	return res
}

func column(t *testing.T, res Result, name string) int {
	t.Helper()
	for i, c := range res.Columns {
		if c == name {
			return i
		}
	}
	t.Fatalf("%s: no column %q in %v", res.Definition.Slug, name, res.Columns)
	return -1
}

func number(t *testing.T, v any) float64 {
	t.Helper()
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		t.Fatalf("value %v has non-numeric type %T", v, v)
		return 0
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func checkClose(t *testing.T, what string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func TestEveryQueryRuns(t *testing.T) {
	t.Parallel()

	exec := setupLoadedStore(t, buildSnapshot(t))
	for _, d := range All() {
		res := run(t, exec, d.ID)
		if len(res.Columns) == 0 {
			t.Errorf("%s returned no columns", d.Slug)
		}
	}
}

func TestEveryQueryRunsOnEmptyTable(t *testing.T) {
	t.Parallel()

	exec := setupLoadedStore(t, dataset.NewSnapshot(nil))
	for _, d := range All() {
		res := run(t, exec, d.ID)
		if len(res.Rows) != 0 {
			t.Errorf("%s returned %d rows on empty table", d.Slug, len(res.Rows))
		}
	}
}

// Averages use the bucket midpoints and match direct computation.
func TestAverageDurationUsesMidpoints(t *testing.T) {
	t.Parallel()

	exec := setupLoadedStore(t, buildSnapshot(t))
	res := run(t, exec, AverageDurationByViolation)

	sums := map[string]float64{}
	counts := map[string]int{}
	for _, s := range stops {
		sums[s.violation] += DurationMidpoint[s.duration]
		counts[s.violation]++
	}

	vi, ai := column(t, res, "violation_raw"), column(t, res, "avg_stop_duration")
	if len(res.Rows) != len(counts) {
		t.Fatalf("rows = %d, want %d", len(res.Rows), len(counts))
	}
	var got []string
	for _, row := range res.Rows {
		v := row[vi].(string)
		got = append(got, v)
		checkClose(t, "avg_stop_duration["+v+"]", number(t, row[ai]), round2(sums[v]/float64(counts[v])))
	}

	want := []string{"DUI", "Seatbelt", "Speeding"} // 35, 29, 18.25
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order = %v, want %v", got, want)
			break
		}
	}
}

// Rates are (TRUE count / group total) x 100 rounded to two decimals.
func TestRatesMatchDirectComputation(t *testing.T) {
	t.Parallel()

	exec := setupLoadedStore(t, buildSnapshot(t))

	type tally struct{ total, searched, arrested int }
	byViolation := map[string]*tally{}
	byCountryViolation := map[string]*tally{}
	add := func(m map[string]*tally, key string, s stop) {
		if m[key] == nil {
			m[key] = &tally{}
		}
		m[key].total++
		if s.searched {
			m[key].searched++
		}
		if s.arrested {
			m[key].arrested++
		}
	}
	for _, s := range stops {
		add(byViolation, s.violation, s)
		add(byCountryViolation, s.country+"|"+s.violation, s)
	}
	rate := func(n, total int) float64 { return round2(float64(n) / float64(total) * 100) }

	res := run(t, exec, ArrestRateByCountryAndViolation)
	ci, vi, ri := column(t, res, "country_name"), column(t, res, "violation_raw"), column(t, res, "arrest_rate")
	if len(res.Rows) != len(byCountryViolation) {
		t.Fatalf("arrest rate rows = %d, want %d", len(res.Rows), len(byCountryViolation))
	}
	prev := math.Inf(1)
	for _, row := range res.Rows {
		key := row[ci].(string) + "|" + row[vi].(string)
		tl := byCountryViolation[key]
		got := number(t, row[ri])
		checkClose(t, "arrest_rate["+key+"]", got, rate(tl.arrested, tl.total))
		if got > prev {
			t.Errorf("arrest_rate not descending at %s", key)
		}
		prev = got
	}

	res = run(t, exec, ViolationSearchAndArrestRates)
	vi = column(t, res, "violation_raw")
	si, ai := column(t, res, "search_avg_rate"), column(t, res, "arrest_avg_rate")
	sc, ac := column(t, res, "search_count"), column(t, res, "arrest_count")
	for _, row := range res.Rows {
		v := row[vi].(string)
		tl := byViolation[v]
		checkClose(t, "search_avg_rate["+v+"]", number(t, row[si]), rate(tl.searched, tl.total))
		checkClose(t, "arrest_avg_rate["+v+"]", number(t, row[ai]), rate(tl.arrested, tl.total))
		checkClose(t, "search_count["+v+"]", number(t, row[sc]), float64(tl.searched))
		checkClose(t, "arrest_count["+v+"]", number(t, row[ac]), float64(tl.arrested))
	}

	res = run(t, exec, TopArrestRateViolations)
	ai = column(t, res, "arrest_avg_rate")
	vi = column(t, res, "violation_raw")
	if len(res.Rows) > 5 {
		t.Errorf("top arrest rate returned %d rows, want at most 5", len(res.Rows))
	}
	for _, row := range res.Rows {
		v := row[vi].(string)
		tl := byViolation[v]
		checkClose(t, "top arrest_avg_rate["+v+"]", number(t, row[ai]), rate(tl.arrested, tl.total))
	}
}

// The running total per country equals the prefix sum of yearly arrests.
func TestYearlyCumulativeArrests(t *testing.T) {
	t.Parallel()

	exec := setupLoadedStore(t, buildSnapshot(t))
	res := run(t, exec, YearlyBreakdownByCountry)

	type key struct {
		country string
		year    int
	}
	arrests := map[key]int{}
	years := map[string][]int{}
	for _, s := range stops {
		year, _ := time.Parse("2006-01-02 15:04:05", s.at)
		k := key{s.country, year.Year()}
		if _, seen := arrests[k]; !seen {
			years[s.country] = append(years[s.country], k.year)
			arrests[k] = 0
		}
		if s.arrested {
			arrests[k]++
		}
	}

	var want [][4]any
	countries := make([]string, 0, len(years))
	for c := range years {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	for _, c := range countries {
		ys := years[c]
		sort.Ints(ys)
		running := 0
		for _, y := range ys {
			running += arrests[key{c, y}]
			want = append(want, [4]any{c, int64(y), int64(arrests[key{c, y}]), int64(running)})
		}
	}

	ci, yi := column(t, res, "country_name"), column(t, res, "year")
	ai, cum := column(t, res, "arrest_count"), column(t, res, "cumulative_arrest_count")
	if len(res.Rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(res.Rows), len(want))
	}
	for i, row := range res.Rows {
		got := [4]any{row[ci], row[yi], row[ai], row[cum]}
		if got != want[i] {
			t.Errorf("row %d = %v, want %v", i, got, want[i])
		}
	}
}

// Equal counts keep the group that appeared first in the CSV.
func TestTiesFollowLoadOrder(t *testing.T) {
	t.Parallel()

	exec := setupLoadedStore(t, buildSnapshot(t))

	res := run(t, exec, DrugRelatedVehicles)
	vi := column(t, res, "vehicle_number")
	var got []string
	for _, row := range res.Rows {
		got = append(got, row[vi].(string))
	}
	want := []string{"KA02", "KA01", "DL01"}
	if len(got) != len(want) {
		t.Fatalf("vehicles = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vehicles = %v, want %v", got, want)
			break
		}
	}

	res = run(t, exec, TopSearchCountry)
	if len(res.Rows) != 1 {
		t.Fatalf("top search country rows = %d, want 1", len(res.Rows))
	}
	if res.Rows[0][0] != "India" || res.Rows[0][1] != int64(2) {
		t.Errorf("top search country = %v, want [India 2]", res.Rows[0])
	}
}

func TestRepeatedExecutionIsIdentical(t *testing.T) {
	t.Parallel()

	exec := setupLoadedStore(t, buildSnapshot(t))
	for _, id := range []QueryID{GenderByCountry, StopsByPeriod, DemographicsByCountry} {
		first := run(t, exec, id)
		second := run(t, exec, id)
		if len(first.Rows) != len(second.Rows) {
			t.Fatalf("%s: row count changed between runs", id)
		}
		for i := range first.Rows {
			for j := range first.Rows[i] {
				if first.Rows[i][j] != second.Rows[i][j] {
					t.Errorf("%s: row %d col %d differs: %v vs %v", id, i, j, first.Rows[i][j], second.Rows[i][j])
				}
			}
		}
	}
}
