// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/securecheck/internal/catalog"
	"github.com/tomtom215/securecheck/internal/database"
	"github.com/tomtom215/securecheck/internal/dataset"
	"github.com/tomtom215/securecheck/internal/models"
	"github.com/tomtom215/securecheck/internal/summary"
)

const testCSV = "vehicle_number,violation_raw,search_conducted,is_arrested,driver_age_raw,driver_gender," +
	"driver_race,country_name,stop_date_time,stop_date,stop_time_12hr,stop_duration,drugs_related_stop,stop_outcome\n" +
	"KA01AB1234,Speeding,False,False,27,M,Asian,India,2020-01-01 22:15:00,2020-01-01,10:15 PM,0-15,False,Ticket\n" +
	"NY55XY0001,Speeding,False,True,27,M,White,USA,2020-01-02 22:15:00,2020-01-02,10:15 PM,0-15,False,Ticket\n" +
	"ON12CD5678,Seatbelt,True,False,41,F,Hispanic,Canada,2020-02-01 09:30:00,2020-02-01,09:30 AM,16-30,True,Arrest\n"

// fakeStore serves canned tables and health answers.
type fakeStore struct {
	table   *database.Table
	err     error
	pingErr error
	rows    int64
	calls   atomic.Int32
}

func (f *fakeStore) RunQuery(_ context.Context, _, _ string) (*database.Table, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) CountRows(context.Context) (int64, error) {
	if f.pingErr != nil {
		return 0, f.pingErr
	}
	return f.rows, nil
}

func (f *fakeStore) Driver() string       { return "duckdb" }
func (f *fakeStore) BreakerState() string { return "closed" }

func newFakeStore() *fakeStore {
	return &fakeStore{
		table: &database.Table{
			Columns: []string{"vehicle_number"},
			Rows:    [][]any{{"KA01AB1234"}, {"ON12CD5678"}},
		},
		rows: 3,
	}
}

func testSnapshot(t *testing.T) *dataset.Snapshot {
	t.Helper()
	snap, err := dataset.ReadCSV(strings.NewReader(testCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	return snap
}

func newTestHandler(t *testing.T, store *fakeStore) *Handler {
	t.Helper()
	snap := testSnapshot(t)
	return NewHandler(Deps{
		Executor: catalog.NewExecutor(store),
		Engine:   summary.NewEngine(snap),
		Store:    store,
		Snapshot: snap,
		Version:  "test",
	})
}

func newTestRouter(t *testing.T, store *fakeStore) http.Handler {
	t.Helper()
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	return NewRouter(newTestHandler(t, store), cfg).Setup()
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Message  string           `json:"message"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v: %s", err, rr.Body.String())
	}
	return env
}

func TestListQueries(t *testing.T) {
	t.Parallel()

	rr := serve(t, newTestRouter(t, newFakeStore()), http.MethodGet, "/api/v1/queries", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	env := decodeEnvelope(t, rr)
	var opts []models.QueryOption
	if err := json.Unmarshal(env.Data, &opts); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(opts) != len(catalog.All())+1 {
		t.Fatalf("got %d options, want %d", len(opts), len(catalog.All())+1)
	}
	if !opts[0].Placeholder || opts[0].Label != catalog.PlaceholderLabel {
		t.Errorf("first option = %+v, want placeholder", opts[0])
	}
	for i, d := range catalog.All() {
		if opts[i+1].Slug != d.Slug || opts[i+1].Label != d.Label {
			t.Errorf("option %d = %+v, want %s", i+1, opts[i+1], d.Slug)
		}
	}
	if env.Metadata.RequestID == "" {
		t.Error("metadata should carry the request ID")
	}
}

func TestExecuteQuery(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	rr := serve(t, newTestRouter(t, store), http.MethodGet, "/api/v1/queries/drug-related-vehicles", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	env := decodeEnvelope(t, rr)
	var result struct {
		Query    models.QueryOption `json:"query"`
		Executed bool               `json:"executed"`
		Columns  []string           `json:"columns"`
		Rows     [][]any            `json:"rows"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	if !result.Executed {
		t.Error("executed = false, want true")
	}
	if result.Query.Slug != "drug-related-vehicles" {
		t.Errorf("query slug = %q", result.Query.Slug)
	}
	if len(result.Rows) != 2 || result.Rows[0][0] != "KA01AB1234" {
		t.Errorf("rows = %v", result.Rows)
	}
	if store.calls.Load() != 1 {
		t.Errorf("store called %d times, want 1", store.calls.Load())
	}
}

func TestExecuteQueryPlaceholder(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	rr := serve(t, newTestRouter(t, store), http.MethodGet, "/api/v1/queries/"+catalog.PlaceholderSlug, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	env := decodeEnvelope(t, rr)
	if !strings.Contains(string(env.Data), `"executed":false`) {
		t.Errorf("placeholder should not execute: %s", env.Data)
	}
	if !strings.Contains(string(env.Data), `"rows":[]`) {
		t.Errorf("placeholder rows should be an empty array: %s", env.Data)
	}
	if store.calls.Load() != 0 {
		t.Error("placeholder must not touch the store")
	}
}

func TestExecuteQueryErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		slug       string
		storeErr   error
		wantStatus int
		wantCode   string
	}{
		{"unknown slug", "no-such-query", nil, http.StatusNotFound, models.CodeQueryNotFound},
		{"store failure", "top-search-country", errors.New("relation traffic_stop does not exist"), http.StatusInternalServerError, models.CodeDataAccess},
		{"circuit open", "top-search-country", errOpen, http.StatusServiceUnavailable, models.CodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newFakeStore()
			store.err = tt.storeErr
			rr := serve(t, newTestRouter(t, store), http.MethodGet, "/api/v1/queries/"+tt.slug, "")

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, rr)
			if env.Status != models.StatusError || env.Error == nil {
				t.Fatalf("envelope = %+v, want error", env)
			}
			if env.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", env.Error.Code, tt.wantCode)
			}
			if strings.Contains(rr.Body.String(), "traffic_stop does not exist") {
				t.Error("store error text must not reach the client")
			}
		})
	}
}

func summaryBody(overrides map[string]any) string {
	body := map[string]any{
		"driver_age":         27,
		"driver_gender":      "Male",
		"violation":          "speeding",
		"stop_time":          "10:15 pm",
		"search_conducted":   "No",
		"stop_outcome":       "TICKET",
		"stop_duration":      "0-15",
		"drugs_related_stop": "No",
	}
	for k, v := range overrides {
		body[k] = v
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func TestSummaryMatch(t *testing.T) {
	t.Parallel()

	rr := serve(t, newTestRouter(t, newFakeStore()), http.MethodPost, "/api/v1/summary", summaryBody(nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	env := decodeEnvelope(t, rr)
	if env.Status != models.StatusSuccess {
		t.Fatalf("status = %q, want success", env.Status)
	}
	var resp models.SummaryResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	want := "A 27-year-old male driver was stopped for Speeding at 10:15 PM. No search was conducted, " +
		"and the driver received a ticket. The stop lasted 0-15 minutes and was not drug-related."
	if resp.Sentence != want {
		t.Errorf("sentence = %q\nwant       %q", resp.Sentence, want)
	}
	if resp.MatchCount != 2 || len(resp.Matches) != 2 {
		t.Fatalf("match count = %d (%d rows), want 2", resp.MatchCount, len(resp.Matches))
	}
	if resp.Matches[0].RowID != 0 || resp.Matches[1].RowID != 1 {
		t.Errorf("matches out of load order: %d, %d", resp.Matches[0].RowID, resp.Matches[1].RowID)
	}
}

func TestSummaryNoMatch(t *testing.T) {
	t.Parallel()

	body := summaryBody(map[string]any{"stop_duration": "30+"})
	rr := serve(t, newTestRouter(t, newFakeStore()), http.MethodPost, "/api/v1/summary", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	env := decodeEnvelope(t, rr)
	if env.Status != models.StatusNoMatch {
		t.Errorf("status = %q, want no_match", env.Status)
	}
	if env.Message != NoMatchMessage {
		t.Errorf("message = %q, want %q", env.Message, NoMatchMessage)
	}
	if env.Error != nil {
		t.Error("no_match must not carry an error")
	}
}

func TestSummaryInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"age below range", summaryBody(map[string]any{"driver_age": 12})},
		{"age above range", summaryBody(map[string]any{"driver_age": 101})},
		{"unknown gender", summaryBody(map[string]any{"driver_gender": "Other"})},
		{"bad yes/no", summaryBody(map[string]any{"search_conducted": "Maybe"})},
		{"bad duration", summaryBody(map[string]any{"stop_duration": "45"})},
		{"missing violation", summaryBody(map[string]any{"violation": ""})},
		{"unknown field", summaryBody(map[string]any{"speed": 90})},
		{"malformed json", `{"driver_age": `},
		{"trailing data", summaryBody(nil) + `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := serve(t, newTestRouter(t, newFakeStore()), http.MethodPost, "/api/v1/summary", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rr.Code, rr.Body.String())
			}
			env := decodeEnvelope(t, rr)
			if env.Error == nil || env.Error.Code != models.CodeValidation {
				t.Errorf("error = %+v, want %s", env.Error, models.CodeValidation)
			}
		})
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeStore())

	rr := serve(t, router, http.MethodGet, "/api/v1/nothing-here", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", rr.Code)
	}
	if env := decodeEnvelope(t, rr); env.Error == nil || env.Error.Code != models.CodeNotFound {
		t.Errorf("unknown route error = %+v", env.Error)
	}

	rr = serve(t, router, http.MethodDelete, "/api/v1/queries", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("wrong method status = %d, want 405", rr.Code)
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	router := NewRouter(newTestHandler(t, newFakeStore()), cfg).Setup()

	for i := 0; i < 2; i++ {
		if rr := serve(t, router, http.MethodGet, "/api/v1/queries", ""); rr.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rr.Code)
		}
	}

	rr := serve(t, router, http.MethodGet, "/api/v1/queries", "")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rr.Code)
	}
	if env := decodeEnvelope(t, rr); env.Error == nil || env.Error.Code != models.CodeRateLimited {
		t.Errorf("error = %+v, want %s", env.Error, models.CodeRateLimited)
	}

	// Health endpoints are never throttled.
	if rr := serve(t, router, http.MethodGet, "/api/v1/health/live", ""); rr.Code != http.StatusOK {
		t.Errorf("live probe status = %d, want 200", rr.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeStore())

	rr := serve(t, router, http.MethodGet, "/api/v1/queries", "")
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rr.Header().Get("X-Request-ID"); got == "" {
		t.Error("X-Request-ID header missing")
	}

	rr = serve(t, router, http.MethodGet, "/", "")
	if got := rr.Header().Get("Content-Security-Policy"); got != dashboardCSP {
		t.Errorf("Content-Security-Policy = %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	rr := serve(t, newTestRouter(t, newFakeStore()), http.MethodGet, "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "securecheck_") {
		t.Error("metrics output should include securecheck_ series")
	}
}
