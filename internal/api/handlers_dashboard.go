// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package api

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/securecheck/internal/catalog"
	"github.com/tomtom215/securecheck/internal/dataset"
	"github.com/tomtom215/securecheck/internal/logging"
	"github.com/tomtom215/securecheck/internal/models"
	"github.com/tomtom215/securecheck/internal/summary"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var dashboardTemplate = template.Must(
	template.New("dashboard.html.tmpl").
		Funcs(template.FuncMap{"cell": formatCell}).
		ParseFS(templateFS, "templates/dashboard.html.tmpl"),
)

// Form choices offered by the summary form.
var (
	violationChoices = []string{"Drunk Driving", "Speeding", "Seatbelt", "Signal Violation", "Others"}
	outcomeChoices   = []string{"Ticket", "Warning", "Arrest"}
	genderChoices    = []string{summary.LabelMale, summary.LabelFemale}
	yesNoChoices     = []string{summary.LabelYes, summary.LabelNo}
)

// recordColumns heads the summary match table.
var recordColumns = append([]string{"row_id"}, dataset.Columns...)

// summaryForm holds the submitted form values so the page can redisplay them.
type summaryForm struct {
	Age         string
	Gender      string
	Violation   string
	StopTime    string
	Search      string
	Outcome     string
	Duration    string
	DrugRelated string
}

func defaultSummaryForm() summaryForm {
	return summaryForm{
		Age:         "16",
		Gender:      summary.LabelMale,
		Violation:   violationChoices[0],
		Search:      summary.LabelYes,
		Outcome:     outcomeChoices[0],
		Duration:    dataset.DurationShort,
		DrugRelated: summary.LabelYes,
	}
}

// dashboardView is the data the dashboard template renders.
type dashboardView struct {
	Options  []models.QueryOption
	Selected string

	Query      *catalog.Result
	QueryError string

	Form        summaryForm
	Violations  []string
	Outcomes    []string
	Genders     []string
	YesNo       []string
	Durations   []string
	FormErrors  []string
	Submitted   bool
	Sentence    string
	Matches     [][]any
	MatchHeader []string
	NoMatch     bool
	NoMatchText string
}

func (h *Handler) newDashboardView() *dashboardView {
	return &dashboardView{
		Options:     queryOptions(),
		Selected:    catalog.PlaceholderSlug,
		Form:        defaultSummaryForm(),
		Violations:  violationChoices,
		Outcomes:    outcomeChoices,
		Genders:     genderChoices,
		YesNo:       yesNoChoices,
		Durations:   dataset.DurationBuckets,
		MatchHeader: recordColumns,
		NoMatchText: NoMatchMessage,
	}
}

// Dashboard renders the page. The query parameter selects a catalog entry
// by slug; the placeholder (or no parameter) runs nothing.
//
// GET /?query={slug}
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	view := h.newDashboardView()
	status := http.StatusOK

	if slug := r.URL.Query().Get("query"); slug != "" && slug != catalog.PlaceholderSlug {
		view.Selected = slug
		result, err := h.executor.ExecuteSlug(r.Context(), slug)
		if err != nil {
			var code string
			status, code = classifyQueryError(err)
			view.QueryError = queryErrorMessage(code)
			if status >= http.StatusInternalServerError {
				logging.Ctx(r.Context()).Error().Err(err).Str("query", sanitizeLogValue(slug)).Msg("Dashboard query failed")
			}
		} else {
			view.Query = &result
		}
	}

	h.renderDashboard(w, r, status, view)
}

// DashboardSummary handles the summary form post and renders the page with
// the sentence and matching rows, or the no-match notice.
//
// POST /summary
func (h *Handler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	view := h.newDashboardView()
	view.Submitted = true

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := r.ParseForm(); err != nil {
		view.FormErrors = []string{"Could not read the submitted form"}
		h.renderDashboard(w, r, http.StatusBadRequest, view)
		return
	}

	form := summaryForm{
		Age:         strings.TrimSpace(r.PostFormValue("driver_age")),
		Gender:      r.PostFormValue("driver_gender"),
		Violation:   r.PostFormValue("violation"),
		StopTime:    strings.TrimSpace(r.PostFormValue("stop_time")),
		Search:      r.PostFormValue("search_conducted"),
		Outcome:     r.PostFormValue("stop_outcome"),
		Duration:    r.PostFormValue("stop_duration"),
		DrugRelated: r.PostFormValue("drugs_related_stop"),
	}
	view.Form = form

	age, err := strconv.Atoi(form.Age)
	if err != nil {
		view.FormErrors = []string{"Driver Age must be a whole number"}
		h.renderDashboard(w, r, http.StatusBadRequest, view)
		return
	}

	in := summary.Input{
		Age:         age,
		Gender:      form.Gender,
		Violation:   form.Violation,
		StopTime:    form.StopTime,
		Search:      form.Search,
		Outcome:     form.Outcome,
		Duration:    form.Duration,
		DrugRelated: form.DrugRelated,
	}

	result, apiErr, err := h.lookupSummary(&in)
	switch {
	case apiErr != nil:
		view.FormErrors = formErrors(apiErr)
		h.renderDashboard(w, r, http.StatusBadRequest, view)
		return
	case errors.Is(err, summary.ErrNoMatch):
		view.NoMatch = true
	case err != nil:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Summary generation failed")
		view.FormErrors = []string{"Failed to generate summary"}
		h.renderDashboard(w, r, http.StatusInternalServerError, view)
		return
	default:
		view.Sentence = result.Sentence
		view.Matches = recordRows(result.Matches)
	}

	h.renderDashboard(w, r, http.StatusOK, view)
}

// renderDashboard executes the template into a buffer first so a template
// error never leaves a half-written page.
func (h *Handler) renderDashboard(w http.ResponseWriter, r *http.Request, status int, view *dashboardView) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, view); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to execute dashboard template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write dashboard page")
	}
}

// formErrors flattens a validation error into display lines.
func formErrors(apiErr *models.APIError) []string {
	if fields, ok := apiErr.Details["fields"].([]map[string]any); ok {
		out := make([]string, 0, len(fields))
		for _, f := range fields {
			if msg, ok := f["message"].(string); ok {
				out = append(out, msg)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return []string{apiErr.Message}
}

// recordRows lays matching records out in recordColumns order.
func recordRows(records []dataset.TrafficStopRecord) [][]any {
	rows := make([][]any, len(records))
	for i := range records {
		row := make([]any, 0, len(recordColumns))
		row = append(row, records[i].RowID)
		row = append(row, records[i].Values()...)
		rows[i] = row
	}
	return rows
}

// formatCell renders one grid value. Nulls render empty; whole floats drop
// the fraction.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	default:
		return fmt.Sprint(x)
	}
}
