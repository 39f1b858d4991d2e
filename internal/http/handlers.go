package http

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"otslip/internal/core"
	"otslip/internal/directory"
	"otslip/internal/session"
	"otslip/internal/summary"
)

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.Snapshot())
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleRosterUpload(w, r)
	case http.MethodDelete:
		s.handleRosterClear(w, r)
	default:
		writeMethodNotAllowed(w, "POST, DELETE")
	}
}

func (s *Server) handleRosterUpload(w http.ResponseWriter, r *http.Request) {
	file, err := readRosterFile(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	employees, err := s.ledger.ImportRoster(r.Context(), file)
	if err != nil {
		// A bad file must leave the roster untouched.
		writeBadRequest(w, err)
		return
	}

	slog.InfoContext(r.Context(), "Roster imported", "count", len(employees))
	writeJSON(w, http.StatusOK, map[string]any{
		"employees": employeeViews(employees),
		"count":     len(employees),
	})
}

func (s *Server) handleRosterClear(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.ClearRoster(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	s.session.Clear()
	writeJSON(w, http.StatusOK, map[string]any{
		"employees": []employeeView{},
		"count":     0,
	})
}

func (s *Server) handlePayPeriod(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeMethodNotAllowed(w, "PUT")
		return
	}

	var req payPeriodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	var end core.Date
	if strings.TrimSpace(req.EndDate) != "" {
		var err error
		end, err = core.ParseDate(req.EndDate)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	if err := s.ledger.SetPayPeriodEnd(r.Context(), end); err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]any{
		"payPeriodEnd":   end,
		"standardAnchor": core.IsStandardAnchor(end),
	}
	if !end.IsZero() {
		weeks := core.Weeks(end)
		resp["week1"] = map[string]core.Date{"start": weeks.Week1Start, "end": weeks.Week1End}
		resp["week2"] = map[string]core.Date{"start": weeks.Week2Start, "end": weeks.Week2End}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEmployees(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, "GET")
		return
	}

	results := directory.SearchResults(s.ledger.Snapshot(), r.URL.Query().Get("q"))
	views := make([]searchView, len(results))
	for i, res := range results {
		views[i] = searchView{
			employeeView: employeeView{
				EmpNo:       res.Employee.EmpNo,
				Last:        res.Employee.Last,
				First:       res.Employee.First,
				DisplayName: res.Employee.DisplayName(),
			},
			HasEntries: res.HasEntries,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": views,
		"count":   len(views),
	})
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleAddEntry(w, r)
	case http.MethodGet:
		s.handleListEntries(w, r)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	date, category, hours := parseEntryRequest(req)
	entry, err := s.ledger.AddEntry(r.Context(), strings.TrimSpace(req.EmpNo), date, category, hours)
	if err != nil {
		writeError(w, err)
		return
	}

	// Adding an entry makes that employee the active one, like picking
	// them in the directory does.
	s.session.Select(core.Employee{EmpNo: entry.EmpNo, Last: entry.Last, First: entry.First})

	writeJSON(w, http.StatusCreated, map[string]any{
		"entry": entry,
		"index": len(s.ledger.Snapshot().Entries) - 1,
	})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	state := s.ledger.Snapshot()

	empNo := strings.TrimSpace(r.URL.Query().Get("empNo"))
	var entries []session.TaggedEntry
	if empNo != "" {
		entries = session.EntriesFor(state, empNo)
	} else {
		entries = s.session.EntriesForActive(state)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *Server) handleEntryByIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w, "DELETE")
		return
	}

	index, err := entryIndexFromPath(r.URL.Path)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	removed, err := s.ledger.RemoveEntry(r.Context(), index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
}

func (s *Server) handleSessionClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, "POST")
		return
	}

	if err := s.ledger.ClearSession(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	s.session.Clear()
	writeJSON(w, http.StatusOK, s.ledger.Snapshot())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, summaryView(s.ledger.Summary()))
}

func (s *Server) handleExportSlips(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, "POST")
		return
	}

	doc, err := s.exports.BlankSlips(r.Context(), s.ledger.Snapshot())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Bytes)
}

func (s *Server) handleExportOvertime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, "POST")
		return
	}

	bundle, err := s.exports.OvertimeDocuments(r.Context(), s.ledger.Snapshot())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"pdf":           base64.StdEncoding.EncodeToString(bundle.PDF.Bytes),
		"pdfFilename":   bundle.PDF.Name,
		"excel":         base64.StdEncoding.EncodeToString(bundle.Excel.Bytes),
		"excelFilename": bundle.Excel.Name,
	})
}

type employeeView struct {
	EmpNo       string `json:"empNo"`
	Last        string `json:"last"`
	First       string `json:"first"`
	DisplayName string `json:"displayName"`
}

type searchView struct {
	employeeView
	HasEntries bool `json:"hasEntries"`
}

func employeeViews(employees []core.Employee) []employeeView {
	out := make([]employeeView, len(employees))
	for i, e := range employees {
		out[i] = employeeView{EmpNo: e.EmpNo, Last: e.Last, First: e.First, DisplayName: e.DisplayName()}
	}
	return out
}

type weekCellsView struct {
	Dates      []core.Date   `json:"dates"`
	ByCategory [4]core.Hours `json:"byCategory"`
	Total      core.Hours    `json:"total"`
}

type rowView struct {
	EmpNo string        `json:"empNo"`
	Last  string        `json:"last"`
	First string        `json:"first"`
	Week1 weekCellsView `json:"week1"`
	Week2 weekCellsView `json:"week2"`
	Total core.Hours    `json:"total"`
}

type reportView struct {
	Rows            []rowView  `json:"rows"`
	GrandTotal      core.Hours `json:"grandTotal"`
	UniqueEmployees int        `json:"uniqueEmployees"`
}

func summaryView(report summary.Report) reportView {
	rows := make([]rowView, len(report.Rows))
	for i, row := range report.Rows {
		rows[i] = rowView{
			EmpNo: row.EmpNo,
			Last:  row.Last,
			First: row.First,
			Week1: weekCellsView(row.Week1),
			Week2: weekCellsView(row.Week2),
			Total: row.Total,
		}
	}
	return reportView{
		Rows:            rows,
		GrandTotal:      report.GrandTotal,
		UniqueEmployees: report.UniqueEmployees,
	}
}
