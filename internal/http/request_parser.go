package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"otslip/internal/core"
)

// maxBodyBytes caps JSON bodies; roster uploads get their own limit.
const (
	maxBodyBytes   = 1 << 20  // 1 MiB
	maxRosterBytes = 10 << 20 // 10 MiB
)

// decodeJSON reads and decodes a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("empty request body")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// entryRequest is the POST /api/entries payload. Date, category and hours
// arrive as strings the way the form sends them.
type entryRequest struct {
	EmpNo    string `json:"empNo"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Hours    string `json:"hours"`
}

// parseEntryRequest converts the wire payload into domain values. Fields
// that fail to parse come back as zero values: the ledger reports the
// same sentinel for a bad field as for a missing one, and running its
// checks in one place keeps the validation order fixed.
func parseEntryRequest(req entryRequest) (date core.Date, category core.Category, hours core.Hours) {
	if d, err := core.ParseDate(req.Date); err == nil {
		date = d
	}
	if h, err := core.ParseHours(req.Hours); err == nil {
		hours = h
	}
	if c, err := core.ParseCategory(req.Category); err == nil {
		category = c
	}
	return date, category, hours
}

// payPeriodRequest is the PUT /api/pay-period payload.
type payPeriodRequest struct {
	EndDate string `json:"endDate"`
}

// readRosterFile pulls the uploaded CSV out of a multipart form. The file
// may be under any field name; the first part wins.
func readRosterFile(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxRosterBytes); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File) == 0 {
		return nil, fmt.Errorf("no file in upload")
	}
	for _, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		f, err := headers[0].Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxRosterBytes))
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("no file in upload")
}

// entryIndexFromPath extracts the positional index from /api/entries/{index}.
func entryIndexFromPath(path string) (int, error) {
	raw := strings.TrimPrefix(path, "/api/entries/")
	raw = strings.TrimSuffix(raw, "/")
	if raw == "" || strings.Contains(raw, "/") {
		return 0, fmt.Errorf("bad entry path %q", path)
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad entry index %q: %w", raw, err)
	}
	return index, nil
}
