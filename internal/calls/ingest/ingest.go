// Package ingest parses uploaded scheduling workbooks into a validated
// customer list and a single schedule window.
package ingest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"callportal_backend/platform/apperr"

	"github.com/xuri/excelize/v2"
)

// Required header cells of the first row, matched case-insensitively after
// trimming. latest_at is optional.
const (
	headerName     = "name"
	headerNumber   = "number"
	headerEarliest = "earliest_at"
	headerLatest   = "latest_at"
)

const msgHeaders = "spreadsheet headers must include name, number, earliest_at (latest_at optional)"

// Row is one callee surviving validation. Name may be empty; Number is
// forwarded upstream as-is — phone format is the provider's concern.
type Row struct {
	Name   string
	Number string
}

// Window bounds when the whole batch may be placed. It is read from the
// first surviving row only; timing cells of later rows are never read.
type Window struct {
	EarliestAt time.Time
	LatestAt   *time.Time
}

// Upload is the parsed result of one scheduling workbook.
type Upload struct {
	Rows   []Row
	Window Window
}

// Parse reads the active sheet of an uploaded workbook. Rows without a
// phone number are dropped silently; every other deficiency fails the
// whole upload.
func Parse(data []byte) (*Upload, error) {
	if len(data) == 0 {
		return nil, apperr.BadRequest("empty spreadsheet file")
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, "unreadable spreadsheet file", err)
	}
	defer func() {
		_ = workbook.Close()
	}()

	sheet := workbook.GetSheetName(workbook.GetActiveSheetIndex())
	rows, err := workbook.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, "unreadable spreadsheet file", err)
	}
	if len(rows) == 0 {
		return nil, apperr.BadRequest("empty spreadsheet file")
	}

	columns := map[string]int{}
	for idx, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = idx
	}
	nameIdx, hasName := columns[headerName]
	numberIdx, hasNumber := columns[headerNumber]
	earliestIdx, hasEarliest := columns[headerEarliest]
	latestIdx, hasLatest := columns[headerLatest]
	if !hasName || !hasNumber || !hasEarliest {
		return nil, apperr.BadRequest(msgHeaders)
	}

	var (
		out         []Row
		earliestRaw string
		latestRaw   string
	)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		number := strings.TrimSpace(cellAt(row, numberIdx))
		if number == "" {
			// Deliberate leniency: a row without a number is dropped,
			// never forwarded and never an error.
			continue
		}

		if len(out) == 0 {
			earliestRaw = strings.TrimSpace(cellAt(row, earliestIdx))
			if hasLatest {
				latestRaw = strings.TrimSpace(cellAt(row, latestIdx))
			}
		}
		out = append(out, Row{
			Name:   strings.TrimSpace(cellAt(row, nameIdx)),
			Number: number,
		})
	}

	if len(out) == 0 {
		return nil, apperr.BadRequest("no valid rows found in spreadsheet")
	}

	window, err := ParseWindow(earliestRaw, latestRaw)
	if err != nil {
		return nil, err
	}

	return &Upload{Rows: out, Window: window}, nil
}

// ParseWindow builds a schedule window from raw timestamp values. The
// single-call scheduling path shares this with workbook ingestion.
func ParseWindow(earliestRaw, latestRaw string) (Window, error) {
	earliest, err := parseTimestamp(earliestRaw)
	if err != nil {
		return Window{}, apperr.Wrap(apperr.KindBadRequest, fmt.Sprintf("invalid earliest_at value %q", earliestRaw), err)
	}

	window := Window{EarliestAt: earliest}
	if latestRaw != "" {
		latest, err := parseTimestamp(latestRaw)
		if err != nil {
			return Window{}, apperr.Wrap(apperr.KindBadRequest, fmt.Sprintf("invalid latest_at value %q", latestRaw), err)
		}
		window.LatestAt = &latest
	}

	return window, nil
}

// parseTimestamp accepts ISO-8601 strings and native spreadsheet date-time
// cells (raw serial numbers). Anything else is a parse error.
func parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing timestamp")
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return excelize.ExcelDateToTime(serial, false)
	}

	return time.Time{}, fmt.Errorf("unsupported timestamp format %q", raw)
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
