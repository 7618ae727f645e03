package ingest

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"callportal_backend/platform/apperr"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	workbook := excelize.NewFile()
	defer func() {
		_ = workbook.Close()
	}()

	sheet := workbook.GetSheetName(workbook.GetActiveSheetIndex())
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to build cell name: %v", err)
		}
		if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("failed to write sheet row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}
	return buf.Bytes()
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected typed error, got %T: %v", err, err)
	}
	return domainErr.Kind
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse(nil)
	if err == nil {
		t.Fatal("expected error for empty file")
	}
	if kindOf(t, err) != apperr.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestParseMissingRequiredHeader(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"name", "phone", "earliest_at"},
		{"Alice", "+15550001111", "2026-09-01T09:00:00Z"},
	})

	_, err := Parse(data)
	if err == nil {
		t.Fatal("expected error for missing number header")
	}
	if kindOf(t, err) != apperr.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestParseHeaderOnlyWorkbook(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"name", "number", "earliest_at"},
	})

	_, err := Parse(data)
	if err == nil {
		t.Fatal("expected error when no data rows survive")
	}
	if kindOf(t, err) != apperr.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestParseDropsRowsWithoutNumberSilently(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"name", "number", "earliest_at", "latest_at"},
		{"No Phone", "", "2026-09-01T08:00:00Z", ""},
		{"Alice", "+15550001111", "2026-09-01T09:00:00Z", "2026-09-01T17:00:00Z"},
		{"Bob", "+15550002222", "2026-12-24T09:00:00Z", ""},
	})

	upload, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(upload.Rows) != 2 {
		t.Fatalf("expected 2 surviving rows, got %d", len(upload.Rows))
	}
	if upload.Rows[0].Name != "Alice" || upload.Rows[1].Name != "Bob" {
		t.Fatalf("unexpected rows: %+v", upload.Rows)
	}
}

func TestParseWindowComesFromFirstSurvivingRow(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"name", "number", "earliest_at", "latest_at"},
		{"Skipped", "", "2026-01-01T00:00:00Z", "2026-01-02T00:00:00Z"},
		{"Alice", "+15550001111", "2026-09-01T09:00:00Z", "2026-09-01T17:00:00Z"},
		{"Bob", "+15550002222", "2026-12-24T09:00:00Z", "2026-12-24T17:00:00Z"},
	})

	upload, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantEarliest := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	if !upload.Window.EarliestAt.Equal(wantEarliest) {
		t.Fatalf("expected earliest %v, got %v", wantEarliest, upload.Window.EarliestAt)
	}
	if upload.Window.LatestAt == nil {
		t.Fatal("expected latest bound to be set")
	}
	wantLatest := time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC)
	if !upload.Window.LatestAt.Equal(wantLatest) {
		t.Fatalf("expected latest %v, got %v", wantLatest, *upload.Window.LatestAt)
	}
}

func TestParseLatestOptional(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"name", "number", "earliest_at"},
		{"Alice", "+15550001111", "2026-09-01T09:00:00Z"},
	})

	upload, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upload.Window.LatestAt != nil {
		t.Fatalf("expected nil latest bound, got %v", *upload.Window.LatestAt)
	}
}

func TestParseHeaderMatchingIsCaseInsensitive(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{" Name ", "NUMBER", "Earliest_At"},
		{"Alice", "+15550001111", "2026-09-01T09:00:00Z"},
	})

	upload, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(upload.Rows) != 1 || upload.Rows[0].Number != "+15550001111" {
		t.Fatalf("unexpected rows: %+v", upload.Rows)
	}
}

func TestParseWindowAcceptsSerialDates(t *testing.T) {
	want, err := excelize.ExcelDateToTime(45000.5, false)
	if err != nil {
		t.Fatalf("failed to convert serial date: %v", err)
	}

	window, err := ParseWindow("45000.5", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !window.EarliestAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, window.EarliestAt)
	}
}

func TestParseWindowRejectsGarbage(t *testing.T) {
	_, err := ParseWindow("whenever", "")
	if err == nil {
		t.Fatal("expected error for unparseable timestamp")
	}
	if kindOf(t, err) != apperr.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestParseWindowRejectsBadLatest(t *testing.T) {
	_, err := ParseWindow("2026-09-01T09:00:00Z", "later")
	if err == nil {
		t.Fatal("expected error for unparseable latest bound")
	}
}
