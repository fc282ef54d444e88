package reports

import (
	"context"
	"testing"
	"time"

	"github.com/simailhq/simail_backend/models"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		part  int
		total int
		want  int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
	}
	for _, tc := range tests {
		if got := percentage(tc.part, tc.total); got != tc.want {
			t.Fatalf("percentage(%d, %d) = %d, want %d", tc.part, tc.total, got, tc.want)
		}
	}
}

func TestSanitizeReportFilename(t *testing.T) {
	day := time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		title string
		want  string
	}{
		{"Laporan: Q1/2024 (Draft)", "laporan_q12024_draft_2026-05-20.xlsx"},
		{"Laporan Umum Audit", "laporan_umum_audit_2026-05-20.xlsx"},
		{"  spasi   ganda  ", "spasi_ganda_2026-05-20.xlsx"},
		{"under_score-dash", "under_score-dash_2026-05-20.xlsx"},
		{"///:::", "laporan_2026-05-20.xlsx"},
		{"", "laporan_2026-05-20.xlsx"},
	}
	for _, tc := range tests {
		if got := SanitizeReportFilename(tc.title, day); got != tc.want {
			t.Fatalf("SanitizeReportFilename(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

// Sanitizing an already-sanitized name (minus the suffix) must be stable.
func TestSanitizeReportFilenameIdempotentCore(t *testing.T) {
	day := time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC)

	first := SanitizeReportFilename("Laporan: Q1/2024 (Draft)", day)
	core := first[:len(first)-len("_2026-05-20.xlsx")]
	second := SanitizeReportFilename(core, day)
	if second != first {
		t.Fatalf("re-sanitizing changed name: %q vs %q", second, first)
	}
}

func TestBuildBasicReportWorkbook(t *testing.T) {
	report := &models.Report{
		Title:           "Laporan lama",
		Status:          models.ReportStatusDraft,
		Summary:         "2 audit, 1 temuan",
		Period:          "2026",
		CreatedBy:       "Budi Santoso",
		CreatedAt:       time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC),
		TotalAudits:     2,
		TotalFindings:   1,
		CompletedAudits: 1,
	}

	// empty report type falls through to the basic layout
	f, err := BuildReportWorkbook(context.Background(), report)
	if err != nil {
		t.Fatalf("BuildReportWorkbook: %v", err)
	}

	sheets := f.GetSheetList()
	want := map[string]bool{"Ringkasan": false, "Statistik": false}
	for _, s := range sheets {
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("sheet %q missing, got %v", name, sheets)
		}
	}

	title, err := f.GetCellValue("Ringkasan", "A1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if title != "Laporan lama" {
		t.Fatalf("A1 = %q, want report title", title)
	}

	pct, err := f.GetCellValue("Statistik", "C3")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if pct != "50%" {
		t.Fatalf("completed percentage = %q, want 50%%", pct)
	}
}
