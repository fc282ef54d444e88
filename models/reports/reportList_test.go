package reports_test

import (
	"testing"
	"time"

	"github.com/simailhq/simail_backend/models"
	"github.com/simailhq/simail_backend/models/reports"
)

func TestTransformReports(t *testing.T) {
	createdAt := time.Date(2026, time.May, 20, 9, 30, 0, 0, time.UTC)

	rows := reports.TransformReports([]*models.Report{
		{
			ID:            1,
			Title:         "Laporan Umum Audit 2026-05-20",
			Summary:       "3 audit, 5 temuan",
			Type:          "Laporan Umum",
			Status:        models.ReportStatusDraft,
			CreatedBy:     "Budi Santoso",
			Period:        "2026",
			CreatedAt:     createdAt,
			TotalAudits:   3,
			TotalFindings: 5,
		},
		{
			// legacy row with everything display-relevant missing
			ID:            2,
			Title:         "Laporan lama",
			CreatedAt:     createdAt,
			TotalAudits:   2,
			TotalFindings: 1,
		},
	})

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	full := rows[0]
	if full.Subtitle != "3 audit, 5 temuan" || full.Type != "Laporan Umum" || full.Date != "2026-05-20" {
		t.Fatalf("unexpected transformed row: %+v", full)
	}

	legacy := rows[1]
	if legacy.Subtitle != "2 audit, 1 temuan" {
		t.Fatalf("Subtitle = %q, want computed fallback", legacy.Subtitle)
	}
	if legacy.Type != "Laporan Audit" {
		t.Fatalf("Type = %q, want %q", legacy.Type, "Laporan Audit")
	}
	if legacy.Status != "Draft" {
		t.Fatalf("Status = %q, want %q", legacy.Status, "Draft")
	}
	if legacy.CreatedBy != "Unknown" {
		t.Fatalf("CreatedBy = %q, want %q", legacy.CreatedBy, "Unknown")
	}
	if legacy.Period != "Tidak ditentukan" {
		t.Fatalf("Period = %q, want %q", legacy.Period, "Tidak ditentukan")
	}
}

func TestFilterReportRows(t *testing.T) {
	rows := []reports.ReportRow{
		{ID: 1, Type: "Laporan Umum", Date: "2026-05-20"},
		{ID: 2, Type: "Laporan Audit Khusus", Date: "2026-01-02"},
		{ID: 3, Type: "Laporan Umum", Date: "2025-11-11"},
	}

	tests := []struct {
		name    string
		typeF   string
		yearF   string
		wantIds []int
	}{
		{"no filters", "", "", []int{1, 2, 3}},
		{"sentinel filters", reports.FilterAllTypes, reports.FilterAllYears, []int{1, 2, 3}},
		{"type only", "Laporan Umum", "", []int{1, 3}},
		{"year only", "", "2026", []int{1, 2}},
		{"type and year", "Laporan Umum", "2026", []int{1}},
		{"no matches", "Laporan Umum", "2020", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := reports.FilterReportRows(rows, tc.typeF, tc.yearF)
			if len(got) != len(tc.wantIds) {
				t.Fatalf("len = %d, want %d", len(got), len(tc.wantIds))
			}
			for i, row := range got {
				if row.ID != tc.wantIds[i] {
					t.Fatalf("got[%d].ID = %d, want %d", i, row.ID, tc.wantIds[i])
				}
			}
		})
	}
}

func TestFilterReportRowsIdempotent(t *testing.T) {
	rows := []reports.ReportRow{
		{ID: 1, Type: "Laporan Umum", Date: "2026-05-20"},
		{ID: 2, Type: "Laporan Audit Khusus", Date: "2026-01-02"},
	}

	once := reports.FilterReportRows(rows, "Laporan Umum", "2026")
	twice := reports.FilterReportRows(once, "Laporan Umum", "2026")

	if len(once) != len(twice) {
		t.Fatalf("re-filtering changed length: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("re-filtering changed row %d: %+v vs %+v", i, once[i], twice[i])
		}
	}
}
