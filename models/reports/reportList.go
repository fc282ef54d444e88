package reports

import (
	"context"
	"fmt"
	"strconv"

	"github.com/simailhq/simail_backend/models"
)

// Sentinel filter values meaning "no filter"; they mirror the dropdown
// defaults the dashboard renders.
const (
	FilterAllTypes = "Semua Jenis"
	FilterAllYears = "Semua Tahun"
)

// ReportRow is the list-view projection of a stored report.
type ReportRow struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	CreatedBy string `json:"created_by"`
	Period    string `json:"period"`
	Date      string `json:"date"`
}

// TransformReports shapes stored reports for the list view, filling
// display defaults for fields older rows may lack.
func TransformReports(reports []*models.Report) []ReportRow {
	rows := make([]ReportRow, 0, len(reports))
	for _, r := range reports {
		row := ReportRow{
			ID:        r.ID,
			Title:     r.Title,
			Subtitle:  r.Summary,
			Type:      r.Type,
			Status:    string(r.Status),
			CreatedBy: r.CreatedBy,
			Period:    r.Period,
			Date:      r.CreatedAt.Format("2006-01-02"),
		}
		if row.Subtitle == "" {
			row.Subtitle = fmt.Sprintf("%d audit, %d temuan", r.TotalAudits, r.TotalFindings)
		}
		if row.Type == "" {
			row.Type = "Laporan Audit"
		}
		if row.Status == "" {
			row.Status = "Draft"
		}
		if row.CreatedBy == "" {
			row.CreatedBy = "Unknown"
		}
		if row.Period == "" {
			row.Period = "Tidak ditentukan"
		}
		rows = append(rows, row)
	}
	return rows
}

// FilterReportRows applies type and year filters as an AND; either
// sentinel skips its dimension. Filtering transformed rows is idempotent,
// so the client can re-apply the same filters round-trip.
func FilterReportRows(rows []ReportRow, typeFilter string, yearFilter string) []ReportRow {
	filtered := make([]ReportRow, 0, len(rows))
	for _, row := range rows {
		if typeFilter != "" && typeFilter != FilterAllTypes && row.Type != typeFilter {
			continue
		}
		if yearFilter != "" && yearFilter != FilterAllYears {
			if yearOfDate(row.Date) != yearFilter {
				continue
			}
		}
		filtered = append(filtered, row)
	}
	return filtered
}

func yearOfDate(date string) string {
	if len(date) < 4 {
		return ""
	}
	year := date[:4]
	if _, err := strconv.Atoi(year); err != nil {
		return ""
	}
	return year
}

// GetReportRows lists stored reports, transformed and filtered.
func GetReportRows(ctx context.Context, typeFilter string, yearFilter string) ([]ReportRow, error) {
	reports, err := models.GetAllReports(ctx)
	if err != nil {
		return nil, err
	}
	return FilterReportRows(TransformReports(reports), typeFilter, yearFilter), nil
}
