package reports_test

import (
	"testing"
	"time"

	"github.com/simailhq/simail_backend/models"
	"github.com/simailhq/simail_backend/models/reports"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAverageAuditDurationDays(t *testing.T) {
	tests := []struct {
		name   string
		audits []*models.Audit
		want   int
	}{
		{
			name:   "no audits",
			audits: nil,
			want:   0,
		},
		{
			name: "no qualifying audits",
			audits: []*models.Audit{
				{Status: models.AuditStatusDalamProses, StartDate: datePtr(2026, 1, 1), EndDate: datePtr(2026, 1, 10)},
				{Status: models.AuditStatusSelesai, StartDate: datePtr(2026, 1, 1)},
				{Status: models.AuditStatusSelesai, EndDate: datePtr(2026, 1, 10)},
			},
			want: 0,
		},
		{
			name: "single completed audit",
			audits: []*models.Audit{
				{Status: models.AuditStatusSelesai, StartDate: datePtr(2026, 1, 1), EndDate: datePtr(2026, 1, 11)},
			},
			want: 10,
		},
		{
			name: "mean rounds half up",
			audits: []*models.Audit{
				{Status: models.AuditStatusSelesai, StartDate: datePtr(2026, 1, 1), EndDate: datePtr(2026, 1, 11)},
				{Status: models.AuditStatusSelesai, StartDate: datePtr(2026, 2, 1), EndDate: datePtr(2026, 2, 12)},
			},
			// (10+11)/2 = 10.5 rounds to 11
			want: 11,
		},
		{
			name: "partial day rounds up before averaging",
			audits: []*models.Audit{
				{
					Status:    models.AuditStatusSelesai,
					StartDate: datePtr(2026, 1, 1),
					EndDate:   func() *time.Time { d := time.Date(2026, 1, 2, 6, 0, 0, 0, time.UTC); return &d }(),
				},
			},
			want: 2,
		},
		{
			name: "negative span skipped",
			audits: []*models.Audit{
				{Status: models.AuditStatusSelesai, StartDate: datePtr(2026, 3, 10), EndDate: datePtr(2026, 3, 1)},
				{Status: models.AuditStatusSelesai, StartDate: datePtr(2026, 1, 1), EndDate: datePtr(2026, 1, 5)},
			},
			want: 4,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := reports.AverageAuditDurationDays(tc.audits)
			if got != tc.want {
				t.Fatalf("AverageAuditDurationDays = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestBuildDashboardStats(t *testing.T) {
	audits := []*models.Audit{
		{Status: models.AuditStatusSelesai},
		{Status: models.AuditStatusSelesai},
		{Status: models.AuditStatusDalamProses},
		{Status: models.AuditStatusDraft},
	}

	stats := reports.BuildDashboardStats(audits, 7)

	if stats.TotalAudits != 4 {
		t.Fatalf("TotalAudits = %d, want 4", stats.TotalAudits)
	}
	if stats.TotalFindings != 7 {
		t.Fatalf("TotalFindings = %d, want 7", stats.TotalFindings)
	}
	if stats.CompletedAudits != 2 {
		t.Fatalf("CompletedAudits = %d, want 2", stats.CompletedAudits)
	}
	if stats.InProgressAudits != 1 {
		t.Fatalf("InProgressAudits = %d, want 1", stats.InProgressAudits)
	}
}

func TestBuildReportStats(t *testing.T) {
	audits := []*models.Audit{
		{Status: models.AuditStatusSelesai, StartDate: datePtr(2026, 1, 1), EndDate: datePtr(2026, 1, 6)},
		{Status: models.AuditStatusBerlangsung},
	}
	findings := []*models.Finding{
		{Severity: models.SeverityTinggi},
		{Severity: models.SeverityRendah},
		{Severity: models.SeverityTinggi},
	}

	stats := reports.BuildReportStats(audits, findings, 4)

	if stats.TotalAudits != 2 || stats.TotalFindings != 3 {
		t.Fatalf("totals = (%d, %d), want (2, 3)", stats.TotalAudits, stats.TotalFindings)
	}
	if stats.Selesai != 1 {
		t.Fatalf("Selesai = %d, want 1", stats.Selesai)
	}
	if stats.Ditindaklanjuti != 4 {
		t.Fatalf("Ditindaklanjuti = %d, want 4", stats.Ditindaklanjuti)
	}
	if stats.PrioritasTinggi != 2 {
		t.Fatalf("PrioritasTinggi = %d, want 2", stats.PrioritasTinggi)
	}
	if stats.RataRataDurasi != 5 {
		t.Fatalf("RataRataDurasi = %d, want 5", stats.RataRataDurasi)
	}
}

func TestBuildMonthlyTrend(t *testing.T) {
	now := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

	auditDates := []time.Time{
		time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), // outside window
	}
	findingDates := []time.Time{
		time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
	}

	points := reports.BuildMonthlyTrend(now, auditDates, findingDates)

	if len(points) != 6 {
		t.Fatalf("len(points) = %d, want 6", len(points))
	}

	wantMonths := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	for i, want := range wantMonths {
		if points[i].Month != want {
			t.Fatalf("points[%d].Month = %q, want %q", i, points[i].Month, want)
		}
	}

	if points[0].Audits != 1 {
		t.Fatalf("January audits = %d, want 1", points[0].Audits)
	}
	if points[5].Audits != 2 {
		t.Fatalf("June audits = %d, want 2", points[5].Audits)
	}
	if points[2].Findings != 1 {
		t.Fatalf("March findings = %d, want 1", points[2].Findings)
	}
}

// A window anchored early in the calendar year reaches back into the
// previous year; bucket months must not collide with same-named months
// of the wrong year.
func TestBuildMonthlyTrendYearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

	auditDates := []time.Time{
		time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		// same month name, wrong year: must not be counted
		time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.February, 2, 0, 0, 0, 0, time.UTC),
	}

	points := reports.BuildMonthlyTrend(now, auditDates, nil)

	wantMonths := []string{"Sep", "Oct", "Nov", "Dec", "Jan", "Feb"}
	wantAudits := []int{1, 0, 0, 1, 1, 0}
	for i := range wantMonths {
		if points[i].Month != wantMonths[i] {
			t.Fatalf("points[%d].Month = %q, want %q", i, points[i].Month, wantMonths[i])
		}
		if points[i].Audits != wantAudits[i] {
			t.Fatalf("points[%d].Audits = %d, want %d", i, points[i].Audits, wantAudits[i])
		}
	}
}
