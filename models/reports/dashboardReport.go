package reports

import (
	"context"
	"math"
	"time"

	"github.com/simailhq/simail_backend/models"
)

type DashboardStatsResponse struct {
	TotalAudits      int `json:"total_audits"`
	TotalFindings    int `json:"total_findings"`
	CompletedAudits  int `json:"completed_audits"`
	InProgressAudits int `json:"in_progress_audits"`
}

type ReportStatsResponse struct {
	TotalAudits     int `json:"total_audits"`
	TotalFindings   int `json:"total_findings"`
	Selesai         int `json:"selesai"`
	Ditindaklanjuti int `json:"ditindaklanjuti"`
	PrioritasTinggi int `json:"prioritas_tinggi"`
	RataRataDurasi  int `json:"rata_rata_durasi"`
}

type TrendPoint struct {
	Month    string `json:"month"`
	Audits   int    `json:"audits"`
	Findings int    `json:"findings"`
}

// BuildDashboardStats shapes the four headline numbers from fetched rows.
func BuildDashboardStats(audits []*models.Audit, totalFindings int) *DashboardStatsResponse {
	stats := DashboardStatsResponse{
		TotalAudits:   len(audits),
		TotalFindings: totalFindings,
	}
	for _, a := range audits {
		switch a.Status {
		case models.AuditStatusSelesai:
			stats.CompletedAudits++
		case models.AuditStatusDalamProses:
			stats.InProgressAudits++
		}
	}
	return &stats
}

// AverageAuditDurationDays returns the rounded mean of per-audit day
// spans, where each span is the end-start difference rounded up to whole
// days. Only completed audits with both dates count; zero qualifying
// audits yields exactly 0.
func AverageAuditDurationDays(audits []*models.Audit) int {
	var totalDays float64
	var qualifying int

	for _, a := range audits {
		if a.Status != models.AuditStatusSelesai {
			continue
		}
		if a.StartDate == nil || a.EndDate == nil {
			continue
		}
		span := a.EndDate.Sub(*a.StartDate)
		if span < 0 {
			continue
		}
		totalDays += math.Ceil(span.Seconds() / 86400)
		qualifying++
	}

	if qualifying == 0 {
		return 0
	}
	return int(math.Round(totalDays / float64(qualifying)))
}

// BuildReportStats extends the dashboard numbers with follow-up volume,
// high-severity findings and the mean audit duration.
func BuildReportStats(audits []*models.Audit, findings []*models.Finding, followUpCount int) *ReportStatsResponse {
	stats := ReportStatsResponse{
		TotalAudits:     len(audits),
		TotalFindings:   len(findings),
		Ditindaklanjuti: followUpCount,
	}
	for _, a := range audits {
		if a.Status == models.AuditStatusSelesai {
			stats.Selesai++
		}
	}
	for _, f := range findings {
		if f.Severity == models.SeverityTinggi {
			stats.PrioritasTinggi++
		}
	}
	stats.RataRataDurasi = AverageAuditDurationDays(audits)
	return &stats
}

// BuildMonthlyTrend produces exactly six buckets, from five months ago
// through the month of now. Bucketing compares (year, month) pairs on a
// first-of-month anchor, so windows spanning a calendar-year boundary
// count correctly.
func BuildMonthlyTrend(now time.Time, auditDates []time.Time, findingDates []time.Time) []TrendPoint {
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	points := make([]TrendPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		month := anchor.AddDate(0, -i, 0)
		point := TrendPoint{Month: month.Format("Jan")}
		for _, d := range auditDates {
			if d.Year() == month.Year() && d.Month() == month.Month() {
				point.Audits++
			}
		}
		for _, d := range findingDates {
			if d.Year() == month.Year() && d.Month() == month.Month() {
				point.Findings++
			}
		}
		points = append(points, point)
	}
	return points
}

// GetDashboardStats fetches and shapes the dashboard headline numbers,
// optionally served from the redis cache.
func GetDashboardStats(ctx context.Context) (*DashboardStatsResponse, error) {

	cacheKey := "Report:DashboardStats"
	if reportCacheEnabled() {
		var cached DashboardStatsResponse
		if ok, err := cacheGet(cacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	started := time.Now()
	defer logSlowReport(ctx, "dashboard_stats", started, nil)

	audits, err := models.GetAllAudits(ctx)
	if err != nil {
		return nil, err
	}
	totalFindings, err := models.CountFindings(ctx)
	if err != nil {
		return nil, err
	}

	stats := BuildDashboardStats(audits, int(totalFindings))

	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, stats, reportCacheTTL())
	}

	return stats, nil
}

// GetReportStats fetches and shapes the statistics block of the reports
// page.
func GetReportStats(ctx context.Context) (*ReportStatsResponse, error) {

	cacheKey := "Report:ReportStats"
	if reportCacheEnabled() {
		var cached ReportStatsResponse
		if ok, err := cacheGet(cacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	started := time.Now()
	defer logSlowReport(ctx, "report_stats", started, nil)

	audits, err := models.GetAllAudits(ctx)
	if err != nil {
		return nil, err
	}
	findings, err := models.GetAllFindings(ctx)
	if err != nil {
		return nil, err
	}
	followUpCount, err := models.CountFollowUps(ctx)
	if err != nil {
		return nil, err
	}

	stats := BuildReportStats(audits, findings, int(followUpCount))

	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, stats, reportCacheTTL())
	}

	return stats, nil
}

// GetMonthlyTrend fetches creation dates and buckets them into the
// six-month trend series.
func GetMonthlyTrend(ctx context.Context) ([]TrendPoint, error) {

	started := time.Now()
	defer logSlowReport(ctx, "monthly_trend", started, nil)

	audits, err := models.GetAllAudits(ctx)
	if err != nil {
		return nil, err
	}
	findings, err := models.GetAllFindings(ctx)
	if err != nil {
		return nil, err
	}

	auditDates := make([]time.Time, 0, len(audits))
	for _, a := range audits {
		auditDates = append(auditDates, a.CreatedAt)
	}
	findingDates := make([]time.Time, 0, len(findings))
	for _, f := range findings {
		findingDates = append(findingDates, f.CreatedAt)
	}

	return BuildMonthlyTrend(time.Now(), auditDates, findingDates), nil
}
