package reports

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/simailhq/simail_backend/models"
	"github.com/xuri/excelize/v2"
)

// percentage guards the zero-total case so an empty dataset exports 0,
// never NaN.
func percentage(part int, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// SanitizeReportFilename turns a report title into a safe download name:
// lowercase, alphanumerics plus space/hyphen/underscore only, whitespace
// runs collapsed to single underscores, dated .xlsx suffix.
func SanitizeReportFilename(title string, t time.Time) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	name := strings.Join(strings.Fields(b.String()), "_")
	if name == "" {
		name = "laporan"
	}
	return fmt.Sprintf("%s_%s.xlsx", name, t.Format("2006-01-02"))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// BuildReportWorkbook assembles the workbook for a stored report,
// choosing the layout by report type. Workbooks are streamed to the
// client and never persisted server-side.
func BuildReportWorkbook(ctx context.Context, report *models.Report) (*excelize.File, error) {
	switch report.ReportType {
	case models.ReportTypeGeneral:
		return buildGeneralReportWorkbook(ctx, report)
	case models.ReportTypeSpecificAudit:
		return buildAuditReportWorkbook(ctx, report)
	}
	return buildBasicReportWorkbook(report)
}

func writeSummarySheet(f *excelize.File, sheet string, report *models.Report, extraRows [][2]interface{}) error {
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 45); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", report.Title)

	rows := [][2]interface{}{
		{"Tanggal Dibuat", report.CreatedAt.Format("2006-01-02")},
		{"Dibuat Oleh", report.CreatedBy},
		{"Jenis Laporan", report.Type},
		{"Status", string(report.Status)},
		{"Periode", report.Period},
		{"Ringkasan", report.Summary},
		{"Total Audit", report.TotalAudits},
		{"Total Temuan", report.TotalFindings},
		{"Audit Selesai", report.CompletedAudits},
	}
	rows = append(rows, extraRows...)

	for i, row := range rows {
		rowNo := i + 3
		f.SetCellValue(sheet, "A"+fmt.Sprint(rowNo), row[0])
		f.SetCellValue(sheet, "B"+fmt.Sprint(rowNo), row[1])
	}
	return nil
}

func buildGeneralReportWorkbook(ctx context.Context, report *models.Report) (*excelize.File, error) {

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Ringkasan")

	if err := writeSummarySheet(f, "Ringkasan", report, nil); err != nil {
		return nil, err
	}

	// Re-fetch each referenced audit so the detail rows and status
	// histogram reflect the audits the snapshot was built from.
	audits := make([]*models.Audit, 0, len(report.AuditIds))
	for _, id := range report.AuditIds {
		audit, err := models.GetAudit(ctx, id)
		if err != nil {
			// snapshot can reference an audit deleted since generation
			continue
		}
		audits = append(audits, audit)
	}

	detail := "Detail"
	if _, err := f.NewSheet(detail); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(detail, "A", "A", 5); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(detail, "B", "B", 40); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(detail, "C", "I", 18); err != nil {
		return nil, err
	}

	detailHeaders := []string{"No", "Judul Audit", "Departemen", "Auditor", "Status", "Prioritas", "Progres (%)", "Tanggal Mulai", "Tanggal Selesai"}
	col := 'A'
	for _, h := range detailHeaders {
		f.SetCellValue(detail, string(col)+"1", h)
		col++
	}
	for i, a := range audits {
		rowNo := fmt.Sprint(i + 2)
		f.SetCellValue(detail, "A"+rowNo, i+1)
		f.SetCellValue(detail, "B"+rowNo, a.Title)
		f.SetCellValue(detail, "C"+rowNo, a.Department)
		f.SetCellValue(detail, "D"+rowNo, a.Auditor)
		f.SetCellValue(detail, "E"+rowNo, string(a.Status))
		f.SetCellValue(detail, "F"+rowNo, string(a.Priority))
		f.SetCellValue(detail, "G"+rowNo, a.Progress)
		f.SetCellValue(detail, "H"+rowNo, formatDate(a.StartDate))
		f.SetCellValue(detail, "I"+rowNo, formatDate(a.EndDate))
	}

	statistik := "Statistik"
	if _, err := f.NewSheet(statistik); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(statistik, "A", "A", 25); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(statistik, "B", "C", 15); err != nil {
		return nil, err
	}

	f.SetCellValue(statistik, "A1", "Status")
	f.SetCellValue(statistik, "B1", "Jumlah")
	f.SetCellValue(statistik, "C1", "Persentase")

	statusOrder := []models.AuditStatus{
		models.AuditStatusDraft,
		models.AuditStatusDisetujui,
		models.AuditStatusBerlangsung,
		models.AuditStatusDalamProses,
		models.AuditStatusReview,
		models.AuditStatusFinalisasi,
		models.AuditStatusSelesai,
	}
	counts := make(map[models.AuditStatus]int)
	for _, a := range audits {
		counts[a.Status]++
	}
	for i, status := range statusOrder {
		rowNo := fmt.Sprint(i + 2)
		f.SetCellValue(statistik, "A"+rowNo, string(status))
		f.SetCellValue(statistik, "B"+rowNo, counts[status])
		f.SetCellValue(statistik, "C"+rowNo, fmt.Sprintf("%d%%", percentage(counts[status], len(audits))))
	}

	return f, nil
}

func buildAuditReportWorkbook(ctx context.Context, report *models.Report) (*excelize.File, error) {

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Ringkasan")

	extra := [][2]interface{}{
		{"Departemen", report.AuditDepartment},
		{"Auditor", report.AuditAuditor},
		{"Status Audit", report.AuditStatus},
		{"Tanggal Mulai", formatDate(report.AuditStartDate)},
		{"Tanggal Selesai", formatDate(report.AuditEndDate)},
	}
	if err := writeSummarySheet(f, "Ringkasan", report, extra); err != nil {
		return nil, err
	}

	findings, err := models.GetFindingsByAudit(ctx, report.AuditId)
	if err != nil {
		return nil, err
	}

	temuan := "Temuan"
	if _, err := f.NewSheet(temuan); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(temuan, "A", "A", 5); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(temuan, "B", "B", 40); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(temuan, "C", "E", 18); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(temuan, "F", "G", 35); err != nil {
		return nil, err
	}

	findingHeaders := []string{"No", "Judul Temuan", "Kategori", "Tingkat", "Status", "Rekomendasi", "Unit Penanggung Jawab"}
	col := 'A'
	for _, h := range findingHeaders {
		f.SetCellValue(temuan, string(col)+"1", h)
		col++
	}
	for i, fd := range findings {
		rowNo := fmt.Sprint(i + 2)
		f.SetCellValue(temuan, "A"+rowNo, i+1)
		f.SetCellValue(temuan, "B"+rowNo, fd.Title)
		f.SetCellValue(temuan, "C"+rowNo, string(fd.Category))
		f.SetCellValue(temuan, "D"+rowNo, string(fd.Severity))
		f.SetCellValue(temuan, "E"+rowNo, string(fd.Status))
		f.SetCellValue(temuan, "F"+rowNo, fd.Recommendation)
		f.SetCellValue(temuan, "G"+rowNo, fd.ResponsibleUnit)
	}

	statistik := "Statistik"
	if _, err := f.NewSheet(statistik); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(statistik, "A", "A", 25); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(statistik, "B", "C", 15); err != nil {
		return nil, err
	}

	f.SetCellValue(statistik, "A1", "Tingkat Temuan")
	f.SetCellValue(statistik, "B1", "Jumlah")
	f.SetCellValue(statistik, "C1", "Persentase")

	severityOrder := []models.Severity{
		models.SeverityRendah,
		models.SeveritySedang,
		models.SeverityTinggi,
	}
	counts := make(map[models.Severity]int)
	for _, fd := range findings {
		counts[fd.Severity]++
	}
	for i, severity := range severityOrder {
		rowNo := fmt.Sprint(i + 2)
		f.SetCellValue(statistik, "A"+rowNo, string(severity))
		f.SetCellValue(statistik, "B"+rowNo, counts[severity])
		f.SetCellValue(statistik, "C"+rowNo, fmt.Sprintf("%d%%", percentage(counts[severity], len(findings))))
	}

	return f, nil
}

// buildBasicReportWorkbook is the fallback for rows whose report type
// predates the typed generation flows: summary plus headline statistics
// from the snapshot itself.
func buildBasicReportWorkbook(report *models.Report) (*excelize.File, error) {

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Ringkasan")

	if err := writeSummarySheet(f, "Ringkasan", report, nil); err != nil {
		return nil, err
	}

	statistik := "Statistik"
	if _, err := f.NewSheet(statistik); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(statistik, "A", "A", 25); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(statistik, "B", "C", 15); err != nil {
		return nil, err
	}

	f.SetCellValue(statistik, "A1", "Metrik")
	f.SetCellValue(statistik, "B1", "Jumlah")
	f.SetCellValue(statistik, "C1", "Persentase")

	f.SetCellValue(statistik, "A2", "Total Audit")
	f.SetCellValue(statistik, "B2", report.TotalAudits)
	f.SetCellValue(statistik, "C2", "100%")

	f.SetCellValue(statistik, "A3", "Audit Selesai")
	f.SetCellValue(statistik, "B3", report.CompletedAudits)
	f.SetCellValue(statistik, "C3", fmt.Sprintf("%d%%", percentage(report.CompletedAudits, report.TotalAudits)))

	f.SetCellValue(statistik, "A4", "Total Temuan")
	f.SetCellValue(statistik, "B4", report.TotalFindings)

	return f, nil
}
