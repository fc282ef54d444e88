package models

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/simailhq/simail_backend/config"
	"github.com/simailhq/simail_backend/utils"
)

// Report is an immutable snapshot: its counts reflect the moment of
// generation and are never recomputed afterwards.
type Report struct {
	ID              int          `gorm:"primary_key" json:"id"`
	Title           string       `gorm:"size:255;not null" json:"title"`
	Type            string       `gorm:"size:100" json:"type"`
	Status          ReportStatus `gorm:"size:20" json:"status"`
	CreatedBy       string       `gorm:"size:100" json:"created_by"`
	Period          string       `gorm:"size:50" json:"period"`
	Summary         string       `gorm:"type:text" json:"summary"`
	ReportType      ReportType   `gorm:"size:20" json:"report_type"`
	TotalAudits     int          `json:"total_audits"`
	TotalFindings   int          `json:"total_findings"`
	CompletedAudits int          `json:"completed_audits"`
	AuditIds        []int        `gorm:"serializer:json" json:"audit_ids"`

	// Flattened snapshot of the referenced audit, specific_audit only.
	AuditId         int        `json:"audit_id"`
	AuditDepartment string     `gorm:"size:100" json:"audit_department"`
	AuditAuditor    string     `gorm:"size:100" json:"audit_auditor"`
	AuditStatus     string     `gorm:"size:30" json:"audit_status"`
	AuditStartDate  *time.Time `json:"audit_start_date"`
	AuditEndDate    *time.Time `json:"audit_end_date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetAllReports(ctx context.Context) ([]*Report, error) {

	db := config.GetDB()
	var results []*Report

	if err := db.WithContext(ctx).Order("created_at DESC").Find(&results).Error; err != nil {
		return results, err
	}

	return results, nil
}

func GetReport(ctx context.Context, id int) (*Report, error) {

	db := config.GetDB()
	var result Report

	err := db.WithContext(ctx).First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	return &result, nil
}

// UpdateReportStatus moves a snapshot through Draft, Approved and
// Published; the snapshot's counts stay frozen.
func UpdateReportStatus(ctx context.Context, id int, status ReportStatus) (*Report, error) {

	if !status.IsValid() {
		return nil, fmt.Errorf("invalid report status: %s", status)
	}

	db := config.GetDB()
	var report Report

	if err := db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := db.WithContext(ctx).Model(&report).Update("status", status).Error; err != nil {
		return nil, err
	}

	return GetReport(ctx, id)
}

func DeleteReport(ctx context.Context, id int) (*Report, error) {

	db := config.GetDB()
	var report Report

	if err := db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := db.WithContext(ctx).Delete(&report).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

// obtainReportLock takes a best-effort lock keyed by the report title so
// two concurrent generations of the same report do not both snapshot.
// Correctness never depends on the lock: when it cannot be obtained the
// caller proceeds anyway (at worst a duplicate snapshot row).
func obtainReportLock(ctx context.Context, title string) *redislock.Lock {
	locker := config.GetRedisLock()
	if locker == nil {
		return nil
	}
	lock, err := locker.Obtain(ctx, "ReportGeneration:"+title, 30*time.Second, nil)
	if err != nil {
		if err != redislock.ErrNotObtained {
			config.LogError(config.GetLogger(), "report", "obtainReportLock", "Error obtaining report lock", title, err)
		}
		return nil
	}
	return lock
}

// GenerateGeneralReport snapshots counts over every audit. The findings
// total comes from the findings table, which is authoritative.
func GenerateGeneralReport(ctx context.Context, createdBy string) (*Report, error) {

	db := config.GetDB()

	now := time.Now()
	title := fmt.Sprintf("Laporan Umum Audit %s", now.Format("2006-01-02"))

	if lock := obtainReportLock(ctx, title); lock != nil {
		defer lock.Release(ctx)
	}

	audits, err := GetAllAudits(ctx)
	if err != nil {
		return nil, err
	}

	totalFindings, err := CountFindings(ctx)
	if err != nil {
		return nil, err
	}

	completed := 0
	auditIds := make([]int, 0, len(audits))
	for _, a := range audits {
		auditIds = append(auditIds, a.ID)
		if a.Status == AuditStatusSelesai {
			completed++
		}
	}

	if createdBy == "" {
		createdBy = "Unknown"
	}

	report := Report{
		Title:           title,
		Type:            "Laporan Umum",
		Status:          ReportStatusDraft,
		CreatedBy:       createdBy,
		Period:          now.Format("2006"),
		Summary:         fmt.Sprintf("%d audit, %d temuan", len(audits), totalFindings),
		ReportType:      ReportTypeGeneral,
		TotalAudits:     len(audits),
		TotalFindings:   int(totalFindings),
		CompletedAudits: completed,
		AuditIds:        auditIds,
	}

	if err := db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

// GenerateAuditReport snapshots a single audit with its findings,
// flattening the audit's descriptive fields into the report row.
func GenerateAuditReport(ctx context.Context, auditId int, createdBy string) (*Report, error) {

	db := config.GetDB()

	audit, err := GetAudit(ctx, auditId)
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	title := fmt.Sprintf("Laporan Audit: %s", audit.Title)

	if lock := obtainReportLock(ctx, title); lock != nil {
		defer lock.Release(ctx)
	}

	findings, err := GetFindingsByAudit(ctx, audit.ID)
	if err != nil {
		return nil, err
	}

	completed := 0
	if audit.Status == AuditStatusSelesai {
		completed = 1
	}

	if createdBy == "" {
		createdBy = "Unknown"
	}

	report := Report{
		Title:           title,
		Type:            "Laporan Audit Khusus",
		Status:          ReportStatusDraft,
		CreatedBy:       createdBy,
		Period:          audit.Period,
		Summary:         fmt.Sprintf("1 audit, %d temuan", len(findings)),
		ReportType:      ReportTypeSpecificAudit,
		TotalAudits:     1,
		TotalFindings:   len(findings),
		CompletedAudits: completed,
		AuditIds:        []int{audit.ID},
		AuditId:         audit.ID,
		AuditDepartment: audit.Department,
		AuditAuditor:    audit.Auditor,
		AuditStatus:     string(audit.Status),
		AuditStartDate:  audit.StartDate,
		AuditEndDate:    audit.EndDate,
	}

	if err := db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, err
	}

	return &report, nil
}
