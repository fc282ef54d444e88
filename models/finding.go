package models

import (
	"context"
	"errors"
	"time"

	"github.com/simailhq/simail_backend/config"
	"github.com/simailhq/simail_backend/utils"
)

type Finding struct {
	ID              int             `gorm:"primary_key" json:"id"`
	AuditId         int             `gorm:"index;not null" json:"audit_id" binding:"required"`
	AuditTitle      string          `gorm:"size:255" json:"audit_title"`
	Title           string          `gorm:"size:255;not null" json:"title" binding:"required"`
	Description     string          `gorm:"type:text" json:"description"`
	Severity        Severity        `gorm:"size:10;index" json:"severity"`
	Category        FindingCategory `gorm:"size:20" json:"category"`
	Status          FindingStatus   `gorm:"size:30;index" json:"status"`
	Recommendation  string          `gorm:"type:text" json:"recommendation"`
	ResponsibleUnit string          `gorm:"size:100" json:"responsible_unit"`
	FindingDate     *time.Time      `json:"finding_date"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewFinding struct {
	AuditId         int             `json:"audit_id" binding:"required"`
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description"`
	Severity        Severity        `json:"severity"`
	Category        FindingCategory `json:"category"`
	Status          FindingStatus   `json:"status"`
	Recommendation  string          `json:"recommendation"`
	ResponsibleUnit string          `json:"responsible_unit"`
	FindingDate     *time.Time      `json:"finding_date"`
}

func GetAllFindings(ctx context.Context) ([]*Finding, error) {

	db := config.GetDB()
	var results []*Finding

	if err := db.WithContext(ctx).Order("created_at DESC").Find(&results).Error; err != nil {
		return results, err
	}

	return results, nil
}

func GetFinding(ctx context.Context, id int) (*Finding, error) {

	db := config.GetDB()
	var result Finding

	err := db.WithContext(ctx).First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	return &result, nil
}

// GetFindingsByAudit filters by the audit foreign key. An audit with no
// findings yields an empty list, not an error.
func GetFindingsByAudit(ctx context.Context, auditId int) ([]*Finding, error) {

	db := config.GetDB()
	var results []*Finding

	if err := db.WithContext(ctx).
		Where("audit_id = ?", auditId).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return results, err
	}

	return results, nil
}

func CountFindings(ctx context.Context) (int64, error) {

	db := config.GetDB()
	var count int64

	if err := db.WithContext(ctx).Model(&Finding{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func CreateFinding(ctx context.Context, input *NewFinding) (*Finding, error) {

	db := config.GetDB()

	if input.Status == "" {
		input.Status = FindingStatusTerbuka
	}
	if !input.Status.IsValid() {
		return nil, errors.New("invalid finding status")
	}
	if input.Severity != "" && !input.Severity.IsValid() {
		return nil, errors.New("invalid severity")
	}
	if input.Category != "" && !input.Category.IsValid() {
		return nil, errors.New("invalid category")
	}

	// Resolve the parent audit so the denormalized title stays consistent.
	audit, err := GetAudit(ctx, input.AuditId)
	if err != nil {
		return nil, errors.New("audit not found")
	}

	finding := Finding{
		AuditId:         audit.ID,
		AuditTitle:      audit.Title,
		Title:           input.Title,
		Description:     input.Description,
		Severity:        input.Severity,
		Category:        input.Category,
		Status:          input.Status,
		Recommendation:  input.Recommendation,
		ResponsibleUnit: input.ResponsibleUnit,
		FindingDate:     input.FindingDate,
	}

	if err := db.WithContext(ctx).Create(&finding).Error; err != nil {
		return nil, err
	}

	return &finding, nil
}

func UpdateFinding(ctx context.Context, id int, input *NewFinding) (*Finding, error) {

	db := config.GetDB()
	var finding Finding

	if err := db.WithContext(ctx).First(&finding, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if input.Status != "" && !input.Status.IsValid() {
		return nil, errors.New("invalid finding status")
	}
	if input.Severity != "" && !input.Severity.IsValid() {
		return nil, errors.New("invalid severity")
	}
	if input.Category != "" && !input.Category.IsValid() {
		return nil, errors.New("invalid category")
	}

	updates := map[string]interface{}{
		"title":            input.Title,
		"description":      input.Description,
		"severity":         input.Severity,
		"category":         input.Category,
		"status":           input.Status,
		"recommendation":   input.Recommendation,
		"responsible_unit": input.ResponsibleUnit,
		"finding_date":     input.FindingDate,
	}

	// Re-parenting a finding refreshes the denormalized audit title too.
	if input.AuditId != 0 && input.AuditId != finding.AuditId {
		audit, err := GetAudit(ctx, input.AuditId)
		if err != nil {
			return nil, errors.New("audit not found")
		}
		updates["audit_id"] = audit.ID
		updates["audit_title"] = audit.Title
	}

	if err := db.WithContext(ctx).Model(&finding).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetFinding(ctx, id)
}

func DeleteFinding(ctx context.Context, id int) (*Finding, error) {

	db := config.GetDB()
	var finding Finding

	if err := db.WithContext(ctx).First(&finding, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := db.WithContext(ctx).Delete(&finding).Error; err != nil {
		return nil, err
	}

	return &finding, nil
}
