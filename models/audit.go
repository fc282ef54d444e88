package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simailhq/simail_backend/config"
	"github.com/simailhq/simail_backend/utils"
	"gorm.io/gorm"
)

// AuditTeamMember keeps its position in the team list; order matters to
// the dashboard (lead first).
type AuditTeamMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type Audit struct {
	ID          int               `gorm:"primary_key" json:"id"`
	Title       string            `gorm:"size:255;not null" json:"title" binding:"required"`
	Description string            `gorm:"type:text" json:"description"`
	Department  string            `gorm:"size:100" json:"department"`
	Type        string            `gorm:"size:100" json:"type"`
	Priority    Severity          `gorm:"size:10" json:"priority"`
	RiskLevel   Severity          `gorm:"size:10" json:"risk_level"`
	Status      AuditStatus       `gorm:"size:30;index" json:"status"`
	Auditor     string            `gorm:"size:100" json:"auditor"`
	StartDate   *time.Time        `json:"start_date"`
	EndDate     *time.Time        `json:"end_date"`
	Period      string            `gorm:"size:50" json:"period"`
	Budget      decimal.Decimal   `gorm:"type:decimal(18,2)" json:"budget"`
	Progress    int               `gorm:"default:0" json:"progress"`
	Team        []AuditTeamMember `gorm:"serializer:json" json:"team"`

	// Artifact counters, maintained server-side (see IncrementArtifactCounter).
	WorkPapersCount int  `gorm:"default:0" json:"work_papers_count"`
	EvidenceCount   int  `gorm:"default:0" json:"evidence_count"`
	InterviewsCount int  `gorm:"default:0" json:"interviews_count"`
	NotesCount      int  `gorm:"default:0" json:"notes_count"`
	HasWorkPapers   bool `gorm:"default:false" json:"has_work_papers"`
	HasEvidence     bool `gorm:"default:false" json:"has_evidence"`
	HasInterviews   bool `gorm:"default:false" json:"has_interviews"`
	HasNotes        bool `gorm:"default:false" json:"has_notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewAudit struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Department  string            `json:"department"`
	Type        string            `json:"type"`
	Priority    Severity          `json:"priority"`
	RiskLevel   Severity          `json:"risk_level"`
	Status      AuditStatus       `json:"status"`
	Auditor     string            `json:"auditor"`
	StartDate   *time.Time        `json:"start_date"`
	EndDate     *time.Time        `json:"end_date"`
	Period      string            `json:"period"`
	Budget      decimal.Decimal   `json:"budget"`
	Progress    int               `json:"progress"`
	Team        []AuditTeamMember `json:"team"`
}

func GetAllAudits(ctx context.Context) ([]*Audit, error) {

	db := config.GetDB()
	var results []*Audit

	if err := db.WithContext(ctx).Order("created_at DESC").Find(&results).Error; err != nil {
		return results, err
	}

	return results, nil
}

func GetAudit(ctx context.Context, id int) (*Audit, error) {

	db := config.GetDB()
	var result Audit

	err := db.WithContext(ctx).First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	return &result, nil
}

// GetPlanningAudits returns audits still in the planning bucket
// (Draft, Disetujui).
func GetPlanningAudits(ctx context.Context) ([]*Audit, error) {
	return getAuditsByStatuses(ctx, PlanningStatuses)
}

// GetExecutionAudits returns audits in the execution bucket
// (Berlangsung through Selesai).
func GetExecutionAudits(ctx context.Context) ([]*Audit, error) {
	return getAuditsByStatuses(ctx, ExecutionStatuses)
}

func getAuditsByStatuses(ctx context.Context, statuses []AuditStatus) ([]*Audit, error) {

	db := config.GetDB()
	var results []*Audit

	if err := db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return results, err
	}

	return results, nil
}

func CreateAudit(ctx context.Context, input *NewAudit) (*Audit, error) {

	db := config.GetDB()

	if input.Status == "" {
		input.Status = AuditStatusDraft
	}
	if !input.Status.IsValid() {
		return nil, errors.New("invalid audit status")
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, errors.New("invalid audit priority")
	}
	if input.RiskLevel != "" && !input.RiskLevel.IsValid() {
		return nil, errors.New("invalid risk level")
	}
	if input.Progress < 0 || input.Progress > 100 {
		return nil, errors.New("progress must be between 0 and 100")
	}

	audit := Audit{
		Title:       input.Title,
		Description: input.Description,
		Department:  input.Department,
		Type:        input.Type,
		Priority:    input.Priority,
		RiskLevel:   input.RiskLevel,
		Status:      input.Status,
		Auditor:     input.Auditor,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Period:      input.Period,
		Budget:      input.Budget,
		Progress:    input.Progress,
		Team:        input.Team,
	}

	if err := db.WithContext(ctx).Create(&audit).Error; err != nil {
		return nil, err
	}

	return &audit, nil
}

func UpdateAudit(ctx context.Context, id int, input *NewAudit) (*Audit, error) {

	db := config.GetDB()
	var audit Audit

	if err := db.WithContext(ctx).First(&audit, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if input.Status != "" && !input.Status.IsValid() {
		return nil, errors.New("invalid audit status")
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, errors.New("invalid audit priority")
	}
	if input.RiskLevel != "" && !input.RiskLevel.IsValid() {
		return nil, errors.New("invalid risk level")
	}
	if input.Progress < 0 || input.Progress > 100 {
		return nil, errors.New("progress must be between 0 and 100")
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"department":  input.Department,
		"type":        input.Type,
		"priority":    input.Priority,
		"risk_level":  input.RiskLevel,
		"status":      input.Status,
		"auditor":     input.Auditor,
		"start_date":  input.StartDate,
		"end_date":    input.EndDate,
		"period":      input.Period,
		"budget":      input.Budget,
		"progress":    input.Progress,
	}
	if err := db.WithContext(ctx).Model(&audit).Updates(updates).Error; err != nil {
		return nil, err
	}
	if input.Team != nil {
		if err := db.WithContext(ctx).Model(&audit).Update("team", input.Team).Error; err != nil {
			return nil, err
		}
	}

	return GetAudit(ctx, id)
}

func DeleteAudit(ctx context.Context, id int) (*Audit, error) {

	db := config.GetDB()
	var audit Audit

	if err := db.WithContext(ctx).First(&audit, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := db.WithContext(ctx).Delete(&audit).Error; err != nil {
		return nil, err
	}

	return &audit, nil
}

// UpdateAuditTeam replaces the whole team list; member order is preserved.
func UpdateAuditTeam(ctx context.Context, id int, team []AuditTeamMember) (*Audit, error) {

	db := config.GetDB()
	var audit Audit

	if err := db.WithContext(ctx).First(&audit, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := db.WithContext(ctx).Model(&audit).Update("team", team).Error; err != nil {
		return nil, err
	}

	return GetAudit(ctx, id)
}

func UpdateAuditProgress(ctx context.Context, id int, progress int) (*Audit, error) {

	if progress < 0 || progress > 100 {
		return nil, errors.New("progress must be between 0 and 100")
	}

	db := config.GetDB()
	var audit Audit

	if err := db.WithContext(ctx).First(&audit, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := db.WithContext(ctx).Model(&audit).Update("progress", progress).Error; err != nil {
		return nil, err
	}

	return GetAudit(ctx, id)
}

func artifactColumns(kind ArtifactKind) (countColumn string, flagColumn string, err error) {
	switch kind {
	case ArtifactKindWorkPaper:
		return "work_papers_count", "has_work_papers", nil
	case ArtifactKindEvidence:
		return "evidence_count", "has_evidence", nil
	case ArtifactKindInterview:
		return "interviews_count", "has_interviews", nil
	case ArtifactKindNote:
		return "notes_count", "has_notes", nil
	}
	return "", "", fmt.Errorf("invalid artifact kind: %s", kind)
}

// IncrementArtifactCounter bumps the audit's counter for the given kind
// in a single UPDATE, so concurrent uploads never lose increments.
func IncrementArtifactCounter(ctx context.Context, auditId int, kind ArtifactKind) error {

	countColumn, flagColumn, err := artifactColumns(kind)
	if err != nil {
		return err
	}

	db := config.GetDB()
	result := db.WithContext(ctx).Model(&Audit{}).
		Where("id = ?", auditId).
		Updates(map[string]interface{}{
			countColumn: gorm.Expr(countColumn + " + 1"),
			flagColumn:  true,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

// DecrementArtifactCounter decrements with a floor of 0; MySQL evaluates
// SET clauses left to right, so the flag sees the already-decremented count.
func DecrementArtifactCounter(ctx context.Context, auditId int, kind ArtifactKind) error {

	countColumn, flagColumn, err := artifactColumns(kind)
	if err != nil {
		return err
	}

	db := config.GetDB()
	query := fmt.Sprintf(
		"UPDATE audits SET %s = GREATEST(%s - 1, 0), %s = %s > 0 WHERE id = ?",
		countColumn, countColumn, flagColumn, countColumn,
	)
	result := db.WithContext(ctx).Exec(query, auditId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}
