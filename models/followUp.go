package models

import (
	"context"
	"errors"
	"time"

	"github.com/simailhq/simail_backend/config"
	"github.com/simailhq/simail_backend/utils"
)

type FollowUp struct {
	ID              int            `gorm:"primary_key" json:"id"`
	FindingId       int            `gorm:"index;not null" json:"finding_id" binding:"required"`
	AuditId         int            `gorm:"index;not null" json:"audit_id"`
	Title           string         `gorm:"size:255;not null" json:"title" binding:"required"`
	Description     string         `gorm:"type:text" json:"description"`
	Status          FollowUpStatus `gorm:"size:20;index" json:"status"`
	Priority        Severity       `gorm:"size:10" json:"priority"`
	AssignedTo      string         `gorm:"size:100" json:"assigned_to"`
	Deadline        *time.Time     `json:"deadline"`
	Progress        int            `gorm:"default:0" json:"progress"`
	Recommendation  string         `gorm:"type:text" json:"recommendation"`
	Notes           string         `gorm:"type:text" json:"notes"`
	Actions         string         `gorm:"type:text" json:"actions"`
	CompletionProof string         `gorm:"type:text" json:"completion_proof"`
	CompletedAt     *time.Time     `json:"completed_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewFollowUp struct {
	FindingId      int            `json:"finding_id" binding:"required"`
	Title          string         `json:"title" binding:"required"`
	Description    string         `json:"description"`
	Status         FollowUpStatus `json:"status"`
	Priority       Severity       `json:"priority"`
	AssignedTo     string         `json:"assigned_to"`
	Deadline       *time.Time     `json:"deadline"`
	Progress       int            `json:"progress"`
	Recommendation string         `json:"recommendation"`
	Notes          string         `json:"notes"`
	Actions        string         `json:"actions"`
}

// EffectiveStatus derives Terlambat for unfinished follow-ups whose
// deadline has passed; stored status is otherwise returned as-is.
func (f *FollowUp) EffectiveStatus(now time.Time) FollowUpStatus {
	if f.Status == FollowUpStatusSelesai {
		return f.Status
	}
	if f.Deadline != nil && f.Deadline.Before(now) {
		return FollowUpStatusTerlambat
	}
	return f.Status
}

func GetAllFollowUps(ctx context.Context) ([]*FollowUp, error) {

	db := config.GetDB()
	var results []*FollowUp

	if err := db.WithContext(ctx).Order("created_at DESC").Find(&results).Error; err != nil {
		return results, err
	}

	markOverdue(results)
	return results, nil
}

func GetFollowUp(ctx context.Context, id int) (*FollowUp, error) {

	db := config.GetDB()
	var result FollowUp

	err := db.WithContext(ctx).First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	result.Status = result.EffectiveStatus(time.Now())
	return &result, nil
}

func GetFollowUpsByFinding(ctx context.Context, findingId int) ([]*FollowUp, error) {

	db := config.GetDB()
	var results []*FollowUp

	if err := db.WithContext(ctx).
		Where("finding_id = ?", findingId).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return results, err
	}

	markOverdue(results)
	return results, nil
}

func GetFollowUpsByAudit(ctx context.Context, auditId int) ([]*FollowUp, error) {

	db := config.GetDB()
	var results []*FollowUp

	if err := db.WithContext(ctx).
		Where("audit_id = ?", auditId).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return results, err
	}

	markOverdue(results)
	return results, nil
}

func CountFollowUps(ctx context.Context) (int64, error) {

	db := config.GetDB()
	var count int64

	if err := db.WithContext(ctx).Model(&FollowUp{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func markOverdue(followUps []*FollowUp) {
	now := time.Now()
	for _, f := range followUps {
		f.Status = f.EffectiveStatus(now)
	}
}

func CreateFollowUp(ctx context.Context, input *NewFollowUp) (*FollowUp, error) {

	db := config.GetDB()

	if input.Status == "" {
		input.Status = FollowUpStatusBelumMulai
	}
	if !input.Status.IsValid() {
		return nil, errors.New("invalid follow-up status")
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, errors.New("invalid priority")
	}
	if input.Progress < 0 || input.Progress > 100 {
		return nil, errors.New("progress must be between 0 and 100")
	}
	if input.Deadline != nil {
		today, err := utils.ConvertToDate(time.Now(), "")
		if err != nil {
			return nil, err
		}
		if input.Deadline.Before(today) {
			return nil, errors.New("deadline cannot be in the past")
		}
	}

	// The follow-up inherits its audit from the parent finding.
	finding, err := GetFinding(ctx, input.FindingId)
	if err != nil {
		return nil, errors.New("finding not found")
	}

	followUp := FollowUp{
		FindingId:      finding.ID,
		AuditId:        finding.AuditId,
		Title:          input.Title,
		Description:    input.Description,
		Status:         input.Status,
		Priority:       input.Priority,
		AssignedTo:     input.AssignedTo,
		Deadline:       input.Deadline,
		Progress:       input.Progress,
		Recommendation: input.Recommendation,
		Notes:          input.Notes,
		Actions:        input.Actions,
	}

	if err := db.WithContext(ctx).Create(&followUp).Error; err != nil {
		return nil, err
	}

	return &followUp, nil
}

func UpdateFollowUp(ctx context.Context, id int, input *NewFollowUp) (*FollowUp, error) {

	db := config.GetDB()
	var followUp FollowUp

	if err := db.WithContext(ctx).First(&followUp, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if input.Status != "" && !input.Status.IsValid() {
		return nil, errors.New("invalid follow-up status")
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, errors.New("invalid priority")
	}
	if input.Progress < 0 || input.Progress > 100 {
		return nil, errors.New("progress must be between 0 and 100")
	}

	updates := map[string]interface{}{
		"title":          input.Title,
		"description":    input.Description,
		"status":         input.Status,
		"priority":       input.Priority,
		"assigned_to":    input.AssignedTo,
		"deadline":       input.Deadline,
		"progress":       input.Progress,
		"recommendation": input.Recommendation,
		"notes":          input.Notes,
		"actions":        input.Actions,
	}

	if input.FindingId != 0 && input.FindingId != followUp.FindingId {
		finding, err := GetFinding(ctx, input.FindingId)
		if err != nil {
			return nil, errors.New("finding not found")
		}
		updates["finding_id"] = finding.ID
		updates["audit_id"] = finding.AuditId
	}

	if err := db.WithContext(ctx).Model(&followUp).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetFollowUp(ctx, id)
}

// CompleteFollowUp marks the follow-up Selesai with full progress and an
// optional proof document reference.
func CompleteFollowUp(ctx context.Context, id int, completionProof string) (*FollowUp, error) {

	db := config.GetDB()
	var followUp FollowUp

	if err := db.WithContext(ctx).First(&followUp, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":           FollowUpStatusSelesai,
		"progress":         100,
		"completed_at":     &now,
		"completion_proof": completionProof,
	}

	if err := db.WithContext(ctx).Model(&followUp).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetFollowUp(ctx, id)
}

func DeleteFollowUp(ctx context.Context, id int) (*FollowUp, error) {

	db := config.GetDB()
	var followUp FollowUp

	if err := db.WithContext(ctx).First(&followUp, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := db.WithContext(ctx).Delete(&followUp).Error; err != nil {
		return nil, err
	}

	return &followUp, nil
}
