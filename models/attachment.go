package models

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/simailhq/simail_backend/config"
	"github.com/simailhq/simail_backend/utils"
)

// Attachment is the metadata row for an uploaded audit artifact. The
// binary lives in cloud storage under ObjectKey; rows are soft-deleted
// so the upload history survives removal.
type Attachment struct {
	ID         int          `gorm:"primary_key" json:"id"`
	AuditId    int          `gorm:"index;not null" json:"audit_id"`
	Kind       ArtifactKind `gorm:"size:20;index" json:"kind"`
	FileName   string       `gorm:"size:255" json:"file_name"`
	FileUrl    string       `json:"file_url"`
	ObjectKey  string       `gorm:"size:512" json:"object_key"`
	FileSize   int64        `json:"file_size"`
	FileType   string       `gorm:"size:100" json:"file_type"`
	UploadedBy string       `gorm:"size:100" json:"uploaded_by"`
	IsDeleted  bool         `gorm:"default:false;index" json:"is_deleted"`
	DeletedAt  *time.Time   `json:"deleted_at"`
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetAttachmentsByAuditKind lists live attachments for one audit and kind.
func GetAttachmentsByAuditKind(ctx context.Context, auditId int, kind ArtifactKind) ([]*Attachment, error) {

	db := config.GetDB()
	var results []*Attachment

	if err := db.WithContext(ctx).
		Where("audit_id = ? AND kind = ? AND is_deleted = ?", auditId, kind, false).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return results, err
	}

	return results, nil
}

// CreateAttachment uploads artifact content to cloud storage, writes the
// metadata row, and bumps the audit's counter for the kind. Validation
// (MIME, size) must already have happened in the handler.
func CreateAttachment(ctx context.Context, auditId int, kind ArtifactKind, fileName string, mimeType string, fileSize int64, content io.Reader) (*Attachment, error) {

	db := config.GetDB()
	logger := config.GetLogger()

	audit, err := GetAudit(ctx, auditId)
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	ext := utils.ExtensionForMimeType(mimeType)
	objectKey := fmt.Sprintf("audits/%d/%s/%s%s", audit.ID, kind, uuid.New().String(), ext)

	if err := utils.UploadFileToGCS(ctx, objectKey, mimeType, content); err != nil {
		return nil, err
	}

	username, _ := utils.GetUsernameFromContext(ctx)

	attachment := Attachment{
		AuditId:    audit.ID,
		Kind:       kind,
		FileName:   fileName,
		FileUrl:    utils.BuildObjectAccessURL(objectKey),
		ObjectKey:  objectKey,
		FileSize:   fileSize,
		FileType:   mimeType,
		UploadedBy: username,
	}

	if err := db.WithContext(ctx).Create(&attachment).Error; err != nil {
		// metadata write failed; remove the orphaned object, best effort
		if delErr := utils.DeleteObjectFromGCS(ctx, objectKey); delErr != nil {
			config.LogError(logger, "attachment", "CreateAttachment", "Failed to remove orphaned object", objectKey, delErr)
		}
		return nil, err
	}

	if err := IncrementArtifactCounter(ctx, audit.ID, kind); err != nil {
		return nil, err
	}

	return &attachment, nil
}

// DeleteAttachment soft-deletes the metadata row and decrements the
// audit counter. The cloud object delete is best effort: a storage
// failure is logged and ignored so the metadata stays consistent.
func DeleteAttachment(ctx context.Context, auditId int, kind ArtifactKind, fileId int) (*Attachment, error) {

	db := config.GetDB()
	logger := config.GetLogger()

	var attachment Attachment
	if err := db.WithContext(ctx).
		Where("id = ? AND audit_id = ? AND kind = ? AND is_deleted = ?", fileId, auditId, kind, false).
		First(&attachment).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if attachment.ObjectKey != "" {
		if err := utils.DeleteObjectFromGCS(ctx, attachment.ObjectKey); err != nil {
			config.LogError(logger, "attachment", "DeleteAttachment", "Failed to delete cloud object", attachment.ObjectKey, err)
		}
	}

	now := time.Now()
	if err := db.WithContext(ctx).Model(&attachment).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": &now,
	}).Error; err != nil {
		return nil, err
	}

	if err := DecrementArtifactCounter(ctx, auditId, kind); err != nil {
		return nil, err
	}

	return &attachment, nil
}
