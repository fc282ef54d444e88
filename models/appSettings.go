package models

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/jpeg"
	"time"

	"github.com/disintegration/imaging"
	"github.com/simailhq/simail_backend/config"
	"github.com/simailhq/simail_backend/utils"
	"gorm.io/gorm"
)

// AppSettings is a singleton row (id=1) holding the dashboard branding.
type AppSettings struct {
	ID               int       `gorm:"primary_key" json:"id"`
	AppName          string    `gorm:"size:100" json:"app_name"`
	Description      string    `gorm:"type:text" json:"description"`
	OfficeName       string    `gorm:"size:255" json:"office_name"`
	Address          string    `gorm:"type:text" json:"address"`
	Phone            string    `gorm:"size:20" json:"phone"`
	Email            string    `gorm:"size:100" json:"email"`
	Website          string    `gorm:"size:255" json:"website"`
	LogoUrl          string    `json:"logo_url"`
	LogoThumbnailUrl string    `json:"logo_thumbnail_url"`
	FaviconUrl       string    `json:"favicon_url"`
	PrimaryColor     string    `gorm:"size:20" json:"primary_color"`
	SecondaryColor   string    `gorm:"size:20" json:"secondary_color"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewAppSettings struct {
	AppName        string `json:"app_name"`
	Description    string `json:"description"`
	OfficeName     string `json:"office_name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Website        string `json:"website"`
	FaviconUrl     string `json:"favicon_url"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

func defaultAppSettings() AppSettings {
	return AppSettings{
		ID:             1,
		AppName:        "Si-MAIL",
		Description:    "Sistem Manajemen Audit Internal",
		PrimaryColor:   "#1e40af",
		SecondaryColor: "#f59e0b",
	}
}

// GetAppSettings returns the singleton row, creating it with defaults
// when absent.
func GetAppSettings(ctx context.Context) (*AppSettings, error) {

	db := config.GetDB()
	var settings AppSettings

	err := db.WithContext(ctx).First(&settings, 1).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		settings = defaultAppSettings()
		if err := db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
	}

	return &settings, nil
}

// UpdateAppSettings merges non-empty fields into the singleton row.
func UpdateAppSettings(ctx context.Context, input *NewAppSettings) (*AppSettings, error) {

	db := config.GetDB()

	settings, err := GetAppSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email address")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return nil, errors.New("invalid phone number")
		}
	}

	updates := map[string]interface{}{}
	if input.AppName != "" {
		updates["app_name"] = input.AppName
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.OfficeName != "" {
		updates["office_name"] = input.OfficeName
	}
	if input.Address != "" {
		updates["address"] = input.Address
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.Website != "" {
		updates["website"] = input.Website
	}
	if input.FaviconUrl != "" {
		updates["favicon_url"] = input.FaviconUrl
	}
	if input.PrimaryColor != "" {
		updates["primary_color"] = input.PrimaryColor
	}
	if input.SecondaryColor != "" {
		updates["secondary_color"] = input.SecondaryColor
	}

	if len(updates) > 0 {
		if err := db.WithContext(ctx).Model(settings).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return GetAppSettings(ctx)
}

// generateThumbnail produces a 200px-wide JPEG preview of the uploaded
// image, keeping aspect ratio.
func generateThumbnail(imageData []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, err
	}

	thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumbnail, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UploadAppLogo stores the branding logo (base64 image payload) plus a
// thumbnail, then points the settings row at the new objects.
func UploadAppLogo(ctx context.Context, imageData string) (*AppSettings, error) {

	db := config.GetDB()

	settings, err := GetAppSettings(ctx)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("settings/logo_%s.jpg", utils.GenerateUniqueFilename())
	if err := utils.SaveImageToGCS(ctx, objectKey, imageData); err != nil {
		return nil, err
	}

	thumbnailUrl := ""
	decoded, err := base64.StdEncoding.DecodeString(imageData)
	if err == nil {
		if thumb, terr := generateThumbnail(decoded); terr == nil {
			thumbKey := fmt.Sprintf("settings/logo_thumb_%s.jpg", utils.GenerateUniqueFilename())
			if uerr := utils.UploadBytesToGCS(ctx, thumbKey, thumb, "image/jpeg"); uerr == nil {
				thumbnailUrl = utils.BuildObjectAccessURL(thumbKey)
			}
		}
	}

	updates := map[string]interface{}{
		"logo_url": utils.BuildObjectAccessURL(objectKey),
	}
	if thumbnailUrl != "" {
		updates["logo_thumbnail_url"] = thumbnailUrl
	}

	if err := db.WithContext(ctx).Model(settings).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetAppSettings(ctx)
}
