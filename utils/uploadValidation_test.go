package utils_test

import (
	"strings"
	"testing"

	"github.com/simailhq/simail_backend/utils"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		size     int64
		wantErr  string
	}{
		{"pdf ok", "application/pdf", 1024, ""},
		{"png ok", "image/png", utils.MaxUploadSizeBytes, ""},
		{"charset suffix tolerated", "text/plain; charset=utf-8", 10, ""},
		{"case insensitive", "IMAGE/JPEG", 10, ""},
		{"unsupported type", "application/x-msdownload", 10, "unsupported file type"},
		{"oversized", "application/pdf", utils.MaxUploadSizeBytes + 1, "file too large"},
		{"oversized and unsupported reports type first", "application/x-msdownload", utils.MaxUploadSizeBytes + 1, "unsupported file type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := utils.ValidateUpload(tc.mimeType, tc.size)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateUpload(%q, %d) = %v, want nil", tc.mimeType, tc.size, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("ValidateUpload(%q, %d) = %v, want error containing %q", tc.mimeType, tc.size, err, tc.wantErr)
			}
		})
	}
}

func TestValidateUploadSizeMessageNamesLimit(t *testing.T) {
	err := utils.ValidateUpload("application/pdf", utils.MaxUploadSizeBytes+1)
	if err == nil {
		t.Fatal("expected error for oversized upload")
	}
	if !strings.Contains(err.Error(), "50MB") {
		t.Fatalf("size error %q should name the 50MB limit", err.Error())
	}
}

func TestExtensionForMimeType(t *testing.T) {
	tests := []struct {
		mimeType string
		want     string
	}{
		{"application/pdf", ".pdf"},
		{"image/jpeg", ".jpg"},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx"},
		{"application/unknown", ""},
	}
	for _, tc := range tests {
		if got := utils.ExtensionForMimeType(tc.mimeType); got != tc.want {
			t.Fatalf("ExtensionForMimeType(%q) = %q, want %q", tc.mimeType, got, tc.want)
		}
	}
}
