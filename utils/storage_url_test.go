package utils_test

import (
	"testing"

	"github.com/simailhq/simail_backend/utils"
)

func TestBuildObjectAccessURL(t *testing.T) {
	t.Run("placeholder base", func(t *testing.T) {
		t.Setenv("STORAGE_ACCESS_BASE_URL", "https://cdn.example.go.id/files/{objectKey}")
		got := utils.BuildObjectAccessURL("audits/12/evidence/a.pdf")
		want := "https://cdn.example.go.id/files/audits/12/evidence/a.pdf"
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("gcs fallback", func(t *testing.T) {
		t.Setenv("STORAGE_ACCESS_BASE_URL", "")
		t.Setenv("GCS_URL", "storage.googleapis.com")
		t.Setenv("GCS_BUCKET", "simail-artifacts")
		got := utils.BuildObjectAccessURL("audits/12/evidence/a.pdf")
		want := "https://storage.googleapis.com/simail-artifacts/audits/12/evidence/a.pdf"
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("no env returns key", func(t *testing.T) {
		t.Setenv("STORAGE_ACCESS_BASE_URL", "")
		t.Setenv("GCS_URL", "")
		t.Setenv("GCS_BUCKET", "")
		if got := utils.BuildObjectAccessURL("audits/12/evidence/a.pdf"); got != "audits/12/evidence/a.pdf" {
			t.Fatalf("got %q, want raw key", got)
		}
	})
}

func TestExtractObjectKeyFromURL(t *testing.T) {
	t.Setenv("STORAGE_ACCESS_BASE_URL", "")
	t.Setenv("GCS_URL", "")
	t.Setenv("GCS_BUCKET", "")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"raw key passes through", "audits/12/evidence/a.pdf", "audits/12/evidence/a.pdf"},
		{"traversal rejected", "audits/../secrets/a.pdf", ""},
		{"gs scheme", "gs://simail-artifacts/audits/12/evidence/a.pdf", "audits/12/evidence/a.pdf"},
		{"googleapis path style", "https://storage.googleapis.com/simail-artifacts/audits/12/evidence/a.pdf", "audits/12/evidence/a.pdf"},
		{"googleapis host style", "https://simail-artifacts.storage.googleapis.com/audits/12/evidence/a.pdf", "audits/12/evidence/a.pdf"},
		{"empty", "", ""},
		{"unrecognized", "https://example.com/nothing/here.pdf", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := utils.ExtractObjectKeyFromURL(tc.in); got != tc.want {
				t.Fatalf("ExtractObjectKeyFromURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
