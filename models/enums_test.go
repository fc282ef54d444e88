package models_test

import (
	"testing"

	"github.com/simailhq/simail_backend/models"
)

func TestReportStatusValues(t *testing.T) {
	// The report lifecycle is Draft -> Approved -> Published; audit
	// statuses are the Indonesian set, report statuses are not.
	valid := []models.ReportStatus{
		models.ReportStatusDraft,
		models.ReportStatusApproved,
		models.ReportStatusPublished,
	}
	wantValues := []string{"Draft", "Approved", "Published"}
	for i, s := range valid {
		if string(s) != wantValues[i] {
			t.Fatalf("status value = %q, want %q", s, wantValues[i])
		}
		if !s.IsValid() {
			t.Fatalf("IsValid(%q) = false, want true", s)
		}
	}
	for _, s := range []models.ReportStatus{"Disetujui", "draft", ""} {
		if s.IsValid() {
			t.Fatalf("IsValid(%q) = true, want false", s)
		}
	}
}

func TestAuditStatusBuckets(t *testing.T) {
	seen := make(map[models.AuditStatus]bool)
	for _, s := range models.PlanningStatuses {
		seen[s] = true
	}
	for _, s := range models.ExecutionStatuses {
		if seen[s] {
			t.Fatalf("status %q in both planning and execution buckets", s)
		}
		seen[s] = true
	}
	all := []models.AuditStatus{
		models.AuditStatusDraft,
		models.AuditStatusDisetujui,
		models.AuditStatusBerlangsung,
		models.AuditStatusDalamProses,
		models.AuditStatusReview,
		models.AuditStatusFinalisasi,
		models.AuditStatusSelesai,
	}
	for _, s := range all {
		if !seen[s] {
			t.Fatalf("status %q missing from both buckets", s)
		}
	}
}
