package models_test

import (
	"testing"
	"time"

	"github.com/simailhq/simail_backend/models"
)

func TestFollowUpEffectiveStatus(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 3)

	tests := []struct {
		name     string
		followUp models.FollowUp
		want     models.FollowUpStatus
	}{
		{
			name:     "no deadline keeps stored status",
			followUp: models.FollowUp{Status: models.FollowUpStatusDalamProses},
			want:     models.FollowUpStatusDalamProses,
		},
		{
			name:     "future deadline keeps stored status",
			followUp: models.FollowUp{Status: models.FollowUpStatusBelumMulai, Deadline: &future},
			want:     models.FollowUpStatusBelumMulai,
		},
		{
			name:     "past deadline becomes overdue",
			followUp: models.FollowUp{Status: models.FollowUpStatusDalamProses, Deadline: &past},
			want:     models.FollowUpStatusTerlambat,
		},
		{
			name:     "completed never becomes overdue",
			followUp: models.FollowUp{Status: models.FollowUpStatusSelesai, Deadline: &past},
			want:     models.FollowUpStatusSelesai,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.followUp.EffectiveStatus(now); got != tc.want {
				t.Fatalf("EffectiveStatus = %q, want %q", got, tc.want)
			}
		})
	}
}
