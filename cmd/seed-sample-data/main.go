// seed-sample-data loads a small demo dataset (audits, findings,
// follow-ups) so a fresh deployment has something on the dashboard.
// Existing rows are left alone; the seeder skips entirely when any
// audit already exists.
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-sample-data
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simailhq/simail_backend/config"
	"github.com/simailhq/simail_backend/models"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	models.MigrateTable()

	var count int64
	if err := db.WithContext(ctx).Model(&models.Audit{}).Count(&count).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to count audits: %v\n", err)
		os.Exit(1)
	}
	if count > 0 {
		fmt.Println("audits already present, skipping sample data")
		return
	}

	now := time.Now()
	year := now.Year()

	audits := []models.NewAudit{
		{
			Title:       "Audit Keuangan Dinas Pendidikan",
			Description: "Pemeriksaan laporan keuangan dan realisasi anggaran tahun berjalan",
			Department:  "Dinas Pendidikan",
			Type:        "Audit Keuangan",
			Priority:    models.SeverityTinggi,
			RiskLevel:   models.SeverityTinggi,
			Status:      models.AuditStatusSelesai,
			Auditor:     "Budi Santoso",
			StartDate:   datePtr(year, time.February, 3),
			EndDate:     datePtr(year, time.March, 14),
			Period:      fmt.Sprintf("%d", year),
			Budget:      decimal.NewFromInt(75000000),
			Progress:    100,
			Team: []models.AuditTeamMember{
				{Name: "Budi Santoso", Role: "Ketua Tim"},
				{Name: "Siti Rahma", Role: "Anggota"},
			},
		},
		{
			Title:       "Audit Kinerja Dinas Kesehatan",
			Description: "Evaluasi capaian program layanan kesehatan dasar",
			Department:  "Dinas Kesehatan",
			Type:        "Audit Kinerja",
			Priority:    models.SeveritySedang,
			RiskLevel:   models.SeveritySedang,
			Status:      models.AuditStatusDalamProses,
			Auditor:     "Siti Rahma",
			StartDate:   datePtr(year, time.April, 1),
			Period:      fmt.Sprintf("%d", year),
			Budget:      decimal.NewFromInt(50000000),
			Progress:    60,
			Team: []models.AuditTeamMember{
				{Name: "Siti Rahma", Role: "Ketua Tim"},
			},
		},
		{
			Title:       "Audit Kepatuhan Pengadaan Barang dan Jasa",
			Description: "Pemeriksaan kepatuhan proses pengadaan terhadap peraturan yang berlaku",
			Department:  "Bagian Pengadaan",
			Type:        "Audit Kepatuhan",
			Priority:    models.SeverityTinggi,
			RiskLevel:   models.SeverityTinggi,
			Status:      models.AuditStatusDraft,
			Auditor:     "Andi Wijaya",
			Period:      fmt.Sprintf("%d", year),
			Budget:      decimal.NewFromInt(40000000),
		},
	}

	created := make([]*models.Audit, 0, len(audits))
	for i := range audits {
		audit, err := models.CreateAudit(ctx, &audits[i])
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create audit %q: %v\n", audits[i].Title, err)
			os.Exit(1)
		}
		created = append(created, audit)
	}

	findings := []models.NewFinding{
		{
			AuditId:         created[0].ID,
			Title:           "Selisih kas pada bendahara pengeluaran",
			Description:     "Terdapat selisih antara saldo buku kas dan saldo rekening",
			Severity:        models.SeverityTinggi,
			Category:        models.FindingCategoryKeuangan,
			Status:          models.FindingStatusDalamTindakLanjut,
			Recommendation:  "Lakukan rekonsiliasi kas bulanan dan setor kelebihan ke kas daerah",
			ResponsibleUnit: "Bendahara Dinas Pendidikan",
		},
		{
			AuditId:         created[0].ID,
			Title:           "Dokumen pertanggungjawaban tidak lengkap",
			Severity:        models.SeveritySedang,
			Category:        models.FindingCategoryKepatuhan,
			Status:          models.FindingStatusTerbuka,
			Recommendation:  "Lengkapi bukti pertanggungjawaban sesuai ketentuan",
			ResponsibleUnit: "Sekretariat Dinas Pendidikan",
		},
		{
			AuditId:         created[1].ID,
			Title:           "Capaian indikator layanan di bawah target",
			Severity:        models.SeverityRendah,
			Category:        models.FindingCategoryKinerja,
			Status:          models.FindingStatusDalamProses,
			Recommendation:  "Susun rencana aksi percepatan capaian program",
			ResponsibleUnit: "Bidang Pelayanan Kesehatan",
		},
	}

	createdFindings := make([]*models.Finding, 0, len(findings))
	for i := range findings {
		finding, err := models.CreateFinding(ctx, &findings[i])
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create finding %q: %v\n", findings[i].Title, err)
			os.Exit(1)
		}
		createdFindings = append(createdFindings, finding)
	}

	followUps := []models.NewFollowUp{
		{
			FindingId:   createdFindings[0].ID,
			Title:       "Rekonsiliasi dan penyetoran selisih kas",
			Description: "Menindaklanjuti rekomendasi selisih kas bendahara",
			Status:      models.FollowUpStatusDalamProses,
			Priority:    models.SeverityTinggi,
			AssignedTo:  "Bendahara Dinas Pendidikan",
			Deadline:    datePtr(year, now.Month(), 28),
			Progress:    40,
		},
		{
			FindingId:  createdFindings[1].ID,
			Title:      "Pelengkapan dokumen pertanggungjawaban",
			Status:     models.FollowUpStatusBelumMulai,
			Priority:   models.SeveritySedang,
			AssignedTo: "Sekretariat Dinas Pendidikan",
		},
	}

	for i := range followUps {
		if _, err := models.CreateFollowUp(ctx, &followUps[i]); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create follow-up %q: %v\n", followUps[i].Title, err)
			os.Exit(1)
		}
	}

	if _, err := models.GetAppSettings(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize app settings: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seeded %d audits, %d findings, %d follow-ups\n", len(created), len(createdFindings), len(followUps))
}
