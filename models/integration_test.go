package models_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/simailhq/simail_backend/config"
	"github.com/simailhq/simail_backend/models"
	"github.com/simailhq/simail_backend/utils"
)

func TestAuditFindingFollowUpLifecycle(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "simail_test")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	ctx = utils.SetUsernameInContext(ctx, "test@local")

	audit, err := models.CreateAudit(ctx, &models.NewAudit{
		Title:      "Audit Keuangan Dinas Uji",
		Department: "Dinas Uji",
		Status:     models.AuditStatusBerlangsung,
	})
	if err != nil {
		t.Fatalf("CreateAudit: %v", err)
	}

	foundOn := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	finding, err := models.CreateFinding(ctx, &models.NewFinding{
		AuditId:     audit.ID,
		Title:       "Temuan uji",
		Severity:    models.SeverityTinggi,
		Category:    models.FindingCategoryKeuangan,
		FindingDate: &foundOn,
	})
	if err != nil {
		t.Fatalf("CreateFinding: %v", err)
	}
	if finding.FindingDate == nil || !finding.FindingDate.Equal(foundOn) {
		t.Fatalf("FindingDate = %v, want %v", finding.FindingDate, foundOn)
	}
	if finding.AuditTitle != audit.Title {
		t.Fatalf("AuditTitle = %q, want %q", finding.AuditTitle, audit.Title)
	}
	if finding.Status != models.FindingStatusTerbuka {
		t.Fatalf("Status = %q, want default Terbuka", finding.Status)
	}

	followUp, err := models.CreateFollowUp(ctx, &models.NewFollowUp{
		FindingId:      finding.ID,
		Title:          "Tindak lanjut uji",
		Recommendation: "Setor selisih ke kas daerah",
		Notes:          "Koordinasi dengan bendahara",
		Actions:        "Rekonsiliasi bulanan disusun",
	})
	if err != nil {
		t.Fatalf("CreateFollowUp: %v", err)
	}
	if followUp.Recommendation == "" || followUp.Notes == "" || followUp.Actions == "" {
		t.Fatalf("remediation fields dropped on create: %+v", followUp)
	}
	fetched, err := models.GetFollowUp(ctx, followUp.ID)
	if err != nil {
		t.Fatalf("GetFollowUp: %v", err)
	}
	if fetched.Recommendation != "Setor selisih ke kas daerah" ||
		fetched.Notes != "Koordinasi dengan bendahara" ||
		fetched.Actions != "Rekonsiliasi bulanan disusun" {
		t.Fatalf("remediation fields lost on round-trip: %+v", fetched)
	}
	if followUp.AuditId != audit.ID {
		t.Fatalf("follow-up AuditId = %d, want inherited %d", followUp.AuditId, audit.ID)
	}
	if followUp.Status != models.FollowUpStatusBelumMulai {
		t.Fatalf("Status = %q, want default Belum Mulai", followUp.Status)
	}

	completed, err := models.CompleteFollowUp(ctx, followUp.ID, "berita acara")
	if err != nil {
		t.Fatalf("CompleteFollowUp: %v", err)
	}
	if completed.Status != models.FollowUpStatusSelesai || completed.Progress != 100 || completed.CompletedAt == nil {
		t.Fatalf("completion fields not set: %+v", completed)
	}

	// counters hold a floor of zero even when decremented past it
	for i := 0; i < 2; i++ {
		if err := models.IncrementArtifactCounter(ctx, audit.ID, models.ArtifactKindEvidence); err != nil {
			t.Fatalf("IncrementArtifactCounter: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		if err := models.DecrementArtifactCounter(ctx, audit.ID, models.ArtifactKindEvidence); err != nil {
			t.Fatalf("DecrementArtifactCounter: %v", err)
		}
	}
	refreshed, err := models.GetAudit(ctx, audit.ID)
	if err != nil {
		t.Fatalf("GetAudit: %v", err)
	}
	if refreshed.EvidenceCount != 0 || refreshed.HasEvidence {
		t.Fatalf("counter floor broken: count=%d has=%v", refreshed.EvidenceCount, refreshed.HasEvidence)
	}

	report, err := models.GenerateGeneralReport(ctx, "Penguji")
	if err != nil {
		t.Fatalf("GenerateGeneralReport: %v", err)
	}
	if report.TotalAudits != 1 || report.TotalFindings != 1 {
		t.Fatalf("report totals = (%d, %d), want (1, 1)", report.TotalAudits, report.TotalFindings)
	}
	if report.Summary != "1 audit, 1 temuan" {
		t.Fatalf("Summary = %q", report.Summary)
	}

	specific, err := models.GenerateAuditReport(ctx, audit.ID, "Penguji")
	if err != nil {
		t.Fatalf("GenerateAuditReport: %v", err)
	}
	if specific.AuditId != audit.ID || specific.ReportType != models.ReportTypeSpecificAudit {
		t.Fatalf("unexpected audit report: %+v", specific)
	}

	approved, err := models.UpdateReportStatus(ctx, specific.ID, models.ReportStatusApproved)
	if err != nil {
		t.Fatalf("UpdateReportStatus: %v", err)
	}
	if approved.Status != models.ReportStatusApproved {
		t.Fatalf("Status = %q, want Approved", approved.Status)
	}
	if _, err := models.UpdateReportStatus(ctx, specific.ID, "Disetujui"); err == nil {
		t.Fatal("UpdateReportStatus should reject an unknown status")
	}

	settings, err := models.UpdateAppSettings(ctx, &models.NewAppSettings{
		FaviconUrl: "https://cdn.example.go.id/favicon.ico",
	})
	if err != nil {
		t.Fatalf("UpdateAppSettings: %v", err)
	}
	if settings.FaviconUrl != "https://cdn.example.go.id/favicon.ico" {
		t.Fatalf("FaviconUrl = %q, want updated value", settings.FaviconUrl)
	}

	if _, err := models.DeleteAudit(ctx, audit.ID); err != nil {
		t.Fatalf("DeleteAudit: %v", err)
	}
	if _, err := models.GetAudit(ctx, audit.ID); err == nil {
		t.Fatal("GetAudit after delete should fail")
	}
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("simail-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "redis-cli", "ping")
		if err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("simail-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=simail_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
