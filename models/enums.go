package models

// Status and classification values mirror the labels the dashboard
// renders, so they are stored in Indonesian as-is.

type AuditStatus string

const (
	AuditStatusDraft       AuditStatus = "Draft"
	AuditStatusDisetujui   AuditStatus = "Disetujui"
	AuditStatusBerlangsung AuditStatus = "Berlangsung"
	AuditStatusDalamProses AuditStatus = "Dalam Proses"
	AuditStatusReview      AuditStatus = "Review"
	AuditStatusFinalisasi  AuditStatus = "Finalisasi"
	AuditStatusSelesai     AuditStatus = "Selesai"
)

func (s AuditStatus) IsValid() bool {
	switch s {
	case AuditStatusDraft, AuditStatusDisetujui, AuditStatusBerlangsung,
		AuditStatusDalamProses, AuditStatusReview, AuditStatusFinalisasi,
		AuditStatusSelesai:
		return true
	}
	return false
}

// PlanningStatuses bucket: audits not yet in the field.
var PlanningStatuses = []AuditStatus{
	AuditStatusDraft,
	AuditStatusDisetujui,
}

// ExecutionStatuses bucket: audits in progress or being wrapped up.
var ExecutionStatuses = []AuditStatus{
	AuditStatusBerlangsung,
	AuditStatusDalamProses,
	AuditStatusReview,
	AuditStatusFinalisasi,
	AuditStatusSelesai,
}

// Severity doubles as audit priority and risk level; the scale is shared.
type Severity string

const (
	SeverityRendah Severity = "Rendah"
	SeveritySedang Severity = "Sedang"
	SeverityTinggi Severity = "Tinggi"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityRendah, SeveritySedang, SeverityTinggi:
		return true
	}
	return false
}

type FindingStatus string

const (
	FindingStatusTerbuka           FindingStatus = "Terbuka"
	FindingStatusDalamProses       FindingStatus = "Dalam Proses"
	FindingStatusDalamTindakLanjut FindingStatus = "Dalam Tindak Lanjut"
	FindingStatusSelesai           FindingStatus = "Selesai"
)

func (s FindingStatus) IsValid() bool {
	switch s {
	case FindingStatusTerbuka, FindingStatusDalamProses,
		FindingStatusDalamTindakLanjut, FindingStatusSelesai:
		return true
	}
	return false
}

type FindingCategory string

const (
	FindingCategoryKeuangan    FindingCategory = "Keuangan"
	FindingCategoryKepatuhan   FindingCategory = "Kepatuhan"
	FindingCategoryKinerja     FindingCategory = "Kinerja"
	FindingCategoryOperasional FindingCategory = "Operasional"
	FindingCategorySistem      FindingCategory = "Sistem"
)

func (c FindingCategory) IsValid() bool {
	switch c {
	case FindingCategoryKeuangan, FindingCategoryKepatuhan,
		FindingCategoryKinerja, FindingCategoryOperasional,
		FindingCategorySistem:
		return true
	}
	return false
}

type FollowUpStatus string

const (
	FollowUpStatusBelumMulai  FollowUpStatus = "Belum Mulai"
	FollowUpStatusDalamProses FollowUpStatus = "Dalam Proses"
	FollowUpStatusSelesai     FollowUpStatus = "Selesai"
	FollowUpStatusTerlambat   FollowUpStatus = "Terlambat"
)

func (s FollowUpStatus) IsValid() bool {
	switch s {
	case FollowUpStatusBelumMulai, FollowUpStatusDalamProses,
		FollowUpStatusSelesai, FollowUpStatusTerlambat:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "Draft"
	ReportStatusApproved  ReportStatus = "Approved"
	ReportStatusPublished ReportStatus = "Published"
)

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusDraft, ReportStatusApproved, ReportStatusPublished:
		return true
	}
	return false
}

type ReportType string

const (
	ReportTypeGeneral       ReportType = "general"
	ReportTypeSpecificAudit ReportType = "specific_audit"
)

type UserRole string

const (
	UserRoleAdministrator UserRole = "Administrator"
	UserRoleSupervisor    UserRole = "Supervisor"
	UserRoleAuditor       UserRole = "Auditor"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdministrator, UserRoleSupervisor, UserRoleAuditor:
		return true
	}
	return false
}

// ArtifactKind selects which audit counter an upload bumps.
type ArtifactKind string

const (
	ArtifactKindWorkPaper ArtifactKind = "work_paper"
	ArtifactKindEvidence  ArtifactKind = "evidence"
	ArtifactKindInterview ArtifactKind = "interview"
	ArtifactKindNote      ArtifactKind = "note"
)

func (k ArtifactKind) IsValid() bool {
	switch k {
	case ArtifactKindWorkPaper, ArtifactKindEvidence,
		ArtifactKindInterview, ArtifactKindNote:
		return true
	}
	return false
}
