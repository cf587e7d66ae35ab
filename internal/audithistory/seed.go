package audithistory

import (
	"time"

	"workbench/internal/event"
	"workbench/internal/registry"
	id "workbench/pkg/domain"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func intPtr(v int) *int { return &v }

// SeedAudits is the historical collection loaded at startup. Some related
// audit ids reference records outside this window; relation lookup drops
// them.
func SeedAudits() []AuditRecord {
	return []AuditRecord{
		{
			ID:            "audit-1",
			Title:         "Q4 2024 - Cloud Infrastructure Security Audit",
			Type:          event.TypeInternalAudit,
			Description:   "Comprehensive security assessment of AWS cloud infrastructure and IAM policies.",
			AuditDate:     day("2024-10-15"),
			CompletedDate: dayPtr("2024-11-20"),
			Status:        StatusCompleted,
			Entity: EntityRef{
				Type: registry.EntityTypePlatform,
				ID:   "platform-aws",
				Name: "AWS Platform",
				Tag:  "cloud",
			},
			Auditor:   "user-3",
			Score:     intPtr(87),
			RiskLevel: RiskMedium,
			Findings: []Finding{
				{
					ID:          "finding-1",
					Title:       "Overprivileged IAM Roles",
					Description: "Several IAM roles have broader permissions than required for their function.",
					Severity:    SeverityMedium,
					Status:      FindingResolved,
					Remediation: "Applied principle of least privilege to 12 IAM roles.",
					DueDate:     dayPtr("2024-12-01"),
					Assignee:    "user-4",
					CreatedAt:   day("2024-10-20"),
				},
				{
					ID:          "finding-2",
					Title:       "Missing MFA on Service Accounts",
					Description: "Three service accounts lack multi-factor authentication.",
					Severity:    SeverityHigh,
					Status:      FindingResolved,
					Remediation: "Implemented MFA for all service accounts.",
					DueDate:     dayPtr("2024-11-15"),
					Assignee:    "user-5",
					CreatedAt:   day("2024-10-18"),
				},
			},
			Questions: []Question{
				{
					ID:       "q1",
					Question: "Are all IAM roles following the principle of least privilege?",
					Category: "Access Management",
					Answer:   "Partially - found 12 overprivileged roles that were remediated.",
					Evidence: []string{"iam-roles-report.xlsx", "policy-analysis.pdf"},
					Score:    75,
					Required: true,
				},
				{
					ID:       "q2",
					Question: "Is MFA enabled for all privileged accounts?",
					Category: "Authentication",
					Answer:   "Yes, all privileged accounts now have MFA enabled.",
					Evidence: []string{"mfa-compliance-report.pdf"},
					Score:    100,
					Required: true,
				},
			},
			Documents: []Document{
				{
					ID:          "doc-1",
					Name:        "Cloud Infrastructure Audit Report",
					Type:        DocumentReport,
					URL:         "/audits/cloud-infra-2024-q4.pdf",
					Size:        2048576,
					UploadedBy:  "user-3",
					UploadedAt:  day("2024-11-20"),
					Description: "Complete audit findings and recommendations",
				},
				{
					ID:          "doc-2",
					Name:        "IAM Roles Analysis",
					Type:        DocumentEvidence,
					URL:         "/audits/iam-analysis-2024.xlsx",
					Size:        512000,
					UploadedBy:  "user-4",
					UploadedAt:  day("2024-10-22"),
					Description: "Detailed analysis of all IAM roles and permissions",
				},
			},
			RelatedAudits: []id.AuditID{"audit-5", "audit-8"},
			CreatedAt:     day("2024-10-01"),
			UpdatedAt:     day("2024-11-20"),
		},
		{
			ID:            "audit-2",
			Title:         "PCI-DSS Compliance Review - Payment Gateway",
			Type:          event.TypeRegulatoryAudit,
			Description:   "Annual PCI-DSS compliance audit for payment processing systems.",
			AuditDate:     day("2024-09-10"),
			CompletedDate: dayPtr("2024-10-05"),
			Status:        StatusCompleted,
			Entity: EntityRef{
				Type: registry.EntityTypeApplication,
				ID:   "app-payment",
				Name: "Payment Gateway",
				Tag:  "financial",
			},
			Auditor:   "user-6",
			Score:     intPtr(92),
			RiskLevel: RiskLow,
			Findings: []Finding{
				{
					ID:          "finding-3",
					Title:       "Incomplete Logging Configuration",
					Description: "Some payment transaction logs missing required fields.",
					Severity:    SeverityLow,
					Status:      FindingResolved,
					Remediation: "Updated logging configuration to capture all required fields.",
					DueDate:     dayPtr("2024-09-30"),
					Assignee:    "user-7",
					CreatedAt:   day("2024-09-12"),
				},
			},
			Questions: []Question{
				{
					ID:       "q3",
					Question: "Is cardholder data encrypted at rest and in transit?",
					Category: "Data Protection",
					Answer:   "Yes, using AES-256 encryption for data at rest and TLS 1.3 for data in transit.",
					Evidence: []string{"encryption-config.pdf", "tls-certificate.pem"},
					Score:    100,
					Required: true,
				},
			},
			Documents: []Document{
				{
					ID:          "doc-3",
					Name:        "PCI-DSS Compliance Report",
					Type:        DocumentReport,
					URL:         "/audits/pci-dss-2024.pdf",
					Size:        1536000,
					UploadedBy:  "user-6",
					UploadedAt:  day("2024-10-05"),
					Description: "PCI-DSS compliance assessment results",
				},
			},
			RelatedAudits: []id.AuditID{"audit-6"},
			CreatedAt:     day("2024-08-15"),
			UpdatedAt:     day("2024-10-05"),
		},
		{
			ID:            "audit-3",
			Title:         "API Security Assessment - Customer Portal",
			Type:          event.TypeInternalAudit,
			Description:   "Security review of customer-facing API endpoints and authentication mechanisms.",
			AuditDate:     day("2024-06-01"),
			CompletedDate: dayPtr("2024-07-15"),
			Status:        StatusCompleted,
			Entity: EntityRef{
				Type: registry.EntityTypeProduct,
				ID:   "product-portal",
				Name: "Customer Portal API",
				Tag:  "api",
			},
			Auditor:   "user-3",
			Score:     intPtr(78),
			RiskLevel: RiskMedium,
			Findings: []Finding{
				{
					ID:          "finding-4",
					Title:       "Rate Limiting Not Implemented",
					Description: "API endpoints lack proper rate limiting controls.",
					Severity:    SeverityHigh,
					Status:      FindingInProgress,
					DueDate:     dayPtr("2025-01-15"),
					Assignee:    "user-8",
					CreatedAt:   day("2024-06-05"),
				},
			},
			RelatedAudits: []id.AuditID{"audit-7"},
			CreatedAt:     day("2024-05-15"),
			UpdatedAt:     day("2024-07-15"),
		},
		{
			ID:            "audit-4",
			Title:         "CORE-2024-015: Data Backup Procedures Review",
			Type:          event.TypeCoreIssue,
			Description:   "Review of data backup and recovery procedures following incident CORE-2024-015.",
			AuditDate:     day("2024-03-20"),
			CompletedDate: dayPtr("2024-04-10"),
			Status:        StatusCompleted,
			Entity: EntityRef{
				Type: registry.EntityTypePlatform,
				ID:   "platform-storage",
				Name: "Storage Platform",
				Tag:  "storage",
			},
			Auditor:   "user-9",
			Score:     intPtr(65),
			RiskLevel: RiskHigh,
			Findings: []Finding{
				{
					ID:          "finding-5",
					Title:       "Backup Testing Not Performed",
					Description: "Backup recovery testing not performed in last 12 months.",
					Severity:    SeverityHigh,
					Status:      FindingResolved,
					Remediation: "Implemented quarterly backup testing schedule.",
					DueDate:     dayPtr("2024-05-01"),
					Assignee:    "user-10",
					CreatedAt:   day("2024-03-25"),
				},
			},
			CreatedAt: day("2024-03-01"),
			UpdatedAt: day("2024-04-10"),
		},
		{
			ID:            "audit-5",
			Title:         "Q2 2023 - AWS Infrastructure Audit",
			Type:          event.TypeInternalAudit,
			Description:   "Previous year AWS infrastructure security assessment.",
			AuditDate:     day("2023-04-15"),
			CompletedDate: dayPtr("2023-06-01"),
			Status:        StatusCompleted,
			Entity: EntityRef{
				Type: registry.EntityTypePlatform,
				ID:   "platform-aws",
				Name: "AWS Platform",
				Tag:  "cloud",
			},
			Auditor:       "user-3",
			Score:         intPtr(82),
			RiskLevel:     RiskMedium,
			RelatedAudits: []id.AuditID{"audit-1"},
			CreatedAt:     day("2023-03-01"),
			UpdatedAt:     day("2023-06-01"),
		},
	}
}
