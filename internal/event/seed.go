package event

import (
	"time"

	id "workbench/pkg/domain"
)

func date(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local)
}

func datePtr(year int, month time.Month, day, hour, min int) *time.Time {
	t := date(year, month, day, hour, min)
	return &t
}

// SeedEvents is the demo collection loaded when no snapshot exists yet.
func SeedEvents() []Event {
	return []Event{
		{
			ID:            "1",
			Title:         "Q4 Internal Audit - Cloud Infrastructure",
			Description:   "Comprehensive audit of cloud foundational services infrastructure and security controls",
			StartDate:     date(2025, time.November, 20, 9, 0),
			EndDate:       datePtr(2025, time.November, 22, 17, 0),
			Type:          TypeInternalAudit,
			Priority:      PriorityHigh,
			Status:        StatusScheduled,
			CreatedBy:     "trc-001",
			AssignedUsers: []id.UserID{"trc-001", "ao-001", "ao-002"},
			CreatedAt:     date(2024, time.November, 1, 0, 0),
			UpdatedAt:     date(2024, time.November, 15, 0, 0),
			Metadata: map[string]any{
				"auditScope":     "Cloud Infrastructure",
				"leadAuditor":    "Sarah Chen",
				"estimatedHours": 40,
				"riskLevel":      "Medium",
			},
		},
		{
			ID:            "2",
			Title:         "PCI-DSS Compliance Review",
			Description:   "Annual PCI-DSS compliance assessment and documentation review",
			StartDate:     date(2025, time.November, 19, 14, 0),
			EndDate:       datePtr(2025, time.November, 19, 16, 0),
			Type:          TypeComplianceReview,
			Priority:      PriorityHigh,
			Status:        StatusInProgress,
			CreatedBy:     "trc-admin-001",
			AssignedUsers: []id.UserID{"trc-admin-001", "trc-002", "psl-001"},
			CreatedAt:     date(2024, time.October, 15, 0, 0),
			UpdatedAt:     date(2025, time.November, 10, 0, 0),
			Metadata: map[string]any{
				"complianceStandard": "PCI-DSS v4.0",
				"assessor":           "David Kim",
				"findings":           3,
				"remediation":        "In Progress",
			},
		},
		{
			ID:            "3",
			Title:         "API Recertification - Customer Portal",
			Description:   "Quarterly recertification of customer-facing API security controls and access management",
			StartDate:     date(2025, time.November, 21, 10, 0),
			EndDate:       datePtr(2025, time.November, 21, 12, 0),
			Type:          TypeRecertification,
			Priority:      PriorityMedium,
			Status:        StatusScheduled,
			CreatedBy:     "product-001",
			AssignedUsers: []id.UserID{"product-001", "product-002", "trc-003"},
			CreatedAt:     date(2025, time.October, 15, 0, 0),
			UpdatedAt:     date(2025, time.November, 5, 0, 0),
			Metadata: map[string]any{
				"apiVersion":        "v2.1",
				"endpoints":         47,
				"lastCertification": "2025-08-15",
				"certificationBody": "Internal Security Team",
			},
		},
		{
			ID:            "4",
			Title:         "CORE-2024-015: API Security Vulnerability",
			Description:   "Critical vulnerability in customer-facing API requiring immediate remediation",
			StartDate:     date(2025, time.November, 22, 11, 0),
			EndDate:       datePtr(2025, time.November, 22, 15, 0),
			Type:          TypeCoreIssue,
			Priority:      PriorityCritical,
			Status:        StatusInProgress,
			CreatedBy:     "trc-admin-002",
			AssignedUsers: []id.UserID{"trc-admin-002", "ao-003", "product-003"},
			CreatedAt:     date(2024, time.November, 20, 0, 0),
			UpdatedAt:     date(2024, time.November, 22, 0, 0),
			Metadata: map[string]any{
				"severity":         "High",
				"affectedSystems":  []string{"Customer Portal API", "Mobile App API"},
				"remediationOwner": "Dev Team Alpha",
			},
		},
		{
			ID:            "5",
			Title:         "Leadership Security Briefing",
			Description:   "Monthly security briefing for CFS leadership team",
			StartDate:     date(2025, time.November, 25, 15, 0),
			EndDate:       datePtr(2025, time.November, 25, 16, 30),
			Type:          TypeRegulatoryAudit,
			Priority:      PriorityMedium,
			Status:        StatusScheduled,
			CreatedBy:     "cfs-002",
			AssignedUsers: []id.UserID{"cfs-001", "cfs-002", "cfs-003"},
			CreatedAt:     date(2025, time.November, 18, 0, 0),
			UpdatedAt:     date(2025, time.November, 18, 0, 0),
			Metadata: map[string]any{
				"reviewType": "Executive Briefing",
				"attendees":  []string{"CFS Leadership", "CISO", "Security Team Leads"},
				"location":   "Executive Conference Room",
			},
		},
	}
}
