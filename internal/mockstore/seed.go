package mockstore

import (
	"time"

	"dms-go/internal/model"
)

// seed loads the demo dataset. Timestamps are relative to the clock at
// startup so the feed always looks recent. Fixture IDs are spaced apart per
// collection (documents 1xx, requests 7xx, notifications 9xx).
func (s *Store) seed() {
	now := s.clock.Now()
	hoursAgo := func(h int) time.Time { return now.Add(-time.Duration(h) * time.Hour) }
	daysAgo := func(d int) time.Time { return now.Add(-time.Duration(d) * 24 * time.Hour) }

	s.users = []model.User{
		{ID: 1, Name: "Alex Morgan", Email: "admin@example.com", Role: model.RoleAdmin, CreatedAt: daysAgo(120)},
		{ID: 2, Name: "Priya Patel", Email: "priya.patel@example.com", Role: model.RoleUser, CreatedAt: daysAgo(90)},
		{ID: 3, Name: "Ethan Carter", Email: "ethan.carter@example.com", Role: model.RoleUser, CreatedAt: daysAgo(75)},
	}
	s.adminID = 1

	s.documents = []model.Document{
		{
			ID: 101, Title: "Vendor Contract 2026",
			Description:  "Master services agreement with the primary logistics vendor.",
			DocumentType: "Contract", FileURL: "mock://docs/vendor-contract-2026.pdf",
			Version: 1, Status: model.DocumentActive, CreatedBy: 2, CreatedAt: daysAgo(18),
		},
		{
			ID: 102, Title: "Monthly Report - Jan",
			Description:  "Operations summary and KPI review for January.",
			DocumentType: "Report", FileURL: "mock://docs/monthly-report-jan.pdf",
			Version: 1, Status: model.DocumentActive, CreatedBy: 3, CreatedAt: daysAgo(16),
		},
		{
			ID: 103, Title: "Employee Onboarding SOP",
			Description:  "Standard operating procedure for onboarding new hires.",
			DocumentType: "SOP", FileURL: "mock://docs/employee-onboarding-sop-v4.pdf",
			Version: 4, Status: model.DocumentPendingReplace, CreatedBy: 2, CreatedAt: daysAgo(40),
		},
		{
			ID: 104, Title: "Marketing Launch Checklist",
			Description:  "Step-by-step checklist for the spring product launch.",
			DocumentType: "Checklist", FileURL: "mock://docs/marketing-launch-checklist.xlsx",
			Version: 2, Status: model.DocumentActive, CreatedBy: 3, CreatedAt: daysAgo(12),
		},
		{
			ID: 105, Title: "Invoice Batch - 2026-01",
			Description:  "Finalized invoice packet with corrected references.",
			DocumentType: "Invoice", FileURL: "mock://docs/invoice-batch-2026-01-v2.pdf",
			Version: 2, Status: model.DocumentActive, CreatedBy: 2, CreatedAt: daysAgo(10),
		},
		{
			ID: 106, Title: "Security Incident Report",
			Description:  "Post-incident review of the January access anomaly.",
			DocumentType: "Report", FileURL: "mock://docs/security-incident-report.pdf",
			Version: 1, Status: model.DocumentActive, CreatedBy: 3, CreatedAt: daysAgo(20),
		},
		{
			ID: 107, Title: "Office Lease Addendum",
			Description:  "Addendum covering the extended floor lease terms.",
			DocumentType: "Contract", FileURL: "mock://docs/office-lease-addendum.pdf",
			Version: 1, Status: model.DocumentPendingDelete, CreatedBy: 3, CreatedAt: daysAgo(55),
		},
		{
			ID: 108, Title: "Data Retention Policy",
			Description:  "Company-wide retention and disposal schedule.",
			DocumentType: "Policy", FileURL: "mock://docs/data-retention-policy.pdf",
			Version: 3, Status: model.DocumentActive, CreatedBy: 2, CreatedAt: daysAgo(30),
		},
	}

	s.requests = []model.PermissionRequest{
		{
			ID: 701, DocumentID: 103, Action: model.ActionReplace,
			RequestedBy: 2, RequesterEmail: "priya.patel@example.com",
			RequestedAt: daysAgo(1), Status: model.StatusPending,
			Note: "Need to update owner matrix and onboarding sequence.",
			Payload: &model.ReplacePayload{
				NewTitle:       "Employee Onboarding SOP",
				NewDescription: "Updated onboarding process with revised manager approvals.",
				NewFileURL:     "mock://pending/employee-onboarding-sop-v5.pdf",
			},
		},
		{
			ID: 702, DocumentID: 107, Action: model.ActionDelete,
			RequestedBy: 3, RequesterEmail: "ethan.carter@example.com",
			RequestedAt: daysAgo(2), Status: model.StatusPending,
			Note: "Lease addendum was superseded by a newer consolidated contract.",
		},
		{
			ID: 703, DocumentID: 105, Action: model.ActionReplace,
			RequestedBy: 2, RequesterEmail: "priya.patel@example.com",
			RequestedAt: daysAgo(9), Status: model.StatusApproved,
			ReviewedBy: 1, ReviewedAt: timePtr(daysAgo(8)),
			Note: "Corrected invoice references and payment terms.",
			Payload: &model.ReplacePayload{
				NewTitle:       "Invoice Batch - 2026-01",
				NewDescription: "Finalized invoice packet with corrected references.",
				NewFileURL:     "mock://docs/invoice-batch-2026-01-v2.pdf",
			},
		},
		{
			ID: 704, DocumentID: 106, Action: model.ActionDelete,
			RequestedBy: 3, RequesterEmail: "ethan.carter@example.com",
			RequestedAt: daysAgo(13), Status: model.StatusRejected,
			ReviewedBy: 1, ReviewedAt: timePtr(daysAgo(12)),
			Note: "Retention period not reached. Keep document active.",
		},
	}

	s.notifications = []model.Notification{
		{ID: 901, UserID: 2, Type: "REQUEST_SUBMITTED", Message: "Your replace request for Employee Onboarding SOP is pending review.", RelatedEntityID: 701, CreatedAt: hoursAgo(4)},
		{ID: 902, UserID: 3, Type: "REQUEST_SUBMITTED", Message: "Your delete request for Office Lease Addendum is pending review.", RelatedEntityID: 702, CreatedAt: hoursAgo(8)},
		{ID: 903, UserID: 2, Type: model.NotifyRequestApproved, Message: "Your replace request for Invoice Batch - 2026-01 was approved.", RelatedEntityID: 703, IsRead: true, CreatedAt: hoursAgo(26)},
		{ID: 904, UserID: 3, Type: model.NotifyRequestRejected, Message: "Your delete request for Security Incident Report was rejected.", RelatedEntityID: 704, IsRead: true, CreatedAt: hoursAgo(33)},
		{ID: 905, UserID: 1, Type: model.NotifyWorkflowAlert, Message: "2 permission requests require admin review.", CreatedAt: hoursAgo(12)},
		{ID: 906, UserID: 2, Type: model.NotifyDocumentUploaded, Message: "Vendor Contract 2026 was uploaded successfully.", RelatedEntityID: 101, IsRead: true, CreatedAt: hoursAgo(60)},
		{ID: 907, UserID: 3, Type: "DOCUMENT_UPDATED", Message: "Monthly Report - Jan metadata was updated.", RelatedEntityID: 102, CreatedAt: hoursAgo(18)},
		{ID: 908, UserID: 1, Type: "SYSTEM", Message: "Document workflow demo dataset loaded in simulated mode.", IsRead: true, CreatedAt: hoursAgo(1)},
	}

	s.nextDocumentID = 109
	s.nextRequestID = 705
	s.nextNotificationID = 909
}

func timePtr(t time.Time) *time.Time { return &t }
