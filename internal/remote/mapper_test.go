package remote

import (
	"reflect"
	"testing"
	"time"

	"dms-go/internal/model"
)

func TestDocumentMapping_RoundTrip(t *testing.T) {
	doc := model.Document{
		ID:           101,
		Title:        "Vendor Contract 2026",
		Description:  "Master services agreement.",
		DocumentType: "Contract",
		FileURL:      "https://files/vendor-contract.pdf",
		Version:      3,
		Status:       model.DocumentPendingReplace,
		CreatedBy:    2,
		CreatedAt:    time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
	}

	got := mapDocument(documentToWire(doc))
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip = %+v, want %+v", got, doc)
	}
}

func TestPermissionRequestMapping_RoundTrip(t *testing.T) {
	reviewed := time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  model.PermissionRequest
	}{
		{
			name: "pending replace with payload",
			req: model.PermissionRequest{
				ID:             701,
				DocumentID:     103,
				Action:         model.ActionReplace,
				RequestedBy:    2,
				RequesterEmail: "priya.patel@example.com",
				RequestedAt:    time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC),
				Status:         model.StatusPending,
				Note:           "updated process",
				Payload: &model.ReplacePayload{
					NewTitle:       "Employee Onboarding SOP",
					NewDescription: "Revised approvals.",
					NewFileURL:     "https://files/onboarding-v5.pdf",
				},
			},
		},
		{
			name: "approved delete with orphaned document",
			req: model.PermissionRequest{
				ID:          702,
				DocumentID:  0, // target deleted, wire sends null
				Action:      model.ActionDelete,
				RequestedBy: 3,
				RequestedAt: time.Date(2026, 2, 8, 8, 0, 0, 0, time.UTC),
				Status:      model.StatusApproved,
				ReviewedBy:  1,
				ReviewedAt:  &reviewed,
			},
		},
		{
			name: "unreviewed without payload",
			req: model.PermissionRequest{
				ID:          703,
				DocumentID:  107,
				Action:      model.ActionDelete,
				RequestedBy: 3,
				RequestedAt: time.Date(2026, 2, 7, 8, 0, 0, 0, time.UTC),
				Status:      model.StatusPending,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapPermissionRequest(permissionRequestToWire(tt.req))
			if !reflect.DeepEqual(got, tt.req) {
				t.Errorf("round trip = %+v, want %+v", got, tt.req)
			}
		})
	}
}

func TestPermissionRequestMapping_NullableFields(t *testing.T) {
	w := wirePermissionRequest{
		ID:          1,
		Action:      "DELETE",
		RequestedBy: 3,
		Status:      "APPROVED",
		// DocumentID, ReviewedBy, ReviewedAt all null
	}

	got := mapPermissionRequest(w)
	if got.DocumentID != 0 {
		t.Errorf("DocumentID = %d, want 0 for null", got.DocumentID)
	}
	if got.ReviewedBy != 0 {
		t.Errorf("ReviewedBy = %d, want 0 for null", got.ReviewedBy)
	}
	if got.ReviewedAt != nil {
		t.Errorf("ReviewedAt = %v, want nil", got.ReviewedAt)
	}
	if got.Payload != nil {
		t.Errorf("Payload = %v, want nil", got.Payload)
	}
}

func TestNotificationMapping_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		n    model.Notification
	}{
		{
			name: "with related entity",
			n: model.Notification{
				ID:              901,
				UserID:          2,
				Type:            model.NotifyRequestApproved,
				Message:         "Your replace request was approved.",
				RelatedEntityID: 701,
				IsRead:          true,
				CreatedAt:       time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "without related entity",
			n: model.Notification{
				ID:        905,
				UserID:    1,
				Type:      model.NotifyWorkflowAlert,
				Message:   "2 permission requests require admin review.",
				CreatedAt: time.Date(2026, 2, 11, 13, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapNotification(notificationToWire(tt.n))
			if !reflect.DeepEqual(got, tt.n) {
				t.Errorf("round trip = %+v, want %+v", got, tt.n)
			}
		})
	}
}

func TestMapUser(t *testing.T) {
	w := wireUser{
		ID:        1,
		Email:     "admin@example.com",
		FullName:  "Alex Morgan",
		Role:      "ADMIN",
		CreatedAt: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	}

	got := mapUser(w)
	if got.Name != "Alex Morgan" {
		t.Errorf("Name = %q, want Alex Morgan", got.Name)
	}
	if got.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want %q", got.Role, model.RoleAdmin)
	}
}

func TestMapPage(t *testing.T) {
	src := wirePage[wireDocument]{
		Items: []wireDocument{{ID: 1, Status: "ACTIVE"}, {ID: 2, Status: "PENDING_DELETE"}},
		Meta:  wireMeta{Page: 1, PageSize: 10, Total: 2, TotalPages: 1},
	}

	got := mapPage(src, mapDocument)
	if len(got.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(got.Items))
	}
	if got.Items[1].Status != model.DocumentPendingDelete {
		t.Errorf("Items[1].Status = %q, want %q", got.Items[1].Status, model.DocumentPendingDelete)
	}
	if got.Meta.Total != 2 || got.Meta.TotalPages != 1 {
		t.Errorf("Meta = %+v", got.Meta)
	}
}
