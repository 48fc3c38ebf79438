package model

import "time"

// UserRole distinguishes admins (who review permission requests) from
// regular users.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// DocumentStatus tracks whether a document has an outstanding permission
// request. A document has at most one outstanding request at a time; the
// status itself enforces that.
type DocumentStatus string

const (
	DocumentActive         DocumentStatus = "ACTIVE"
	DocumentPendingReplace DocumentStatus = "PENDING_REPLACE"
	DocumentPendingDelete  DocumentStatus = "PENDING_DELETE"
)

// PermissionAction is the document mutation a permission request asks for.
type PermissionAction string

const (
	ActionReplace PermissionAction = "REPLACE"
	ActionDelete  PermissionAction = "DELETE"
)

// PermissionStatus is the review state of a permission request.
// Transitions are PENDING -> APPROVED or PENDING -> REJECTED, never reversed.
type PermissionStatus string

const (
	StatusPending  PermissionStatus = "PENDING"
	StatusApproved PermissionStatus = "APPROVED"
	StatusRejected PermissionStatus = "REJECTED"
)

// Notification types emitted by the workflow.
const (
	NotifyDocumentUploaded = "DOCUMENT_UPLOADED"
	NotifyWorkflowAlert    = "WORKFLOW_ALERT"
	NotifyRequestApproved  = "REQUEST_APPROVED"
	NotifyRequestRejected  = "REQUEST_REJECTED"
)

// User is read-only reference data; the simulated store seeds one admin and
// two regular users.
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      UserRole
	CreatedAt time.Time
}

// Document is a managed document. Version starts at 1 and increments only
// when a REPLACE request is approved.
type Document struct {
	ID           int64
	Title        string
	Description  string
	DocumentType string
	FileURL      string
	Version      int
	Status       DocumentStatus
	CreatedBy    int64
	CreatedAt    time.Time
}

// ReplacePayload carries the proposed new field values of a REPLACE request.
// Only present for ActionReplace; empty fields leave the document field
// untouched on approval.
type ReplacePayload struct {
	NewTitle       string
	NewDescription string
	NewFileURL     string
}

// PermissionRequest gates a document mutation behind admin review.
type PermissionRequest struct {
	ID             int64
	DocumentID     int64 // zero when the target document no longer exists
	Action         PermissionAction
	RequestedBy    int64
	RequesterEmail string
	RequestedAt    time.Time
	Status         PermissionStatus
	ReviewedBy     int64      // zero until reviewed
	ReviewedAt     *time.Time // nil until reviewed; set together with ReviewedBy
	Note           string
	Payload        *ReplacePayload // nil for ActionDelete
}

// Reviewed reports whether the request has left the PENDING state.
func (r *PermissionRequest) Reviewed() bool {
	return r.Status != StatusPending
}

// Notification is a workflow event addressed to a single user.
// IsRead transitions false -> true only.
type Notification struct {
	ID              int64
	UserID          int64
	Type            string
	Message         string
	RelatedEntityID int64 // zero when the event has no related entity
	IsRead          bool
	CreatedAt       time.Time
}

// Session is the authenticated identity held by the client.
type Session struct {
	Token string
	User  User
}
