package dms

import (
	"context"
	"io"

	"dms-go/internal/model"
)

// Remote is the typed client for the remote document-management service.
// Implementations return *TransportError when no response was received and
// *StatusError when the service answered with a non-2xx status; the fallback
// policy classifies both.
type Remote interface {
	// Document operations

	ListDocuments(ctx context.Context, in ListDocumentsInput) (model.Page[model.Document], error)
	GetDocument(ctx context.Context, documentID int64) (model.Document, error)
	UploadDocument(ctx context.Context, in UploadDocumentInput) (model.Document, error)
	DownloadDocument(ctx context.Context, documentID int64, w io.Writer) error
	CreateReplaceRequest(ctx context.Context, documentID int64, in ReplaceRequestInput) error
	CreateDeleteRequest(ctx context.Context, documentID int64, in DeleteRequestInput) error

	// Permission request operations

	ListRequests(ctx context.Context, in ListRequestsInput) (model.Page[model.PermissionRequest], error)
	ReviewRequest(ctx context.Context, requestID int64, decision ReviewDecision, note string) error

	// Notification operations

	ListNotifications(ctx context.Context, page, pageSize int) (model.Page[model.Notification], error)
	MarkNotificationRead(ctx context.Context, notificationID int64) error
	MarkAllNotificationsRead(ctx context.Context) (int, error)

	// Auth operations (outside the fallback policy, see Service)

	Login(ctx context.Context, email, password string) (model.Session, error)
	Register(ctx context.Context, email, fullName, password string) (model.Session, error)
	Me(ctx context.Context) (model.User, error)
}

// ReviewDecision is the admin's verdict on a permission request.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "APPROVE"
	DecisionReject  ReviewDecision = "REJECT"
)
