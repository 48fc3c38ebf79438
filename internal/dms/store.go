package dms

import "dms-go/internal/model"

// Store is the in-memory workflow simulation served when the client has
// fallen back. Every method is a single critical section: it never suspends
// mid-mutation, and results are copies of store state.
//
// Store operations raise the domain sentinels from the model package
// (model.ErrNotFound, model.ErrVersionConflict); those propagate to the
// caller unchanged — there is no further fallback behind the store.
type Store interface {
	// Document operations

	ListDocuments(in ListDocumentsInput) model.Page[model.Document]
	GetDocument(documentID int64) (model.Document, error)
	UploadDocument(in StoreUploadInput) model.Document
	CreateReplaceRequest(in StoreReplaceInput) (model.PermissionRequest, error)
	CreateDeleteRequest(in StoreDeleteInput) (model.PermissionRequest, error)

	// Permission request operations

	ListRequests(in ListRequestsInput) model.Page[model.PermissionRequest]
	ApproveRequest(requestID int64) (model.PermissionRequest, error)
	RejectRequest(requestID int64, note string) (model.PermissionRequest, error)

	// Notification operations

	ListNotifications(page, pageSize int) model.Page[model.Notification]
	MarkNotificationRead(notificationID int64)
	MarkAllNotificationsRead() int

	// User reference data

	FindUserByEmail(email string) (model.User, bool)
	Users() []model.User
}

// StoreUploadInput creates a document in the simulated store. ActorID zero
// attributes the upload to the seeded admin.
type StoreUploadInput struct {
	Title        string
	Description  string
	DocumentType string
	FileName     string
	ActorID      int64
}

// StoreReplaceInput creates a PENDING replace request in the simulated store.
// ExpectedVersion zero skips the version check.
type StoreReplaceInput struct {
	DocumentID      int64
	ExpectedVersion int
	Note            string
	FileName        string
	ActorID         int64
}

// StoreDeleteInput creates a PENDING delete request in the simulated store.
type StoreDeleteInput struct {
	DocumentID      int64
	ExpectedVersion int
	Note            string
	ActorID         int64
}
