// Package mockstore is the in-memory workflow simulation served when the
// client has fallen back. It holds the same collections a real backend
// would and enforces the same state-transition rules: version checks,
// status transitions, and notification side effects.
package mockstore

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"dms-go/internal/dms"
	"dms-go/internal/model"
)

// Store holds the simulated collections for the lifetime of the process.
// Every operation is a single critical section under one mutex, and all
// returned entities are copies of store state.
type Store struct {
	clock  dms.Clock
	logger dms.Logger

	mu            sync.Mutex
	documents     []model.Document
	requests      []model.PermissionRequest
	notifications []model.Notification
	users         []model.User
	adminID       int64

	nextDocumentID     int64
	nextRequestID      int64
	nextNotificationID int64
}

// New creates a Store seeded with the fixture dataset.
func New(clock dms.Clock, logger dms.Logger) *Store {
	s := &Store{clock: clock, logger: logger}
	s.seed()
	return s
}

var _ dms.Store = (*Store)(nil)

// ListDocuments filters, sorts newest-first and pages the document
// collection.
func (s *Store) ListDocuments(in dms.ListDocumentsInput) model.Page[model.Document] {
	s.mu.Lock()
	defer s.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(in.Search))
	typeFilter := strings.ToLower(strings.TrimSpace(in.Type))

	filtered := make([]model.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		if search != "" {
			haystack := strings.ToLower(doc.Title + " " + doc.Description)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		if in.Status != "" && doc.Status != in.Status {
			continue
		}
		if typeFilter != "" && !strings.Contains(strings.ToLower(doc.DocumentType), typeFilter) {
			continue
		}
		filtered = append(filtered, doc)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return model.Paginate(filtered, in.Page, in.PageSize)
}

// GetDocument returns a document by ID.
func (s *Store) GetDocument(documentID int64) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.findDocument(documentID)
	if doc == nil {
		return model.Document{}, fmt.Errorf("document %d: %w", documentID, model.ErrNotFound)
	}
	return *doc, nil
}

// UploadDocument creates an ACTIVE document at version 1, inserted at the
// front of the collection, and notifies the uploader.
func (s *Store) UploadDocument(in dms.StoreUploadInput) model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextDocumentID
	s.nextDocumentID++

	fileURL := fmt.Sprintf("mock://uploads/document-%d.pdf", id)
	if in.FileName != "" {
		fileURL = "mock://uploads/" + in.FileName
	}

	doc := model.Document{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		DocumentType: in.DocumentType,
		FileURL:      fileURL,
		Version:      1,
		Status:       model.DocumentActive,
		CreatedBy:    s.actorOrAdmin(in.ActorID),
		CreatedAt:    s.clock.Now(),
	}
	s.documents = append([]model.Document{doc}, s.documents...)

	s.pushNotification(doc.CreatedBy, model.NotifyDocumentUploaded,
		fmt.Sprintf("%s was uploaded successfully.", doc.Title), doc.ID)

	return doc
}

// CreateReplaceRequest marks the document PENDING_REPLACE and creates a
// PENDING REPLACE request whose payload defaults to the document's current
// values, alerting the admin.
func (s *Store) CreateReplaceRequest(in dms.StoreReplaceInput) (model.PermissionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.findDocument(in.DocumentID)
	if doc == nil {
		return model.PermissionRequest{}, fmt.Errorf("document %d: %w", in.DocumentID, model.ErrNotFound)
	}
	if in.ExpectedVersion != 0 && in.ExpectedVersion != doc.Version {
		return model.PermissionRequest{}, fmt.Errorf("document %d is at version %d, expected %d: %w",
			doc.ID, doc.Version, in.ExpectedVersion, model.ErrVersionConflict)
	}

	doc.Status = model.DocumentPendingReplace

	newFileURL := fmt.Sprintf("%s?pending=%d", doc.FileURL, s.clock.Now().UnixMilli())
	if in.FileName != "" {
		newFileURL = "mock://pending/" + in.FileName
	}

	requestedBy := s.actorOrAdmin(in.ActorID)
	req := model.PermissionRequest{
		ID:             s.nextRequestID,
		DocumentID:     doc.ID,
		Action:         model.ActionReplace,
		RequestedBy:    requestedBy,
		RequesterEmail: s.userEmail(requestedBy),
		RequestedAt:    s.clock.Now(),
		Status:         model.StatusPending,
		Note:           in.Note,
		Payload: &model.ReplacePayload{
			NewTitle:       doc.Title,
			NewDescription: doc.Description,
			NewFileURL:     newFileURL,
		},
	}
	s.nextRequestID++
	s.requests = append([]model.PermissionRequest{req}, s.requests...)

	s.pushNotification(s.adminID, model.NotifyWorkflowAlert,
		fmt.Sprintf("New replace request submitted for %s.", doc.Title), req.ID)

	return cloneRequest(req), nil
}

// CreateDeleteRequest marks the document PENDING_DELETE and creates a
// PENDING DELETE request, alerting the admin.
func (s *Store) CreateDeleteRequest(in dms.StoreDeleteInput) (model.PermissionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.findDocument(in.DocumentID)
	if doc == nil {
		return model.PermissionRequest{}, fmt.Errorf("document %d: %w", in.DocumentID, model.ErrNotFound)
	}
	if in.ExpectedVersion != 0 && in.ExpectedVersion != doc.Version {
		return model.PermissionRequest{}, fmt.Errorf("document %d is at version %d, expected %d: %w",
			doc.ID, doc.Version, in.ExpectedVersion, model.ErrVersionConflict)
	}

	doc.Status = model.DocumentPendingDelete

	requestedBy := s.actorOrAdmin(in.ActorID)
	req := model.PermissionRequest{
		ID:             s.nextRequestID,
		DocumentID:     doc.ID,
		Action:         model.ActionDelete,
		RequestedBy:    requestedBy,
		RequesterEmail: s.userEmail(requestedBy),
		RequestedAt:    s.clock.Now(),
		Status:         model.StatusPending,
		Note:           in.Note,
	}
	s.nextRequestID++
	s.requests = append([]model.PermissionRequest{req}, s.requests...)

	s.pushNotification(s.adminID, model.NotifyWorkflowAlert,
		fmt.Sprintf("New delete request submitted for %s.", doc.Title), req.ID)

	return cloneRequest(req), nil
}

// ListRequests filters by status if given, backfills requester emails from
// the user table, sorts newest-first and pages.
func (s *Store) ListRequests(in dms.ListRequestsInput) model.Page[model.PermissionRequest] {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]model.PermissionRequest, 0, len(s.requests))
	for _, req := range s.requests {
		if in.Status != "" && req.Status != in.Status {
			continue
		}
		c := cloneRequest(req)
		if c.RequesterEmail == "" {
			c.RequesterEmail = s.userEmail(c.RequestedBy)
		}
		filtered = append(filtered, c)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].RequestedAt.After(filtered[j].RequestedAt)
	})

	return model.Paginate(filtered, in.Page, in.PageSize)
}

// ApproveRequest resolves a pending request and applies the document
// mutation it asked for: DELETE removes the document entirely, REPLACE
// bumps the version, reactivates the document and applies the payload.
// Reviewing an already-resolved request returns it unchanged with no side
// effects.
func (s *Store) ApproveRequest(requestID int64) (model.PermissionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := s.findRequest(requestID)
	if req == nil {
		return model.PermissionRequest{}, fmt.Errorf("permission request %d: %w", requestID, model.ErrNotFound)
	}
	if req.Reviewed() {
		return cloneRequest(*req), nil
	}

	now := s.clock.Now()
	req.Status = model.StatusApproved
	req.ReviewedBy = s.adminID
	req.ReviewedAt = &now

	if req.DocumentID != 0 {
		doc := s.findDocument(req.DocumentID)
		if doc == nil {
			// The target was removed by an earlier approval. The request is
			// still marked approved, with no document mutation and no
			// requester notification.
			s.logger.Warn("approved request targets a deleted document",
				"request", req.ID, "document", req.DocumentID)
		} else {
			// removeDocument compacts s.documents, invalidating doc.
			title := doc.Title
			if req.Action == model.ActionDelete {
				s.removeDocument(doc.ID)
			} else {
				doc.Version++
				doc.Status = model.DocumentActive
				if p := req.Payload; p != nil {
					if p.NewTitle != "" {
						doc.Title = p.NewTitle
					}
					if p.NewDescription != "" {
						doc.Description = p.NewDescription
					}
					if p.NewFileURL != "" {
						doc.FileURL = p.NewFileURL
					}
				}
				title = doc.Title
			}

			verb := "replace"
			if req.Action == model.ActionDelete {
				verb = "delete"
			}
			s.pushNotification(req.RequestedBy, model.NotifyRequestApproved,
				fmt.Sprintf("Your %s request for %s was approved.", verb, title), req.ID)
		}
	}

	return cloneRequest(*req), nil
}

// RejectRequest resolves a pending request without applying it, restoring
// the document to ACTIVE. A non-empty note overwrites the request note.
// Reviewing an already-resolved request returns it unchanged.
func (s *Store) RejectRequest(requestID int64, note string) (model.PermissionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := s.findRequest(requestID)
	if req == nil {
		return model.PermissionRequest{}, fmt.Errorf("permission request %d: %w", requestID, model.ErrNotFound)
	}
	if req.Reviewed() {
		return cloneRequest(*req), nil
	}

	now := s.clock.Now()
	req.Status = model.StatusRejected
	req.ReviewedBy = s.adminID
	req.ReviewedAt = &now
	if note != "" {
		req.Note = note
	}

	if req.DocumentID != 0 {
		if doc := s.findDocument(req.DocumentID); doc != nil {
			doc.Status = model.DocumentActive

			verb := "replace"
			if req.Action == model.ActionDelete {
				verb = "delete"
			}
			s.pushNotification(req.RequestedBy, model.NotifyRequestRejected,
				fmt.Sprintf("Your %s request for %s was rejected.", verb, doc.Title), req.ID)
		}
	}

	return cloneRequest(*req), nil
}

// ListNotifications returns one page of the feed, newest first.
func (s *Store) ListNotifications(page, pageSize int) model.Page[model.Notification] {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.Notification, len(s.notifications))
	copy(items, s.notifications)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return model.Paginate(items, page, pageSize)
}

// MarkNotificationRead flips one notification to read. Unknown IDs and
// already-read notifications are no-ops.
func (s *Store) MarkNotificationRead(notificationID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == notificationID {
			s.notifications[i].IsRead = true
			return
		}
	}
}

// MarkAllNotificationsRead flips every unread notification to read and
// returns the number actually flipped.
func (s *Store) MarkAllNotificationsRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for i := range s.notifications {
		if !s.notifications[i].IsRead {
			s.notifications[i].IsRead = true
			updated++
		}
	}
	return updated
}

// FindUserByEmail looks up a seeded user by email, case-insensitively.
func (s *Store) FindUserByEmail(email string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return model.User{}, false
}

// Users returns a copy of the seeded user table.
func (s *Store) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// Internal helpers. Callers must hold s.mu.

func (s *Store) findDocument(id int64) *model.Document {
	for i := range s.documents {
		if s.documents[i].ID == id {
			return &s.documents[i]
		}
	}
	return nil
}

func (s *Store) findRequest(id int64) *model.PermissionRequest {
	for i := range s.requests {
		if s.requests[i].ID == id {
			return &s.requests[i]
		}
	}
	return nil
}

func (s *Store) removeDocument(id int64) {
	kept := s.documents[:0]
	for _, doc := range s.documents {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	s.documents = kept
}

func (s *Store) actorOrAdmin(actorID int64) int64 {
	if actorID != 0 {
		return actorID
	}
	return s.adminID
}

func (s *Store) userEmail(userID int64) string {
	for _, u := range s.users {
		if u.ID == userID {
			return u.Email
		}
	}
	return fmt.Sprintf("user%d@example.com", userID)
}

func (s *Store) pushNotification(userID int64, kind, message string, relatedID int64) {
	n := model.Notification{
		ID:              s.nextNotificationID,
		UserID:          userID,
		Type:            kind,
		Message:         message,
		RelatedEntityID: relatedID,
		CreatedAt:       s.clock.Now(),
	}
	s.nextNotificationID++
	s.notifications = append([]model.Notification{n}, s.notifications...)
}

// cloneRequest deep-copies a request so callers never alias store state
// through the payload or review-time pointers.
func cloneRequest(req model.PermissionRequest) model.PermissionRequest {
	c := req
	if req.Payload != nil {
		p := *req.Payload
		c.Payload = &p
	}
	if req.ReviewedAt != nil {
		t := *req.ReviewedAt
		c.ReviewedAt = &t
	}
	return c
}
