package remote

import "dms-go/internal/model"

// The entity mapper: pure field-renaming between the service's snake_case
// wire shape and the internal domain shape. No validation — absent optional
// fields map to zero values and back. Each pair of functions composes to the
// identity, which mapper_test.go pins down.

func mapDocument(w wireDocument) model.Document {
	return model.Document{
		ID:           w.ID,
		Title:        w.Title,
		Description:  w.Description,
		DocumentType: w.DocumentType,
		FileURL:      w.FileURL,
		Version:      w.Version,
		Status:       model.DocumentStatus(w.Status),
		CreatedBy:    w.CreatedBy,
		CreatedAt:    w.CreatedAt,
	}
}

func documentToWire(d model.Document) wireDocument {
	return wireDocument{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		DocumentType: d.DocumentType,
		FileURL:      d.FileURL,
		Version:      d.Version,
		Status:       string(d.Status),
		CreatedBy:    d.CreatedBy,
		CreatedAt:    d.CreatedAt,
	}
}

func mapPermissionRequest(w wirePermissionRequest) model.PermissionRequest {
	r := model.PermissionRequest{
		ID:             w.ID,
		Action:         model.PermissionAction(w.Action),
		RequestedBy:    w.RequestedBy,
		RequesterEmail: w.RequesterEmail,
		RequestedAt:    w.RequestedAt,
		Status:         model.PermissionStatus(w.Status),
		ReviewedAt:     w.ReviewedAt,
		Note:           w.Note,
	}
	if w.DocumentID != nil {
		r.DocumentID = *w.DocumentID
	}
	if w.ReviewedBy != nil {
		r.ReviewedBy = *w.ReviewedBy
	}
	if w.Payload != nil {
		r.Payload = &model.ReplacePayload{
			NewTitle:       w.Payload.NewTitle,
			NewDescription: w.Payload.NewDescription,
			NewFileURL:     w.Payload.NewFileURL,
		}
	}
	return r
}

func permissionRequestToWire(r model.PermissionRequest) wirePermissionRequest {
	w := wirePermissionRequest{
		ID:             r.ID,
		Action:         string(r.Action),
		RequestedBy:    r.RequestedBy,
		RequesterEmail: r.RequesterEmail,
		RequestedAt:    r.RequestedAt,
		Status:         string(r.Status),
		ReviewedAt:     r.ReviewedAt,
		Note:           r.Note,
	}
	if r.DocumentID != 0 {
		id := r.DocumentID
		w.DocumentID = &id
	}
	if r.ReviewedBy != 0 {
		id := r.ReviewedBy
		w.ReviewedBy = &id
	}
	if r.Payload != nil {
		w.Payload = &wireReplacePayload{
			NewTitle:       r.Payload.NewTitle,
			NewDescription: r.Payload.NewDescription,
			NewFileURL:     r.Payload.NewFileURL,
		}
	}
	return w
}

func mapNotification(w wireNotification) model.Notification {
	n := model.Notification{
		ID:        w.ID,
		UserID:    w.UserID,
		Type:      w.Type,
		Message:   w.Message,
		IsRead:    w.IsRead,
		CreatedAt: w.CreatedAt,
	}
	if w.RelatedEntityID != nil {
		n.RelatedEntityID = *w.RelatedEntityID
	}
	return n
}

func notificationToWire(n model.Notification) wireNotification {
	w := wireNotification{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.RelatedEntityID != 0 {
		id := n.RelatedEntityID
		w.RelatedEntityID = &id
	}
	return w
}

func mapUser(w wireUser) model.User {
	return model.User{
		ID:        w.ID,
		Name:      w.FullName,
		Email:     w.Email,
		Role:      model.UserRole(w.Role),
		CreatedAt: w.CreatedAt,
	}
}

// mapPage applies an item mapper over a wire page, passing the pagination
// metadata through unchanged.
func mapPage[S, T any](src wirePage[S], fn func(S) T) model.Page[T] {
	items := make([]T, len(src.Items))
	for i, it := range src.Items {
		items[i] = fn(it)
	}
	return model.Page[T]{
		Items: items,
		Meta: model.PageMeta{
			Page:       src.Meta.Page,
			PageSize:   src.Meta.PageSize,
			Total:      src.Meta.Total,
			TotalPages: src.Meta.TotalPages,
		},
	}
}
