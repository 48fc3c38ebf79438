package remote

import "time"

// Wire representations of the service's snake_case JSON entities.
// Optional/nullable fields are pointers so absence survives a round trip.

type wireDocument struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DocumentType string    `json:"document_type"`
	FileURL      string    `json:"file_url"`
	Version      int       `json:"version"`
	Status       string    `json:"status"`
	CreatedBy    int64     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

type wireReplacePayload struct {
	NewTitle       string `json:"new_title,omitempty"`
	NewDescription string `json:"new_description,omitempty"`
	NewFileURL     string `json:"new_file_url,omitempty"`
}

type wirePermissionRequest struct {
	ID             int64               `json:"id"`
	DocumentID     *int64              `json:"document_id"`
	Action         string              `json:"action"`
	RequestedBy    int64               `json:"requested_by"`
	RequesterEmail string              `json:"requester_email,omitempty"`
	RequestedAt    time.Time           `json:"requested_at"`
	Status         string              `json:"status"`
	ReviewedBy     *int64              `json:"reviewed_by"`
	ReviewedAt     *time.Time          `json:"reviewed_at"`
	Note           string              `json:"note,omitempty"`
	Payload        *wireReplacePayload `json:"payload,omitempty"`
}

type wireNotification struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Type            string    `json:"type"`
	Message         string    `json:"message"`
	RelatedEntityID *int64    `json:"related_entity_id"`
	IsRead          bool      `json:"is_read"`
	CreatedAt       time.Time `json:"created_at"`
}

type wireUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type wireAuthPayload struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        wireUser `json:"user"`
}

type wireMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type wirePage[T any] struct {
	Items []T      `json:"items"`
	Meta  wireMeta `json:"meta"`
}
