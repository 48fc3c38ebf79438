package remote

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"dms-go/internal/dms"
	"dms-go/internal/model"
)

// ListDocuments fetches one page of documents.
func (c *Client) ListDocuments(ctx context.Context, in dms.ListDocumentsInput) (model.Page[model.Document], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(in.Page))
	q.Set("page_size", strconv.Itoa(in.PageSize))
	if in.Search != "" {
		q.Set("search", in.Search)
	}
	if in.Status != "" {
		q.Set("status", string(in.Status))
	}
	if in.Type != "" {
		q.Set("document_type", in.Type)
	}

	var page wirePage[wireDocument]
	if err := c.get(ctx, "/documents", q, &page); err != nil {
		return model.Page[model.Document]{}, err
	}
	return mapPage(page, mapDocument), nil
}

// GetDocument fetches a single document.
func (c *Client) GetDocument(ctx context.Context, documentID int64) (model.Document, error) {
	var doc wireDocument
	if err := c.get(ctx, "/documents/"+strconv.FormatInt(documentID, 10), nil, &doc); err != nil {
		return model.Document{}, err
	}
	return mapDocument(doc), nil
}

// UploadDocument creates a document via multipart upload.
func (c *Client) UploadDocument(ctx context.Context, in dms.UploadDocumentInput) (model.Document, error) {
	fields := map[string]string{
		"title":         in.Title,
		"description":   in.Description,
		"document_type": in.DocumentType,
	}
	var doc wireDocument
	if err := c.sendMultipart(ctx, "/documents/upload", fields, in.FilePath, &doc); err != nil {
		return model.Document{}, err
	}
	return mapDocument(doc), nil
}

// DownloadDocument streams the document's file content to w.
func (c *Client) DownloadDocument(ctx context.Context, documentID int64, w io.Writer) error {
	return c.download(ctx, "/documents/"+strconv.FormatInt(documentID, 10)+"/download", w)
}

// CreateReplaceRequest submits a multipart replace request carrying the
// replacement file.
func (c *Client) CreateReplaceRequest(ctx context.Context, documentID int64, in dms.ReplaceRequestInput) error {
	fields := map[string]string{
		"expected_version": strconv.Itoa(in.ExpectedVersion),
		"note":             in.Note,
	}
	path := "/documents/" + strconv.FormatInt(documentID, 10) + "/replace-request"
	return c.sendMultipart(ctx, path, fields, in.FilePath, nil)
}

// CreateDeleteRequest submits a JSON delete request.
func (c *Client) CreateDeleteRequest(ctx context.Context, documentID int64, in dms.DeleteRequestInput) error {
	body := struct {
		ExpectedVersion int    `json:"expected_version"`
		Note            string `json:"note,omitempty"`
	}{
		ExpectedVersion: in.ExpectedVersion,
		Note:            in.Note,
	}
	path := "/documents/" + strconv.FormatInt(documentID, 10) + "/delete-request"
	return c.sendJSON(ctx, http.MethodPost, path, body, nil)
}
