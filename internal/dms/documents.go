package dms

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"dms-go/internal/model"
)

// baseName returns the file name component of a path, or "" for an empty
// path (filepath.Base would return ".").
func baseName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

// ListDocumentsInput filters and pages the document collection.
// Search matches title+description case-insensitively, Status matches
// exactly, Type is a case-insensitive substring of the document type.
type ListDocumentsInput struct {
	Page     int
	PageSize int
	Search   string
	Status   model.DocumentStatus
	Type     string
}

// UploadDocumentInput creates a new document. FilePath is optional; when
// empty, the service synthesizes a file reference.
type UploadDocumentInput struct {
	Title        string
	Description  string
	DocumentType string
	FilePath     string
}

// ReplaceRequestInput asks for admin-reviewed replacement of a document.
type ReplaceRequestInput struct {
	ExpectedVersion int
	FilePath        string
	Note            string
}

// DeleteRequestInput asks for admin-reviewed deletion of a document.
type DeleteRequestInput struct {
	ExpectedVersion int
	Note            string
}

// ListDocuments returns one page of documents, newest first.
func (s *Service) ListDocuments(ctx context.Context, in ListDocumentsInput) (model.Page[model.Document], error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = 10
	}
	return run(ctx, s, "ListDocuments",
		func(ctx context.Context) (model.Page[model.Document], error) {
			return s.remote.ListDocuments(ctx, in)
		},
		func() (model.Page[model.Document], error) {
			return s.store.ListDocuments(in), nil
		},
	)
}

// GetDocument returns a single document by ID.
func (s *Service) GetDocument(ctx context.Context, documentID int64) (model.Document, error) {
	return run(ctx, s, "GetDocument",
		func(ctx context.Context) (model.Document, error) {
			return s.remote.GetDocument(ctx, documentID)
		},
		func() (model.Document, error) {
			return s.store.GetDocument(documentID)
		},
	)
}

// UploadDocument creates a new ACTIVE document at version 1 and notifies the
// uploader.
func (s *Service) UploadDocument(ctx context.Context, in UploadDocumentInput) (model.Document, error) {
	if in.Title == "" || in.Description == "" || in.DocumentType == "" {
		return model.Document{}, fmt.Errorf("%w: title, description and document type are required", model.ErrValidation)
	}
	return run(ctx, s, "UploadDocument",
		func(ctx context.Context) (model.Document, error) {
			return s.remote.UploadDocument(ctx, in)
		},
		func() (model.Document, error) {
			return s.store.UploadDocument(StoreUploadInput{
				Title:        in.Title,
				Description:  in.Description,
				DocumentType: in.DocumentType,
				FileName:     baseName(in.FilePath),
				ActorID:      s.actor(),
			}), nil
		},
	)
}

// RequestReplace submits a replace request for the document. The remote
// contract requires a replacement file; the simulated store synthesizes a
// pending file reference when none is given.
func (s *Service) RequestReplace(ctx context.Context, documentID int64, in ReplaceRequestInput) error {
	return runVoid(ctx, s, "RequestReplace",
		func(ctx context.Context) error {
			if in.FilePath == "" {
				return fmt.Errorf("%w: replacement file is required", model.ErrValidation)
			}
			return s.remote.CreateReplaceRequest(ctx, documentID, in)
		},
		func() error {
			_, err := s.store.CreateReplaceRequest(StoreReplaceInput{
				DocumentID:      documentID,
				ExpectedVersion: in.ExpectedVersion,
				Note:            in.Note,
				FileName:        baseName(in.FilePath),
				ActorID:         s.actor(),
			})
			return err
		},
	)
}

// RequestDelete submits a delete request for the document.
func (s *Service) RequestDelete(ctx context.Context, documentID int64, in DeleteRequestInput) error {
	return runVoid(ctx, s, "RequestDelete",
		func(ctx context.Context) error {
			return s.remote.CreateDeleteRequest(ctx, documentID, in)
		},
		func() error {
			_, err := s.store.CreateDeleteRequest(StoreDeleteInput{
				DocumentID:      documentID,
				ExpectedVersion: in.ExpectedVersion,
				Note:            in.Note,
				ActorID:         s.actor(),
			})
			return err
		},
	)
}

// DownloadDocument writes the document's file content to w. In fallback
// mode the content is a synthesized text body describing the document.
func (s *Service) DownloadDocument(ctx context.Context, documentID int64, w io.Writer) error {
	return runVoid(ctx, s, "DownloadDocument",
		func(ctx context.Context) error {
			return s.remote.DownloadDocument(ctx, documentID, w)
		},
		func() error {
			doc, err := s.store.GetDocument(documentID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "Mock file for %s\n\nType: %s\nVersion: %d\n",
				doc.Title, doc.DocumentType, doc.Version)
			return err
		},
	)
}
