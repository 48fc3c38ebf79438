package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"dms-go/internal/config"
	"dms-go/internal/credentials"
	"dms-go/internal/dms"
	"dms-go/internal/journal"
	"dms-go/internal/mockstore"
	"dms-go/internal/model"
	"dms-go/internal/remote"
)

// DMSApp is the application layer between the CLI and the fallback-aware
// Service. It constructs all dependencies from config, restores the saved
// session, journals mutating commands, and manages resource lifecycles on
// Close.
type DMSApp struct {
	cfg     *config.Config
	creds   credentials.Store
	journal journal.Journal
	service *dms.Service

	session    model.Session
	hasSession bool

	op      *ClientOperation
	logFile *os.File
}

// NewDMSApp creates a fully wired DMSApp from the given config.
// operation identifies the CLI command being run (e.g. "UploadDocument").
// passphrase is consulted only when the age credentials backend needs to
// unlock the stored session. The caller must call Close when done.
func NewDMSApp(cfg *config.Config, operation, parameters string, passphrase credentials.PassphraseFunc) (*DMSApp, error) {
	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	creds, err := credentials.NewStoreFromConfig(cfg.Credentials, passphrase)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating credentials store: %w", err)
	}

	jrnl, err := journal.NewJournalFromConfig(cfg.Journal)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating journal: %w", err)
	}

	a := &DMSApp{
		cfg:     cfg,
		creds:   creds,
		journal: jrnl,
		op:      NewClientOperation(opID, operation, parameters),
		logFile: logFile,
	}

	session, ok, err := creds.Load()
	if err != nil {
		jrnl.Close()
		logFile.Close()
		return nil, fmt.Errorf("loading session: %w", err)
	}
	a.session = session
	a.hasSession = ok

	log := &slogAdapter{l: logger}
	client := remote.NewClient(cfg.BaseURL, func() string { return a.session.Token })
	store := mockstore.New(dms.RealClock{}, log)

	a.service = dms.NewService(client, store, log, dms.RealClock{}, dms.NewLatencySleeper(), dms.UUIDGenerator{}, cfg.ForceMock)
	if ok {
		a.service.SetActor(session.User.ID)
	}

	return a, nil
}

// persistOperation saves the client operation to the journal, giving it an
// auto-increment ID. This should only be called for domain-mutating commands.
func (a *DMSApp) persistOperation() error {
	if a.op.Persisted() {
		return nil // already persisted
	}
	row, err := a.journal.CreateOperation(a.op.OpID, a.op.Operation, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting client operation: %w", err)
	}
	a.op.ID = row.ID
	return nil
}

// fail marks the journalled operation as failed and passes the error through.
func (a *DMSApp) fail(err error) error {
	if err != nil {
		a.op.Status = journal.StatusError
	}
	return err
}

// Mode reports whether the service is still live or has fallen back.
func (a *DMSApp) Mode() dms.Mode {
	return a.service.Mode()
}

// Session returns the restored session, if any.
func (a *DMSApp) Session() (model.Session, bool) {
	return a.session, a.hasSession
}

// Auth

// Login authenticates and saves the resulting session for later invocations.
func (a *DMSApp) Login(ctx context.Context, email, password string) (model.Session, error) {
	if err := a.persistOperation(); err != nil {
		return model.Session{}, err
	}
	sess, err := a.service.Login(ctx, email, password)
	if err != nil {
		return model.Session{}, a.fail(err)
	}
	if err := a.creds.Save(sess); err != nil {
		return model.Session{}, a.fail(fmt.Errorf("saving session: %w", err))
	}
	a.session = sess
	a.hasSession = true
	return sess, nil
}

// Register creates a new account and saves the resulting session.
func (a *DMSApp) Register(ctx context.Context, email, fullName, password string) (model.Session, error) {
	if err := a.persistOperation(); err != nil {
		return model.Session{}, err
	}
	sess, err := a.service.Register(ctx, email, fullName, password)
	if err != nil {
		return model.Session{}, a.fail(err)
	}
	if err := a.creds.Save(sess); err != nil {
		return model.Session{}, a.fail(fmt.Errorf("saving session: %w", err))
	}
	a.session = sess
	a.hasSession = true
	return sess, nil
}

// Logout discards the saved session.
func (a *DMSApp) Logout() error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	if err := a.creds.Clear(); err != nil {
		return a.fail(err)
	}
	a.session = model.Session{}
	a.hasSession = false
	return nil
}

// Whoami returns the user the current session authenticates as.
func (a *DMSApp) Whoami(ctx context.Context) (model.User, error) {
	if !a.hasSession && a.service.Mode() != dms.ModeFallenBack {
		return model.User{}, fmt.Errorf("not logged in")
	}
	return a.service.Me(ctx)
}

// Documents

// ListDocuments returns one page of documents.
func (a *DMSApp) ListDocuments(ctx context.Context, in dms.ListDocumentsInput) (model.Page[model.Document], error) {
	return a.service.ListDocuments(ctx, in)
}

// GetDocument returns a single document by ID.
func (a *DMSApp) GetDocument(ctx context.Context, documentID int64) (model.Document, error) {
	return a.service.GetDocument(ctx, documentID)
}

// UploadDocument creates a new document.
func (a *DMSApp) UploadDocument(ctx context.Context, in dms.UploadDocumentInput) (model.Document, error) {
	if err := a.persistOperation(); err != nil {
		return model.Document{}, err
	}
	doc, err := a.service.UploadDocument(ctx, in)
	return doc, a.fail(err)
}

// DownloadDocument writes the document's file content to w.
func (a *DMSApp) DownloadDocument(ctx context.Context, documentID int64, w io.Writer) error {
	return a.service.DownloadDocument(ctx, documentID, w)
}

// RequestReplace submits a replace request for the document.
func (a *DMSApp) RequestReplace(ctx context.Context, documentID int64, in dms.ReplaceRequestInput) error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	return a.fail(a.service.RequestReplace(ctx, documentID, in))
}

// RequestDelete submits a delete request for the document.
func (a *DMSApp) RequestDelete(ctx context.Context, documentID int64, in dms.DeleteRequestInput) error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	return a.fail(a.service.RequestDelete(ctx, documentID, in))
}

// Permission requests

// ListRequests returns one page of permission requests.
func (a *DMSApp) ListRequests(ctx context.Context, in dms.ListRequestsInput) (model.Page[model.PermissionRequest], error) {
	return a.service.ListRequests(ctx, in)
}

// ApproveRequest approves a pending permission request.
func (a *DMSApp) ApproveRequest(ctx context.Context, requestID int64) error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	return a.fail(a.service.ApproveRequest(ctx, requestID))
}

// RejectRequest rejects a pending permission request.
func (a *DMSApp) RejectRequest(ctx context.Context, requestID int64, note string) error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	return a.fail(a.service.RejectRequest(ctx, requestID, note))
}

// Notifications

// ListNotifications returns one page of the notification feed.
func (a *DMSApp) ListNotifications(ctx context.Context, page, pageSize int) (model.Page[model.Notification], error) {
	return a.service.ListNotifications(ctx, page, pageSize)
}

// MarkNotificationRead flips one notification to read.
func (a *DMSApp) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	return a.fail(a.service.MarkNotificationRead(ctx, notificationID))
}

// MarkAllNotificationsRead flips every unread notification and returns the
// number updated.
func (a *DMSApp) MarkAllNotificationsRead(ctx context.Context) (int, error) {
	if err := a.persistOperation(); err != nil {
		return 0, err
	}
	n, err := a.service.MarkAllNotificationsRead(ctx)
	return n, a.fail(err)
}

// History returns the most recent journalled operations, newest first.
func (a *DMSApp) History(limit int) ([]*journal.ClientOperation, error) {
	return a.journal.ListOperations(limit)
}

// Close finalizes the operation record and closes all resources.
func (a *DMSApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.journal.FinishOperation(a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing client operation: %w", err)
		}
	}

	if err := a.journal.Close(); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("closing journal: %w", err)
		}
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
