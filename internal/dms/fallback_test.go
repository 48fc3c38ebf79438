package dms

import (
	"context"
	"errors"
	"io"
	"testing"

	"dms-go/internal/model"
)

// fakeRemote fails every call with err (or succeeds with zero values when
// err is nil) and counts how often it was contacted.
type fakeRemote struct {
	err   error
	calls int
}

func (f *fakeRemote) fail() error {
	f.calls++
	return f.err
}

func (f *fakeRemote) ListDocuments(ctx context.Context, in ListDocumentsInput) (model.Page[model.Document], error) {
	return model.Page[model.Document]{}, f.fail()
}

func (f *fakeRemote) GetDocument(ctx context.Context, documentID int64) (model.Document, error) {
	return model.Document{}, f.fail()
}

func (f *fakeRemote) UploadDocument(ctx context.Context, in UploadDocumentInput) (model.Document, error) {
	return model.Document{}, f.fail()
}

func (f *fakeRemote) DownloadDocument(ctx context.Context, documentID int64, w io.Writer) error {
	return f.fail()
}

func (f *fakeRemote) CreateReplaceRequest(ctx context.Context, documentID int64, in ReplaceRequestInput) error {
	return f.fail()
}

func (f *fakeRemote) CreateDeleteRequest(ctx context.Context, documentID int64, in DeleteRequestInput) error {
	return f.fail()
}

func (f *fakeRemote) ListRequests(ctx context.Context, in ListRequestsInput) (model.Page[model.PermissionRequest], error) {
	return model.Page[model.PermissionRequest]{}, f.fail()
}

func (f *fakeRemote) ReviewRequest(ctx context.Context, requestID int64, decision ReviewDecision, note string) error {
	return f.fail()
}

func (f *fakeRemote) ListNotifications(ctx context.Context, page, pageSize int) (model.Page[model.Notification], error) {
	return model.Page[model.Notification]{}, f.fail()
}

func (f *fakeRemote) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	return f.fail()
}

func (f *fakeRemote) MarkAllNotificationsRead(ctx context.Context) (int, error) {
	return 0, f.fail()
}

func (f *fakeRemote) Login(ctx context.Context, email, password string) (model.Session, error) {
	return model.Session{}, f.fail()
}

func (f *fakeRemote) Register(ctx context.Context, email, fullName, password string) (model.Session, error) {
	return model.Session{}, f.fail()
}

func (f *fakeRemote) Me(ctx context.Context) (model.User, error) {
	return model.User{}, f.fail()
}

var _ Remote = (*fakeRemote)(nil)

// fakeStore serves canned data and counts calls.
type fakeStore struct {
	calls int
	users []model.User
}

func (f *fakeStore) ListDocuments(in ListDocumentsInput) model.Page[model.Document] {
	f.calls++
	return model.Paginate([]model.Document{{ID: 1, Title: "Simulated"}}, in.Page, in.PageSize)
}

func (f *fakeStore) GetDocument(documentID int64) (model.Document, error) {
	f.calls++
	return model.Document{ID: documentID, Title: "Simulated", DocumentType: "Report", Version: 2}, nil
}

func (f *fakeStore) UploadDocument(in StoreUploadInput) model.Document {
	f.calls++
	return model.Document{ID: 42, Title: in.Title, Version: 1, Status: model.DocumentActive, CreatedBy: in.ActorID}
}

func (f *fakeStore) CreateReplaceRequest(in StoreReplaceInput) (model.PermissionRequest, error) {
	f.calls++
	return model.PermissionRequest{ID: 1, DocumentID: in.DocumentID, Action: model.ActionReplace}, nil
}

func (f *fakeStore) CreateDeleteRequest(in StoreDeleteInput) (model.PermissionRequest, error) {
	f.calls++
	return model.PermissionRequest{ID: 2, DocumentID: in.DocumentID, Action: model.ActionDelete}, nil
}

func (f *fakeStore) ListRequests(in ListRequestsInput) model.Page[model.PermissionRequest] {
	f.calls++
	return model.Page[model.PermissionRequest]{}
}

func (f *fakeStore) ApproveRequest(requestID int64) (model.PermissionRequest, error) {
	f.calls++
	return model.PermissionRequest{ID: requestID, Status: model.StatusApproved}, nil
}

func (f *fakeStore) RejectRequest(requestID int64, note string) (model.PermissionRequest, error) {
	f.calls++
	return model.PermissionRequest{ID: requestID, Status: model.StatusRejected, Note: note}, nil
}

func (f *fakeStore) ListNotifications(page, pageSize int) model.Page[model.Notification] {
	f.calls++
	return model.Page[model.Notification]{}
}

func (f *fakeStore) MarkNotificationRead(notificationID int64) {
	f.calls++
}

func (f *fakeStore) MarkAllNotificationsRead() int {
	f.calls++
	return 3
}

func (f *fakeStore) FindUserByEmail(email string) (model.User, bool) {
	for _, u := range f.users {
		if u.Email == email {
			return u, true
		}
	}
	return model.User{}, false
}

func (f *fakeStore) Users() []model.User { return f.users }

var _ Store = (*fakeStore)(nil)

type fixedID struct{}

func (fixedID) New() string { return "fixed" }

func newTestService(remote *fakeRemote, store *fakeStore, forceMock bool) *Service {
	return NewService(remote, store, NewNopLogger(), RealClock{}, NopSleeper{}, fixedID{}, forceMock)
}

func TestService_FallbackOnTransportError(t *testing.T) {
	remote := &fakeRemote{err: &TransportError{Op: "GET /documents", Err: errors.New("connection refused")}}
	store := &fakeStore{}
	svc := newTestService(remote, store, false)
	ctx := context.Background()

	page, err := svc.ListDocuments(ctx, ListDocumentsInput{})
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "Simulated" {
		t.Errorf("Items = %v, want the simulated document", page.Items)
	}
	if svc.Mode() != ModeFallenBack {
		t.Errorf("Mode() = %v, want ModeFallenBack", svc.Mode())
	}

	// The fallback is sticky: later operations of any kind skip the remote.
	if _, err := svc.GetDocument(ctx, 7); err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if _, err := svc.ListNotifications(ctx, 1, 20); err != nil {
		t.Fatalf("ListNotifications() error = %v", err)
	}
	if remote.calls != 1 {
		t.Errorf("remote.calls = %d, want 1 (never retried after fallback)", remote.calls)
	}
	if store.calls != 3 {
		t.Errorf("store.calls = %d, want 3", store.calls)
	}
}

func TestService_FallbackOnServerError(t *testing.T) {
	remote := &fakeRemote{err: &StatusError{Status: 503}}
	store := &fakeStore{}
	svc := newTestService(remote, store, false)

	if _, err := svc.GetDocument(context.Background(), 1); err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if svc.Mode() != ModeFallenBack {
		t.Errorf("Mode() = %v, want ModeFallenBack", svc.Mode())
	}
}

func TestService_FallbackOnUnauthorized(t *testing.T) {
	remote := &fakeRemote{err: &StatusError{Status: 401, Message: "token expired"}}
	store := &fakeStore{}
	svc := newTestService(remote, store, false)

	if err := svc.MarkNotificationRead(context.Background(), 5); err != nil {
		t.Fatalf("MarkNotificationRead() error = %v", err)
	}
	if svc.Mode() != ModeFallenBack {
		t.Errorf("Mode() = %v, want ModeFallenBack", svc.Mode())
	}
	if store.calls != 1 {
		t.Errorf("store.calls = %d, want 1", store.calls)
	}
}

func TestService_ClientErrorPropagates(t *testing.T) {
	for _, status := range []int{400, 403, 404, 409, 422} {
		remote := &fakeRemote{err: &StatusError{Status: status, Message: "no"}}
		store := &fakeStore{}
		svc := newTestService(remote, store, false)

		_, err := svc.GetDocument(context.Background(), 1)
		var se *StatusError
		if !errors.As(err, &se) || se.Status != status {
			t.Errorf("status %d: error = %v, want the StatusError back", status, err)
		}
		if svc.Mode() != ModeLive {
			t.Errorf("status %d: Mode() = %v, want ModeLive", status, svc.Mode())
		}
		if store.calls != 0 {
			t.Errorf("status %d: store.calls = %d, want 0", status, store.calls)
		}
	}
}

func TestService_ForceMockNeverContactsRemote(t *testing.T) {
	remote := &fakeRemote{}
	store := &fakeStore{}
	svc := newTestService(remote, store, true)
	ctx := context.Background()

	if _, err := svc.ListDocuments(ctx, ListDocumentsInput{}); err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if err := svc.ApproveRequest(ctx, 1); err != nil {
		t.Fatalf("ApproveRequest() error = %v", err)
	}
	if remote.calls != 0 {
		t.Errorf("remote.calls = %d, want 0", remote.calls)
	}
}

func TestService_UploadValidation(t *testing.T) {
	remote := &fakeRemote{}
	store := &fakeStore{}
	svc := newTestService(remote, store, false)

	_, err := svc.UploadDocument(context.Background(), UploadDocumentInput{Title: "only a title"})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if remote.calls != 0 {
		t.Errorf("remote.calls = %d, want 0 (validation happens first)", remote.calls)
	}
}

func TestService_MarkAllNotificationsRead_FallenBack(t *testing.T) {
	remote := &fakeRemote{err: &TransportError{Op: "PATCH /notifications/read-all", Err: errors.New("dial tcp: timeout")}}
	store := &fakeStore{}
	svc := newTestService(remote, store, false)

	n, err := svc.MarkAllNotificationsRead(context.Background())
	if err != nil {
		t.Fatalf("MarkAllNotificationsRead() error = %v", err)
	}
	if n != 3 {
		t.Errorf("updated = %d, want 3 from the store", n)
	}
}

func TestService_Login(t *testing.T) {
	users := []model.User{{ID: 2, Name: "Priya Patel", Email: "priya.patel@example.com", Role: model.RoleUser}}

	t.Run("mock mode resolves seeded users", func(t *testing.T) {
		remote := &fakeRemote{}
		store := &fakeStore{users: users}
		svc := newTestService(remote, store, true)

		sess, err := svc.Login(context.Background(), "priya.patel@example.com", "anything")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if sess.User.ID != 2 {
			t.Errorf("User.ID = %d, want 2", sess.User.ID)
		}
		if sess.Token != "mock-session-fixed" {
			t.Errorf("Token = %q, want mock-session-fixed", sess.Token)
		}
		if remote.calls != 0 {
			t.Errorf("remote.calls = %d, want 0", remote.calls)
		}
	})

	t.Run("mock mode rejects unknown emails", func(t *testing.T) {
		svc := newTestService(&fakeRemote{}, &fakeStore{users: users}, true)

		_, err := svc.Login(context.Background(), "nobody@example.com", "pw")
		if !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("missing credentials fail validation", func(t *testing.T) {
		svc := newTestService(&fakeRemote{}, &fakeStore{}, false)

		_, err := svc.Login(context.Background(), "", "")
		if !errors.Is(err, model.ErrValidation) {
			t.Fatalf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("live auth failure propagates without fallback", func(t *testing.T) {
		remote := &fakeRemote{err: &StatusError{Status: 401, Message: "bad credentials"}}
		svc := newTestService(remote, &fakeStore{users: users}, false)

		_, err := svc.Login(context.Background(), "priya.patel@example.com", "wrong")
		var se *StatusError
		if !errors.As(err, &se) || se.Status != 401 {
			t.Fatalf("error = %v, want the 401 StatusError back", err)
		}
		if svc.Mode() != ModeLive {
			t.Errorf("Mode() = %v, want ModeLive (auth is outside the fallback policy)", svc.Mode())
		}
	})
}

func TestService_Register_MockModeUnavailable(t *testing.T) {
	svc := newTestService(&fakeRemote{}, &fakeStore{}, true)

	_, err := svc.Register(context.Background(), "new@example.com", "New User", "pw")
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestService_Me_MockMode(t *testing.T) {
	users := []model.User{{ID: 3, Name: "Ethan Carter", Email: "ethan.carter@example.com", Role: model.RoleUser}}
	svc := newTestService(&fakeRemote{}, &fakeStore{users: users}, true)
	ctx := context.Background()

	t.Run("no actor", func(t *testing.T) {
		_, err := svc.Me(ctx)
		if !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("after login", func(t *testing.T) {
		if _, err := svc.Login(ctx, "ethan.carter@example.com", "pw"); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		user, err := svc.Me(ctx)
		if err != nil {
			t.Fatalf("Me() error = %v", err)
		}
		if user.ID != 3 {
			t.Errorf("User.ID = %d, want 3", user.ID)
		}
	})
}

func TestService_DownloadDocument_FallenBack(t *testing.T) {
	remote := &fakeRemote{err: &StatusError{Status: 500}}
	store := &fakeStore{}
	svc := newTestService(remote, store, false)

	var buf testWriter
	if err := svc.DownloadDocument(context.Background(), 9, &buf); err != nil {
		t.Fatalf("DownloadDocument() error = %v", err)
	}
	want := "Mock file for Simulated\n\nType: Report\nVersion: 2\n"
	if string(buf) != want {
		t.Errorf("content = %q, want %q", string(buf), want)
	}
}

type testWriter []byte

func (w *testWriter) Write(p []byte) (int, error) {
	*w = append(*w, p...)
	return len(p), nil
}

func TestQualifiesForFallback(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport error", &TransportError{Op: "x", Err: errors.New("refused")}, true},
		{"wrapped transport error", errTagged{&TransportError{Op: "x", Err: errors.New("refused")}}, true},
		{"401", &StatusError{Status: 401}, true},
		{"500", &StatusError{Status: 500}, true},
		{"503", &StatusError{Status: 503}, true},
		{"404", &StatusError{Status: 404}, false},
		{"409", &StatusError{Status: 409}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := qualifiesForFallback(tt.err); got != tt.want {
				t.Errorf("qualifiesForFallback(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type errTagged struct{ err error }

func (e errTagged) Error() string { return "tagged: " + e.err.Error() }
func (e errTagged) Unwrap() error { return e.err }
