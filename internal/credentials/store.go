// Package credentials persists the bearer token (and the user it
// authenticates) between CLI invocations. Two backends exist: a plaintext
// file with tight permissions, and an age-encrypted file for token-at-rest
// protection.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dms-go/internal/model"
)

// Store persists one session. Load reports ok=false when no session is
// held, which is not an error.
type Store interface {
	Save(session model.Session) error
	Load() (session model.Session, ok bool, err error)
	Clear() error
}

// storedSession is the on-disk shape of a session.
type storedSession struct {
	Token     string `json:"token"`
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	UserRole  string `json:"user_role"`
}

func encodeSession(s model.Session) ([]byte, error) {
	data, err := json.Marshal(storedSession{
		Token:     s.Token,
		UserID:    s.User.ID,
		UserName:  s.User.Name,
		UserEmail: s.User.Email,
		UserRole:  string(s.User.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (model.Session, error) {
	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return model.Session{}, fmt.Errorf("decoding session: %w", err)
	}
	return model.Session{
		Token: stored.Token,
		User: model.User{
			ID:    stored.UserID,
			Name:  stored.UserName,
			Email: stored.UserEmail,
			Role:  model.UserRole(stored.UserRole),
		},
	}, nil
}

// FileStore keeps the session in a plaintext file with 0600 permissions.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the session, creating parent directories as needed.
func (f *FileStore) Save(session model.Session) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Load reads the stored session. A missing file means no session.
func (f *FileStore) Load() (model.Session, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Session{}, false, nil
		}
		return model.Session{}, false, fmt.Errorf("reading session file: %w", err)
	}
	sess, err := decodeSession(data)
	if err != nil {
		return model.Session{}, false, err
	}
	return sess, true, nil
}

// Clear removes the stored session. Removing an absent session is a no-op.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
