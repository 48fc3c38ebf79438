package credentials

import (
	"path/filepath"
	"testing"

	"dms-go/internal/config"
	"dms-go/internal/model"
)

func configFor(typ, dir string) config.CredentialsConfig {
	return config.CredentialsConfig{
		Type:          typ,
		TokenPath:     filepath.Join(dir, "token"),
		RecipientPath: filepath.Join(dir, "keys", "dms.pub"),
		IdentityPath:  filepath.Join(dir, "keys", "dms.key"),
	}
}

func testSession() model.Session {
	return model.Session{
		Token: "jwt-abc",
		User: model.User{
			ID:    2,
			Name:  "Priya Patel",
			Email: "priya.patel@example.com",
			Role:  model.RoleUser,
		},
	}
}

func TestFileStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "token")
	store := NewFileStore(path)

	t.Run("load before save reports no session", func(t *testing.T) {
		_, ok, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if ok {
			t.Error("Load() ok = true, want false")
		}
	})

	t.Run("save then load round trip", func(t *testing.T) {
		want := testSession()
		if err := store.Save(want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, ok, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !ok {
			t.Fatal("Load() ok = false, want true")
		}
		if got.Token != want.Token {
			t.Errorf("Token = %q, want %q", got.Token, want.Token)
		}
		if got.User != want.User {
			t.Errorf("User = %+v, want %+v", got.User, want.User)
		}
	})

	t.Run("clear removes the session", func(t *testing.T) {
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		_, ok, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if ok {
			t.Error("Load() ok = true after Clear, want false")
		}
	})

	t.Run("clearing an absent session is a no-op", func(t *testing.T) {
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
	})
}

func newTestAgeStore(t *testing.T, passphrase string) *AgeStore {
	t.Helper()
	dir := t.TempDir()
	return NewAgeStore(
		filepath.Join(dir, "token"),
		filepath.Join(dir, "keys", "dms.pub"),
		filepath.Join(dir, "keys", "dms.key"),
		func() (string, error) { return passphrase, nil },
	)
}

func TestAgeStore_IsConfigured(t *testing.T) {
	store := newTestAgeStore(t, "test-passphrase")

	if store.IsConfigured() {
		t.Error("IsConfigured() = true before Setup, want false")
	}
	if err := store.Setup("test-passphrase"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if !store.IsConfigured() {
		t.Error("IsConfigured() = false after Setup, want true")
	}
}

func TestAgeStore_SaveLoadClear(t *testing.T) {
	store := newTestAgeStore(t, "test-passphrase")
	if err := store.Setup("test-passphrase"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	t.Run("load before save reports no session", func(t *testing.T) {
		_, ok, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if ok {
			t.Error("Load() ok = true, want false")
		}
	})

	t.Run("round trip decrypts to the same session", func(t *testing.T) {
		want := testSession()
		if err := store.Save(want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, ok, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !ok {
			t.Fatal("Load() ok = false, want true")
		}
		if got.Token != want.Token {
			t.Errorf("Token = %q, want %q", got.Token, want.Token)
		}
		if got.User != want.User {
			t.Errorf("User = %+v, want %+v", got.User, want.User)
		}
	})

	t.Run("clear removes the session but keeps the keys", func(t *testing.T) {
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		_, ok, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if ok {
			t.Error("Load() ok = true after Clear, want false")
		}
		if !store.IsConfigured() {
			t.Error("IsConfigured() = false after Clear, want true")
		}
	})
}

func TestAgeStore_WrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token")
	recipientPath := filepath.Join(dir, "keys", "dms.pub")
	identityPath := filepath.Join(dir, "keys", "dms.key")

	setup := NewAgeStore(tokenPath, recipientPath, identityPath,
		func() (string, error) { return "correct", nil })
	if err := setup.Setup("correct"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := setup.Save(testSession()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	wrong := NewAgeStore(tokenPath, recipientPath, identityPath,
		func() (string, error) { return "wrong", nil })
	if _, _, err := wrong.Load(); err == nil {
		t.Fatal("Load() error = nil with wrong passphrase, want error")
	}
}

func TestNewStoreFromConfig(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		store, err := NewStoreFromConfig(configFor("file", t.TempDir()), nil)
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		if _, ok := store.(*FileStore); !ok {
			t.Errorf("store = %T, want *FileStore", store)
		}
	})

	t.Run("empty type defaults to file", func(t *testing.T) {
		store, err := NewStoreFromConfig(configFor("", t.TempDir()), nil)
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		if _, ok := store.(*FileStore); !ok {
			t.Errorf("store = %T, want *FileStore", store)
		}
	})

	t.Run("age", func(t *testing.T) {
		store, err := NewStoreFromConfig(configFor("age", t.TempDir()), func() (string, error) { return "pw", nil })
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		if _, ok := store.(*AgeStore); !ok {
			t.Errorf("store = %T, want *AgeStore", store)
		}
	})

	t.Run("age without key paths", func(t *testing.T) {
		cfg := configFor("age", t.TempDir())
		cfg.RecipientPath = ""
		if _, err := NewStoreFromConfig(cfg, nil); err == nil {
			t.Fatal("NewStoreFromConfig() error = nil, want error")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := NewStoreFromConfig(configFor("vault", t.TempDir()), nil); err == nil {
			t.Fatal("NewStoreFromConfig() error = nil, want error")
		}
	})
}
