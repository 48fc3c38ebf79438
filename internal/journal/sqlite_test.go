package journal

import (
	"path/filepath"
	"testing"

	"dms-go/internal/config"
)

// newTestJournal creates an in-memory journal with schema applied.
func newTestJournal(t *testing.T) *SQLiteJournal {
	t.Helper()

	j, err := NewSQLiteJournal(":memory:")
	if err != nil {
		t.Fatalf("failed to create journal: %v", err)
	}

	t.Cleanup(func() {
		j.Close()
	})

	return j
}

func TestSQLiteJournal_CreateOperation(t *testing.T) {
	j := newTestJournal(t)

	op, err := j.CreateOperation("20260301T120000Z", "UploadDocument", "Quarterly Budget")
	if err != nil {
		t.Fatalf("CreateOperation() error = %v", err)
	}

	if op.ID == 0 {
		t.Error("ID = 0, want auto-increment ID")
	}
	if op.OpID != "20260301T120000Z" {
		t.Errorf("OpID = %q, want %q", op.OpID, "20260301T120000Z")
	}
	if op.Status != StatusStarted {
		t.Errorf("Status = %q, want %q", op.Status, StatusStarted)
	}
	if op.FinishedAt.Valid {
		t.Error("FinishedAt set on a new operation")
	}
}

func TestSQLiteJournal_FinishOperation(t *testing.T) {
	j := newTestJournal(t)

	op, err := j.CreateOperation("op-1", "ApproveRequest", "701")
	if err != nil {
		t.Fatalf("CreateOperation() error = %v", err)
	}

	if err := j.FinishOperation(op.ID, StatusSuccess); err != nil {
		t.Fatalf("FinishOperation() error = %v", err)
	}

	ops, err := j.ListOperations(10)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("len(ops) = %d, want 1", len(ops))
	}
	if ops[0].Status != StatusSuccess {
		t.Errorf("Status = %q, want %q", ops[0].Status, StatusSuccess)
	}
	if !ops[0].FinishedAt.Valid {
		t.Error("FinishedAt not set after FinishOperation")
	}
}

func TestSQLiteJournal_ListOperations(t *testing.T) {
	j := newTestJournal(t)

	for _, name := range []string{"Login", "UploadDocument", "RequestReplace"} {
		if _, err := j.CreateOperation("op", name, ""); err != nil {
			t.Fatalf("CreateOperation(%s) error = %v", name, err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		ops, err := j.ListOperations(10)
		if err != nil {
			t.Fatalf("ListOperations() error = %v", err)
		}
		if len(ops) != 3 {
			t.Fatalf("len(ops) = %d, want 3", len(ops))
		}
		if ops[0].Operation != "RequestReplace" {
			t.Errorf("ops[0].Operation = %q, want RequestReplace", ops[0].Operation)
		}
		if ops[2].Operation != "Login" {
			t.Errorf("ops[2].Operation = %q, want Login", ops[2].Operation)
		}
	})

	t.Run("limit", func(t *testing.T) {
		ops, err := j.ListOperations(2)
		if err != nil {
			t.Fatalf("ListOperations() error = %v", err)
		}
		if len(ops) != 2 {
			t.Fatalf("len(ops) = %d, want 2", len(ops))
		}
	})
}

func TestSQLiteJournal_CheckMigrations(t *testing.T) {
	j := newTestJournal(t)

	if err := j.CheckMigrations(); err != nil {
		t.Errorf("CheckMigrations() error = %v, want nil after NewSQLiteJournal", err)
	}
}

func TestNewJournalFromConfig(t *testing.T) {
	t.Run("sqlite creates the data dir and db file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")

		j, err := NewJournalFromConfig(config.JournalConfig{Type: "sqlite", DataDir: dir})
		if err != nil {
			t.Fatalf("NewJournalFromConfig() error = %v", err)
		}
		defer j.Close()

		if _, err := j.CreateOperation("op", "Login", ""); err != nil {
			t.Fatalf("CreateOperation() error = %v", err)
		}
	})

	t.Run("sqlite requires data_dir", func(t *testing.T) {
		if _, err := NewJournalFromConfig(config.JournalConfig{Type: "sqlite"}); err == nil {
			t.Fatal("NewJournalFromConfig() error = nil, want error")
		}
	})

	t.Run("memory", func(t *testing.T) {
		j, err := NewJournalFromConfig(config.JournalConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewJournalFromConfig() error = %v", err)
		}
		defer j.Close()
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := NewJournalFromConfig(config.JournalConfig{Type: "postgres"}); err == nil {
			t.Fatal("NewJournalFromConfig() error = nil, want error")
		}
	})
}
