package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/boardkit/go-board-backend/internal/domain"
	"github.com/boardkit/go-board-backend/internal/store"
)

func newTestService(t *testing.T) *MessageService {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "messages.json"), zerolog.Nop())
	return NewMessageService(st)
}

// newBrokenService returns a service whose store cannot write: the backing
// file's parent "directory" is a regular file.
func newBrokenService(t *testing.T) *MessageService {
	t.Helper()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed blocker: %v", err)
	}
	return NewMessageService(store.New(filepath.Join(blocker, "messages.json"), zerolog.Nop()))
}

func TestCreate_TrimsAndStores(t *testing.T) {
	svc := newTestService(t)

	msg, err := svc.Create("  hello board \n")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if msg.Text != "hello board" {
		t.Fatalf("text not trimmed: %q", msg.Text)
	}
	if msg.ID == "" || msg.Timestamp == "" {
		t.Fatalf("missing id/timestamp: %+v", msg)
	}

	got := svc.List()
	if len(got) != 1 || got[0] != msg {
		t.Fatalf("list after create: %+v", got)
	}
}

func TestCreate_RejectsBlankText(t *testing.T) {
	svc := newTestService(t)

	for _, text := range []string{"", "   ", "\t\n "} {
		if _, err := svc.Create(text); !errors.Is(err, ErrEmptyText) {
			t.Fatalf("text %q: got %v want ErrEmptyText", text, err)
		}
	}
	if got := svc.List(); len(got) != 0 {
		t.Fatalf("store must stay unchanged, got %d messages", len(got))
	}
}

func TestCreate_StorageFailure(t *testing.T) {
	svc := newBrokenService(t)

	_, err := svc.Create("hello")
	if err == nil {
		t.Fatal("expected storage failure")
	}
	if !IsStorage(err) {
		t.Fatalf("expected StorageError, got %T: %v", err, err)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	msg, _ := svc.Create("victim")

	if err := svc.Delete("unknown"); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("unknown id: got %v want ErrMessageNotFound", err)
	}
	if got := svc.List(); len(got) != 1 {
		t.Fatalf("failed delete must leave collection unchanged, got %d", len(got))
	}

	if err := svc.Delete(msg.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := svc.List(); len(got) != 0 {
		t.Fatalf("expected empty, got %d", len(got))
	}
}

func TestClear_SucceedsWhenAlreadyEmpty(t *testing.T) {
	svc := newTestService(t)
	svc.Create("a")

	if err := svc.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := svc.Clear(); err != nil {
		t.Fatalf("clear on empty board: %v", err)
	}
}

func TestDeleteOlderThan_ValidatesHours(t *testing.T) {
	svc := newTestService(t)

	// Zero is rejected on purpose, matching the original input check.
	for _, hours := range []float64{0, -1, -0.5} {
		if _, err := svc.DeleteOlderThan(hours); !errors.Is(err, ErrInvalidHours) {
			t.Fatalf("hours=%v: got %v want ErrInvalidHours", hours, err)
		}
	}
}

func TestDeleteOlderThan_RemovesOnlyExpired(t *testing.T) {
	svc := newTestService(t)
	now := time.Now().UTC()
	seed := []domain.Message{
		{ID: "1", Text: "26h", Timestamp: domain.FormatTimestamp(now.Add(-26 * time.Hour))},
		{ID: "2", Text: "2h", Timestamp: domain.FormatTimestamp(now.Add(-2 * time.Hour))},
		{ID: "3", Text: "now", Timestamp: domain.FormatTimestamp(now)},
	}
	if err := svc.Store.Save(seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	removed, err := svc.DeleteOlderThan(24)
	if err != nil {
		t.Fatalf("delete-older-than: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed: got %d want 1", removed)
	}
	got := svc.List()
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "3" {
		t.Fatalf("wrong survivors: %+v", got)
	}
}

func TestStorageError_WrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Op: "save", Err: cause}

	if !errors.Is(err, cause) {
		t.Fatal("Unwrap must expose the cause")
	}
	if err.Error() == "" {
		t.Fatal("empty error string")
	}
	if !IsStorage(err) {
		t.Fatal("IsStorage must match")
	}
	if IsStorage(cause) {
		t.Fatal("IsStorage must not match a bare error")
	}
}
