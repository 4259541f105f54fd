package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Joseda-hg/lazytracker/internal/model"
)

func TestSessionRoundTrip(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load empty session: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected no session at cold start, got %+v", loaded)
	}

	alice := model.User{ID: 1, Username: "alice", DisplayName: "Alice"}
	if err := store.Save(context.Background(), alice); err != nil {
		t.Fatalf("save session: %v", err)
	}

	loaded, err = store.Load(context.Background())
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if loaded == nil || *loaded != alice {
		t.Fatalf("expected %+v, got %+v", alice, loaded)
	}
}

func TestSessionSaveOverwrites(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if err := store.Save(context.Background(), model.User{ID: 1, Username: "alice", DisplayName: "Alice"}); err != nil {
		t.Fatalf("save alice: %v", err)
	}
	bob := model.User{ID: 2, Username: "bob", DisplayName: "Bob"}
	if err := store.Save(context.Background(), bob); err != nil {
		t.Fatalf("save bob: %v", err)
	}

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if loaded == nil || loaded.ID != bob.ID {
		t.Fatalf("expected bob, got %+v", loaded)
	}

	var rows int
	if err := store.DB.QueryRow("SELECT COUNT(*) FROM kv").Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected a single session row, got %d", rows)
	}
}

func TestSessionClear(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if err := store.Save(context.Background(), model.User{ID: 1, Username: "alice", DisplayName: "Alice"}); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("clear session: %v", err)
	}
	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected session to be cleared, got %+v", loaded)
	}

	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
}

func TestSessionLoadSurfacesQueryErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectQuery("SELECT value FROM kv").
		WithArgs(CurrentUserKey).
		WillReturnError(errors.New("disk I/O error"))

	store := NewSessionStore(sqlDB)
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSessionLoadRejectsCorruptPayload(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectQuery("SELECT value FROM kv").
		WithArgs(CurrentUserKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("{not json"))

	store := NewSessionStore(sqlDB)
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func newTestStore(t *testing.T) (*SessionStore, func()) {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return NewSessionStore(db), func() {
		_ = db.Close()
	}
}
