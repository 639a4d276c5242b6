package store

import (
	"context"
	"time"

	"sentient-journal/internal/model"
)

// Store is the backend-agnostic persistence contract. The implementation is
// chosen once at process start and injected; business logic never branches
// on the backend.
type Store interface {
	// CreateUser registers a new account. Fails with ErrConflict when the
	// email is already registered.
	CreateUser(ctx context.Context, email, password string) (int, error)

	// Authenticate verifies credentials. Fails with ErrInvalidCredentials on
	// any mismatch, without revealing whether the email exists.
	Authenticate(ctx context.Context, email, password string) (*model.User, error)

	CreateEntry(ctx context.Context, userID int, content string, a model.Analysis) (*model.JournalEntry, error)

	// UpdateEntry replaces content and the full analysis in place. Fails with
	// ErrNotFound when no entry with that id is owned by the user.
	UpdateEntry(ctx context.Context, userID, entryID int, content string, a model.Analysis) (*model.JournalEntry, error)

	// DeleteEntry has the same not-found semantics as UpdateEntry.
	DeleteEntry(ctx context.Context, userID, entryID int) error

	// ListEntries returns the user's entries newest first. A zero since
	// means the full history.
	ListEntries(ctx context.Context, userID int, since time.Time) ([]model.JournalEntry, error)

	// SearchEntries applies the ANDed filters, newest first.
	SearchEntries(ctx context.Context, userID int, f model.SearchFilter) ([]model.JournalEntry, error)

	CountEntries(ctx context.Context, userID int) (int64, error)

	// RecentEntries returns up to limit entries, newest first.
	RecentEntries(ctx context.Context, userID, limit int) ([]model.JournalEntry, error)

	Close() error
}
