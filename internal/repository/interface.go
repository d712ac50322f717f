package repository

import (
	"context"
	"errors"

	"repurpose/internal/model"
)

// ErrNotFound is returned when an entry does not exist for the user
var ErrNotFound = errors.New("library entry not found")

// LibraryRepository defines the interface for per-user library storage.
// Entries are immutable; there is no update.
type LibraryRepository interface {
	// Append adds an entry to the end of the user's library
	Append(ctx context.Context, userID string, entry *model.LibraryEntry) error

	// ListByUser returns the user's entries, oldest first
	ListByUser(ctx context.Context, userID string) ([]model.LibraryEntry, error)

	// GetByID returns one of the user's entries
	GetByID(ctx context.Context, userID, id string) (*model.LibraryEntry, error)

	// Delete removes one entry; ErrNotFound when the user has no such entry
	Delete(ctx context.Context, userID, id string) error
}
