package repository

import (
	"context"
	"fmt"
	"sync"

	"repurpose/internal/jsonfile"
	"repurpose/internal/model"
)

type fileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository stores every user's library in one JSON document
// mapping user id to entries
func NewFileRepository(path string) LibraryRepository {
	return &fileRepository{path: path}
}

func (r *fileRepository) load() (map[string][]model.LibraryEntry, error) {
	lib := map[string][]model.LibraryEntry{}
	if err := jsonfile.Load(r.path, &lib); err != nil {
		return nil, err
	}
	return lib, nil
}

func (r *fileRepository) Append(ctx context.Context, userID string, entry *model.LibraryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lib, err := r.load()
	if err != nil {
		return err
	}
	lib[userID] = append(lib[userID], *entry)
	if err := jsonfile.Save(r.path, lib); err != nil {
		return fmt.Errorf("failed to save library: %w", err)
	}
	return nil
}

func (r *fileRepository) ListByUser(ctx context.Context, userID string) ([]model.LibraryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lib, err := r.load()
	if err != nil {
		return nil, err
	}
	entries := lib[userID]
	if entries == nil {
		entries = []model.LibraryEntry{}
	}
	return entries, nil
}

func (r *fileRepository) GetByID(ctx context.Context, userID, id string) (*model.LibraryEntry, error) {
	entries, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lib, err := r.load()
	if err != nil {
		return err
	}
	entries := lib[userID]
	for i := range entries {
		if entries[i].ID == id {
			lib[userID] = append(entries[:i:i], entries[i+1:]...)
			if err := jsonfile.Save(r.path, lib); err != nil {
				return fmt.Errorf("failed to save library: %w", err)
			}
			return nil
		}
	}
	return ErrNotFound
}
