package users

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"repurpose/internal/jsonfile"
	"repurpose/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

// Repository stores accounts keyed by email
type Repository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type fileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository keeps all users in one JSON document mapping email to user
func NewFileRepository(path string) Repository {
	return &fileRepository{path: path}
}

func (r *fileRepository) load() (map[string]model.User, error) {
	users := map[string]model.User{}
	if err := jsonfile.Load(r.path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create fails with ErrEmailExists when the email is taken
func (r *fileRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := users[user.Email]; ok {
		return ErrEmailExists
	}
	users[user.Email] = *user
	if err := jsonfile.Save(r.path, users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

func (r *fileRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	user, ok := users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
