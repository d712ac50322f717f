// Package users implements signup and login on top of a user repository.
package users

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"repurpose/internal/auth"
	"repurpose/internal/model"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrMissingCredentials = errors.New("email and password required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthResult is returned by Signup and Login
type AuthResult struct {
	User  model.PublicUser `json:"user"`
	Token string           `json:"token"`
}

type Service struct {
	repo                  Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	now                   func() time.Time
}

func NewService(repo Repository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:                  repo,
		jwtSecret:             []byte(jwtSecret),
		tokenValidityDuration: tokenTTL,
		now:                   time.Now,
	}
}

// IsValidationError reports whether err comes from bad input rather than a
// storage failure
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrEmailExists)
}

func (s *Service) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:        "user_" + uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	log.WithField("user", user.ID).Infof("[Auth] New user created: %s", email)
	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !checkPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	log.WithField("user", user.ID).Infof("[Auth] User logged in: %s", email)
	return s.issue(user)
}

func (s *Service) issue(user *model.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}

// checkPassword accepts bcrypt hashes and, for records written before hashing
// was introduced, the clear-text password itself
func checkPassword(stored, candidate string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
