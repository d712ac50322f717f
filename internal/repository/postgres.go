package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"repurpose/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// OpenPostgres connects through the pgx driver and applies migrations
func OpenPostgres(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return db, nil
}

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a library repository on the library_entries table
func NewPostgresRepository(db *sql.DB) LibraryRepository {
	return &postgresRepository{db: db}
}

// Append inserts a new library entry
func (r *postgresRepository) Append(ctx context.Context, userID string, entry *model.LibraryEntry) error {
	query := `
		INSERT INTO library_entries (
			id, user_id, created_at, profession, tone, transcript, generated_content
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	contentJSON, err := json.Marshal(entry.GeneratedContent)
	if err != nil {
		return fmt.Errorf("failed to marshal generated content: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		entry.ID,
		userID,
		entry.Timestamp,
		entry.Profession,
		entry.Tone,
		entry.Transcript,
		contentJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to create library entry: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's entries in insertion order
func (r *postgresRepository) ListByUser(ctx context.Context, userID string) ([]model.LibraryEntry, error) {
	query := `
		SELECT id, created_at, profession, tone, transcript, generated_content
		FROM library_entries
		WHERE user_id = $1
		ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query library entries: %w", err)
	}
	defer rows.Close()

	entries := []model.LibraryEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// GetByID retrieves one entry owned by userID
func (r *postgresRepository) GetByID(ctx context.Context, userID, id string) (*model.LibraryEntry, error) {
	query := `
		SELECT id, created_at, profession, tone, transcript, generated_content
		FROM library_entries
		WHERE user_id = $1 AND id = $2
	`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes one entry owned by userID
func (r *postgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM library_entries WHERE user_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete library entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*model.LibraryEntry, error) {
	var entry model.LibraryEntry
	var contentJSON []byte
	var createdAt time.Time

	err := row.Scan(
		&entry.ID,
		&createdAt,
		&entry.Profession,
		&entry.Tone,
		&entry.Transcript,
		&contentJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan library entry: %w", err)
	}

	entry.Timestamp = createdAt.UTC()
	if err := json.Unmarshal(contentJSON, &entry.GeneratedContent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generated content: %w", err)
	}

	return &entry, nil
}
