package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/wedding-message-vault/internal/database"
	"github.com/wedding-message-vault/internal/models"
)

// entryRepo is the PostgreSQL implementation of EntryRepository
type entryRepo struct {
	db *database.DB
}

// NewEntryRepo creates a new postgres-backed entry repository
func NewEntryRepo(db *database.DB) EntryRepository {
	return &entryRepo{db: db}
}

// Append inserts a new entry
func (r *entryRepo) Append(ctx context.Context, entry *models.Entry) error {
	contents, err := json.Marshal(entry.Contents)
	if err != nil {
		return fmt.Errorf("failed to encode contents: %w", err)
	}

	query := `
		INSERT INTO entries (id, name, first_impressions, message_types, contents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.Name,
		pq.Array(entry.FirstImpressions), pq.Array(entry.MessageTypes),
		contents, entry.CreatedAt,
	)
	return err
}

// List retrieves all entries, newest first
func (r *entryRepo) List(ctx context.Context) ([]models.Entry, error) {
	query := `
		SELECT id, name, first_impressions, message_types, contents, created_at
		FROM entries
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var entry models.Entry
		var contents []byte
		err := rows.Scan(
			&entry.ID, &entry.Name,
			pq.Array(&entry.FirstImpressions), pq.Array(&entry.MessageTypes),
			&contents, &entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(contents, &entry.Contents); err != nil {
			return nil, fmt.Errorf("failed to decode contents for entry %s: %w", entry.ID, err)
		}
		if entry.FirstImpressions == nil {
			entry.FirstImpressions = []string{}
		}
		if entry.MessageTypes == nil {
			entry.MessageTypes = []string{}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteByID removes one entry and reports whether a row existed.
// Deleting an absent id is not an error; deletion is idempotent.
func (r *entryRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM entries WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteAll removes every entry unconditionally
func (r *entryRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM entries")
	return err
}

// Count returns the total number of entries
func (r *entryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}
