package repository

import (
	"context"

	"github.com/wedding-message-vault/internal/models"
)

// EntryRepository defines the interface for entry data operations.
// Entries are insert-only: they are appended, listed, and deleted,
// never updated in place.
type EntryRepository interface {
	Append(ctx context.Context, entry *models.Entry) error
	List(ctx context.Context) ([]models.Entry, error) // newest first
	DeleteByID(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}
