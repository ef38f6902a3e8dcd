package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/wedding-message-vault/internal/auth"
	"github.com/wedding-message-vault/internal/models"
	"github.com/wedding-message-vault/internal/repository"
)

// SurveyService defines the interface for submission ingestion
type SurveyService interface {
	Submit(ctx context.Context, raw map[string]any) (*models.Entry, error)
}

// VaultService defines the interface for the password-gated read,
// export, and delete operations over the entry set
type VaultService interface {
	List(ctx context.Context) ([]models.Entry, error)
	Summary(ctx context.Context) (models.Summary, error)
	Decks(ctx context.Context, filterCategory string) ([]models.Deck, error)
	WriteWorkbook(ctx context.Context, w io.Writer) error
	WriteNDJSON(ctx context.Context, w io.Writer) error
	DeleteAll(ctx context.Context) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Services holds all service interfaces plus the auth manager
type Services struct {
	Survey SurveyService
	Vault  VaultService
	Auth   *auth.Manager
}

// NewServices creates all services
func NewServices(repo repository.EntryRepository, authMgr *auth.Manager, log zerolog.Logger) *Services {
	return &Services{
		Survey: newSurveyService(repo, log),
		Vault:  newVaultService(repo, log),
		Auth:   authMgr,
	}
}
