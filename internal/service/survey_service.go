package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/wedding-message-vault/internal/models"
	"github.com/wedding-message-vault/internal/repository"
	"github.com/wedding-message-vault/internal/survey"
)

// surveyService is the concrete implementation of SurveyService
type surveyService struct {
	repo repository.EntryRepository
	log  zerolog.Logger
}

func newSurveyService(repo repository.EntryRepository, log zerolog.Logger) *surveyService {
	return &surveyService{
		repo: repo,
		log:  log.With().Str("service", "survey").Logger(),
	}
}

// Submit normalizes a raw submission payload and appends the canonical
// entry to the store
func (s *surveyService) Submit(ctx context.Context, raw map[string]any) (*models.Entry, error) {
	entry, err := survey.Normalize(raw, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("entry_id", entry.ID).Msg("Failed to append entry")
		return nil, err
	}

	s.log.Info().
		Str("entry_id", entry.ID).
		Int("categories", len(entry.Contents)).
		Msg("Entry saved")
	return entry, nil
}
