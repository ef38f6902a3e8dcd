package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/wedding-message-vault/internal/models"
	"github.com/wedding-message-vault/internal/repository"
	"github.com/wedding-message-vault/internal/vault"
)

// vaultService is the concrete implementation of VaultService
type vaultService struct {
	repo repository.EntryRepository
	log  zerolog.Logger
}

func newVaultService(repo repository.EntryRepository, log zerolog.Logger) *vaultService {
	return &vaultService{
		repo: repo,
		log:  log.With().Str("service", "vault").Logger(),
	}
}

// List returns all entries, newest first
func (s *vaultService) List(ctx context.Context) ([]models.Entry, error) {
	return s.repo.List(ctx)
}

// Summary aggregates impression tags over the current entry set
func (s *vaultService) Summary(ctx context.Context) (models.Summary, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return models.Summary{}, err
	}
	return vault.Summarize(entries), nil
}

// Decks projects the current entry set into per-person decks. The
// projection is recomputed on every call so it always reflects deletes
// and inserts.
func (s *vaultService) Decks(ctx context.Context, filterCategory string) ([]models.Deck, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return vault.Project(entries, filterCategory), nil
}

// workbook layout: one row per entry, array fields joined by ", ",
// contents serialized as JSON text
var workbookColumns = []struct {
	header string
	width  float64
}{
	{"id", 28},
	{"name", 16},
	{"createdAt", 22},
	{"firstImpressions", 30},
	{"messageTypes", 30},
	{"contents_json", 60},
}

// WriteWorkbook writes all entries as an xlsx workbook
func (s *vaultService) WriteWorkbook(ctx context.Context, w io.Writer) error {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "vault"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := make([]interface{}, len(workbookColumns))
	for i, col := range workbookColumns {
		headers[i] = col.header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, col.width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "F1", style)
	}

	for i, entry := range entries {
		contents, err := json.Marshal(entry.Contents)
		if err != nil {
			return fmt.Errorf("failed to encode contents for entry %s: %w", entry.ID, err)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			entry.ID,
			entry.Name,
			entry.CreatedAt.UTC().Format(models.ExportTimeFormat),
			strings.Join(entry.FirstImpressions, ", "),
			strings.Join(entry.MessageTypes, ", "),
			string(contents),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.log.Info().Int("count", len(entries)).Msg("Workbook export completed")
	return nil
}

// WriteNDJSON streams all entries as one JSON object per line
func (s *vaultService) WriteNDJSON(ctx context.Context, w io.Writer) error {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
	}

	s.log.Info().Int("count", len(entries)).Msg("NDJSON export completed")
	return nil
}

// DeleteAll removes every entry
func (s *vaultService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		s.log.Error().Err(err).Msg("Failed to delete all entries")
		return err
	}
	s.log.Info().Msg("All entries deleted")
	return nil
}

// Delete removes one entry by id, reporting whether it existed
func (s *vaultService) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("entry_id", id).Msg("Failed to delete entry")
		return false, err
	}
	s.log.Info().Str("entry_id", id).Bool("removed", removed).Msg("Entry delete processed")
	return removed, nil
}

// Count returns the total number of entries
func (s *vaultService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
