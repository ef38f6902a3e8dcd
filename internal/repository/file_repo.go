package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wedding-message-vault/internal/models"
)

// fileRepo is the flat-file implementation of EntryRepository. Entries
// are stored one JSON object per line in an append-only file. Lines
// that fail to parse are skipped on read and preserved on rewrite, so
// partial corruption never takes down listing.
//
// All operations hold the repository mutex: single-item delete is a
// read-filter-rewrite cycle and would otherwise lose concurrent appends.
type fileRepo struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

// NewFileRepo creates a file-backed entry repository, creating the
// results file and its directory if absent.
func NewFileRepo(path string, log zerolog.Logger) (EntryRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	f.Close()

	return &fileRepo{
		path: path,
		log:  log.With().Str("component", "filestore").Logger(),
	}, nil
}

// Append writes one entry as a single JSON line
func (r *fileRepo) Append(ctx context.Context, entry *models.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open results file: %w", err)
	}
	defer f.Close()

	// One Write call per line keeps concurrent appends whole
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	return nil
}

// List reads all entries from the file, newest first
func (r *fileRepo) List(ctx context.Context) ([]models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, _, err := r.read()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// DeleteByID rewrites the file without the matching line and reports
// whether a match existed
func (r *fileRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, lines, err := r.read()
	if err != nil {
		return false, err
	}

	kept := make([]string, 0, len(lines))
	removed := false
	for _, line := range lines {
		var entry models.Entry
		if err := json.Unmarshal([]byte(line), &entry); err == nil && entry.ID == id {
			removed = true
			continue
		}
		kept = append(kept, line)
	}

	if !removed {
		return false, nil
	}
	if err := r.rewrite(kept); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAll truncates the results file
func (r *fileRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rewrite(nil)
}

// Count returns the number of well-formed entries
func (r *fileRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, _, err := r.read()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// read parses the results file, returning the well-formed entries and
// every raw non-empty line. Callers must hold the mutex.
func (r *fileRepo) read() ([]models.Entry, []string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Entry{}, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer f.Close()

	entries := []models.Entry{}
	var lines []string
	skipped := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)

		var entry models.Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil ||
			entry.ID == "" || entry.Name == "" || entry.CreatedAt.IsZero() {
			skipped++
			continue
		}
		if entry.FirstImpressions == nil {
			entry.FirstImpressions = []string{}
		}
		if entry.MessageTypes == nil {
			entry.MessageTypes = []string{}
		}
		if entry.Contents == nil {
			entry.Contents = map[string]string{}
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read results file: %w", err)
	}

	if skipped > 0 {
		r.log.Warn().Int("skipped", skipped).Msg("Skipped malformed lines in results file")
	}
	return entries, lines, nil
}

// rewrite atomically replaces the results file with the given lines.
// Callers must hold the mutex.
func (r *fileRepo) rewrite(lines []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), "results-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	for _, line := range lines {
		if _, err := tmp.WriteString(line + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write temp file: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace results file: %w", err)
	}
	return nil
}
