package mocks

import (
	"context"
	"sort"

	"github.com/wedding-message-vault/internal/models"
)

// MockEntryRepository is an in-memory implementation of EntryRepository
type MockEntryRepository struct {
	Entries     []models.Entry
	AppendError error
	ListError   error
	DeleteError error
	AppendCalls int
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Append(ctx context.Context, entry *models.Entry) error {
	m.AppendCalls++
	if m.AppendError != nil {
		return m.AppendError
	}
	m.Entries = append(m.Entries, *entry)
	return nil
}

func (m *MockEntryRepository) List(ctx context.Context) ([]models.Entry, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]models.Entry, len(m.Entries))
	copy(out, m.Entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockEntryRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	if m.DeleteError != nil {
		return false, m.DeleteError
	}
	for i, e := range m.Entries {
		if e.ID == id {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MockEntryRepository) DeleteAll(ctx context.Context) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.Entries = nil
	return nil
}

func (m *MockEntryRepository) Count(ctx context.Context) (int, error) {
	if m.ListError != nil {
		return 0, m.ListError
	}
	return len(m.Entries), nil
}
