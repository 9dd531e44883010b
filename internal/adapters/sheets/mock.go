package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MockSyncer stores sheet tabs as JSON files under a local directory. One
// file per spreadsheet/tab pair, named <spreadsheetID>__<tab>.json.
type MockSyncer struct {
	dir string
}

// NewMockSyncer creates a filesystem-backed syncer rooted at dir.
func NewMockSyncer(dir string) *MockSyncer {
	return &MockSyncer{dir: dir}
}

var _ Syncer = (*MockSyncer)(nil)

func (m *MockSyncer) WriteRows(ctx context.Context, spreadsheetID, tabName string, rows []Row) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create mock sheets dir: %w", err)
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sheet rows: %w", err)
	}
	if err := os.WriteFile(m.path(spreadsheetID, tabName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write mock sheet: %w", err)
	}
	return nil
}

func (m *MockSyncer) ReadRows(ctx context.Context, spreadsheetID, tabName string) ([]Row, error) {
	data, err := os.ReadFile(m.path(spreadsheetID, tabName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Row{}, nil
		}
		return nil, fmt.Errorf("failed to read mock sheet: %w", err)
	}
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode mock sheet: %w", err)
	}
	return rows, nil
}

func (m *MockSyncer) path(spreadsheetID, tabName string) string {
	sanitize := func(s string) string {
		return strings.Map(func(r rune) rune {
			switch r {
			case '/', '\\', ':', ' ':
				return '_'
			}
			return r
		}, s)
	}
	return filepath.Join(m.dir, sanitize(spreadsheetID)+"__"+sanitize(tabName)+".json")
}
