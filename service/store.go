package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/pskill9/PreclinicalResearch/config"
	"github.com/pskill9/PreclinicalResearch/model"
)

// RowAppender appends a submission row to a sheet.
type RowAppender interface {
	AppendRow(ctx context.Context, row *model.Row) error
}

// RowStore is the in-memory submissions sheet. It keeps at most maxRows
// rows, dropping the oldest first.
type RowStore struct {
	rows    map[string]*model.Row
	mu      sync.RWMutex
	maxRows int // 0 = unlimited
}

var (
	globalStore *RowStore
	storeOnce   sync.Once
)

func NewRowStore(maxRows int) *RowStore {
	if maxRows < 0 {
		maxRows = 0
	}
	return &RowStore{
		rows:    make(map[string]*model.Row),
		maxRows: maxRows,
	}
}

// InitRowStore initializes the global row store with configuration
func InitRowStore(cfg *config.StoreConfig) {
	storeOnce.Do(func() {
		globalStore = NewRowStore(cfg.MaxRows)
		slog.Info("row store initialized", "max_rows", globalStore.maxRows)
	})
}

// GetRowStore returns the global row store
func GetRowStore() *RowStore {
	if globalStore == nil {
		globalStore = NewRowStore(1000)
	}
	return globalStore
}

// AppendRow stores row, stamping ReceivedAt when unset.
func (s *RowStore) AppendRow(_ context.Context, row *model.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row.ReceivedAt.IsZero() {
		row.ReceivedAt = time.Now()
	}
	s.rows[row.ID] = row

	s.cleanupIfNeeded()
	return nil
}

func (s *RowStore) Get(id string) *model.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows[id]
}

// List returns the rows in the order they were received.
func (s *RowStore) List() []*model.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

// Count returns the number of rows in the store
func (s *RowStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func (s *RowStore) sortedLocked() []*model.Row {
	rows := make([]*model.Row, 0, len(s.rows))
	for _, r := range s.rows {
		rows = append(rows, r)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ReceivedAt.Before(rows[j].ReceivedAt)
	})
	return rows
}

// cleanupIfNeeded drops the oldest rows beyond maxRows.
// Must be called with lock held
func (s *RowStore) cleanupIfNeeded() {
	if s.maxRows <= 0 || len(s.rows) <= s.maxRows {
		return
	}

	rows := s.sortedLocked()
	removeCount := len(rows) - s.maxRows
	for i := 0; i < removeCount; i++ {
		slog.Info("dropping old submission row",
			"submission_id", rows[i].ID,
			"received_at", rows[i].ReceivedAt,
		)
		delete(s.rows, rows[i].ID)
	}
}
