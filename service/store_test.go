package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pskill9/PreclinicalResearch/config"
	"github.com/pskill9/PreclinicalResearch/model"
)

func TestRowStoreAppendAndGet(t *testing.T) {
	store := NewRowStore(100)

	row := &model.Row{ID: "row-1", Submission: testSubmission}
	if err := store.AppendRow(context.Background(), row); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	retrieved := store.Get("row-1")
	if retrieved == nil {
		t.Fatal("Expected to retrieve row")
	}
	if retrieved.Submission.Email != "jo@x.com" {
		t.Errorf("Expected email jo@x.com, got %s", retrieved.Submission.Email)
	}
	if retrieved.ReceivedAt.IsZero() {
		t.Error("Expected ReceivedAt to be stamped")
	}

	if store.Get("non-existent") != nil {
		t.Error("Expected nil for non-existent row")
	}
}

func TestRowStoreKeepsReceivedAt(t *testing.T) {
	store := NewRowStore(0)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	store.AppendRow(context.Background(), &model.Row{ID: "r", ReceivedAt: at})
	if !store.Get("r").ReceivedAt.Equal(at) {
		t.Errorf("Expected ReceivedAt preserved, got %v", store.Get("r").ReceivedAt)
	}
}

func TestRowStoreListOrder(t *testing.T) {
	store := NewRowStore(0)
	base := time.Now()

	store.AppendRow(context.Background(), &model.Row{ID: "b", ReceivedAt: base.Add(2 * time.Second)})
	store.AppendRow(context.Background(), &model.Row{ID: "a", ReceivedAt: base.Add(time.Second)})
	store.AppendRow(context.Background(), &model.Row{ID: "c", ReceivedAt: base.Add(3 * time.Second)})

	rows := store.List()
	got := ""
	for _, r := range rows {
		got += r.ID
	}
	if got != "abc" {
		t.Errorf("Expected rows in received order abc, got %s", got)
	}
}

func TestRowStoreAutoCleanup(t *testing.T) {
	store := NewRowStore(3)
	base := time.Now()

	for i := 0; i < 5; i++ {
		store.AppendRow(context.Background(), &model.Row{
			ID:         fmt.Sprintf("row-%d", i),
			ReceivedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	if store.Count() != 3 {
		t.Errorf("Expected 3 rows after cleanup, got %d", store.Count())
	}
	if store.Get("row-0") != nil || store.Get("row-1") != nil {
		t.Error("Expected the two oldest rows to be removed")
	}
	if store.Get("row-4") == nil {
		t.Error("Expected newest row to be kept")
	}
}

func TestRowStoreUnlimited(t *testing.T) {
	store := NewRowStore(0)

	for i := 0; i < 10; i++ {
		store.AppendRow(context.Background(), &model.Row{ID: fmt.Sprintf("row-%d", i)})
	}

	if store.Count() != 10 {
		t.Errorf("Expected 10 rows, got %d", store.Count())
	}
}

func TestNewRowStoreNegativeMax(t *testing.T) {
	if store := NewRowStore(-5); store.maxRows != 0 {
		t.Errorf("Expected negative max to mean unlimited, got %d", store.maxRows)
	}
}

func TestGetRowStore(t *testing.T) {
	InitRowStore(&config.StoreConfig{MaxRows: 50})
	store := GetRowStore()
	if store == nil {
		t.Fatal("Expected non-nil store")
	}
	if store != GetRowStore() {
		t.Error("Expected the same global store on every call")
	}
}

func TestRowStoreImplementsRowAppender(t *testing.T) {
	var _ RowAppender = NewRowStore(1)
}
