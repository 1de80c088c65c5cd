// Package history keeps the bounded record of processed utterances.
package history

import (
	"VaniAssistant/pkg/kvstore"
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	DefaultCapacity = 50
	storageKey      = "vani:history"
)

type Entry struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	Response  string    `json:"response"`
	Action    string    `json:"action,omitempty"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is a FIFO of at most Capacity entries. Appends go straight to the store
// as a single atomic add, so concurrent writers cannot lose each other's
// entries.
type Log struct {
	store    kvstore.Store
	capacity int
}

func New(store kvstore.Store, capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{store: store, capacity: capacity}
}

func (l *Log) Capacity() int {
	return l.capacity
}

func (l *Log) Append(ctx context.Context, entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	raw, err := jsoniter.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}

	return l.store.Append(ctx, storageKey, raw, l.capacity)
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	raw, err := l.store.List(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var entry Entry
		if err := jsoniter.Unmarshal(raw[i], &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) == limit {
			break
		}
	}

	return entries, nil
}

func (l *Log) Clear(ctx context.Context) error {
	return l.store.Delete(ctx, storageKey)
}
