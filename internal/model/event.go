// Package model defines the event table and the static configuration
// types the analytics engine consumes.
package model

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

// Event is one purchase/review row: a single user-brand-product
// interaction. Option, Content and SkinInfo are optional in the source
// data; loaders coerce absent values to the empty string before the
// table is built.
type Event struct {
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"date"`
	Brand     string    `json:"brand"`
	GoodsName string    `json:"goods_name"`
	Option    string    `json:"option,omitempty"`
	Content   string    `json:"content,omitempty"`
	SkinInfo  string    `json:"skin_info,omitempty"`
}

// EventTable is an immutable collection of events. All derived tables
// are pure functions of an EventTable plus static configuration; the
// table's fingerprint keys the engine's memoization cache.
type EventTable struct {
	events []Event

	fpOnce sync.Once
	fp     uint64

	maxOnce sync.Once
	maxDate time.Time
}

// NewEventTable wraps events in a table. The slice is owned by the
// table afterwards; callers must not mutate it.
func NewEventTable(events []Event) *EventTable {
	return &EventTable{events: events}
}

// Events returns the underlying rows. Read-only.
func (t *EventTable) Events() []Event {
	return t.events
}

// Len returns the number of rows.
func (t *EventTable) Len() int {
	return len(t.events)
}

// Empty reports whether the table holds no rows.
func (t *EventTable) Empty() bool {
	return len(t.events) == 0
}

// Fingerprint returns an FNV-64a hash over all rows. Computed once per
// table; two tables with identical rows in identical order share a
// fingerprint.
func (t *EventTable) Fingerprint() uint64 {
	t.fpOnce.Do(func() {
		h := fnv.New64a()
		for _, e := range t.events {
			fmt.Fprintf(h, "%s\x1f%d\x1f%s\x1f%s\x1f%s\x1f%s\x1f%s\x1e",
				e.UserID, e.Date.UnixNano(), e.Brand, e.GoodsName,
				e.Option, e.Content, e.SkinInfo)
		}
		t.fp = h.Sum64()
	})
	return t.fp
}

// MaxDate returns the latest event date in the table, the analysis
// cutoff for recency computations. Zero time for an empty table.
func (t *EventTable) MaxDate() time.Time {
	t.maxOnce.Do(func() {
		for _, e := range t.events {
			if e.Date.After(t.maxDate) {
				t.maxDate = e.Date
			}
		}
	})
	return t.maxDate
}
