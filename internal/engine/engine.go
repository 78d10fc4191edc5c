// Package engine implements the behavioral cohort analytics engine:
// frequency-based cohort segmentation, attribute lift, journey edges,
// lifestyle cross-tabulation and basket rankings over an immutable
// event table. Every derived table is a pure function of the table and
// the static dictionaries; empty subsets yield empty results, never
// errors.
package engine

import (
	"sort"

	"github.com/glowlab/retention-cli/internal/model"
)

// Config holds the static dictionaries and thresholds the engine
// computes against. Zero thresholds fall back to the reference values.
type Config struct {
	Targets        []model.BrandTarget
	Patterns       model.PatternSet
	Hero           model.HeroProduct
	Tags           model.TagDictionary
	CoreExclusion  model.AttributePattern
	NegativeKWs    []string
	Consolidations []model.Consolidation

	ChurnGapDays int
	FlowTopN     int
	DrillTopN    int
	BasketTopN   int
	ProductTopN  int
}

func (c Config) withDefaults() Config {
	if c.ChurnGapDays == 0 {
		c.ChurnGapDays = 45
	}
	if c.FlowTopN == 0 {
		c.FlowTopN = 10
	}
	if c.DrillTopN == 0 {
		c.DrillTopN = 5
	}
	if c.BasketTopN == 0 {
		c.BasketTopN = 10
	}
	if c.ProductTopN == 0 {
		c.ProductTopN = 20
	}
	return c
}

// Engine computes derived tables over one event table. It holds no
// mutable state beyond a memoization cache keyed by the table
// fingerprint, so concurrent readers are safe.
type Engine struct {
	table *model.EventTable
	cfg   Config
	memo  *memoCache
}

// New creates an engine over the given table. A nil table is treated
// as empty.
func New(table *model.EventTable, cfg Config) *Engine {
	if table == nil {
		table = model.NewEventTable(nil)
	}
	return &Engine{
		table: table,
		cfg:   cfg.withDefaults(),
		memo:  newMemoCache(),
	}
}

// Table returns the engine's event table.
func (e *Engine) Table() *model.EventTable {
	return e.table
}

// brandSubset returns the rows whose brand matches the target keyword.
func (e *Engine) brandSubset(target model.BrandTarget) []model.Event {
	var subset []model.Event
	for _, ev := range e.table.Events() {
		if target.MatchBrand(ev.Brand) {
			subset = append(subset, ev)
		}
	}
	return subset
}

// userCounts counts events per user.
func userCounts(events []model.Event) map[string]int {
	counts := make(map[string]int, len(events))
	for _, ev := range events {
		counts[ev.UserID]++
	}
	return counts
}

// usersWhere returns the sorted user IDs whose count satisfies pred.
// Sorting makes bucket membership independent of map iteration order.
func usersWhere(counts map[string]int, pred func(int) bool) []string {
	var users []string
	for id, n := range counts {
		if pred(n) {
			users = append(users, id)
		}
	}
	sort.Strings(users)
	return users
}

// userSet converts a sorted ID slice into a membership set.
func userSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// topCounts ranks a frequency map descending, ties broken by key, and
// truncates to n. n <= 0 means unlimited.
func topCounts(freq map[string]int, n int) []model.ProductCount {
	ranked := make([]model.ProductCount, 0, len(freq))
	for name, count := range freq {
		ranked = append(ranked, model.ProductCount{GoodsName: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].GoodsName < ranked[j].GoodsName
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
