package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/glowlab/retention-cli/internal/model"
)

// AhaMoment cross-tabulates cross-category purchase signals against
// loyalty to the hero product. Loyal users bought the hero product at
// least twice; churned users bought exactly once and have been silent
// longer than the configured gap. One-time buyers inside the gap are
// still warm and excluded. The remaining users' non-core purchase text
// is matched against the lifestyle tag dictionary and each tag's
// prevalence is compared between the two groups.
func (e *Engine) AhaMoment() model.AhaResult {
	v := e.memoized("aha", func() any {
		return e.computeAhaMoment()
	})
	return v.(model.AhaResult)
}

func (e *Engine) computeAhaMoment() model.AhaResult {
	if e.table.Empty() {
		return model.AhaResult{}
	}

	// Hero subset and per-user summary.
	type summary struct {
		count int
		last  time.Time
	}
	users := make(map[string]*summary)
	for _, ev := range e.table.Events() {
		if !e.cfg.Hero.Match(ev.Brand, ev.GoodsName) {
			continue
		}
		s := users[ev.UserID]
		if s == nil {
			s = &summary{}
			users[ev.UserID] = s
		}
		s.count++
		if ev.Date.After(s.last) {
			s.last = ev.Date
		}
	}

	cutoff := e.table.MaxDate()
	gap := e.cfg.ChurnGapDays

	loyal := make(map[string]struct{})
	churn := make(map[string]struct{})
	for id, s := range users {
		switch {
		case s.count >= 2:
			loyal[id] = struct{}{}
		case s.count == 1 && daysBetween(s.last, cutoff) > gap:
			churn[id] = struct{}{}
		}
	}

	result := model.AhaResult{LoyalUsers: len(loyal), ChurnUsers: len(churn)}
	if len(loyal) == 0 || len(churn) == 0 {
		zap.L().Debug("engine: aha skipped, cohort empty",
			zap.Int("loyal", len(loyal)),
			zap.Int("churn", len(churn)),
		)
		return result
	}

	// Cross-category purchase text per relevant user, case-folded.
	// Users without cross-category history keep an empty text and an
	// all-zero tag row: they stay in the denominator.
	texts := make(map[string]*strings.Builder)
	for _, ev := range e.table.Events() {
		_, isLoyal := loyal[ev.UserID]
		_, isChurn := churn[ev.UserID]
		if !isLoyal && !isChurn {
			continue
		}
		if e.cfg.CoreExclusion.Match(ev.Brand) {
			continue
		}
		b := texts[ev.UserID]
		if b == nil {
			b = &strings.Builder{}
			texts[ev.UserID] = b
		}
		b.WriteString(foldText(ev.GoodsName + " " + ev.Option))
		b.WriteString(" ")
	}
	result.CrossBuyers = len(texts)

	// Tag matrix: loyal/churn match counts per tag.
	loyalHits := make([]int, len(e.cfg.Tags))
	churnHits := make([]int, len(e.cfg.Tags))
	for id := range loyal {
		countTagHits(texts[id], e.cfg.Tags, loyalHits)
	}
	for id := range churn {
		countTagHits(texts[id], e.cfg.Tags, churnHits)
	}

	result.Tags = make([]model.TagLift, 0, len(e.cfg.Tags))
	for i, tag := range e.cfg.Tags {
		loyalRate := float64(loyalHits[i]) / float64(len(loyal)) * 100
		churnRate := float64(churnHits[i]) / float64(len(churn)) * 100

		tl := model.TagLift{
			Name:      tag.Name,
			LoyalRate: loyalRate,
			ChurnRate: churnRate,
			Gap:       loyalRate - churnRate,
		}
		if churnRate > 0 {
			tl.Lift = loyalRate / churnRate
			tl.Defined = true
		}
		result.Tags = append(result.Tags, tl)
	}

	sort.SliceStable(result.Tags, func(i, j int) bool {
		return result.Tags[i].Lift > result.Tags[j].Lift
	})

	if top := result.Tags[0]; top.Lift > 1 {
		result.Recommendation = fmt.Sprintf(
			"Buyers of %s items settle on %s %.2fx more often than churned customers. Feature the product in %s promotions.",
			top.Name, e.cfg.Hero.Name, top.Lift, top.Name,
		)
	}

	zap.L().Info("engine: aha moment computed",
		zap.Int("loyal", result.LoyalUsers),
		zap.Int("churn", result.ChurnUsers),
		zap.Int("cross_buyers", result.CrossBuyers),
	)

	return result
}

func countTagHits(text *strings.Builder, tags model.TagDictionary, hits []int) {
	if text == nil {
		return
	}
	folded := text.String()
	for i, tag := range tags {
		if containsAnyFold(folded, tag.Keywords) {
			hits[i]++
		}
	}
}

// daysBetween returns whole days from a to b, truncated, matching the
// calendar-day semantics of the churn gap threshold.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
