package engine

import (
	"sort"
	"strings"

	"github.com/glowlab/retention-cli/internal/model"
)

// VoiceGap compares complaint-keyword prevalence between churned
// (exactly one purchase) and loyal (three or more) reviewers of the
// hero product, sorted by gap descending: the complaints that
// over-index among leavers. Empty cohorts yield a nil result.
func (e *Engine) VoiceGap() []model.VoiceRow {
	v := e.memoized("voice", func() any {
		return e.computeVoiceGap()
	})
	return v.([]model.VoiceRow)
}

func (e *Engine) computeVoiceGap() []model.VoiceRow {
	var subset []model.Event
	for _, ev := range e.table.Events() {
		if e.cfg.Hero.Match(ev.Brand, ev.GoodsName) {
			subset = append(subset, ev)
		}
	}
	counts := userCounts(subset)
	churn := userSet(usersWhere(counts, func(n int) bool { return n == 1 }))
	loyal := userSet(usersWhere(counts, func(n int) bool { return n >= 3 }))
	if len(churn) == 0 || len(loyal) == 0 {
		return nil
	}

	churnTexts := foldedTexts(subset, churn)
	loyalTexts := foldedTexts(subset, loyal)

	rows := make([]model.VoiceRow, 0, len(e.cfg.NegativeKWs))
	for _, kw := range e.cfg.NegativeKWs {
		folded := foldText(kw)
		churnRate := containsRate(churnTexts, folded) * 100
		loyalRate := containsRate(loyalTexts, folded) * 100
		rows = append(rows, model.VoiceRow{
			Keyword:   kw,
			ChurnRate: churnRate,
			LoyalRate: loyalRate,
			Gap:       churnRate - loyalRate,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Gap > rows[j].Gap
	})
	return rows
}

func foldedTexts(subset []model.Event, cohort map[string]struct{}) []string {
	var texts []string
	for _, ev := range subset {
		if _, ok := cohort[ev.UserID]; ok {
			texts = append(texts, foldText(ev.Content))
		}
	}
	return texts
}

// containsRate is the fraction of texts containing the folded keyword.
func containsRate(texts []string, folded string) float64 {
	if len(texts) == 0 {
		return 0
	}
	matched := 0
	for _, t := range texts {
		if t != "" && strings.Contains(t, folded) {
			matched++
		}
	}
	return float64(matched) / float64(len(texts))
}
