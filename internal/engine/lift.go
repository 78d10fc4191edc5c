package engine

import (
	"sort"

	"go.uber.org/zap"

	"github.com/glowlab/retention-cli/internal/model"
)

// Lift compares each attribute's prevalence between repeat (two or
// more purchases) and one-time purchasers of the target brand, ranked
// by ratio descending. When the one-time cohort's prevalence for an
// attribute is 0 the ratio is clamped to 0 with Defined=false rather
// than propagating an infinity. When either cohort is empty the result
// is nil: insufficient data, not a zero signal.
func (e *Engine) Lift(target model.BrandTarget) []model.LiftRecord {
	v := e.memoized("lift:"+target.Name, func() any {
		return e.computeLift(target)
	})
	return v.([]model.LiftRecord)
}

func (e *Engine) computeLift(target model.BrandTarget) []model.LiftRecord {
	subset := e.brandSubset(target)
	cohorts := e.Segment(target)
	if len(cohorts.TwoPlus) == 0 || len(cohorts.One) == 0 {
		zap.L().Debug("engine: lift skipped, cohort empty",
			zap.String("brand", target.Name),
			zap.Int("repeat", len(cohorts.TwoPlus)),
			zap.Int("one_time", len(cohorts.One)),
		)
		return nil
	}

	repTexts := cohortTexts(subset, userSet(cohorts.TwoPlus))
	oneTexts := cohortTexts(subset, userSet(cohorts.One))

	records := make([]model.LiftRecord, 0, len(e.cfg.Patterns))
	for _, p := range e.cfg.Patterns {
		repRate := MatchRate(repTexts, p)
		oneRate := MatchRate(oneTexts, p)

		rec := model.LiftRecord{
			Name:      p.Name,
			LoyalRate: repRate,
			ChurnRate: oneRate,
			Gap:       repRate - oneRate,
		}
		if oneRate > 0 {
			rec.Ratio = repRate / oneRate
			rec.Defined = true
		}
		records = append(records, rec)
	}

	// Stable sort keeps dictionary insertion order for equal ratios.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Ratio > records[j].Ratio
	})

	return records
}

// RepurchaseProfile returns, per brand, attribute prevalence among
// repeat purchasers' review text as percentages. Brands with no events
// or no repeat purchasers are omitted.
func (e *Engine) RepurchaseProfile() []model.AttributeProfile {
	v := e.memoized("profile", func() any {
		return e.computeRepurchaseProfile()
	})
	return v.([]model.AttributeProfile)
}

func (e *Engine) computeRepurchaseProfile() []model.AttributeProfile {
	var profiles []model.AttributeProfile
	for _, target := range e.cfg.Targets {
		subset := e.brandSubset(target)
		if len(subset) == 0 {
			continue
		}
		cohorts := e.Segment(target)
		if len(cohorts.TwoPlus) == 0 {
			continue
		}

		texts := cohortTexts(subset, userSet(cohorts.TwoPlus))
		rates := make(map[string]float64, len(e.cfg.Patterns))
		for _, p := range e.cfg.Patterns {
			rates[p.Name] = MatchRate(texts, p) * 100
		}
		profiles = append(profiles, model.AttributeProfile{Brand: target.Name, Rates: rates})
	}
	return profiles
}

// cohortTexts collects review content of the subset rows belonging to
// the cohort. Absent content stays as "" so denominators count every
// row (explicit fill-to-empty policy).
func cohortTexts(subset []model.Event, cohort map[string]struct{}) []string {
	var texts []string
	for _, ev := range subset {
		if _, ok := cohort[ev.UserID]; ok {
			texts = append(texts, ev.Content)
		}
	}
	return texts
}
