package engine

import (
	"strings"

	"github.com/glowlab/retention-cli/internal/model"
)

// skinOrder fixes the output ordering of skin-type rows.
var skinOrder = []model.SkinType{
	model.SkinDry,
	model.SkinOily,
	model.SkinCombination,
	model.SkinSensitive,
	model.SkinOther,
}

// ParseSkinType classifies a free-text skin_info value. The second
// return is false for absent values, which are dropped from
// distributions rather than counted as "other".
func ParseSkinType(s string) (model.SkinType, bool) {
	if s == "" {
		return "", false
	}
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "dry"):
		return model.SkinDry, true
	case strings.Contains(lower, "oily"):
		return model.SkinOily, true
	case strings.Contains(lower, "combination"):
		return model.SkinCombination, true
	case strings.Contains(lower, "sensitive"):
		return model.SkinSensitive, true
	default:
		return model.SkinOther, true
	}
}

// SkinProfile returns each target brand's reviewer skin-type
// distribution as percentages of rows with a parseable skin_info.
// Brands without any parseable rows are omitted.
func (e *Engine) SkinProfile() []model.SkinRow {
	v := e.memoized("skin", func() any {
		return e.computeSkinProfile()
	})
	return v.([]model.SkinRow)
}

func (e *Engine) computeSkinProfile() []model.SkinRow {
	var rows []model.SkinRow
	for _, target := range e.cfg.Targets {
		counts := make(map[model.SkinType]int)
		total := 0
		for _, ev := range e.brandSubset(target) {
			skin, ok := ParseSkinType(ev.SkinInfo)
			if !ok {
				continue
			}
			counts[skin]++
			total++
		}
		if total == 0 {
			continue
		}
		for _, skin := range skinOrder {
			if counts[skin] == 0 {
				continue
			}
			rows = append(rows, model.SkinRow{
				Brand: target.Name,
				Skin:  skin,
				Pct:   float64(counts[skin]) / float64(total) * 100,
			})
		}
	}
	return rows
}
