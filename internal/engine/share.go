package engine

import (
	"sort"

	"github.com/glowlab/retention-cli/internal/model"
)

// MarketShare computes each target brand's monthly share of the target
// market: the union of all five brands' product lines (brand keyword
// AND product keyword). Share is the brand's percentage of that
// month's market events. Months with no market events yield no rows.
func (e *Engine) MarketShare() []model.ShareRow {
	v := e.memoized("share", func() any {
		return e.computeMarketShare()
	})
	return v.([]model.ShareRow)
}

func (e *Engine) computeMarketShare() []model.ShareRow {
	monthTotals := make(map[string]int)
	brandCounts := make(map[string]map[string]int) // month -> brand -> count

	for _, ev := range e.table.Events() {
		for _, target := range e.cfg.Targets {
			if !target.MatchBrand(ev.Brand) || !target.MatchProduct(ev.GoodsName) {
				continue
			}
			month := ev.Date.Format("2006-01")
			monthTotals[month]++
			if brandCounts[month] == nil {
				brandCounts[month] = make(map[string]int)
			}
			brandCounts[month][target.Name]++
			break // a row counts once even if it matches several targets
		}
	}

	months := make([]string, 0, len(monthTotals))
	for m := range monthTotals {
		months = append(months, m)
	}
	sort.Strings(months)

	var rows []model.ShareRow
	for _, month := range months {
		total := monthTotals[month]
		for _, target := range e.cfg.Targets {
			count := brandCounts[month][target.Name]
			if count == 0 {
				continue
			}
			rows = append(rows, model.ShareRow{
				Month: month,
				Brand: target.Name,
				Count: count,
				Share: float64(count) / float64(total) * 100,
			})
		}
	}
	return rows
}

// TopProducts ranks products by purchase count after consolidating
// each target brand's product line under one canonical label, top
// ProductTopN.
func (e *Engine) TopProducts() []model.ProductCount {
	v := e.memoized("top_products", func() any {
		freq := make(map[string]int)
		for _, ev := range e.table.Events() {
			name := ev.GoodsName
			for _, c := range e.cfg.Consolidations {
				if c.Match(ev.Brand, ev.GoodsName) {
					name = c.Label
					break
				}
			}
			freq[name]++
		}
		return topCounts(freq, e.cfg.ProductTopN)
	})
	return v.([]model.ProductCount)
}
