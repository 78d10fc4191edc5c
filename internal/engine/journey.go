package engine

import (
	"sort"

	"github.com/glowlab/retention-cli/internal/model"
)

// Journey returns the time-ordered per-user journey edges: each event
// linked to the brand the user bought immediately before and after it.
// Events are grouped by user and sorted by date within the group; the
// stable sort keeps load order for identical timestamps so the result
// is deterministic. A user's first event has no predecessor, the last
// no successor; a single-event user has neither.
func (e *Engine) Journey() []model.JourneyEdge {
	v := e.memoized("journey", func() any {
		return e.computeJourney()
	})
	return v.([]model.JourneyEdge)
}

func (e *Engine) computeJourney() []model.JourneyEdge {
	events := append([]model.Event(nil), e.table.Events()...)
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].UserID != events[j].UserID {
			return events[i].UserID < events[j].UserID
		}
		return events[i].Date.Before(events[j].Date)
	})

	edges := make([]model.JourneyEdge, len(events))
	for i, ev := range events {
		edge := model.JourneyEdge{
			UserID:    ev.UserID,
			Date:      ev.Date,
			Brand:     ev.Brand,
			GoodsName: ev.GoodsName,
		}
		if i > 0 && events[i-1].UserID == ev.UserID {
			edge.PrevBrand = events[i-1].Brand
			edge.PrevGoods = events[i-1].GoodsName
		}
		if i < len(events)-1 && events[i+1].UserID == ev.UserID {
			edge.NextBrand = events[i+1].Brand
			edge.NextGoods = events[i+1].GoodsName
		}
		edges[i] = edge
	}
	return edges
}

// Inflow ranks the brands users switched in from: edges whose event
// matches the target brand, with a non-empty predecessor that does not
// itself match the target keyword. Top FlowTopN, descending.
func (e *Engine) Inflow(target model.BrandTarget) []model.FlowCount {
	return e.flow(target, "inflow", func(edge model.JourneyEdge) string {
		return edge.PrevBrand
	})
}

// Outflow ranks the brands users switched out to, symmetric to Inflow
// over the successor brand.
func (e *Engine) Outflow(target model.BrandTarget) []model.FlowCount {
	return e.flow(target, "outflow", func(edge model.JourneyEdge) string {
		return edge.NextBrand
	})
}

func (e *Engine) flow(target model.BrandTarget, op string, adjacent func(model.JourneyEdge) string) []model.FlowCount {
	v := e.memoized(op+":"+target.Name, func() any {
		freq := make(map[string]int)
		for _, edge := range e.Journey() {
			adj := adjacent(edge)
			if !target.MatchBrand(edge.Brand) || adj == "" || target.MatchBrand(adj) {
				continue
			}
			freq[adj]++
		}

		ranked := topCounts(freq, e.cfg.FlowTopN)
		flows := make([]model.FlowCount, len(ranked))
		for i, r := range ranked {
			flows[i] = model.FlowCount{Brand: r.GoodsName, Count: r.Count}
		}
		return flows
	})
	return v.([]model.FlowCount)
}

// InflowDetail lists the products bought immediately before switching
// from adjBrand into the target brand, top DrillTopN by frequency.
func (e *Engine) InflowDetail(target model.BrandTarget, adjBrand string) []model.ProductCount {
	freq := make(map[string]int)
	for _, edge := range e.Journey() {
		if !target.MatchBrand(edge.Brand) || edge.PrevBrand != adjBrand || target.MatchBrand(edge.PrevBrand) {
			continue
		}
		if edge.PrevGoods != "" {
			freq[edge.PrevGoods]++
		}
	}
	return topCounts(freq, e.cfg.DrillTopN)
}

// OutflowDetail lists the products bought immediately after leaving the
// target brand for adjBrand, top DrillTopN by frequency.
func (e *Engine) OutflowDetail(target model.BrandTarget, adjBrand string) []model.ProductCount {
	freq := make(map[string]int)
	for _, edge := range e.Journey() {
		if !target.MatchBrand(edge.Brand) || edge.NextBrand != adjBrand || target.MatchBrand(edge.NextBrand) {
			continue
		}
		if edge.NextGoods != "" {
			freq[edge.NextGoods]++
		}
	}
	return topCounts(freq, e.cfg.DrillTopN)
}
