package engine

import (
	"sort"
	"time"
)

// RepurchaseCycle returns the mean repurchase interval in days for
// repeat buyers of the hero product: per user, the span between first
// and last purchase divided by purchases minus one, averaged across
// users. Returns 0 when there are no repeat buyers.
func (e *Engine) RepurchaseCycle() float64 {
	v := e.memoized("cycle", func() any {
		return e.computeRepurchaseCycle()
	})
	return v.(float64)
}

func (e *Engine) computeRepurchaseCycle() float64 {
	type span struct {
		first, last time.Time
		count       int
	}
	users := make(map[string]*span)
	for _, ev := range e.table.Events() {
		if !e.cfg.Hero.Match(ev.Brand, ev.GoodsName) {
			continue
		}
		s := users[ev.UserID]
		if s == nil {
			s = &span{first: ev.Date, last: ev.Date}
			users[ev.UserID] = s
		}
		s.count++
		if ev.Date.Before(s.first) {
			s.first = ev.Date
		}
		if ev.Date.After(s.last) {
			s.last = ev.Date
		}
	}

	var periods []float64
	for _, s := range users {
		if s.count < 2 {
			continue
		}
		days := s.last.Sub(s.first).Hours() / 24
		periods = append(periods, days/float64(s.count-1))
	}
	if len(periods) == 0 {
		return 0
	}
	sort.Float64s(periods) // deterministic summation order

	var sum float64
	for _, p := range periods {
		sum += p
	}
	return sum / float64(len(periods))
}
