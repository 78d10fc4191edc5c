package engine

import (
	"go.uber.org/zap"

	"github.com/glowlab/retention-cli/internal/model"
)

// Segment partitions the users who interacted with the target brand
// into frequency buckets. Membership depends only on per-user counts,
// never on arrival order. An empty brand subset yields empty cohorts.
func (e *Engine) Segment(target model.BrandTarget) model.CohortSet {
	v := e.memoized("segment:"+target.Name, func() any {
		return e.computeSegment(target)
	})
	return v.(model.CohortSet)
}

func (e *Engine) computeSegment(target model.BrandTarget) model.CohortSet {
	counts := userCounts(e.brandSubset(target))

	set := model.CohortSet{
		Brand:     target.Name,
		One:       usersWhere(counts, func(n int) bool { return n == 1 }),
		Two:       usersWhere(counts, func(n int) bool { return n == 2 }),
		TwoPlus:   usersWhere(counts, func(n int) bool { return n >= 2 }),
		ThreePlus: usersWhere(counts, func(n int) bool { return n >= 3 }),
	}

	zap.L().Debug("engine: cohorts segmented",
		zap.String("brand", target.Name),
		zap.Int("one", len(set.One)),
		zap.Int("two", len(set.Two)),
		zap.Int("two_plus", len(set.TwoPlus)),
		zap.Int("three_plus", len(set.ThreePlus)),
	)

	return set
}
