package engine

import (
	"github.com/glowlab/retention-cli/internal/model"
)

// Basket ranks, per frequency bucket, the other-brand items the
// bucket's users bought: what one-time, repeat and loyal customers put
// in their baskets outside the target brand. Empty buckets yield empty
// rankings.
func (e *Engine) Basket(target model.BrandTarget) []model.BasketRanking {
	v := e.memoized("basket:"+target.Name, func() any {
		return e.computeBasket(target)
	})
	return v.([]model.BasketRanking)
}

func (e *Engine) computeBasket(target model.BrandTarget) []model.BasketRanking {
	cohorts := e.Segment(target)

	buckets := []struct {
		bucket model.BasketBucket
		users  []string
	}{
		{model.BucketOne, cohorts.One},
		{model.BucketTwo, cohorts.Two},
		{model.BucketThreePlus, cohorts.ThreePlus},
	}

	rankings := make([]model.BasketRanking, 0, len(buckets))
	for _, b := range buckets {
		ranking := model.BasketRanking{Bucket: b.bucket, Users: len(b.users)}
		if len(b.users) > 0 {
			members := userSet(b.users)
			freq := make(map[string]int)
			for _, ev := range e.table.Events() {
				if _, ok := members[ev.UserID]; !ok {
					continue
				}
				if target.MatchBrand(ev.Brand) {
					continue
				}
				freq[ev.GoodsName]++
			}
			ranking.Items = topCounts(freq, e.cfg.BasketTopN)
		}
		rankings = append(rankings, ranking)
	}
	return rankings
}
