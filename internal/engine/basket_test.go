package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowlab/retention-cli/internal/model"
)

func TestBasket_BucketsAndOtherBrandItems(t *testing.T) {
	events := []model.Event{
		// one-time buyer with an outside purchase
		ev("once", "roundlab", "dokdo toner", 1),
		ev("once", "torriden", "divein serum", 2),
		// two-time buyer
		ev("twice", "roundlab", "dokdo toner", 1),
		ev("twice", "roundlab", "dokdo toner", 10),
		ev("twice", "snature", "aqua cream", 3),
		ev("twice", "snature", "aqua cream", 8),
		// loyal buyer
		ev("loyal", "roundlab", "dokdo toner", 1),
		ev("loyal", "roundlab", "dokdo toner", 5),
		ev("loyal", "roundlab", "dokdo toner", 9),
		ev("loyal", "torriden", "divein serum", 4),
	}
	eng := newTestEngine(t, events, nil)

	rankings := eng.Basket(eng.cfg.Targets[0])
	require.Len(t, rankings, 3)

	one := rankings[0]
	assert.Equal(t, model.BucketOne, one.Bucket)
	assert.Equal(t, 1, one.Users)
	require.Len(t, one.Items, 1)
	assert.Equal(t, model.ProductCount{GoodsName: "divein serum", Count: 1}, one.Items[0])

	two := rankings[1]
	assert.Equal(t, model.BucketTwo, two.Bucket)
	assert.Equal(t, 1, two.Users)
	require.Len(t, two.Items, 1)
	assert.Equal(t, model.ProductCount{GoodsName: "aqua cream", Count: 2}, two.Items[0])

	loyal := rankings[2]
	assert.Equal(t, model.BucketThreePlus, loyal.Bucket)
	assert.Equal(t, 1, loyal.Users)
	require.Len(t, loyal.Items, 1)
	assert.Equal(t, "divein serum", loyal.Items[0].GoodsName)
}

func TestBasket_TargetBrandRowsExcluded(t *testing.T) {
	events := []model.Event{
		ev("u", "roundlab", "dokdo toner", 1),
		ev("u", "Round Lab", "dokdo pad", 2),
	}
	eng := newTestEngine(t, events, nil)

	rankings := eng.Basket(eng.cfg.Targets[0])
	require.Len(t, rankings, 3)
	// Both rows match the target keyword so nothing lands in the basket.
	assert.Equal(t, model.BucketTwo, rankings[1].Bucket)
	assert.Equal(t, 1, rankings[1].Users)
	assert.Empty(t, rankings[1].Items)
}

func TestBasket_EmptyBucketsYieldEmptyItems(t *testing.T) {
	eng := newTestEngine(t, []model.Event{ev("u", "torriden", "divein serum", 1)}, nil)

	rankings := eng.Basket(eng.cfg.Targets[0])
	require.Len(t, rankings, 3)
	for _, r := range rankings {
		assert.Zero(t, r.Users)
		assert.Empty(t, r.Items)
	}
}

func TestBasket_TopNTruncation(t *testing.T) {
	events := []model.Event{
		ev("u", "roundlab", "dokdo toner", 1),
		ev("u", "a", "item1", 2),
		ev("u", "b", "item2", 3),
		ev("u", "c", "item3", 4),
	}
	eng := newTestEngine(t, events, func(c *Config) { c.BasketTopN = 2 })

	rankings := eng.Basket(eng.cfg.Targets[0])
	assert.Len(t, rankings[0].Items, 2)
}
