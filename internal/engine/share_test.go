package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowlab/retention-cli/internal/model"
)

func twoTargetEngine(t *testing.T, events []model.Event, mutate func(*Config)) *Engine {
	t.Helper()
	return newTestEngine(t, events, func(c *Config) {
		c.Targets = append(c.Targets, mustTarget(t, "torriden", "torriden", "divein"))
		if mutate != nil {
			mutate(c)
		}
	})
}

func TestMarketShare_MonthlyPercentages(t *testing.T) {
	events := []model.Event{
		ev("u1", "roundlab", "dokdo toner", 1),
		ev("u2", "torriden", "divein serum", 5),
		// brand matches but product keyword does not: outside the market
		ev("u3", "roundlab", "face cream", 10),
		// product matches but brand does not
		ev("u4", "somebrand", "dokdo toner", 12),
		// February, day 32
		ev("u5", "roundlab", "dokdo toner", 32),
		ev("u6", "roundlab", "dokdo toner", 33),
	}
	eng := twoTargetEngine(t, events, nil)

	rows := eng.MarketShare()
	require.Len(t, rows, 3)

	assert.Equal(t, model.ShareRow{Month: "2024-01", Brand: "roundlab", Count: 1, Share: 50}, rows[0])
	assert.Equal(t, model.ShareRow{Month: "2024-01", Brand: "torriden", Count: 1, Share: 50}, rows[1])
	assert.Equal(t, model.ShareRow{Month: "2024-02", Brand: "roundlab", Count: 2, Share: 100}, rows[2])
}

func TestMarketShare_EmptyMarket(t *testing.T) {
	eng := twoTargetEngine(t, []model.Event{ev("u", "zara", "shirt", 1)}, nil)
	assert.Empty(t, eng.MarketShare())
}

func TestTopProducts_ConsolidatesProductLines(t *testing.T) {
	cons, err := model.NewConsolidation("독도 토너", "roundlab", "dokdo")
	require.NoError(t, err)

	events := []model.Event{
		ev("u1", "roundlab", "dokdo toner 200ml", 1),
		ev("u2", "roundlab", "dokdo toner refill", 2),
		ev("u3", "roundlab", "dokdo pad", 3),
		ev("u4", "torriden", "divein serum", 4),
	}
	eng := newTestEngine(t, events, func(c *Config) {
		c.Consolidations = []model.Consolidation{cons}
	})

	top := eng.TopProducts()
	require.NotEmpty(t, top)
	assert.Equal(t, model.ProductCount{GoodsName: "독도 토너", Count: 3}, top[0])
	assert.Equal(t, model.ProductCount{GoodsName: "divein serum", Count: 1}, top[1])
}

func TestTopProducts_Truncation(t *testing.T) {
	events := []model.Event{
		ev("u", "a", "p1", 1),
		ev("u", "b", "p2", 2),
		ev("u", "c", "p3", 3),
	}
	eng := newTestEngine(t, events, func(c *Config) { c.ProductTopN = 2 })

	assert.Len(t, eng.TopProducts(), 2)
}
