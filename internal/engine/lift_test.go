package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowlab/retention-cli/internal/model"
)

func TestLift_ClampWhenDenominatorZero(t *testing.T) {
	// Repeat user's texts: ["foo bar", "baz"]; one-time user's: ["qux"].
	events := []model.Event{
		evContent("rep", "roundlab", "toner", "foo bar", 1),
		evContent("rep", "roundlab", "toner", "baz", 5),
		evContent("one", "roundlab", "toner", "qux", 2),
	}
	eng := newTestEngine(t, events, func(c *Config) {
		c.Patterns = model.PatternSet{mustPattern(t, "A", "foo")}
	})

	records := eng.Lift(eng.cfg.Targets[0])
	require.Len(t, records, 1)

	rec := records[0]
	assert.InDelta(t, 0.5, rec.LoyalRate, 1e-9)
	assert.Zero(t, rec.ChurnRate)
	assert.Zero(t, rec.Ratio, "clamped, not infinity")
	assert.False(t, rec.Defined)
	assert.InDelta(t, 0.5, rec.Gap, 1e-9)
}

func TestLift_RatioWhenDefined(t *testing.T) {
	events := []model.Event{
		evContent("rep", "roundlab", "toner", "촉촉하고 수분감", 1),
		evContent("rep", "roundlab", "toner", "수분 최고", 5),
		evContent("one1", "roundlab", "toner", "수분", 2),
		evContent("one2", "roundlab", "toner", "별로", 3),
	}
	eng := newTestEngine(t, events, func(c *Config) {
		c.Patterns = model.PatternSet{mustPattern(t, "수분/보습", "수분|촉촉")}
	})

	records := eng.Lift(eng.cfg.Targets[0])
	require.Len(t, records, 1)

	// Repeat prevalence 1.0, one-time prevalence 0.5 → ratio 2.
	assert.True(t, records[0].Defined)
	assert.InDelta(t, 2.0, records[0].Ratio, 1e-9)
}

func TestLift_EmptyCohortReturnsNil(t *testing.T) {
	// Only a repeat user: no one-time cohort → insufficient data.
	events := []model.Event{
		evContent("rep", "roundlab", "toner", "foo", 1),
		evContent("rep", "roundlab", "toner", "foo", 2),
	}
	eng := newTestEngine(t, events, func(c *Config) {
		c.Patterns = model.PatternSet{mustPattern(t, "A", "foo")}
	})

	assert.Nil(t, eng.Lift(eng.cfg.Targets[0]))
}

func TestLift_EmptyBrandReturnsNil(t *testing.T) {
	eng := newTestEngine(t, []model.Event{ev("u", "torriden", "x", 1)}, func(c *Config) {
		c.Patterns = model.PatternSet{mustPattern(t, "A", "foo")}
	})
	assert.Nil(t, eng.Lift(eng.cfg.Targets[0]))
}

func TestLift_SortedDescendingStableTies(t *testing.T) {
	events := []model.Event{
		evContent("rep", "roundlab", "toner", "strong weak", 1),
		evContent("rep", "roundlab", "toner", "strong", 5),
		evContent("one", "roundlab", "toner", "strong weak", 2),
	}
	eng := newTestEngine(t, events, func(c *Config) {
		c.Patterns = model.PatternSet{
			mustPattern(t, "first-zero", "absent"),
			mustPattern(t, "weak", "weak"),
			mustPattern(t, "strong", "strong"),
			mustPattern(t, "second-zero", "missing"),
		}
	})

	records := eng.Lift(eng.cfg.Targets[0])
	require.Len(t, records, 4)

	// strong: 1.0/1.0 = 1; weak: 0.5/1.0 = 0.5; both zeros clamp to 0
	// and keep dictionary insertion order between themselves.
	assert.Equal(t, "strong", records[0].Name)
	assert.Equal(t, "weak", records[1].Name)
	assert.Equal(t, "first-zero", records[2].Name)
	assert.Equal(t, "second-zero", records[3].Name)
}

func TestRepurchaseProfile_PercentagesAndOmissions(t *testing.T) {
	events := []model.Event{
		evContent("rep", "roundlab", "toner", "수분 가득", 1),
		evContent("rep", "roundlab", "toner", "그냥 그래요", 5),
		evContent("solo", "snature", "aqua toner", "수분", 2), // no repeat users
	}
	eng := newTestEngine(t, events, func(c *Config) {
		c.Targets = append(c.Targets, mustTarget(t, "snature", "snature", "toner"))
		c.Patterns = model.PatternSet{mustPattern(t, "수분/보습", "수분|촉촉")}
	})

	profiles := eng.RepurchaseProfile()
	require.Len(t, profiles, 1, "brand without repeat purchasers is omitted")

	assert.Equal(t, "roundlab", profiles[0].Brand)
	assert.InDelta(t, 50.0, profiles[0].Rates["수분/보습"], 1e-9)
}

func TestLift_PrevalenceWithinBounds(t *testing.T) {
	events := []model.Event{
		evContent("rep", "roundlab", "toner", "수분", 1),
		evContent("rep", "roundlab", "toner", "수분", 2),
		evContent("one", "roundlab", "toner", "수분", 3),
	}
	eng := newTestEngine(t, events, func(c *Config) {
		c.Patterns = model.PatternSet{mustPattern(t, "수분/보습", "수분")}
	})

	for _, rec := range eng.Lift(eng.cfg.Targets[0]) {
		assert.GreaterOrEqual(t, rec.LoyalRate, 0.0)
		assert.LessOrEqual(t, rec.LoyalRate, 1.0)
		assert.GreaterOrEqual(t, rec.ChurnRate, 0.0)
		assert.LessOrEqual(t, rec.ChurnRate, 1.0)
	}
}
