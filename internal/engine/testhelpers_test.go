package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glowlab/retention-cli/internal/model"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func ev(user, brand, goods string, d int) model.Event {
	return model.Event{UserID: user, Date: day(d), Brand: brand, GoodsName: goods}
}

func evContent(user, brand, goods, content string, d int) model.Event {
	e := ev(user, brand, goods, d)
	e.Content = content
	return e
}

func mustTarget(t *testing.T, name, brandKW, prodKW string) model.BrandTarget {
	t.Helper()
	target, err := model.NewBrandTarget(name, brandKW, prodKW)
	require.NoError(t, err)
	return target
}

func mustPattern(t *testing.T, name, pattern string) model.AttributePattern {
	t.Helper()
	p, err := model.NewAttributePattern(name, pattern)
	require.NoError(t, err)
	return p
}

func mustHero(t *testing.T, name, brandKW string, productKWs ...string) model.HeroProduct {
	t.Helper()
	h, err := model.NewHeroProduct(name, brandKW, productKWs)
	require.NoError(t, err)
	return h
}

// newTestEngine builds an engine over events with a single roundlab
// target and hero product, the default thresholds and no dictionaries
// beyond what a test sets on the returned config.
func newTestEngine(t *testing.T, events []model.Event, mutate func(*Config)) *Engine {
	t.Helper()
	core, err := model.NewAttributePattern("core-category", "roundlab|torriden|snature")
	require.NoError(t, err)

	cfg := Config{
		Targets: []model.BrandTarget{
			mustTarget(t, "roundlab", `roundlab|round\s*lab`, `toner|dokdo`),
		},
		Hero:          mustHero(t, "dokdo toner", "roundlab", "dokdo", "toner"),
		CoreExclusion: core,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return New(model.NewEventTable(events), cfg)
}
