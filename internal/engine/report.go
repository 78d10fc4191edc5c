package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/glowlab/retention-cli/internal/model"
)

// BrandReport bundles every per-brand derived table.
type BrandReport struct {
	Brand   string                `json:"brand"`
	Cohorts model.CohortSet       `json:"cohorts"`
	Lift    []model.LiftRecord    `json:"lift,omitempty"`
	Inflow  []model.FlowCount     `json:"inflow,omitempty"`
	Outflow []model.FlowCount     `json:"outflow,omitempty"`
	Baskets []model.BasketRanking `json:"baskets,omitempty"`
}

// Report is the full analysis output, one derived table per engine
// operation, ready for tabular or chart rendering.
type Report struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Rows        int                      `json:"rows"`
	Users       int                      `json:"users"`
	Brands      []BrandReport            `json:"brands"`
	Profile     []model.AttributeProfile `json:"profile,omitempty"`
	Share       []model.ShareRow         `json:"share,omitempty"`
	TopProducts []model.ProductCount     `json:"top_products,omitempty"`
	Aha         model.AhaResult          `json:"aha"`
	Voice       []model.VoiceRow         `json:"voice,omitempty"`
	Skin        []model.SkinRow          `json:"skin,omitempty"`
	CycleDays   float64                  `json:"cycle_days"`
}

// Report runs every analysis over the table. Brands fan out across
// goroutines: each computation only reads the shared immutable table
// and writes its own slot.
func (e *Engine) Report(ctx context.Context) (*Report, error) {
	start := time.Now()

	report := &Report{
		GeneratedAt: start.UTC(),
		Rows:        e.table.Len(),
		Users:       e.distinctUsers(),
		Brands:      make([]BrandReport, len(e.cfg.Targets)),
	}

	g, _ := errgroup.WithContext(ctx)
	for i, target := range e.cfg.Targets {
		g.Go(func() error {
			report.Brands[i] = BrandReport{
				Brand:   target.Name,
				Cohorts: e.Segment(target),
				Lift:    e.Lift(target),
				Inflow:  e.Inflow(target),
				Outflow: e.Outflow(target),
				Baskets: e.Basket(target),
			}
			return nil
		})
	}
	g.Go(func() error {
		report.Profile = e.RepurchaseProfile()
		return nil
	})
	g.Go(func() error {
		report.Share = e.MarketShare()
		return nil
	})
	g.Go(func() error {
		report.TopProducts = e.TopProducts()
		return nil
	})
	g.Go(func() error {
		report.Aha = e.AhaMoment()
		return nil
	})
	g.Go(func() error {
		report.Voice = e.VoiceGap()
		return nil
	})
	g.Go(func() error {
		report.Skin = e.SkinProfile()
		return nil
	})
	g.Go(func() error {
		report.CycleDays = e.RepurchaseCycle()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("engine: report complete",
		zap.Int("rows", report.Rows),
		zap.Int("users", report.Users),
		zap.Int("brands", len(report.Brands)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return report, nil
}

func (e *Engine) distinctUsers() int {
	seen := make(map[string]struct{})
	for _, ev := range e.table.Events() {
		seen[ev.UserID] = struct{}{}
	}
	return len(seen)
}
