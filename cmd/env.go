package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/glowlab/retention-cli/internal/config"
	"github.com/glowlab/retention-cli/internal/dataset"
	"github.com/glowlab/retention-cli/internal/engine"
	"github.com/glowlab/retention-cli/internal/model"
)

// newEngine loads the dictionaries and the event table and builds the
// analytics engine from them.
func newEngine(ctx context.Context) (*engine.Engine, *config.Dictionaries, error) {
	dicts, err := config.LoadDictionaries(cfg.Data.Dictionaries)
	if err != nil {
		return nil, nil, err
	}

	table, err := dataset.Load(ctx, cfg.Data)
	if err != nil {
		return nil, nil, err
	}
	zap.L().Info("event table loaded",
		zap.String("driver", cfg.Data.Driver),
		zap.Int("rows", table.Len()),
	)

	eng := engine.New(table, engine.Config{
		Targets:        dicts.Targets,
		Patterns:       dicts.Patterns,
		Hero:           dicts.Hero,
		Tags:           dicts.Tags,
		CoreExclusion:  dicts.CoreExclusion,
		NegativeKWs:    dicts.NegativeKeywords,
		Consolidations: dicts.Consolidations,
		ChurnGapDays:   cfg.Engine.ChurnGapDays,
		FlowTopN:       cfg.Engine.FlowTopN,
		DrillTopN:      cfg.Engine.DrillTopN,
		BasketTopN:     cfg.Engine.BasketTopN,
		ProductTopN:    cfg.Engine.ProductTopN,
	})
	return eng, dicts, nil
}

// findTarget resolves a --brand flag value against the dictionary,
// matching the target name case-insensitively.
func findTarget(dicts *config.Dictionaries, name string) (model.BrandTarget, error) {
	for _, t := range dicts.Targets {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	names := make([]string, len(dicts.Targets))
	for i, t := range dicts.Targets {
		names[i] = t.Name
	}
	return model.BrandTarget{}, eris.Errorf("unknown brand %q (have: %s)", name, strings.Join(names, ", "))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return eris.Wrap(enc.Encode(v), "encode output")
}
