// Package dataset loads the purchase-review event table from
// partitioned CSV files, XLSX workbooks, SQLite databases or Postgres.
// Every loader produces the same seven-column shape; absent text
// values are coerced to the empty string so downstream match rates
// keep them in the denominator.
package dataset

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/glowlab/retention-cli/internal/config"
	"github.com/glowlab/retention-cli/internal/model"
)

// Column names recognized in headers, case-insensitive.
const (
	colUserID   = "user_id"
	colDate     = "date"
	colBrand    = "brand"
	colGoods    = "goods_name"
	colOption   = "option"
	colContent  = "content"
	colSkinInfo = "skin_info"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	time.RFC3339,
}

// Load reads the event table using the configured driver.
func Load(ctx context.Context, cfg config.DataConfig) (*model.EventTable, error) {
	switch cfg.Driver {
	case "csv", "":
		return LoadCSV(ctx, cfg.Dir, cfg.Pattern)
	case "xlsx":
		return LoadXLSX(cfg.Path, cfg.Sheet)
	case "sqlite":
		return LoadSQLite(ctx, cfg.Path, cfg.Table)
	case "postgres":
		return loadPostgresURL(ctx, cfg.DatabaseURL, cfg.Table)
	default:
		return nil, eris.Errorf("dataset: unknown driver %q", cfg.Driver)
	}
}

// columnIndex maps the recognized columns to their position in the
// header row. user_id, date, brand and goods_name are required.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colUserID, colDate, colBrand, colGoods} {
		if _, ok := idx[required]; !ok {
			return nil, eris.Errorf("dataset: missing required column %q", required)
		}
	}
	return idx, nil
}

func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("dataset: unparseable date %q", s)
}

// rowEvent converts a raw row to an Event. Rows without a user ID or
// with an unparseable date are structural defects and are skipped by
// the callers rather than coerced.
func rowEvent(row []string, idx map[string]int) (model.Event, error) {
	userID := cell(row, idx, colUserID)
	if userID == "" {
		return model.Event{}, eris.New("dataset: empty user_id")
	}
	date, err := parseDate(cell(row, idx, colDate))
	if err != nil {
		return model.Event{}, err
	}
	return model.Event{
		UserID:    userID,
		Date:      date,
		Brand:     cell(row, idx, colBrand),
		GoodsName: cell(row, idx, colGoods),
		Option:    cell(row, idx, colOption),
		Content:   cell(row, idx, colContent),
		SkinInfo:  cell(row, idx, colSkinInfo),
	}, nil
}

// collectRows converts raw rows, skipping defective ones with a single
// summary warning.
func collectRows(rows [][]string, idx map[string]int, source string) *model.EventTable {
	events := make([]model.Event, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		ev, err := rowEvent(row, idx)
		if err != nil {
			skipped++
			continue
		}
		events = append(events, ev)
	}
	if skipped > 0 {
		warnSkipped(source, skipped, len(events))
	}
	return model.NewEventTable(events)
}

func warnSkipped(source string, skipped, kept int) {
	zap.L().Warn("dataset: skipped defective rows",
		zap.String("source", source),
		zap.Int("skipped", skipped),
		zap.Int("kept", kept),
	)
}
