package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/glowlab/retention-cli/internal/model"
)

// Querier is the subset of pgxpool.Pool the Postgres loader needs.
// pgxmock satisfies it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadPostgresURL(ctx context.Context, connString, table string) (*model.EventTable, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: connect postgres")
	}
	defer pool.Close()
	return LoadPostgres(ctx, pool, table)
}

// LoadPostgres reads the event table from a Postgres relation. NULL
// text columns coerce to empty strings via COALESCE.
func LoadPostgres(ctx context.Context, q Querier, table string) (*model.EventTable, error) {
	if table == "" {
		table = "events"
	}
	query := fmt.Sprintf(`
		SELECT user_id,
		       date::text,
		       COALESCE(brand, ''),
		       COALESCE(goods_name, ''),
		       COALESCE("option", ''),
		       COALESCE(content, ''),
		       COALESCE(skin_info, '')
		FROM %s`, table)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: query postgres table %s", table)
	}
	defer rows.Close()

	var events []model.Event
	skipped := 0
	for rows.Next() {
		var (
			ev      model.Event
			rawDate string
		)
		if err := rows.Scan(&ev.UserID, &rawDate, &ev.Brand, &ev.GoodsName, &ev.Option, &ev.Content, &ev.SkinInfo); err != nil {
			return nil, eris.Wrap(err, "dataset: scan postgres row")
		}
		date, err := parseDate(rawDate)
		if err != nil || ev.UserID == "" {
			skipped++
			continue
		}
		ev.Date = date
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "dataset: iterate postgres rows")
	}
	if skipped > 0 {
		warnSkipped(table, skipped, len(events))
	}
	return model.NewEventTable(events), nil
}
