// Package db bulk-loads event tables into Postgres using the COPY
// protocol, for deployments that analyze straight from the warehouse.
package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"

	"github.com/glowlab/retention-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the importer needs. pgxmock
// satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Close()
}

// eventColumns is the column order used by EnsureEventsTable and
// ImportEvents.
var eventColumns = []string{"user_id", "date", "brand", "goods_name", "option", "content", "skin_info"}

// EnsureEventsTable creates the events relation if it does not exist.
func EnsureEventsTable(ctx context.Context, pool Pool, table string) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+table+` (
		user_id    TEXT NOT NULL,
		date       DATE NOT NULL,
		brand      TEXT,
		goods_name TEXT,
		"option"   TEXT,
		content    TEXT,
		skin_info  TEXT
	)`)
	return eris.Wrapf(err, "db: create table %s", table)
}

// ImportEvents bulk-inserts the table's events via COPY. Returns the
// number of rows written.
func ImportEvents(ctx context.Context, pool Pool, table string, events *model.EventTable) (int64, error) {
	if events.Empty() {
		return 0, nil
	}

	rows := make([][]any, 0, events.Len())
	for _, ev := range events.Events() {
		rows = append(rows, []any{
			ev.UserID, ev.Date, ev.Brand, ev.GoodsName, ev.Option, ev.Content, ev.SkinInfo,
		})
	}

	n, err := pool.CopyFrom(ctx, pgx.Identifier{table}, eventColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrapf(err, "db: COPY INTO %s", table)
	}
	return n, nil
}
