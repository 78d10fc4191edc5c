package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/glowlab/retention-cli/internal/model"
)

// LoadSQLite reads the event table from a SQLite database. option,
// content and skin_info may be NULL; they come back as empty strings.
func LoadSQLite(ctx context.Context, path, table string) (*model.EventTable, error) {
	if table == "" {
		table = "events"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open sqlite %s", path)
	}
	defer db.Close()

	query := fmt.Sprintf(
		`SELECT user_id, date, brand, goods_name, "option", content, skin_info FROM %s`,
		table,
	)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: query sqlite table %s", table)
	}
	defer rows.Close()

	var events []model.Event
	skipped := 0
	for rows.Next() {
		var (
			userID, rawDate           string
			brand, goods              sql.NullString
			option, content, skinInfo sql.NullString
		)
		if err := rows.Scan(&userID, &rawDate, &brand, &goods, &option, &content, &skinInfo); err != nil {
			return nil, eris.Wrap(err, "dataset: scan sqlite row")
		}
		date, err := parseDate(rawDate)
		if err != nil || userID == "" {
			skipped++
			continue
		}
		events = append(events, model.Event{
			UserID:    userID,
			Date:      date,
			Brand:     brand.String,
			GoodsName: goods.String,
			Option:    option.String,
			Content:   content.String,
			SkinInfo:  skinInfo.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "dataset: iterate sqlite rows")
	}
	if skipped > 0 {
		warnSkipped(path, skipped, len(events))
	}
	return model.NewEventTable(events), nil
}
