// Package report renders an analysis report to an XLSX workbook, one
// sheet per derived table.
package report

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/glowlab/retention-cli/internal/engine"
)

// WriteXLSX writes the report as a workbook at path.
func WriteXLSX(path string, r *engine.Report) error {
	f := xlsx.NewFile()

	if err := writeSummary(f, r); err != nil {
		return err
	}
	for _, w := range []struct {
		name  string
		write func(*xlsx.Sheet, *engine.Report)
	}{
		{"Cohorts", writeCohorts},
		{"Lift", writeLift},
		{"Flows", writeFlows},
		{"Baskets", writeBaskets},
		{"Profile", writeProfile},
		{"Market Share", writeShare},
		{"Top Products", writeTopProducts},
		{"Aha Moment", writeAha},
		{"Voice Gap", writeVoice},
		{"Skin Types", writeSkin},
	} {
		sheet, err := f.AddSheet(w.name)
		if err != nil {
			return eris.Wrapf(err, "report: add sheet %s", w.name)
		}
		w.write(sheet, r)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	zap.L().Info("report: workbook written", zap.String("path", path))
	return nil
}

func addRow(sheet *xlsx.Sheet, cells ...string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().SetString(c)
	}
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func writeSummary(f *xlsx.File, r *engine.Report) error {
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}
	addRow(sheet, "generated_at", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	addRow(sheet, "rows", fmt.Sprintf("%d", r.Rows))
	addRow(sheet, "users", fmt.Sprintf("%d", r.Users))
	addRow(sheet, "repurchase_cycle_days", pct(r.CycleDays))
	if r.Aha.Recommendation != "" {
		addRow(sheet, "recommendation", r.Aha.Recommendation)
	}
	return nil
}

func writeCohorts(sheet *xlsx.Sheet, r *engine.Report) {
	addRow(sheet, "brand", "one_time", "two_time", "repeat", "loyal")
	for _, b := range r.Brands {
		addRow(sheet, b.Brand,
			fmt.Sprintf("%d", len(b.Cohorts.One)),
			fmt.Sprintf("%d", len(b.Cohorts.Two)),
			fmt.Sprintf("%d", len(b.Cohorts.TwoPlus)),
			fmt.Sprintf("%d", len(b.Cohorts.ThreePlus)),
		)
	}
}

func writeLift(sheet *xlsx.Sheet, r *engine.Report) {
	addRow(sheet, "brand", "attribute", "repeat_rate", "one_time_rate", "ratio", "defined")
	for _, b := range r.Brands {
		for _, rec := range b.Lift {
			addRow(sheet, b.Brand, rec.Name,
				pct(rec.LoyalRate*100), pct(rec.ChurnRate*100),
				pct(rec.Ratio), fmt.Sprintf("%t", rec.Defined),
			)
		}
	}
}

func writeFlows(sheet *xlsx.Sheet, r *engine.Report) {
	addRow(sheet, "brand", "direction", "adjacent_brand", "count")
	for _, b := range r.Brands {
		for _, fc := range b.Inflow {
			addRow(sheet, b.Brand, "in", fc.Brand, fmt.Sprintf("%d", fc.Count))
		}
		for _, fc := range b.Outflow {
			addRow(sheet, b.Brand, "out", fc.Brand, fmt.Sprintf("%d", fc.Count))
		}
	}
}

func writeBaskets(sheet *xlsx.Sheet, r *engine.Report) {
	addRow(sheet, "brand", "bucket", "goods_name", "count")
	for _, b := range r.Brands {
		for _, ranking := range b.Baskets {
			for _, item := range ranking.Items {
				addRow(sheet, b.Brand, string(ranking.Bucket), item.GoodsName, fmt.Sprintf("%d", item.Count))
			}
		}
	}
}

func writeProfile(sheet *xlsx.Sheet, r *engine.Report) {
	addRow(sheet, "brand", "attribute", "pct")
	for _, p := range r.Profile {
		for name, rate := range p.Rates {
			addRow(sheet, p.Brand, name, pct(rate))
		}
	}
}

func writeShare(sheet *xlsx.Sheet, r *engine.Report) {
	addRow(sheet, "month", "brand", "count", "share_pct")
	for _, row := range r.Share {
		addRow(sheet, row.Month, row.Brand, fmt.Sprintf("%d", row.Count), pct(row.Share))
	}
}

func writeTopProducts(sheet *xlsx.Sheet, r *engine.Report) {
	addRow(sheet, "goods_name", "count")
	for _, p := range r.TopProducts {
		addRow(sheet, p.GoodsName, fmt.Sprintf("%d", p.Count))
	}
}

func writeAha(sheet *xlsx.Sheet, r *engine.Report) {
	addRow(sheet, "loyal_users", fmt.Sprintf("%d", r.Aha.LoyalUsers))
	addRow(sheet, "churn_users", fmt.Sprintf("%d", r.Aha.ChurnUsers))
	addRow(sheet, "cross_buyers", fmt.Sprintf("%d", r.Aha.CrossBuyers))
	addRow(sheet)
	addRow(sheet, "tag", "loyal_pct", "churn_pct", "lift", "gap")
	for _, tag := range r.Aha.Tags {
		addRow(sheet, tag.Name, pct(tag.LoyalRate), pct(tag.ChurnRate), pct(tag.Lift), pct(tag.Gap))
	}
}

func writeVoice(sheet *xlsx.Sheet, r *engine.Report) {
	addRow(sheet, "keyword", "churn_pct", "loyal_pct", "gap")
	for _, row := range r.Voice {
		addRow(sheet, row.Keyword, pct(row.ChurnRate), pct(row.LoyalRate), pct(row.Gap))
	}
}

func writeSkin(sheet *xlsx.Sheet, r *engine.Report) {
	addRow(sheet, "brand", "skin_type", "pct")
	for _, row := range r.Skin {
		addRow(sheet, row.Brand, string(row.Skin), pct(row.Pct))
	}
}
