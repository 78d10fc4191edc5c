package dataset

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/glowlab/retention-cli/internal/model"
)

// LoadXLSX reads the event table from an XLSX workbook. The first row
// of the sheet is the header; sheet selects by name, the first sheet
// when empty.
func LoadXLSX(path, sheet string) (*model.EventTable, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open xlsx %s", path)
	}

	s, err := pickSheet(f, sheet)
	if err != nil {
		return nil, err
	}
	if len(s.Rows) == 0 {
		return model.NewEventTable(nil), nil
	}

	idx, err := columnIndex(rowStrings(s.Rows[0]))
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: %s", path)
	}

	rows := make([][]string, 0, len(s.Rows)-1)
	for _, row := range s.Rows[1:] {
		rows = append(rows, rowStrings(row))
	}
	return collectRows(rows, idx, path), nil
}

func pickSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		s, ok := f.Sheet[name]
		if !ok {
			return nil, eris.Errorf("dataset: sheet %q not found", name)
		}
		return s, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("dataset: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = c.String()
	}
	return cells
}
