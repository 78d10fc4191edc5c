package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/glowlab/retention-cli/internal/model"
)

// LoadCSV reads the partitioned CSV export: files named by pattern
// (e.g. data_part%d.csv) numbered from 1, concatenated in order. A
// missing first partition means no data has been exported yet and
// yields an empty table, not an error; the sequence stops at the first
// gap.
func LoadCSV(ctx context.Context, dir, pattern string) (*model.EventTable, error) {
	if pattern == "" {
		pattern = "data_part%d.csv"
	}

	var (
		idx  map[string]int
		rows [][]string
	)
	for part := 1; ; part++ {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "dataset: csv load cancelled")
		}

		path := filepath.Join(dir, fmt.Sprintf(pattern, part))
		if _, err := os.Stat(path); err != nil {
			if part == 1 {
				zap.L().Warn("dataset: first csv partition missing, empty table",
					zap.String("path", path))
				return model.NewEventTable(nil), nil
			}
			break
		}

		header, partRows, err := readCSVFile(path)
		if err != nil {
			return nil, err
		}

		if idx == nil {
			idx, err = columnIndex(header)
			if err != nil {
				return nil, eris.Wrapf(err, "dataset: %s", path)
			}
		}
		rows = append(rows, partRows...)

		zap.L().Debug("dataset: csv partition loaded",
			zap.String("path", path),
			zap.Int("rows", len(partRows)),
		)
	}

	return collectRows(rows, idx, dir), nil
}

func readCSVFile(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, eris.Errorf("dataset: %s is empty", path)
	}
	if err != nil {
		return nil, nil, eris.Wrapf(err, "dataset: read header of %s", path)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, eris.Wrapf(err, "dataset: read row of %s", path)
		}
		rows = append(rows, record)
	}
	return header, rows, nil
}
