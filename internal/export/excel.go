// Package export builds xlsx workbooks for download, primarily the
// finger-blood glucose export.
package export

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/glucolab/labconsole/internal/domain/model"
	"github.com/glucolab/labconsole/internal/util"
)

const (
	// Column width is content-driven with a little padding, capped so one
	// long cell cannot blow up the layout.
	widthPadding = 2
	widthCap     = 50

	filenameStampLayout = "20060102T150405"
)

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Filename appends a compact timestamp to the base name, so repeated
// exports never collide in the operator's download directory.
func Filename(base string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", base, now.Format(filenameStampLayout))
}

// WriteWorkbook renders the sheets into one xlsx workbook on w.
func WriteWorkbook(w io.Writer, sheets ...Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			// The workbook starts with a default sheet; claim it.
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("add sheet %q: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet); err != nil {
			return fmt.Errorf("write sheet %q: %w", sheet.Name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	headers := make([]any, len(sheet.Headers))
	widths := make([]int, len(sheet.Headers))
	for i, h := range sheet.Headers {
		headers[i] = h
		widths[i] = len(h)
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &headers); err != nil {
		return err
	}

	for r, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return err
		}
		for c, v := range row {
			if c < len(widths) {
				widths[c] = max(widths[c], len(fmt.Sprint(v)))
			}
		}
	}

	for c, w := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, col, col, float64(min(w+widthPadding, widthCap))); err != nil {
			return err
		}
	}
	return nil
}

// FingerBloodSheet shapes glucose measurements into the export layout:
// newest first, times rendered without the wire format's T separator.
func FingerBloodSheet(records []model.FingerBloodRecord) Sheet {
	sorted := slices.Clone(records)
	slices.SortFunc(sorted, func(a, b model.FingerBloodRecord) int {
		return b.CollectionTime.Compare(a.CollectionTime.Time)
	})

	rows := make([][]any, 0, len(sorted))
	for _, rec := range sorted {
		rows = append(rows, []any{
			rec.FingerBloodFileID,
			rec.PersonName,
			rec.BatchNumber,
			util.FormatDateTime(rec.CollectionTime),
			rec.BloodGlucoseValue,
		})
	}

	return Sheet{
		Name:    "Finger Blood Data",
		Headers: []string{"Record ID", "Person Name", "Batch Number", "Collection Time", "Blood Glucose (mmol/L)"},
		Rows:    rows,
	}
}
