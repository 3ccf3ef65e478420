package export

import (
	"fmt"
	"io"

	"github.com/meltforce/liftplan/internal/schedule"
	"github.com/xuri/excelize/v2"
)

// Workbook builds one sheet per week. Each session starts with a bold title
// row followed by its exercise rows.
func Workbook(m schedule.Month) (*excelize.File, error) {
	f := excelize.NewFile()

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating title style: %w", err)
	}
	sessionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E2EFDA"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("creating session style: %w", err)
	}

	for i, wp := range m.Weeks {
		sheet := wp.Week.String()
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("creating sheet %s: %w", sheet, err)
		}

		if err := writeWeek(f, sheet, wp, titleStyle, sessionStyle); err != nil {
			return nil, fmt.Errorf("writing sheet %s: %w", sheet, err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

var colWidths = []struct {
	col   string
	width float64
}{{"A", 12}, {"B", 40}, {"C", 22}, {"D", 10}}

// writeWeek fills an existing sheet with one week's plan.
func writeWeek(f *excelize.File, sheet string, wp schedule.WeekPlan, titleStyle, sessionStyle int) error {
	if err := f.SetCellValue(sheet, "A1", wp.Header); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "D1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", titleStyle); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheet, 1, 24); err != nil {
		return err
	}
	for _, c := range colWidths {
		if err := f.SetColWidth(sheet, c.col, c.col, c.width); err != nil {
			return err
		}
	}

	row := 3
	for _, s := range wp.Sessions {
		first, last := fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row)
		if err := f.SetCellValue(sheet, first, s.Header); err != nil {
			return err
		}
		if err := f.MergeCell(sheet, first, last); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, first, last, sessionStyle); err != nil {
			return err
		}
		row++

		for _, r := range s.Rows {
			values := []any{string(r.Section), r.Exercise, r.Scheme}
			if r.Weight != nil {
				values = append(values, *r.Weight)
			}
			for i, v := range values {
				cell := fmt.Sprintf("%c%d", 'A'+i, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return fmt.Errorf("cell %s: %w", cell, err)
				}
			}
			row++
		}
		row++
	}
	return nil
}

// WriteXLSX streams the workbook to w.
func WriteXLSX(w io.Writer, m schedule.Month) error {
	f, err := Workbook(m)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// ToXLSX exports the month to an XLSX file.
func ToXLSX(m schedule.Month, filename string) error {
	f, err := Workbook(m)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
