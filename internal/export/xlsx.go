package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/render"
)

const sheetName = "Imsakiye"

// DefaultYear is the calendar year used in file names when none is configured.
const DefaultYear = 2026

// FileName is the download name of an export.
func FileName(sel model.Selection, year int, ext string) string {
	if year == 0 {
		year = DefaultYear
	}
	return fmt.Sprintf("imsakiye-%s-%s-%d.%s", sel.City, sel.State, year, ext)
}

// XLSX writes the rendered table, edits included, as a spreadsheet.
func XLSX(t render.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(model.ColumnCount)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "1A5F3F"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1A5F3F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	commemorativeStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFF3CD"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	emphasis := map[int]int{}
	for i, col := range model.Columns {
		if !col.Bold {
			continue
		}
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: strings.TrimPrefix(col.DefaultColor, "#")},
		})
		if err != nil {
			return nil, err
		}
		emphasis[i] = id
	}

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheetName, "A1", t.Title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}

	headers := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A2", &headers); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A2", lastCol+"2", headerStyle); err != nil {
		return nil, err
	}

	line := 3
	for _, row := range t.Rows {
		start := fmt.Sprintf("A%d", line)
		if row.Commemorative {
			end := fmt.Sprintf("%s%d", lastCol, line)
			if err := f.MergeCell(sheetName, start, end); err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, start, render.CommemorativeText); err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(sheetName, start, start, commemorativeStyle); err != nil {
				return nil, err
			}
			line++
			continue
		}
		values := make([]any, model.ColumnCount)
		for i, c := range row.Cells {
			values[i] = c.Plain()
		}
		if err := f.SetSheetRow(sheetName, start, &values); err != nil {
			return nil, err
		}
		for col, style := range emphasis {
			cell, _ := excelize.CoordinatesToCellName(col+1, line)
			if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
				return nil, err
			}
		}
		line++
	}

	line++
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", line), t.Festival.Date); err != nil {
		return nil, err
	}
	if t.Festival.PrayerVisible {
		line++
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", line), "Bayram Namazı: "+t.Festival.PrayerTime); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
