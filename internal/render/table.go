// Package render turns calendar rows into the editable imsakiye table.
package render

import (
	"fmt"
	"html/template"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
)

// CommemorativeText fills the full-width row after the 26th fasting day.
const CommemorativeText = "KADİR GECEMİZ MÜBAREK OLSUN"

// CellRef addresses a rendered data cell. Row counts data rows only.
type CellRef struct {
	Row int
	Col int
}

// Edits holds sanitized in-place edits of a rendered table.
type Edits struct {
	Cells map[CellRef]string
	Title *string
}

type Cell struct {
	Text   string
	Edited template.HTML
	Bold   bool
	Class  string
}

// Plain is the text content of the cell, honouring edits.
func (c Cell) Plain() string {
	if c.Edited != "" {
		return PlainText(string(c.Edited))
	}
	return c.Text
}

type Row struct {
	Index         int
	Cells         [model.ColumnCount]Cell
	Commemorative bool
}

type Festival struct {
	Date          string
	PrayerTime    string
	PrayerVisible bool
}

// Table is the view model of the rendered calendar.
type Table struct {
	Title    string
	Headers  [model.ColumnCount]string
	Rows     []Row
	Festival Festival
	DataRows int
}

// Build applies the filtering and annotation rules to a selection.
func Build(sel model.Selection, edits Edits) Table {
	t := Table{Title: fmt.Sprintf("%s, %s, %s", sel.City, sel.State, sel.Country)}
	if edits.Title != nil {
		t.Title = *edits.Title
	}
	for i, c := range model.Columns {
		t.Headers[i] = c.Name
	}

	for _, r := range sel.Rows {
		if !r.Valid() || IsPostObservance(r.Lunar) {
			continue
		}

		row := Row{Index: t.DataRows}
		for col, text := range r.Cells() {
			cell := Cell{Text: text, Bold: model.Columns[col].Bold}
			if cell.Bold {
				cell.Class = model.Columns[col].Key + "-cell"
			}
			if v, ok := edits.Cells[CellRef{Row: t.DataRows, Col: col}]; ok {
				cell.Edited = template.HTML(v)
			}
			row.Cells[col] = cell
		}
		t.Rows = append(t.Rows, row)
		t.DataRows++

		if IsFastingDay(r.Lunar, commemorativeDay) {
			t.Rows = append(t.Rows, Row{Index: -1, Commemorative: true})
		}
	}
	log.Debug().Int("rows", t.DataRows).Str("city", sel.City).Msg("table rendered")

	t.Festival.Date = FestivalSentence(sel.Rows)
	if sel.FestivalPrayer.Present {
		t.Festival.PrayerTime = sel.FestivalPrayer.Value
		t.Festival.PrayerVisible = true
	}
	return t
}

// Grid returns the plain text of every data row in column order.
func (t Table) Grid() [][]string {
	out := make([][]string, 0, t.DataRows)
	for _, r := range t.Rows {
		if r.Commemorative {
			continue
		}
		line := make([]string, model.ColumnCount)
		for i, c := range r.Cells {
			line[i] = c.Plain()
		}
		out = append(out, line)
	}
	return out
}
