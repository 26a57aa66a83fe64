package fontsettings

import (
	"fmt"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
)

// FieldControls is the state of the four style controls of one scope.
type FieldControls struct {
	Scope         string `json:"scope"`
	FontFamily    string `json:"fontFamily"`
	FontSize      int    `json:"fontSize"`
	FontSizeLabel string `json:"fontSizeLabel"`
	FontWeight    string `json:"fontWeight"`
	Color         string `json:"color"`
	ColorLabel    string `json:"colorLabel"`
}

// GroupControls adds the toggle and the visibility state it drives.
type GroupControls struct {
	FieldControls
	Name     string `json:"name,omitempty"`
	Enabled  bool   `json:"enabled"`
	Open     bool   `json:"open"`
	Active   bool   `json:"active"`
	Disabled bool   `json:"disabled"`
}

// Controls is the projection of Settings onto the settings panel.
type Controls struct {
	Global  FieldControls                    `json:"global"`
	Header  GroupControls                    `json:"header"`
	Columns [model.ColumnCount]GroupControls `json:"columns"`
	Fonts   []Font                           `json:"fonts"`
	Weights []string                         `json:"weights"`
}

func projectFields(scope string, spec StyleSpec) FieldControls {
	return FieldControls{
		Scope:         scope,
		FontFamily:    spec.FontFamily,
		FontSize:      spec.FontSize,
		FontSizeLabel: fmt.Sprintf("%dpx", spec.FontSize),
		FontWeight:    spec.FontWeight,
		Color:         spec.Color,
		ColorLabel:    spec.Color,
	}
}

func projectHeader(t Toggled) GroupControls {
	return GroupControls{
		FieldControls: projectFields(ScopeHeader, t.StyleSpec),
		Enabled:       t.Enabled,
		Open:          t.Enabled,
		Disabled:      !t.Enabled,
	}
}

func projectColumn(i int, t Toggled) GroupControls {
	return GroupControls{
		FieldControls: projectFields(columnScope(i), t.StyleSpec),
		Name:          model.Columns[i].Name,
		Enabled:       t.Enabled,
		Open:          t.Enabled,
		Active:        t.Enabled,
	}
}

func project(s Settings) Controls {
	c := Controls{
		Global:  projectFields(ScopeGlobal, s.Global),
		Header:  projectHeader(s.Header),
		Fonts:   AvailableFonts,
		Weights: FontWeights,
	}
	for i, col := range s.Columns {
		c.Columns[i] = projectColumn(i, col)
	}
	return c
}
