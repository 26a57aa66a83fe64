// Package fontsettings holds the typography preferences of the imsakiye
// table: defaults, persistence, typed merging and stylesheet generation.
package fontsettings

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
)

// StorageKey is the fixed key the settings blob is persisted under.
const StorageKey = "imsakiye-font-settings"

type StyleSpec struct {
	FontFamily string `json:"fontFamily"`
	FontSize   int    `json:"fontSize"`
	FontWeight string `json:"fontWeight"`
	Color      string `json:"color"`
}

// Toggled is a StyleSpec that only takes effect when enabled.
type Toggled struct {
	Enabled bool `json:"enabled"`
	StyleSpec
}

// Columns holds one entry per table column. It serializes as an object
// keyed "0".."7".
type Columns [model.ColumnCount]Toggled

type Settings struct {
	Global  StyleSpec `json:"global"`
	Header  Toggled   `json:"header"`
	Columns Columns   `json:"columns"`
}

// Defaults returns a fresh copy of the default settings. Settings holds no
// references, so the returned value never aliases another.
func Defaults() Settings {
	s := Settings{
		Global: StyleSpec{FontFamily: SystemFont, FontSize: 14, FontWeight: "normal", Color: "#333333"},
		Header: Toggled{
			Enabled:   false,
			StyleSpec: StyleSpec{FontFamily: SystemFont, FontSize: 14, FontWeight: "bold", Color: "#ffffff"},
		},
	}
	for i, col := range model.Columns {
		s.Columns[i] = Toggled{
			StyleSpec: StyleSpec{FontFamily: SystemFont, FontSize: 14, FontWeight: col.DefaultWeight, Color: col.DefaultColor},
		}
	}
	return s
}

func (c Columns) MarshalJSON() ([]byte, error) {
	m := make(map[string]Toggled, len(c))
	for i, col := range c {
		m[strconv.Itoa(i)] = col
	}
	return json.Marshal(m)
}

func (c *Columns) UnmarshalJSON(data []byte) error {
	var m map[string]Toggled
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for k, v := range m {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= len(c) {
			continue
		}
		c[i] = v
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate reports the first field of spec that falls outside the closed
// value sets.
func (spec StyleSpec) Validate() error {
	switch {
	case !knownFont(spec.FontFamily):
		return fmt.Errorf("%w: fontFamily %q", ErrInvalidValue, spec.FontFamily)
	case spec.FontSize < MinFontSize || spec.FontSize > MaxFontSize:
		return fmt.Errorf("%w: fontSize %d", ErrInvalidValue, spec.FontSize)
	case !knownWeight(spec.FontWeight):
		return fmt.Errorf("%w: fontWeight %q", ErrInvalidValue, spec.FontWeight)
	case !hexColor.MatchString(spec.Color):
		return fmt.Errorf("%w: color %q", ErrInvalidValue, spec.Color)
	}
	return nil
}

// sanitize replaces every invalid field of spec with the field from def.
func (spec StyleSpec) sanitize(def StyleSpec) StyleSpec {
	if !knownFont(spec.FontFamily) {
		spec.FontFamily = def.FontFamily
	}
	if spec.FontSize < MinFontSize || spec.FontSize > MaxFontSize {
		spec.FontSize = def.FontSize
	}
	if !knownWeight(spec.FontWeight) {
		spec.FontWeight = def.FontWeight
	}
	if !hexColor.MatchString(spec.Color) {
		spec.Color = def.Color
	}
	return spec
}

// Sanitize returns s with every invalid field reset to its default.
func (s Settings) Sanitize() Settings {
	def := Defaults()
	s.Global = s.Global.sanitize(def.Global)
	s.Header.StyleSpec = s.Header.StyleSpec.sanitize(def.Header.StyleSpec)
	for i := range s.Columns {
		s.Columns[i].StyleSpec = s.Columns[i].StyleSpec.sanitize(def.Columns[i].StyleSpec)
	}
	return s
}
