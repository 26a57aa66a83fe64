package model

import "fmt"

// Theme is a decorative background skin for the exported document.
type Theme string

const (
	Theme1 Theme = "tema1"
	Theme2 Theme = "tema2"
	Theme3 Theme = "tema3"
	Theme4 Theme = "tema4"
	Theme5 Theme = "tema5"
	Theme6 Theme = "tema6"
)

// Themes lists the selectable themes in display order.
var Themes = []Theme{Theme1, Theme2, Theme3, Theme4, Theme5, Theme6}

// ParseTheme maps an identifier to a known theme. Unknown identifiers fall
// back to Theme1.
func ParseTheme(id string) Theme {
	for _, t := range Themes {
		if string(t) == id {
			return t
		}
	}
	return Theme1
}

// BodyClass is the class applied to the document body while the theme is active.
func (t Theme) BodyClass() string {
	for i, known := range Themes {
		if known == t {
			return fmt.Sprintf("theme-%d", i+1)
		}
	}
	return "theme-1"
}

// Asset is the background image file name for the theme.
func (t Theme) Asset() string {
	return string(ParseTheme(string(t))) + ".png"
}

// ThemeBodyClasses lists every body class a theme may set.
func ThemeBodyClasses() []string {
	out := make([]string, len(Themes))
	for i, t := range Themes {
		out[i] = t.BodyClass()
	}
	return out
}
