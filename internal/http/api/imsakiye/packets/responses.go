package packets

import (
	"github.com/Nixie-Tech-LLC/imsakiye/internal/fontsettings"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/location"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/page"
)

// RESPONSES FOR /api/*

type PickerResponse struct {
	Placeholder string            `json:"placeholder"`
	Enabled     bool              `json:"enabled"`
	Options     []location.Option `json:"options"`
}

type CityResponse struct {
	ContinueEnabled bool `json:"continue_enabled"`
}

type FestivalResponse struct {
	Date          string `json:"date"`
	PrayerTime    string `json:"prayer_time,omitempty"`
	PrayerVisible bool   `json:"prayer_visible"`
}

// CalendarResponse is the rendered table plus the page state to paint.
type CalendarResponse struct {
	Title      string                  `json:"title"`
	HTML       string                  `json:"html"`
	Rows       int                     `json:"rows"`
	Festival   FestivalResponse        `json:"festival"`
	Stylesheet string                  `json:"stylesheet"`
	Page       map[string]page.Element `json:"page"`
}

type CellResponse struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	HTML string `json:"html"`
}

type TextResponse struct {
	Text string `json:"text"`
}

type FontsResponse struct {
	Controls   fontsettings.Controls `json:"controls"`
	Stylesheet string                `json:"stylesheet"`
}

type SaveResponse struct {
	Saved bool `json:"saved"`
}

type ThemeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BodyClass string `json:"body_class"`
	Asset     string `json:"asset"`
}

type ExportResponse struct {
	ID       string                  `json:"id"`
	FileName string                  `json:"file_name"`
	URL      string                  `json:"url"`
	Size     int                     `json:"size"`
	Page     map[string]page.Element `json:"page"`
}
