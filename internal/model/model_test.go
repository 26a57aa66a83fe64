package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseThemeFallsBackToFirst(t *testing.T) {
	assert.Equal(t, Theme3, ParseTheme("tema3"))
	assert.Equal(t, Theme1, ParseTheme(""))
	assert.Equal(t, Theme1, ParseTheme("tema9"))
}

func TestThemeClassesAndAssets(t *testing.T) {
	assert.Equal(t, "theme-6", Theme6.BodyClass())
	assert.Equal(t, "theme-1", Theme("bogus").BodyClass())
	assert.Equal(t, "tema4.png", Theme4.Asset())
	assert.Equal(t, "tema1.png", Theme("bogus").Asset())
	assert.Equal(t, []string{"theme-1", "theme-2", "theme-3", "theme-4", "theme-5", "theme-6"}, ThemeBodyClasses())
}

func TestCalendarRowValid(t *testing.T) {
	row := CalendarRow{Lunar: "1 Ramazan 1447", Solar: "19 Şubat 2026 Perşembe", Fajr: "05:40"}
	assert.True(t, row.Valid())

	row.Fajr = ""
	assert.False(t, row.Valid())
}

func TestCalendarRowCellsOrder(t *testing.T) {
	row := CalendarRow{"h", "m", "i", "g", "o", "k", "a", "y"}
	assert.Equal(t, [ColumnCount]string{"h", "m", "i", "g", "o", "k", "a", "y"}, row.Cells())
}

func TestOptional(t *testing.T) {
	assert.True(t, Some("07:45").Present)
	assert.False(t, None[string]().Present)
}

func TestCatalogNames(t *testing.T) {
	c := Catalog{}
	country := c.Country("ALMANYA", "Almanya")
	country.States["NRW"] = &State{Name: "Nordrhein-Westfalen"}

	assert.Same(t, country, c.Country("ALMANYA", "ignored"))
	assert.Equal(t, "Almanya", c.CountryName("ALMANYA"))
	assert.Equal(t, "FRANSA", c.CountryName("FRANSA"))
	assert.Equal(t, "Nordrhein-Westfalen", c.StateName("ALMANYA", "NRW"))
	assert.Equal(t, "BAYERN", c.StateName("ALMANYA", "BAYERN"))
}
