// Package location drives the state/city pickers that precede a calendar fetch.
package location

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
)

// Placeholder texts shown as the first, empty option of a picker.
const (
	PlaceholderChooseState = "-- Eyalet Seçin --"
	PlaceholderChooseCity  = "-- Şehir Seçin --"
	PlaceholderStateFirst  = "-- Önce Eyalet Seçin --"
	PlaceholderLoading     = "-- Yükleniyor... --"
	PlaceholderNoCities    = "-- Şehir bulunamadı --"
	PlaceholderError       = "-- Hata --"
)

var (
	ErrNoStates            = errors.New("Eyaletler yüklenemedi.")
	ErrIncompleteSelection = errors.New("Lütfen eyalet ve şehir seçin.")
)

// Source is the subset of the remote gateway the flow needs.
type Source interface {
	States(ctx context.Context, country string) ([]model.StateEntry, error)
	Cities(ctx context.Context, country, state string) ([]string, error)
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Picker is the render state of one select control.
type Picker struct {
	Placeholder string   `json:"placeholder"`
	Options     []Option `json:"options"`
	Enabled     bool     `json:"enabled"`
}

// Loading is the picker shown while a city list is being fetched.
func Loading() Picker {
	return Picker{Placeholder: PlaceholderLoading}
}

// Flow populates pickers for one fixed country.
type Flow struct {
	src         Source
	country     string
	countryName string
}

func New(src Source, country string) *Flow {
	return &Flow{src: src, country: country, countryName: country}
}

// Country is the fixed country code the flow operates on.
func (f *Flow) Country() string { return f.country }

// LoadStates fetches the state list, records it in the catalog and returns
// the sorted state picker.
func (f *Flow) LoadStates(ctx context.Context, catalog model.Catalog) (Picker, error) {
	picker := Picker{Placeholder: PlaceholderChooseState, Enabled: true}

	states, err := f.src.States(ctx, f.country)
	if err != nil {
		log.Error().Err(err).Str("country", f.country).Msg("failed to load states")
		return picker, fmt.Errorf("Eyaletler yüklenirken bir hata oluştu: %w", err)
	}

	country := catalog.Country(f.country, f.countryName)
	country.States = map[string]*model.State{}
	for _, s := range states {
		country.States[s.Code] = &model.State{Name: s.Name}
	}

	if len(states) == 0 {
		return picker, ErrNoStates
	}

	sorted := make([]model.StateEntry, 0, len(states))
	for _, s := range states {
		if s.Code != "" && s.Name != "" {
			sorted = append(sorted, s)
		}
	}
	c := collate.New(language.Turkish)
	sort.SliceStable(sorted, func(i, j int) bool {
		return c.CompareString(sorted[i].Name, sorted[j].Name) < 0
	})
	for _, s := range sorted {
		picker.Options = append(picker.Options, Option{Value: s.Code, Label: s.Name})
	}
	return picker, nil
}

// StateChange fetches the cities of stateCode and returns the city picker.
// The picker stays disabled unless at least one city was found.
func (f *Flow) StateChange(ctx context.Context, catalog model.Catalog, stateCode string) (Picker, error) {
	if stateCode == "" {
		return Picker{Placeholder: PlaceholderStateFirst}, nil
	}

	cities, err := f.src.Cities(ctx, f.country, stateCode)
	if err != nil {
		log.Error().Err(err).Str("state", stateCode).Msg("failed to load cities")
		return Picker{Placeholder: PlaceholderError}, fmt.Errorf("Şehirler yüklenirken bir hata oluştu: %w", err)
	}

	if country, ok := catalog[f.country]; ok {
		if st, ok := country.States[stateCode]; ok {
			st.Cities = cities
		}
	}

	if len(cities) == 0 {
		return Picker{Placeholder: PlaceholderNoCities}, nil
	}

	sorted := append([]string(nil), cities...)
	collate.New(language.Turkish).SortStrings(sorted)

	picker := Picker{Placeholder: PlaceholderChooseCity, Enabled: true}
	for _, city := range sorted {
		picker.Options = append(picker.Options, Option{Value: city, Label: city})
	}
	return picker, nil
}

// CityChange reports whether the continue action is available.
func CityChange(stateCode, city string) bool {
	return stateCode != "" && city != ""
}

// Continue validates that both selections are present.
func Continue(stateCode, city string) error {
	if !CityChange(stateCode, city) {
		return ErrIncompleteSelection
	}
	return nil
}
