package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
)

type fakeSource struct {
	states    []model.StateEntry
	cities    map[string][]string
	statesErr error
	citiesErr error
}

func (f *fakeSource) States(ctx context.Context, country string) ([]model.StateEntry, error) {
	return f.states, f.statesErr
}

func (f *fakeSource) Cities(ctx context.Context, country, state string) ([]string, error) {
	return f.cities[state], f.citiesErr
}

func TestLoadStatesSortsWithTurkishCollation(t *testing.T) {
	src := &fakeSource{states: []model.StateEntry{
		{Code: "SH", Name: "Şleswig"},
		{Code: "SA", Name: "Saksonya"},
		{Code: "BY", Name: "Bavyera"},
		{Code: "XX", Name: ""},
	}}
	catalog := model.Catalog{}

	picker, err := New(src, "ALMANYA").LoadStates(context.Background(), catalog)
	require.NoError(t, err)

	assert.True(t, picker.Enabled)
	assert.Equal(t, PlaceholderChooseState, picker.Placeholder)
	require.Len(t, picker.Options, 3)
	assert.Equal(t, []string{"BY", "SA", "SH"}, []string{
		picker.Options[0].Value, picker.Options[1].Value, picker.Options[2].Value,
	})
	assert.Equal(t, "Saksonya", catalog.StateName("ALMANYA", "SA"))
}

func TestLoadStatesFailure(t *testing.T) {
	src := &fakeSource{statesErr: errors.New("boom")}
	_, err := New(src, "ALMANYA").LoadStates(context.Background(), model.Catalog{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestLoadStatesEmpty(t *testing.T) {
	_, err := New(&fakeSource{}, "ALMANYA").LoadStates(context.Background(), model.Catalog{})
	assert.ErrorIs(t, err, ErrNoStates)
}

func TestStateChangeSortsCities(t *testing.T) {
	src := &fakeSource{
		states: []model.StateEntry{{Code: "NRW", Name: "Kuzey Ren-Vestfalya"}},
		cities: map[string][]string{"NRW": {"Zwickau", "Çelle", "Überlingen", "Celle", "Ulm", "Dortmund"}},
	}
	catalog := model.Catalog{}
	flow := New(src, "ALMANYA")
	_, err := flow.LoadStates(context.Background(), catalog)
	require.NoError(t, err)

	picker, err := flow.StateChange(context.Background(), catalog, "NRW")
	require.NoError(t, err)
	assert.True(t, picker.Enabled)

	var got []string
	for _, o := range picker.Options {
		got = append(got, o.Value)
	}
	assert.Equal(t, []string{"Celle", "Çelle", "Dortmund", "Ulm", "Überlingen", "Zwickau"}, got)
	assert.Len(t, catalog["ALMANYA"].States["NRW"].Cities, 6)
}

func TestStateChangeEmptyAndMissing(t *testing.T) {
	flow := New(&fakeSource{cities: map[string][]string{}}, "ALMANYA")

	picker, err := flow.StateChange(context.Background(), model.Catalog{}, "HB")
	require.NoError(t, err)
	assert.False(t, picker.Enabled)
	assert.Equal(t, PlaceholderNoCities, picker.Placeholder)

	picker, err = flow.StateChange(context.Background(), model.Catalog{}, "")
	require.NoError(t, err)
	assert.False(t, picker.Enabled)
	assert.Equal(t, PlaceholderStateFirst, picker.Placeholder)
}

func TestStateChangeError(t *testing.T) {
	flow := New(&fakeSource{citiesErr: errors.New("offline")}, "ALMANYA")
	picker, err := flow.StateChange(context.Background(), model.Catalog{}, "HB")
	require.Error(t, err)
	assert.False(t, picker.Enabled)
	assert.Equal(t, PlaceholderError, picker.Placeholder)
}

func TestContinueRequiresBoth(t *testing.T) {
	assert.False(t, CityChange("NRW", ""))
	assert.True(t, CityChange("NRW", "Köln"))
	assert.ErrorIs(t, Continue("", "Köln"), ErrIncompleteSelection)
	assert.NoError(t, Continue("NRW", "Köln"))
}
