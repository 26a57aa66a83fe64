package calendar

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
)

type fakeSource struct {
	rows     []model.CalendarRow
	rowsErr  error
	festival model.FestivalPrayer
	festErr  error
}

func (f *fakeSource) Calendar(ctx context.Context, country, state, city string) ([]model.CalendarRow, error) {
	return f.rows, f.rowsErr
}

func (f *fakeSource) FestivalPrayer(ctx context.Context, country, state, city string) (model.FestivalPrayer, error) {
	return f.festival, f.festErr
}

var oneRow = []model.CalendarRow{{Lunar: "1 Ramazan 1447", Solar: "19 Şubat 2026 Perşembe", Fajr: "05:40"}}

func catalog() model.Catalog {
	c := model.Catalog{}
	c.Country("ALMANYA", "ALMANYA").States["NRW"] = &model.State{Name: "Kuzey Ren-Vestfalya"}
	return c
}

func TestFetchAssemblesSelection(t *testing.T) {
	svc := New(&fakeSource{rows: oneRow, festival: model.FestivalPrayer{Time: "07:45"}}, "ALMANYA")

	sel, err := svc.Fetch(context.Background(), catalog(), "NRW", "Köln")
	require.NoError(t, err)
	assert.Equal(t, "ALMANYA", sel.Country)
	assert.Equal(t, "Kuzey Ren-Vestfalya", sel.State)
	assert.Equal(t, "NRW", sel.StateCode)
	assert.Equal(t, "Köln", sel.City)
	assert.Len(t, sel.Rows, 1)
	assert.Equal(t, model.Some("07:45"), sel.FestivalPrayer)
}

func TestFetchFestivalFailureIsSoft(t *testing.T) {
	svc := New(&fakeSource{rows: oneRow, festErr: errors.New("502")}, "ALMANYA")

	sel, err := svc.Fetch(context.Background(), catalog(), "NRW", "Köln")
	require.NoError(t, err)
	assert.False(t, sel.FestivalPrayer.Present)
}

func TestFetchUnknownStateFallsBackToCode(t *testing.T) {
	svc := New(&fakeSource{rows: oneRow}, "ALMANYA")

	sel, err := svc.Fetch(context.Background(), model.Catalog{}, "HB", "Bremen")
	require.NoError(t, err)
	assert.Equal(t, "HB", sel.State)
	assert.Equal(t, "ALMANYA", sel.Country)
}

func TestFetchRequiredFailures(t *testing.T) {
	_, err := New(&fakeSource{}, "ALMANYA").Fetch(context.Background(), catalog(), "NRW", "Köln")
	assert.ErrorIs(t, err, ErrNoData)

	boom := errors.New("boom")
	_, err = New(&fakeSource{rowsErr: boom}, "ALMANYA").Fetch(context.Background(), catalog(), "NRW", "Köln")
	assert.ErrorIs(t, err, boom)
}
