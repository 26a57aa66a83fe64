package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialState(t *testing.T) {
	d := New()
	assert.False(t, d.Element(SelectionScreen).Hidden)
	assert.True(t, d.Element(DisplayScreen).Hidden)
	assert.True(t, d.Element(LoadingIndicator).Hidden)

	d.ShowDisplay()
	assert.True(t, d.Element(SelectionScreen).Hidden)
	assert.False(t, d.Element(DisplayScreen).Hidden)
	d.ShowSelection()
	assert.False(t, d.Element(SelectionScreen).Hidden)
}

func TestMutationRestoresEverything(t *testing.T) {
	d := New()
	d.SetHidden(InfoNote, true)
	m0 := d.Begin()
	m0.AddClass(Body, "existing")
	m0.SetStyle(CalendarContainer, "width", "50%")
	before := d.Snapshot()

	m := d.Begin()
	m.Hide(ActionButtons)
	m.Hide(InfoNote)
	m.Show(LoadingIndicator)
	m.Disable(PDFButton)
	m.AddClass(Body, "theme-3")
	m.AddClass(Body, "existing")
	m.SetStyle(CalendarContainer, "width", "1400px")
	m.SetStyle(CalendarHeader, "margin-top", "450px")

	assert.True(t, d.Element(ActionButtons).Hidden)
	assert.True(t, d.Element(PDFButton).Disabled)
	assert.Contains(t, d.Element(Body).Classes, "theme-3")
	assert.Equal(t, "1400px", d.Element(CalendarContainer).Style["width"])

	m.Restore()
	after := d.Snapshot()
	for id, el := range before {
		assert.Equal(t, el, after[id], id)
	}
	assert.False(t, after[ActionButtons].Hidden)
	assert.False(t, after[PDFButton].Disabled)
	assert.Empty(t, after[CalendarHeader].Style)
	assert.True(t, after[LoadingIndicator].Hidden)
	assert.True(t, after[InfoNote].Hidden)
	assert.Equal(t, []string{"existing"}, after[Body].Classes)
}

func TestRestoreRunsOnce(t *testing.T) {
	d := New()
	m := d.Begin()
	m.Hide(ActionButtons)
	m.Restore()

	d.SetHidden(ActionButtons, true)
	m.Restore()
	assert.True(t, d.Element(ActionButtons).Hidden)
}

func TestRemoveClasses(t *testing.T) {
	d := New()
	setup := d.Begin()
	setup.AddClass(Body, "theme-2")

	m := d.Begin()
	m.RemoveClasses(Body, "theme-1", "theme-2")
	require.Empty(t, d.Element(Body).Classes)
	m.Restore()
	assert.Equal(t, []string{"theme-2"}, d.Element(Body).Classes)
}
