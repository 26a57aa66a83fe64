// Package page holds the presentation state of one imsakiye page: which
// elements are visible or enabled, their classes and inline styles. Temporary
// changes go through a Mutation so they can be reverted as a unit.
package page

import (
	"sort"
	"sync"
)

// Element ids the page template and the export pipeline agree on.
const (
	Body               = "body"
	SelectionScreen    = "selection-screen"
	DisplayScreen      = "display-screen"
	MainContainer      = "container"
	CalendarContainer  = "imsakiye-container"
	CalendarHeader     = "imsakiye-header"
	ActionButtons      = "action-buttons"
	EditTitleButton    = "edit-title-btn"
	FontSettingsButton = "font-settings-btn"
	InfoNote           = "info-note"
	PDFButton          = "print-pdf-btn"
	ThemeSelector      = "theme-modal"
	LoadingIndicator   = "loading-modal"
	ContinueButton     = "continue-btn"
)

// Element is the observable state of one element.
type Element struct {
	Hidden   bool              `json:"hidden"`
	Disabled bool              `json:"disabled"`
	Classes  []string          `json:"classes,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
}

type element struct {
	hidden   bool
	disabled bool
	classes  map[string]bool
	style    map[string]string
}

func (e *element) snapshot() Element {
	out := Element{Hidden: e.hidden, Disabled: e.disabled}
	for c := range e.classes {
		out.Classes = append(out.Classes, c)
	}
	sort.Strings(out.Classes)
	if len(e.style) > 0 {
		out.Style = make(map[string]string, len(e.style))
		for k, v := range e.style {
			out.Style[k] = v
		}
	}
	return out
}

// Document is safe for concurrent use.
type Document struct {
	mu       sync.Mutex
	elements map[string]*element
}

// New returns the initial page: the selection screen visible, the display
// screen and loading indicator hidden.
func New() *Document {
	d := &Document{elements: map[string]*element{}}
	d.el(DisplayScreen).hidden = true
	d.el(LoadingIndicator).hidden = true
	return d
}

func (d *Document) el(id string) *element {
	e, ok := d.elements[id]
	if !ok {
		e = &element{classes: map[string]bool{}, style: map[string]string{}}
		d.elements[id] = e
	}
	return e
}

// Element returns a copy of the state of id.
func (d *Document) Element(id string) Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.el(id).snapshot()
}

// Snapshot returns a copy of every known element.
func (d *Document) Snapshot() map[string]Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]Element, len(d.elements))
	for id, e := range d.elements {
		out[id] = e.snapshot()
	}
	return out
}

// SetHidden changes visibility permanently.
func (d *Document) SetHidden(id string, hidden bool) {
	d.mu.Lock()
	d.el(id).hidden = hidden
	d.mu.Unlock()
}

// SetDisabled changes the enabled state permanently.
func (d *Document) SetDisabled(id string, disabled bool) {
	d.mu.Lock()
	d.el(id).disabled = disabled
	d.mu.Unlock()
}

// ShowDisplay switches from the selection screen to the calendar display.
func (d *Document) ShowDisplay() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.el(SelectionScreen).hidden = true
	d.el(DisplayScreen).hidden = false
}

// ShowSelection switches back to the selection screen.
func (d *Document) ShowSelection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.el(SelectionScreen).hidden = false
	d.el(DisplayScreen).hidden = true
}

// Begin starts recording temporary changes.
func (d *Document) Begin() *Mutation {
	return &Mutation{doc: d}
}
