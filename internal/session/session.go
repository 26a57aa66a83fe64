// Package session keeps the per-browser state of the imsakiye page: the
// location catalog, the loaded calendar with its edits, font settings, the
// page presentation state and the export pipeline.
package session

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/calendar"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/export"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/fontsettings"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/location"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/page"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/render"
)

var (
	ErrBusy       = errors.New("a calendar request is already in progress")
	ErrNoCalendar = errors.New("Önce bir imsakiye yükleyin.")
	ErrCellRange  = errors.New("cell out of range")
	ErrNoExport   = errors.New("Dosya bulunamadı.")
)

type Session struct {
	ID string

	Fonts  *fontsettings.Model
	Doc    *page.Document
	Export *export.Pipeline

	mu        sync.Mutex
	catalog   model.Catalog
	stateCode string
	city      string
	selection model.Selection
	loaded    bool
	edits     render.Edits
	exports   map[string]string

	fetching atomic.Bool
	lastSeen atomic.Int64
}

func newSession(id string, fonts *fontsettings.Model, env *export.Env) *Session {
	s := &Session{
		ID:      id,
		Fonts:   fonts,
		Doc:     page.New(),
		Export:  export.NewPipeline(env),
		catalog: model.Catalog{},
		edits:   render.Edits{Cells: map[render.CellRef]string{}},
		exports: map[string]string{},
	}
	s.Touch()
	return s
}

func (s *Session) Touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// LoadStates fills the state picker.
func (s *Session) LoadStates(ctx context.Context, flow *location.Flow) (location.Picker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return flow.LoadStates(ctx, s.catalog)
}

// StateChange records the chosen state, clears the chosen city and fills
// the city picker.
func (s *Session) StateChange(ctx context.Context, flow *location.Flow, stateCode string) (location.Picker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stateCode = stateCode
	s.city = ""
	s.Doc.SetDisabled(page.ContinueButton, true)
	return flow.StateChange(ctx, s.catalog, stateCode)
}

// CityChange records the chosen city and reports whether continuing is
// possible.
func (s *Session) CityChange(stateCode, city string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stateCode = stateCode
	s.city = city
	ok := location.CityChange(stateCode, city)
	s.Doc.SetDisabled(page.ContinueButton, !ok)
	return ok
}

// Fetch loads the calendar of the chosen location and switches the page to
// the display screen. On failure the display screen is hidden and the
// previous calendar is kept. Concurrent fetches are rejected with ErrBusy.
func (s *Session) Fetch(ctx context.Context, svc *calendar.Service, stateCode, city string) (render.Table, error) {
	if !s.fetching.CompareAndSwap(false, true) {
		return render.Table{}, ErrBusy
	}
	defer s.fetching.Store(false)

	if err := location.Continue(stateCode, city); err != nil {
		return render.Table{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.Doc.Begin()
	m.Show(page.LoadingIndicator)
	m.Disable(page.ContinueButton)
	sel, err := svc.Fetch(ctx, s.catalog, stateCode, city)
	m.Restore()
	if err != nil {
		s.Doc.ShowSelection()
		return render.Table{}, err
	}

	s.stateCode, s.city = stateCode, city
	s.selection = sel
	s.loaded = true
	s.edits = render.Edits{Cells: map[render.CellRef]string{}}
	s.Doc.ShowDisplay()
	log.Info().Str("session", s.ID).Str("state", stateCode).Str("city", city).Int("rows", len(sel.Rows)).Msg("calendar loaded")
	return render.Build(sel, s.edits), nil
}

// Table renders the current calendar with its edits.
func (s *Session) Table() (render.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return render.Table{}, ErrNoCalendar
	}
	return render.Build(s.selection, s.edits), nil
}

// Selection returns the loaded calendar.
func (s *Session) Selection() (model.Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection, s.loaded
}

// EditCell stores sanitized markup for a data cell and returns it.
func (s *Session) EditCell(row, col int, markup string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return "", ErrNoCalendar
	}
	t := render.Build(s.selection, render.Edits{})
	if row < 0 || row >= t.DataRows || col < 0 || col >= model.ColumnCount {
		return "", fmt.Errorf("%w: %d/%d", ErrCellRange, row, col)
	}
	clean := render.SanitizeEdited(markup)
	s.edits.Cells[render.CellRef{Row: row, Col: col}] = clean
	return clean, nil
}

// EditTitle replaces the location title.
func (s *Session) EditTitle(markup string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return "", ErrNoCalendar
	}
	title := render.PlainText(markup)
	s.edits.Title = &title
	return title, nil
}

// ExportJob snapshots everything a PDF export needs.
func (s *Session) ExportJob(theme model.Theme) (export.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return export.Job{}, ErrNoCalendar
	}
	return export.Job{
		Doc:       s.Doc,
		Selection: s.selection,
		Table:     render.Build(s.selection, s.edits),
		Settings:  s.Fonts.Settings(),
		Theme:     theme,
	}, nil
}

// ExportPDF runs the export pipeline on the current calendar and remembers
// the stored document so only this session can download it.
func (s *Session) ExportPDF(ctx context.Context, theme model.Theme) (*export.Result, error) {
	job, err := s.ExportJob(theme)
	if err != nil {
		return nil, err
	}
	res, err := s.Export.Export(ctx, job)
	if err != nil {
		return nil, err
	}
	if res.URL != "" {
		s.mu.Lock()
		s.exports[path.Base(res.URL)] = res.FileName
		s.mu.Unlock()
	}
	return res, nil
}

// ExportFile resolves a storage key of one of this session's exports to
// the file name it is downloaded as.
func (s *Session) ExportFile(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.exports[key]
	if !ok {
		return "", ErrNoExport
	}
	return name, nil
}
