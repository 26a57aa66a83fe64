// Package export turns the rendered calendar into downloadable documents:
// a themed single page PDF and a spreadsheet.
package export

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/fontsettings"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/page"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/render"
)

var (
	ErrInProgress  = errors.New("a pdf export is already in progress")
	ErrNoSelection = errors.New("no calendar loaded")
)

type State int32

const (
	Idle State = iota
	ThemeChosen
	Rendering
	Success
	Failure
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ThemeChosen:
		return "theme_chosen"
	case Rendering:
		return "rendering"
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return "unknown"
}

// Exports stores finished documents and returns a download URL.
type Exports interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// Event describes a finished export.
type Event struct {
	ID       string    `json:"id"`
	FileName string    `json:"file_name"`
	Country  string    `json:"country"`
	State    string    `json:"state"`
	City     string    `json:"city"`
	Theme    string    `json:"theme"`
	URL      string    `json:"url,omitempty"`
	Size     int       `json:"size"`
	Created  time.Time `json:"created"`
}

type Notifier interface {
	Publish(ctx context.Context, e Event) error
}

// Env holds the collaborators shared by every pipeline.
type Env struct {
	Capturer    Capturer
	Assets      Assets
	Exports     Exports
	Notifier    Notifier
	Year        int
	Decorations []Decoration
}

// Job is one export request.
type Job struct {
	Doc       *page.Document
	Selection model.Selection
	Table     render.Table
	Settings  fontsettings.Settings
	Theme     model.Theme
}

// Result is a delivered document. Data is set only when the document could
// not be stored and has to be sent inline.
type Result struct {
	ID       string
	FileName string
	URL      string
	Data     []byte
	Size     int
}

// Pipeline runs PDF exports for one session, one at a time.
type Pipeline struct {
	env      *Env
	inFlight atomic.Bool
	state    atomic.Int32
}

func NewPipeline(env *Env) *Pipeline {
	return &Pipeline{env: env}
}

func (p *Pipeline) State() State {
	return State(p.state.Load())
}

func (p *Pipeline) setState(s State) {
	log.Debug().Stringer("state", s).Msg("pdf export state")
	p.state.Store(int32(s))
}

// Export renders job into a PDF. A call made while another export is in
// flight returns ErrInProgress and changes nothing. Every page mutation made
// on the way is reverted before Export returns, whatever the outcome.
func (p *Pipeline) Export(ctx context.Context, job Job) (*Result, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInProgress
	}
	defer p.inFlight.Store(false)

	if len(job.Selection.Rows) == 0 {
		return nil, ErrNoSelection
	}

	p.setState(ThemeChosen)
	m := job.Doc.Begin()
	defer func() {
		m.Restore()
		p.setState(Idle)
	}()

	m.Hide(page.ThemeSelector)
	m.Show(page.LoadingIndicator)
	m.Disable(page.PDFButton)
	m.SetStyle(page.PDFButton, "opacity", "0.6")
	m.RemoveClasses(page.Body, model.ThemeBodyClasses()...)
	m.AddClass(page.Body, job.Theme.BodyClass())

	p.setState(Rendering)
	doc, err := p.render(ctx, job, m)
	if err != nil {
		p.setState(Failure)
		log.Error().Err(err).Str("city", job.Selection.City).Str("theme", string(job.Theme)).Msg("pdf export failed")
		return nil, fmt.Errorf("PDF oluşturulurken hata: %w", err)
	}

	res := p.deliver(ctx, job, doc)
	p.setState(Success)
	log.Info().Str("file", res.FileName).Int("size", res.Size).Bool("inline", res.Data != nil).Msg("pdf export finished")
	p.notify(ctx, job, res)
	return res, nil
}

// render runs the capture, composite and assembly phases. Panics are
// turned into errors so cleanup still happens on the normal path.
func (p *Pipeline) render(ctx context.Context, job Job, m *page.Mutation) (doc []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf export panicked: %v", r)
		}
	}()

	for _, id := range []string{page.PDFButton, page.FontSettingsButton, page.ActionButtons, page.EditTitleButton, page.InfoNote} {
		m.Hide(id)
	}
	desktop := strconv.Itoa(LayoutWidth) + "px"
	m.AddClass(page.Body, "pdf-mode")
	m.SetStyle(page.MainContainer, "width", desktop)
	m.SetStyle(page.MainContainer, "max-width", desktop)
	m.SetStyle(page.CalendarContainer, "width", desktop)
	m.SetStyle(page.CalendarContainer, "overflow", "visible")
	m.SetStyle(page.CalendarHeader, "margin-top", strconv.Itoa(HeaderMargin)+"px")

	opts := captureOptions(job.Doc)
	opts.Decorations = p.env.Decorations
	capture, content, err := p.capture(ctx, job, opts)
	if err != nil {
		return nil, err
	}

	background := loadBackground(ctx, p.env.Assets, job.Theme)

	b := capture.Image.Bounds()
	return Assemble(job.Table.Title, content, b.Dx(), b.Dy(), opts.Scale, background)
}

// captureOptions reads the capture geometry off the page as prepared for
// export. Unset or unparsable styles keep the defaults.
func captureOptions(doc *page.Document) CaptureOptions {
	opts := DefaultCaptureOptions()
	if w, ok := pixels(doc.Element(page.MainContainer).Style["width"]); ok {
		opts.Width = w
	}
	if m, ok := pixels(doc.Element(page.CalendarHeader).Style["margin-top"]); ok {
		opts.HeaderMargin = m
	}
	return opts
}

func pixels(v string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	return n, err == nil && n > 0
}

// capture rasterizes the table, retrying once without cross-origin content
// when the first capture cannot be read back.
func (p *Pipeline) capture(ctx context.Context, job Job, opts CaptureOptions) (*Capture, []byte, error) {
	c, err := p.env.Capturer.Capture(ctx, job.Table, job.Settings, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("capture: %w", err)
	}
	data, err := c.PNG()
	if errors.Is(err, ErrTainted) {
		log.Warn().Msg("capture tainted, retrying without cross-origin content")
		opts.AllowTaint = false
		c, err = p.env.Capturer.Capture(ctx, job.Table, job.Settings, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("capture retry: %w", err)
		}
		data, err = c.PNG()
	}
	if err != nil {
		return nil, nil, err
	}
	return c, data, nil
}

func (p *Pipeline) deliver(ctx context.Context, job Job, doc []byte) *Result {
	res := &Result{
		ID:       uuid.NewString(),
		FileName: FileName(job.Selection, p.env.Year, "pdf"),
		Size:     len(doc),
	}
	if p.env.Exports == nil {
		res.Data = doc
		return res
	}
	url, err := p.env.Exports.Save(ctx, res.FileName, doc)
	if err != nil {
		log.Warn().Err(err).Str("file", res.FileName).Msg("saving export failed, sending it inline")
		res.Data = doc
		return res
	}
	res.URL = url
	return res
}

func (p *Pipeline) notify(ctx context.Context, job Job, res *Result) {
	if p.env.Notifier == nil {
		return
	}
	e := Event{
		ID:       res.ID,
		FileName: res.FileName,
		Country:  job.Selection.Country,
		State:    job.Selection.State,
		City:     job.Selection.City,
		Theme:    string(job.Theme),
		URL:      res.URL,
		Size:     res.Size,
		Created:  time.Now().UTC(),
	}
	if err := p.env.Notifier.Publish(ctx, e); err != nil {
		log.Warn().Err(err).Str("file", res.FileName).Msg("export notification failed")
	}
}
