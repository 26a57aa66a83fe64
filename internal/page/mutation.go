package page

import "sync"

type undo func(*Document)

// Mutation records temporary changes to a Document. Restore reverts them in
// reverse order and runs at most once.
type Mutation struct {
	doc  *Document
	mu   sync.Mutex
	undo []undo
	once sync.Once
}

func (m *Mutation) record(u undo) {
	m.mu.Lock()
	m.undo = append(m.undo, u)
	m.mu.Unlock()
}

// Hide hides id, remembering its prior visibility.
func (m *Mutation) Hide(id string) {
	m.doc.mu.Lock()
	e := m.doc.el(id)
	prev := e.hidden
	e.hidden = true
	m.doc.mu.Unlock()
	m.record(func(d *Document) { d.el(id).hidden = prev })
}

// Show makes id visible, remembering its prior visibility.
func (m *Mutation) Show(id string) {
	m.doc.mu.Lock()
	e := m.doc.el(id)
	prev := e.hidden
	e.hidden = false
	m.doc.mu.Unlock()
	m.record(func(d *Document) { d.el(id).hidden = prev })
}

// Disable disables id, remembering its prior state.
func (m *Mutation) Disable(id string) {
	m.doc.mu.Lock()
	e := m.doc.el(id)
	prev := e.disabled
	e.disabled = true
	m.doc.mu.Unlock()
	m.record(func(d *Document) { d.el(id).disabled = prev })
}

// AddClass adds class to id. A class that was already present stays after
// Restore.
func (m *Mutation) AddClass(id, class string) {
	m.doc.mu.Lock()
	e := m.doc.el(id)
	had := e.classes[class]
	e.classes[class] = true
	m.doc.mu.Unlock()
	m.record(func(d *Document) {
		if !had {
			delete(d.el(id).classes, class)
		}
	})
}

// RemoveClasses drops every listed class from id.
func (m *Mutation) RemoveClasses(id string, classes ...string) {
	m.doc.mu.Lock()
	e := m.doc.el(id)
	var removed []string
	for _, c := range classes {
		if e.classes[c] {
			removed = append(removed, c)
			delete(e.classes, c)
		}
	}
	m.doc.mu.Unlock()
	m.record(func(d *Document) {
		for _, c := range removed {
			d.el(id).classes[c] = true
		}
	})
}

// SetStyle sets an inline style property, remembering the prior value or
// its absence.
func (m *Mutation) SetStyle(id, prop, value string) {
	m.doc.mu.Lock()
	e := m.doc.el(id)
	prev, had := e.style[prop]
	e.style[prop] = value
	m.doc.mu.Unlock()
	m.record(func(d *Document) {
		if had {
			d.el(id).style[prop] = prev
		} else {
			delete(d.el(id).style, prop)
		}
	})
}

// Restore reverts every recorded change. Later calls do nothing.
func (m *Mutation) Restore() {
	m.once.Do(func() {
		m.mu.Lock()
		undo := m.undo
		m.undo = nil
		m.mu.Unlock()

		m.doc.mu.Lock()
		defer m.doc.mu.Unlock()
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i](m.doc)
		}
	})
}
