package fontsettings

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	ScopeGlobal = "global"
	ScopeHeader = "header"

	columnScopePrefix = "col-"
)

func columnScope(i int) string {
	return columnScopePrefix + strconv.Itoa(i)
}

// Model owns the live settings of one client and the stylesheet derived
// from them. It is safe for concurrent use.
type Model struct {
	store Store
	key   string

	mu         sync.Mutex
	settings   Settings
	controls   Controls
	stylesheet string
}

// New returns a model holding the defaults. client scopes the storage key;
// an empty client uses StorageKey itself.
func New(store Store, client string) *Model {
	key := StorageKey
	if client != "" {
		key = StorageKey + ":" + client
	}
	m := &Model{store: store, key: key, settings: Defaults()}
	m.controls = project(m.settings)
	m.stylesheet = Stylesheet(m.settings)
	return m
}

// Key returns the storage key the model persists under.
func (m *Model) Key() string { return m.key }

// LoadFromStorage replaces the live settings with the persisted blob merged
// onto fresh defaults. A missing, unreadable or malformed blob leaves the
// defaults in place.
func (m *Model) LoadFromStorage(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings = Defaults()
	blob, err := m.store.Get(ctx, m.key)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("key", m.key).Msg("font settings unavailable, using defaults")
	case blob == nil:
	default:
		merged, err := Merge(Defaults(), blob)
		if err != nil {
			log.Warn().Err(err).Str("key", m.key).Msg("discarding malformed font settings")
			break
		}
		m.settings = merged.Sanitize()
	}
	m.controls = project(m.settings)
	m.stylesheet = Stylesheet(m.settings)
}

// SaveToStorage persists the live settings. Failures are logged and
// returned; the live state is unaffected.
func (m *Model) SaveToStorage(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(ctx)
}

func (m *Model) save(ctx context.Context) error {
	blob, err := json.Marshal(m.settings)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, m.key, blob); err != nil {
		log.Error().Err(err).Str("key", m.key).Msg("failed to save font settings")
		return fmt.Errorf("save font settings: %w", err)
	}
	return nil
}

// Reset restores the defaults, refreshes the controls and stylesheet and
// persists the result.
func (m *Model) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = Defaults()
	m.controls = project(m.settings)
	m.stylesheet = Stylesheet(m.settings)
	return m.save(ctx)
}

// Apply regenerates the stylesheet from the live settings and returns it.
func (m *Model) Apply() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stylesheet = Stylesheet(m.settings)
	return m.stylesheet
}

// Stylesheet returns the stylesheet produced by the last Apply.
func (m *Model) Stylesheet() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stylesheet
}

// SyncUI re-projects every control from the live settings.
func (m *Model) SyncUI() Controls {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.controls = project(m.settings)
	return m.controls
}

// Controls returns the last projected controls.
func (m *Model) Controls() Controls {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.controls
}

// Settings returns a copy of the live settings.
func (m *Model) Settings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// HandleSettingChange writes one control value into the live settings,
// re-projects the affected group and regenerates the stylesheet. Nothing
// is persisted. On error the live settings are unchanged.
func (m *Model) HandleSettingChange(scope, prop, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.settings
	switch {
	case scope == ScopeGlobal:
		if prop == "enabled" {
			return fmt.Errorf("%w: global has no toggle", ErrInvalidValue)
		}
		if err := setStyleField(&next.Global, prop, raw); err != nil {
			return err
		}
		m.settings = next
		m.controls.Global = projectFields(ScopeGlobal, next.Global)

	case scope == ScopeHeader:
		if err := setToggledField(&next.Header, prop, raw); err != nil {
			return err
		}
		m.settings = next
		m.controls.Header = projectHeader(next.Header)

	case strings.HasPrefix(scope, columnScopePrefix):
		i, err := strconv.Atoi(strings.TrimPrefix(scope, columnScopePrefix))
		if err != nil || i < 0 || i >= len(next.Columns) {
			return fmt.Errorf("%w: scope %q", ErrInvalidValue, scope)
		}
		if err := setToggledField(&next.Columns[i], prop, raw); err != nil {
			return err
		}
		m.settings = next
		m.controls.Columns[i] = projectColumn(i, next.Columns[i])

	default:
		return fmt.Errorf("%w: scope %q", ErrInvalidValue, scope)
	}

	m.stylesheet = Stylesheet(m.settings)
	return nil
}

func setToggledField(t *Toggled, prop, raw string) error {
	if prop == "enabled" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: enabled %q", ErrInvalidValue, raw)
		}
		t.Enabled = v
		return nil
	}
	return setStyleField(&t.StyleSpec, prop, raw)
}

func setStyleField(spec *StyleSpec, prop, raw string) error {
	next := *spec
	switch prop {
	case "fontFamily":
		next.FontFamily = raw
	case "fontSize":
		v, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(raw), "px"))
		if err != nil {
			return fmt.Errorf("%w: fontSize %q", ErrInvalidValue, raw)
		}
		next.FontSize = v
	case "fontWeight":
		next.FontWeight = raw
	case "color":
		next.Color = raw
	default:
		return fmt.Errorf("%w: property %q", ErrInvalidValue, prop)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*spec = next
	return nil
}
