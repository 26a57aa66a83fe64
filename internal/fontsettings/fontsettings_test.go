package fontsettings

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ err error }

func (f failingStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, f.err }
func (f failingStore) Set(ctx context.Context, key string, value []byte) error {
	return f.err
}

func TestDefaultsMatchColumns(t *testing.T) {
	d := Defaults()
	assert.Equal(t, 14, d.Global.FontSize)
	assert.Equal(t, "#333333", d.Global.Color)
	assert.False(t, d.Header.Enabled)
	assert.Equal(t, "bold", d.Header.FontWeight)
	assert.Equal(t, "#dc3545", d.Columns[2].Color)
	assert.Equal(t, "bold", d.Columns[2].FontWeight)
	assert.Equal(t, "#28a745", d.Columns[6].Color)
	for _, c := range d.Columns {
		assert.False(t, c.Enabled)
		require.NoError(t, c.Validate())
	}
}

func TestDefaultsDoNotAlias(t *testing.T) {
	a := Defaults()
	a.Columns[0].Color = "#000000"
	a.Global.FontSize = 30
	b := Defaults()
	assert.NotEqual(t, a.Columns[0].Color, b.Columns[0].Color)
	assert.Equal(t, 14, b.Global.FontSize)
}

func TestColumnsJSONShape(t *testing.T) {
	data, err := json.Marshal(Defaults())
	require.NoError(t, err)

	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw["columns"], 8)
	assert.Contains(t, raw["columns"], "0")
	assert.Contains(t, raw["columns"], "7")
}

func TestMergeKeepsMissingFields(t *testing.T) {
	merged, err := Merge(Defaults(), []byte(`{"global":{"fontSize":20},"columns":{"3":{"enabled":true}}}`))
	require.NoError(t, err)

	assert.Equal(t, 20, merged.Global.FontSize)
	assert.Equal(t, "#333333", merged.Global.Color)
	assert.True(t, merged.Columns[3].Enabled)
	assert.Equal(t, Defaults().Columns[3].Color, merged.Columns[3].Color)
	assert.Equal(t, Defaults().Header, merged.Header)
}

func TestMergeEmptyAndUnknownKeys(t *testing.T) {
	merged, err := Merge(Defaults(), []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), merged)

	merged, err = Merge(Defaults(), []byte(`{"extra":1,"columns":{"9":{"enabled":true},"x":{}},"global":null}`))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), merged)
}

func TestMergeMalformed(t *testing.T) {
	_, err := Merge(Defaults(), []byte(`{not json`))
	assert.Error(t, err)
}

func TestSanitizeRevertsInvalidFields(t *testing.T) {
	s := Defaults()
	s.Global.FontSize = 200
	s.Global.Color = "red"
	s.Columns[1].FontFamily = "Comic Sans"
	s.Columns[1].Enabled = true

	clean := s.Sanitize()
	assert.Equal(t, 14, clean.Global.FontSize)
	assert.Equal(t, "#333333", clean.Global.Color)
	assert.Equal(t, SystemFont, clean.Columns[1].FontFamily)
	assert.True(t, clean.Columns[1].Enabled)
}

func TestStylesheetRules(t *testing.T) {
	s := Defaults()
	css := Stylesheet(s)
	assert.Contains(t, css, ".imsakiye-table td {")
	assert.NotContains(t, css, ".imsakiye-table th")
	assert.NotContains(t, css, "nth-child")
	assert.NotContains(t, css, "!important")

	s.Header.Enabled = true
	s.Columns[2].Enabled = true
	s.Columns[2].FontSize = 22
	css = Stylesheet(s)
	assert.Contains(t, css, ".imsakiye-table th {")
	assert.Contains(t, css, ".imsakiye-table tbody td:nth-child(3) {\n  font-family: "+SystemFont+";\n  font-size: 22px;")
	assert.Contains(t, css, ".imsakiye-table tbody td:nth-child(3) strong {\n  font-family: inherit;")
	assert.Equal(t, 1, strings.Count(css, "nth-child(3) {"))
	assert.NotContains(t, css, "!important")

	assert.Equal(t, css, Stylesheet(s))
}

func TestColumnRuleFollowsGlobalRule(t *testing.T) {
	s := Defaults()
	s.Columns[0].Enabled = true
	css := Stylesheet(s)
	assert.Less(t, strings.Index(css, cellSelector+" {"), strings.Index(css, ColumnSelector(0)+" {"))
}

func TestModelLoadSave(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	m := New(store, "abc")
	assert.Equal(t, "imsakiye-font-settings:abc", m.Key())
	require.NoError(t, m.HandleSettingChange("col-4", "enabled", "true"))
	require.NoError(t, m.HandleSettingChange("col-4", "color", "#112233"))
	require.NoError(t, m.SaveToStorage(ctx))

	other := New(store, "abc")
	other.LoadFromStorage(ctx)
	assert.Equal(t, m.Settings(), other.Settings())
	assert.Contains(t, other.Stylesheet(), "nth-child(5)")

	fresh := New(store, "someone-else")
	fresh.LoadFromStorage(ctx)
	assert.Equal(t, Defaults(), fresh.Settings())
}

func TestModelLoadMalformedAndInvalid(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := New(store, "")

	require.NoError(t, store.Set(ctx, StorageKey, []byte("{oops")))
	m.LoadFromStorage(ctx)
	assert.Equal(t, Defaults(), m.Settings())

	require.NoError(t, store.Set(ctx, StorageKey, []byte(`{"global":{"fontSize":4,"color":"#abcdef"}}`)))
	m.LoadFromStorage(ctx)
	assert.Equal(t, 14, m.Settings().Global.FontSize)
	assert.Equal(t, "#abcdef", m.Settings().Global.Color)
}

func TestModelLoadStoreFailure(t *testing.T) {
	m := New(failingStore{err: errors.New("down")}, "x")
	m.LoadFromStorage(context.Background())
	assert.Equal(t, Defaults(), m.Settings())
	assert.Error(t, m.SaveToStorage(context.Background()))
}

func TestModelResetIdempotent(t *testing.T) {
	ctx := context.Background()
	m := New(NewMemoryStore(), "r")
	require.NoError(t, m.HandleSettingChange(ScopeGlobal, "fontSize", "30"))

	require.NoError(t, m.Reset(ctx))
	first := m.Settings()
	css := m.Stylesheet()
	require.NoError(t, m.Reset(ctx))

	assert.Equal(t, Defaults(), first)
	assert.Equal(t, first, m.Settings())
	assert.Equal(t, css, m.Stylesheet())
	assert.Equal(t, "14px", m.Controls().Global.FontSizeLabel)
}

func TestHandleSettingChange(t *testing.T) {
	m := New(NewMemoryStore(), "c")

	require.NoError(t, m.HandleSettingChange(ScopeGlobal, "fontSize", "18"))
	assert.Equal(t, 18, m.Settings().Global.FontSize)
	assert.Equal(t, "18px", m.Controls().Global.FontSizeLabel)
	assert.Contains(t, m.Stylesheet(), "font-size: 18px;")

	require.NoError(t, m.HandleSettingChange(ScopeHeader, "enabled", "true"))
	assert.True(t, m.Controls().Header.Enabled)
	assert.False(t, m.Controls().Header.Disabled)

	require.NoError(t, m.HandleSettingChange("col-7", "enabled", "true"))
	assert.True(t, m.Controls().Columns[7].Open)
	assert.True(t, m.Controls().Columns[7].Active)

	err := m.HandleSettingChange(ScopeGlobal, "fontSize", "abc")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.ErrorIs(t, m.HandleSettingChange("col-8", "enabled", "true"), ErrInvalidValue)
	assert.ErrorIs(t, m.HandleSettingChange(ScopeGlobal, "color", "blue"), ErrInvalidValue)
	assert.ErrorIs(t, m.HandleSettingChange(ScopeGlobal, "enabled", "true"), ErrInvalidValue)
	assert.Equal(t, 18, m.Settings().Global.FontSize)
}

func TestScopedFamilyAndWeightChanges(t *testing.T) {
	m := New(NewMemoryStore(), "c")
	georgia := AvailableFonts[3].Value

	require.NoError(t, m.HandleSettingChange(ScopeHeader, "fontFamily", georgia))
	require.NoError(t, m.HandleSettingChange(ScopeHeader, "fontWeight", "600"))
	require.NoError(t, m.HandleSettingChange("col-2", "fontFamily", georgia))
	require.NoError(t, m.HandleSettingChange("col-2", "fontWeight", "lighter"))

	c := m.Controls()
	assert.Equal(t, georgia, c.Header.FontFamily)
	assert.Equal(t, "600", c.Header.FontWeight)
	assert.Equal(t, georgia, c.Columns[2].FontFamily)
	assert.Equal(t, "lighter", c.Columns[2].FontWeight)
	assert.Equal(t, "col-2", c.Columns[2].Scope)

	require.NoError(t, m.HandleSettingChange(ScopeHeader, "enabled", "false"))
	assert.True(t, m.Controls().Header.Disabled)
	assert.False(t, m.Controls().Header.Open)
	assert.ErrorIs(t, m.HandleSettingChange("col-2", "fontWeight", "heavy"), ErrInvalidValue)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	fs := NewFileStore(t.TempDir() + "/nested")

	v, err := fs.Get(ctx, "imsakiye-font-settings:a/b")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, fs.Set(ctx, "imsakiye-font-settings:a/b", []byte(`{}`)))
	v, err = fs.Get(ctx, "imsakiye-font-settings:a/b")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), v)
}
