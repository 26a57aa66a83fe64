package fontsettings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
)

var ErrInvalidValue = errors.New("invalid font setting")

// stylePatch mirrors Toggled with every field optional. A nil field keeps
// the value it is merged onto.
type stylePatch struct {
	Enabled    *bool   `json:"enabled"`
	FontFamily *string `json:"fontFamily"`
	FontSize   *int    `json:"fontSize"`
	FontWeight *string `json:"fontWeight"`
	Color      *string `json:"color"`
}

type settingsPatch struct {
	Global  *stylePatch            `json:"global"`
	Header  *stylePatch            `json:"header"`
	Columns map[string]*stylePatch `json:"columns"`
}

func (p *stylePatch) applyStyle(spec *StyleSpec) {
	if p == nil {
		return
	}
	if p.FontFamily != nil {
		spec.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		spec.FontSize = *p.FontSize
	}
	if p.FontWeight != nil {
		spec.FontWeight = *p.FontWeight
	}
	if p.Color != nil {
		spec.Color = *p.Color
	}
}

func (p *stylePatch) applyToggled(t *Toggled) {
	if p == nil {
		return
	}
	if p.Enabled != nil {
		t.Enabled = *p.Enabled
	}
	p.applyStyle(&t.StyleSpec)
}

// Merge overlays a persisted blob onto base field by field. Fields missing
// from the blob keep the base value, so settings saved by an older version
// pick up fields added to the defaults since. Keys outside the schema are
// dropped.
func Merge(base Settings, blob []byte) (Settings, error) {
	var patch settingsPatch
	if err := json.Unmarshal(blob, &patch); err != nil {
		return base, fmt.Errorf("parse font settings: %w", err)
	}

	patch.Global.applyStyle(&base.Global)
	patch.Header.applyToggled(&base.Header)
	for key, col := range patch.Columns {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(base.Columns) {
			log.Warn().Str("column", key).Msg("ignoring unknown font settings column")
			continue
		}
		col.applyToggled(&base.Columns[i])
	}
	return base, nil
}
