package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/calendar"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/config"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/export"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/fontsettings"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/gateway"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/location"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/notify"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/session"
)

func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch path := r.URL.Query().Get("path"); {
		case path == "states/ALMANYA":
			_, _ = io.WriteString(w, `[{"state_code":"NRW","state_name":"Nordrhein-Westfalen"}]`)
		case path == "cities/ALMANYA/NRW":
			_, _ = io.WriteString(w, `["Köln","Bonn"]`)
		case strings.HasPrefix(path, "imsakiye/ALMANYA/NRW/"):
			_, _ = io.WriteString(w, `[
{"hicri":"1 Ramazan 1447","miladi":"19 Şubat 2026 Perşembe","imsak":"05:40","gunes":"07:25","ogle":"12:40","ikindi":"15:20","aksam":"17:55","yatsi":"19:30"},
{"hicri":"2 Ramazan 1447","miladi":"20 Şubat 2026 Cuma","imsak":"05:38","gunes":"07:23","ogle":"12:40","ikindi":"15:21","aksam":"17:57","yatsi":"19:32"}]`)
		case strings.HasPrefix(path, "bayram-namazi/ALMANYA/NRW/"):
			_, _ = io.WriteString(w, `{"vakti":"07:45"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := fakeUpstream(t)
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		Environment:   "development",
		CountryCode:   "ALMANYA",
		CalendarYear:  2026,
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		ThemeDir:      t.TempDir(),
		ExportDir:     t.TempDir(),
	}

	rasterizer, err := export.NewRasterizer()
	require.NoError(t, err)
	store := InitStorage(cfg)
	sessions := session.NewManager(fontsettings.NewMemoryStore(), &export.Env{
		Capturer: rasterizer,
		Assets:   store,
		Exports:  store,
		Notifier: notify.Noop{},
		Year:     cfg.CalendarYear,
	}, cfg.SessionTTL)

	client := gateway.New(upstream.URL+"/api.php?path=", upstream.Client())
	r := gin.New()
	RegisterRoutes(r, cfg, Services{
		Flow:     location.New(client, cfg.CountryCode),
		Calendar: calendar.New(client, cfg.CountryCode),
		Sessions: sessions,
		Exports:  exportFiles(store),
	}, LoadTemplates())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, c *http.Client, method, url string, body any, out any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res
}

func TestUpstreamClientHasNoTimeout(t *testing.T) {
	assert.Zero(t, upstreamClient().Timeout)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestSelectionToExport(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	res, err := c.Get(srv.URL + "/")
	require.NoError(t, err)
	page, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(page), `id="state-select"`)

	var states struct {
		Enabled bool `json:"enabled"`
		Options []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"options"`
	}
	doJSON(t, c, http.MethodGet, srv.URL+"/api/states", nil, &states)
	require.True(t, states.Enabled)
	require.Len(t, states.Options, 1)
	assert.Equal(t, "NRW", states.Options[0].Value)

	var cities struct {
		Enabled bool `json:"enabled"`
	}
	doJSON(t, c, http.MethodGet, srv.URL+"/api/states/NRW/cities", nil, &cities)
	assert.True(t, cities.Enabled)

	var city struct {
		ContinueEnabled bool `json:"continue_enabled"`
	}
	doJSON(t, c, http.MethodPost, srv.URL+"/api/selection/city", map[string]string{"state": "NRW", "city": "Köln"}, &city)
	assert.True(t, city.ContinueEnabled)

	var cal struct {
		Title string `json:"title"`
		Rows  int    `json:"rows"`
	}
	res = doJSON(t, c, http.MethodPost, srv.URL+"/api/calendar", map[string]string{"state": "NRW", "city": "Köln"}, &cal)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, cal.Title, "Köln")
	assert.Equal(t, 2, cal.Rows)

	res, err = c.Get(srv.URL + "/calendar")
	require.NoError(t, err)
	page, _ = io.ReadAll(res.Body)
	res.Body.Close()
	assert.Contains(t, string(page), `id="imsakiye-tbody"`)
	assert.Contains(t, string(page), "05:40")

	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	require.NoError(t, err)
	// every scope edits family, size, weight and color
	for _, prop := range []string{"fontFamily", "fontSize", "fontWeight", "color"} {
		assert.Equal(t, 10, dom.Find(`#font-settings-panel [data-prop="`+prop+`"]`).Length(), prop)
	}
	assert.Equal(t, 4, dom.Find(`fieldset[data-scope="header"] [data-prop]:disabled`).Length())
	assert.Equal(t, 8, dom.Find(`.column-settings .column-controls[hidden]`).Length())

	var exp struct {
		FileName string `json:"file_name"`
		URL      string `json:"url"`
	}
	res = doJSON(t, c, http.MethodPost, srv.URL+"/api/export/pdf", map[string]string{"theme": "tema2"}, &exp)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.True(t, strings.HasPrefix(exp.URL, exportRoute+"/"), exp.URL)

	assert.Equal(t, "imsakiye-Köln-Nordrhein-Westfalen-2026.pdf", exp.FileName)

	res, err = c.Get(srv.URL + exp.URL)
	require.NoError(t, err)
	pdf, _ := io.ReadAll(res.Body)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Contains(t, res.Header.Get("Content-Disposition"), "filename*=utf-8''imsakiye-K%C3%B6ln-Nordrhein-Westfalen-2026.pdf")

	// another browser cannot fetch this session's export
	res, err = newClient(t).Get(srv.URL + exp.URL)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCalendarWithoutSelectionIsRejected(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	var body struct {
		Error string `json:"error"`
	}
	res := doJSON(t, c, http.MethodGet, srv.URL+"/api/export/xlsx", nil, &body)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.NotEmpty(t, body.Error)
}

func TestCityListFailureCarriesErrorPicker(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	res, err := c.Get(srv.URL + "/")
	require.NoError(t, err)
	page, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Contains(t, string(page), `data-loading="-- Yükleniyor... --"`)

	var body struct {
		Error  string `json:"error"`
		Detail struct {
			Placeholder string `json:"placeholder"`
			Enabled     bool   `json:"enabled"`
		} `json:"detail"`
	}
	res = doJSON(t, c, http.MethodGet, srv.URL+"/api/states/BAYERN/cities", nil, &body)
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.NotEmpty(t, body.Error)
	assert.Equal(t, "-- Hata --", body.Detail.Placeholder)
	assert.False(t, body.Detail.Enabled)
}
