// Package gateway wraps the remote imsakiye data API.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
)

// DefaultBase is the production API endpoint. Paths are appended verbatim.
const DefaultBase = "https://ataselik.de/api.php?path="

// ErrStatus is wrapped by every non-2xx response error.
var ErrStatus = errors.New("unexpected http status")

// StatusError reports a non-successful HTTP response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// Client performs GET calls against a fixed base URL. It does not retry and
// sets no timeout of its own; callers bound calls through the context.
type Client struct {
	base string
	http *http.Client
}

// New returns a Client for base. A nil httpClient uses http.DefaultClient.
func New(base string, httpClient *http.Client) *Client {
	if base == "" {
		base = DefaultBase
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: base, http: httpClient}
}

// Path joins already-trusted endpoint names with user or catalog supplied
// segments, percent-encoding every segment.
func Path(endpoint string, segments ...string) string {
	var b strings.Builder
	b.WriteString(endpoint)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(EncodeSegment(s))
	}
	return b.String()
}

// EncodeSegment percent-encodes s the way encodeURIComponent does: spaces
// become %20 and every reserved character is escaped.
func EncodeSegment(s string) string {
	escaped := url.QueryEscape(s)
	return strings.ReplaceAll(escaped, "+", "%20")
}

// Call fetches base+path and decodes the JSON body into out.
func (c *Client) Call(ctx context.Context, path string, out any) error {
	target := c.base + path
	log.Debug().Str("url", target).Msg("api call")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// States lists the states of a country.
func (c *Client) States(ctx context.Context, country string) ([]model.StateEntry, error) {
	var states []model.StateEntry
	if err := c.Call(ctx, Path("states", country), &states); err != nil {
		return nil, err
	}
	return states, nil
}

// Cities lists the city names of a state.
func (c *Client) Cities(ctx context.Context, country, state string) ([]string, error) {
	var cities []string
	if err := c.Call(ctx, Path("cities", country, state), &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// Calendar fetches the imsakiye rows of a city.
func (c *Client) Calendar(ctx context.Context, country, state, city string) ([]model.CalendarRow, error) {
	var rows []model.CalendarRow
	if err := c.Call(ctx, Path("imsakiye", country, state, city), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FestivalPrayer fetches the festival prayer time of a city.
func (c *Client) FestivalPrayer(ctx context.Context, country, state, city string) (model.FestivalPrayer, error) {
	var fp model.FestivalPrayer
	if err := c.Call(ctx, Path("bayram-namazi", country, state, city), &fp); err != nil {
		return model.FestivalPrayer{}, err
	}
	return fp, nil
}
