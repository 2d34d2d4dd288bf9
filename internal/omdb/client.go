// Package omdb is a client for the OMDb movie metadata API.
//
// OMDb is a plain JSON-over-GET API. Two operations matter here: searching
// by title (10 results per page) and fetching one full record by IMDb ID.
// OMDb signals "not found" in-band: a 200 response whose body carries
// Response:"False" plus an Error message, so callers must check the parsed
// record, not just the HTTP status.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// NotAvailable is OMDb's sentinel for absent fields. Every string field in a
// record can carry it instead of a real value.
const NotAvailable = "N/A"

// PageSize is the fixed number of results OMDb returns per search page.
const PageSize = 10

// Client calls the OMDb API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates an OMDb client.
func New(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		// Go Pattern: Always configure timeouts on HTTP clients.
		// The default http.Client has NO timeout — requests can hang forever!
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Rating is one entry of a record's ratings list, e.g.
// {"Source": "Rotten Tomatoes", "Value": "87%"}.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// Movie is the full OMDb record for one title. JSON tags keep OMDb's exact
// key casing so the record round-trips verbatim — the raw record is embedded
// in API responses for backward compatibility.
type Movie struct {
	IMDbID     string   `json:"imdbID,omitempty"`
	Title      string   `json:"Title,omitempty"`
	Year       string   `json:"Year,omitempty"`
	Rated      string   `json:"Rated,omitempty"`
	Released   string   `json:"Released,omitempty"`
	Runtime    string   `json:"Runtime,omitempty"`
	Genre      string   `json:"Genre,omitempty"`
	Director   string   `json:"Director,omitempty"`
	Writer     string   `json:"Writer,omitempty"`
	Actors     string   `json:"Actors,omitempty"`
	Plot       string   `json:"Plot,omitempty"`
	Language   string   `json:"Language,omitempty"`
	Country    string   `json:"Country,omitempty"`
	Awards     string   `json:"Awards,omitempty"`
	Poster     string   `json:"Poster,omitempty"`
	Ratings    []Rating `json:"Ratings,omitempty"`
	Metascore  string   `json:"Metascore,omitempty"`
	IMDbRating string   `json:"imdbRating,omitempty"`
	IMDbVotes  string   `json:"imdbVotes,omitempty"`
	Type       string   `json:"Type,omitempty"`
	DVD        string   `json:"DVD,omitempty"`
	BoxOffice  string   `json:"BoxOffice,omitempty"`
	Production string   `json:"Production,omitempty"`
	Website    string   `json:"Website,omitempty"`

	// OMDb's in-band status markers.
	Response string `json:"Response,omitempty"`
	Error    string `json:"Error,omitempty"`
}

// Found reports whether OMDb actually returned a record, as opposed to a
// Response:"False" body ("Movie not found!", "Incorrect IMDb ID." etc.).
func (m *Movie) Found() bool {
	return m.Response != "False"
}

// SearchItem is one search hit. Search results carry only this subset of
// fields; they are passed through to API clients unmodified.
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// SearchResult is the body of a search response.
type SearchResult struct {
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
	Response     string       `json:"Response"`
	Error        string       `json:"Error,omitempty"`
}

// APIError is returned when OMDb answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("omdb returned %d: %s", e.StatusCode, e.Body)
}

// Search queries OMDb for titles matching the query, one 10-result page at a
// time. An empty result set is not an error — OMDb reports it in the body.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", query)
	params.Set("page", fmt.Sprintf("%d", page))

	var result SearchResult
	if err := c.get(ctx, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByID fetches the full record (full-length plot) for one IMDb ID.
// The record is returned even when OMDb reports Response:"False" — callers
// check Found() and map that to a domain not-found error.
func (c *Client) GetByID(ctx context.Context, imdbID string) (*Movie, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)
	params.Set("plot", "full")

	var movie Movie
	if err := c.get(ctx, params, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// get performs a GET against the OMDb base URL and decodes the JSON body.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("omdb request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read omdb response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse omdb response: %w", err)
	}
	return nil
}
