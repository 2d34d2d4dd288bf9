// Package youtube looks up movie trailers via the YouTube Data API.
//
// Trailers are an enhancement, not a required field: every failure mode here
// (missing key, blank title, transport error, zero results) resolves to "no
// trailer" and the movie details request proceeds without one.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// filmCategoryID is YouTube's "Film & Animation" video category.
const filmCategoryID = "1"

// yearSuffix matches a trailing parenthesized year, e.g. "Inception (2010)".
// Stripping it improves trailer search relevance.
var yearSuffix = regexp.MustCompile(`\s*\(\d{4}\)$`)

// Service calls the YouTube Data API search endpoint.
type Service struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a YouTube trailer search service.
func New(apiKey, baseURL string) *Service {
	return &Service{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Trailer holds the normalized fields of one video search hit.
type Trailer struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	EmbedURL     string `json:"embed_url"`
	WatchURL     string `json:"watch_url"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
}

// --- YouTube Data API response types ---

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ChannelTitle string `json:"channelTitle"`
		PublishedAt  string `json:"publishedAt"`
		Thumbnails   struct {
			Default thumbnail `json:"default"`
			Medium  thumbnail `json:"medium"`
			High    thumbnail `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// FindTrailer searches for the best-ranked official trailer for a movie
// title. Returns (nil, nil) when no trailer is available; an error is only
// returned for transport or upstream failures, and callers treat those as
// "no trailer" too.
func (s *Service) FindTrailer(ctx context.Context, movieTitle string) (*Trailer, error) {
	trailers, err := s.search(ctx, movieTitle, 1)
	if err != nil || len(trailers) == 0 {
		return nil, err
	}
	return &trailers[0], nil
}

// ListTrailers returns up to maxResults trailer candidates (alternate cuts,
// teasers) for a movie title.
func (s *Service) ListTrailers(ctx context.Context, movieTitle string, maxResults int) ([]Trailer, error) {
	if maxResults < 1 {
		maxResults = 3
	}
	return s.search(ctx, movieTitle, maxResults)
}

func (s *Service) search(ctx context.Context, movieTitle string, maxResults int) ([]Trailer, error) {
	if s.apiKey == "" {
		log.Println("⚠️  YouTube API key not configured, skipping trailer lookup")
		return nil, nil
	}
	if strings.TrimSpace(movieTitle) == "" {
		log.Println("⚠️  Empty movie title provided to YouTube search")
		return nil, nil
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("q", formatSearchQuery(movieTitle))
	params.Set("key", s.apiKey)
	params.Set("videoCategoryId", filmCategoryID)
	params.Set("order", "relevance")
	params.Set("safeSearch", "strict")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read youtube response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse youtube response: %w", err)
	}

	var trailers []Trailer
	for _, item := range parsed.Items {
		if t := formatVideo(item); t != nil {
			trailers = append(trailers, *t)
		}
	}
	if len(trailers) == 0 {
		log.Printf("ℹ️  No YouTube trailer found for %q", movieTitle)
	}
	return trailers, nil
}

// formatSearchQuery strips a trailing "(YYYY)" and appends the fixed trailer
// suffix that steers results toward official uploads.
func formatSearchQuery(movieTitle string) string {
	clean := yearSuffix.ReplaceAllString(strings.TrimSpace(movieTitle), "")
	return clean + " official trailer"
}

// formatVideo normalizes one search hit, or returns nil when the hit has no
// video ID (channel/playlist results slip through type=video occasionally).
func formatVideo(item searchItem) *Trailer {
	videoID := item.ID.VideoID
	if videoID == "" {
		return nil
	}

	// Prefer the largest thumbnail variant available.
	thumb := item.Snippet.Thumbnails.High.URL
	if thumb == "" {
		thumb = item.Snippet.Thumbnails.Medium.URL
	}
	if thumb == "" {
		thumb = item.Snippet.Thumbnails.Default.URL
	}

	title := item.Snippet.Title
	if title == "" {
		title = "Unknown Title"
	}
	channel := item.Snippet.ChannelTitle
	if channel == "" {
		channel = "Unknown Channel"
	}

	return &Trailer{
		VideoID:      videoID,
		Title:        title,
		Description:  item.Snippet.Description,
		ThumbnailURL: thumb,
		EmbedURL:     "https://www.youtube.com/embed/" + videoID,
		WatchURL:     "https://www.youtube.com/watch?v=" + videoID,
		ChannelTitle: channel,
		PublishedAt:  item.Snippet.PublishedAt,
	}
}
