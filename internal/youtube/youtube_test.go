// youtube_test.go — Tests for trailer search query building and response
// normalization, using a fake upstream.
package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestFormatSearchQuery checks year stripping and the fixed trailer suffix.
func TestFormatSearchQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain title",
			input: "Inception",
			want:  "Inception official trailer",
		},
		{
			name:  "trailing year stripped",
			input: "Inception (2010)",
			want:  "Inception official trailer",
		},
		{
			name:  "year mid-title kept",
			input: "Blade Runner 2049",
			want:  "Blade Runner 2049 official trailer",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  Dune  ",
			want:  "Dune official trailer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSearchQuery(tt.input); got != tt.want {
				t.Errorf("formatSearchQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindTrailer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "Inception official trailer" {
			t.Errorf("q = %q", q.Get("q"))
		}
		if q.Get("maxResults") != "1" || q.Get("videoCategoryId") != "1" || q.Get("safeSearch") != "strict" {
			t.Errorf("unexpected search params: %v", q)
		}
		w.Write([]byte(`{
			"items": [{
				"id": {"videoId": "abc123"},
				"snippet": {
					"title": "Inception Official Trailer",
					"description": "desc",
					"channelTitle": "Warner Bros. Pictures",
					"publishedAt": "2010-05-10T00:00:00Z",
					"thumbnails": {
						"default": {"url": "https://t/default.jpg"},
						"high": {"url": "https://t/high.jpg"}
					}
				}
			}]
		}`))
	}))
	defer server.Close()

	svc := New("yt-key", server.URL)
	trailer, err := svc.FindTrailer(context.Background(), "Inception (2010)")
	if err != nil {
		t.Fatalf("FindTrailer returned error: %v", err)
	}
	if trailer == nil {
		t.Fatal("trailer is nil")
	}
	if trailer.VideoID != "abc123" {
		t.Errorf("video_id = %q", trailer.VideoID)
	}
	if trailer.ThumbnailURL != "https://t/high.jpg" {
		t.Errorf("thumbnail_url = %q, want the high variant", trailer.ThumbnailURL)
	}
	if trailer.WatchURL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("watch_url = %q", trailer.WatchURL)
	}
	if trailer.EmbedURL != "https://www.youtube.com/embed/abc123" {
		t.Errorf("embed_url = %q", trailer.EmbedURL)
	}
}

func TestFindTrailer_ThumbnailFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"items": [{
				"id": {"videoId": "v1"},
				"snippet": {"thumbnails": {"default": {"url": "https://t/default.jpg"}}}
			}]
		}`))
	}))
	defer server.Close()

	svc := New("yt-key", server.URL)
	trailer, err := svc.FindTrailer(context.Background(), "Some Movie")
	if err != nil {
		t.Fatalf("FindTrailer returned error: %v", err)
	}
	if trailer.ThumbnailURL != "https://t/default.jpg" {
		t.Errorf("thumbnail_url = %q, want default fallback", trailer.ThumbnailURL)
	}
}

func TestFindTrailer_NoKey(t *testing.T) {
	svc := New("", "http://unused.invalid")
	trailer, err := svc.FindTrailer(context.Background(), "Inception")
	if err != nil {
		t.Errorf("missing key should not error, got %v", err)
	}
	if trailer != nil {
		t.Errorf("missing key should yield no trailer, got %+v", trailer)
	}
}

func TestFindTrailer_BlankTitle(t *testing.T) {
	svc := New("yt-key", "http://unused.invalid")
	trailer, err := svc.FindTrailer(context.Background(), "   ")
	if err != nil || trailer != nil {
		t.Errorf("blank title should yield (nil, nil), got (%+v, %v)", trailer, err)
	}
}

func TestFindTrailer_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	svc := New("yt-key", server.URL)
	trailer, err := svc.FindTrailer(context.Background(), "Obscure Film")
	if err != nil {
		t.Fatalf("FindTrailer returned error: %v", err)
	}
	if trailer != nil {
		t.Errorf("zero results should yield no trailer, got %+v", trailer)
	}
}

func TestFindTrailer_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer server.Close()

	svc := New("yt-key", server.URL)
	trailer, err := svc.FindTrailer(context.Background(), "Inception")
	if err == nil {
		t.Error("upstream failure should surface an error for the caller to log")
	}
	if trailer != nil {
		t.Errorf("failed lookup should yield no trailer, got %+v", trailer)
	}
}

func TestListTrailers_SkipsHitsWithoutVideoID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("maxResults"); got != "3" {
			t.Errorf("maxResults = %q, want 3", got)
		}
		w.Write([]byte(`{
			"items": [
				{"id": {"videoId": "v1"}, "snippet": {"title": "Trailer 1", "thumbnails": {}}},
				{"id": {}, "snippet": {"title": "A channel hit", "thumbnails": {}}},
				{"id": {"videoId": "v2"}, "snippet": {"title": "Teaser", "thumbnails": {}}}
			]
		}`))
	}))
	defer server.Close()

	svc := New("yt-key", server.URL)
	trailers, err := svc.ListTrailers(context.Background(), "Inception", 3)
	if err != nil {
		t.Fatalf("ListTrailers returned error: %v", err)
	}
	if len(trailers) != 2 {
		t.Fatalf("got %d trailers, want 2", len(trailers))
	}
	if trailers[0].VideoID != "v1" || trailers[1].VideoID != "v2" {
		t.Errorf("trailers = %+v", trailers)
	}
}
