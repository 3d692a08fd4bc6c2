package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newSearchFixture(handler http.HandlerFunc) (*videoSearchService, *httptest.Server) {
	srv := httptest.NewServer(handler)
	vs := &videoSearchService{
		log:        testLogger(),
		apiKey:     "test-key",
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	return vs, srv
}

func TestVideoSearch(t *testing.T) {
	var gotQuery map[string]string
	vs, srv := newSearchFixture(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"part":       q.Get("part"),
			"q":          q.Get("q"),
			"type":       q.Get("type"),
			"maxResults": q.Get("maxResults"),
			"key":        q.Get("key"),
			"order":      q.Get("order"),
			"safeSearch": q.Get("safeSearch"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"id": {"videoId": "abc123"}, "snippet": {"title": "Go Basics", "description": "d", "channelTitle": "GoChannel", "thumbnails": {"default": {"url": "http://img/1.jpg"}}}},
				{"id": {}, "snippet": {"title": "playlist, no video id"}},
				{"id": {"videoId": "xyz789"}, "snippet": {"title": "Go Advanced", "channelTitle": "GoChannel", "thumbnails": {"default": {"url": "http://img/2.jpg"}}}}
			]
		}`))
	})
	defer srv.Close()

	got, err := vs.Search(context.Background(), "golang tutorial")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2 (entry without videoId dropped)", len(got))
	}
	if got[0].VideoID != "abc123" || got[0].Title != "Go Basics" || got[0].ChannelTitle != "GoChannel" {
		t.Fatalf("first suggestion = %+v", got[0])
	}
	if got[0].WatchURL != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("watch url = %q", got[0].WatchURL)
	}
	if got[0].ThumbnailURL != "http://img/1.jpg" {
		t.Fatalf("thumbnail = %q", got[0].ThumbnailURL)
	}

	want := map[string]string{
		"part":       "snippet",
		"q":          "golang tutorial",
		"type":       "video",
		"maxResults": "5",
		"key":        "test-key",
		"order":      "relevance",
		"safeSearch": "strict",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Fatalf("query param %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestVideoSearchBlankQuery(t *testing.T) {
	vs, srv := newSearchFixture(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made for a blank query")
	})
	defer srv.Close()

	if _, err := vs.Search(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank query")
	}
}

func TestVideoSearchWithoutAPIKey(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")

	// Construction must succeed so the rest of the API boots without a key.
	svc := NewVideoSearchService(testLogger())
	if svc == nil {
		t.Fatal("NewVideoSearchService returned nil")
	}
	if _, err := svc.Search(context.Background(), "golang"); !errors.Is(err, ErrSearchNotConfigured) {
		t.Fatalf("err = %v, want ErrSearchNotConfigured", err)
	}
}

func TestVideoSearchNotConfiguredMakesNoRequest(t *testing.T) {
	vs, srv := newSearchFixture(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made without an API key")
	})
	defer srv.Close()
	vs.apiKey = ""

	if _, err := vs.Search(context.Background(), "golang"); !errors.Is(err, ErrSearchNotConfigured) {
		t.Fatalf("err = %v, want ErrSearchNotConfigured", err)
	}
}

func TestVideoSearchUpstreamFailure(t *testing.T) {
	vs, srv := newSearchFixture(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 403, "message": "quotaExceeded"}}`, http.StatusForbidden)
	})
	defer srv.Close()

	if _, err := vs.Search(context.Background(), "golang"); err == nil {
		t.Fatal("expected error for upstream 403")
	}
}
