package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/youtube"
)

// ErrSearchNotConfigured means no YouTube API key is set. Search is an
// auxiliary feature; a missing key degrades it per request rather than
// failing the whole service at boot.
var ErrSearchNotConfigured = errors.New("video search is not configured")

const videoSearchMaxResults = 5

type VideoSuggestion struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channel_title"`
	ThumbnailURL string `json:"thumbnail_url"`
	WatchURL     string `json:"watch_url"`
}

type VideoSearchService interface {
	Search(ctx context.Context, query string) ([]VideoSuggestion, error)
}

type videoSearchService struct {
	log        *logger.Logger
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewVideoSearchService(log *logger.Logger) VideoSearchService {
	serviceLog := log.With("service", "VideoSearchService")
	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		serviceLog.Warn("YOUTUBE_API_KEY not set, video search disabled")
	}
	return &videoSearchService{
		log:        serviceLog,
		apiKey:     apiKey,
		baseURL:    "https://www.googleapis.com/youtube/v3",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

func (vs *videoSearchService) Search(ctx context.Context, query string) ([]VideoSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("a search query is required")
	}
	if vs.apiKey == "" {
		return nil, ErrSearchNotConfigured
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprintf("%d", videoSearchMaxResults))
	params.Set("key", vs.apiKey)
	params.Set("order", "relevance")
	params.Set("safeSearch", "strict")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, vs.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := vs.httpClient.Do(req)
	if err != nil {
		vs.log.Warn("video search request failed", "error", err.Error())
		return nil, fmt.Errorf("video search request: %w", err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		vs.log.Warn("video search rejected", "status", resp.StatusCode)
		return nil, fmt.Errorf("video search http %d", resp.StatusCode)
	}

	var parsed youtubeSearchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode video search response: %w", err)
	}

	suggestions := make([]VideoSuggestion, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.ID.VideoID == "" {
			continue
		}
		suggestions = append(suggestions, VideoSuggestion{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelTitle: item.Snippet.ChannelTitle,
			ThumbnailURL: item.Snippet.Thumbnails.Default.URL,
			WatchURL:     youtube.WatchURL(item.ID.VideoID),
		})
	}
	return suggestions, nil
}
