// Package playlist looks up video playlist metadata from the YouTube
// Data API. Only id, title and thumbnail per video are kept; playback
// happens elsewhere.
package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

var (
	ErrNotConfigured = errors.New("playlist: api key not configured")
	ErrEmpty         = errors.New("playlist: playlist not found or empty")
)

type Video struct {
	ID        string
	Title     string
	Thumbnail string
}

type Playlist struct {
	ID        string
	Title     string
	Thumbnail string
	Videos    []Video
}

type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// ExtractID pulls the playlist id out of a YouTube URL. Anything that
// does not parse as a URL with a list parameter is assumed to already
// be an id.
func ExtractID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if list := u.Query().Get("list"); list != "" {
		return list
	}
	return raw
}

type thumbnails struct {
	Medium  *struct{ URL string } `json:"medium"`
	Default *struct{ URL string } `json:"default"`
}

func (t thumbnails) best() string {
	if t.Medium != nil {
		return t.Medium.URL
	}
	if t.Default != nil {
		return t.Default.URL
	}
	return ""
}

type playlistListResponse struct {
	Items []struct {
		Snippet struct {
			Title      string     `json:"title"`
			Thumbnails thumbnails `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			Title      string     `json:"title"`
			Thumbnails thumbnails `json:"thumbnails"`
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

// Fetch loads a playlist's title and its full ordered video list,
// paging through the API as needed.
func (c *Client) Fetch(ctx context.Context, playlistID string) (Playlist, error) {
	if c.apiKey == "" {
		return Playlist{}, ErrNotConfigured
	}

	p := Playlist{ID: playlistID}

	var meta playlistListResponse
	q := url.Values{"part": {"snippet"}, "id": {playlistID}, "key": {c.apiKey}}
	if err := c.get(ctx, "/playlists", q, &meta); err != nil {
		return Playlist{}, err
	}
	if len(meta.Items) == 0 {
		return Playlist{}, ErrEmpty
	}
	p.Title = meta.Items[0].Snippet.Title
	p.Thumbnail = meta.Items[0].Snippet.Thumbnails.best()

	pageToken := ""
	for {
		q := url.Values{
			"part":       {"snippet"},
			"playlistId": {playlistID},
			"maxResults": {"50"},
			"key":        {c.apiKey},
		}
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}
		var page playlistItemsResponse
		if err := c.get(ctx, "/playlistItems", q, &page); err != nil {
			return Playlist{}, err
		}
		for _, item := range page.Items {
			if item.Snippet.ResourceID.VideoID == "" {
				continue
			}
			p.Videos = append(p.Videos, Video{
				ID:        item.Snippet.ResourceID.VideoID,
				Title:     item.Snippet.Title,
				Thumbnail: item.Snippet.Thumbnails.best(),
			})
		}
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	if len(p.Videos) == 0 {
		return Playlist{}, ErrEmpty
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("playlist: upstream status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
