package extractor

import (
	"context"
	"fmt"
	neturl "net/url"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	ytnative "github.com/ytget/ytdlp/v2"

	"github.com/ytget/vivid-downloader/internal/model"
)

// PlaylistURLParam is the query parameter carrying a YouTube playlist id
const PlaylistURLParam = "list"

var youTubeHosts = []string{"youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be"}

// YouTubeVideoURLTemplate builds a watch URL from a video id
const YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"

// DefaultPlaylistParseTimeout bounds native playlist enumeration
const DefaultPlaylistParseTimeout = 30 * time.Second

// PlaylistLister enumerates the videos of a YouTube playlist
type PlaylistLister interface {
	ListPlaylist(ctx context.Context, playlistID string) ([]model.ResolvedMedia, error)
}

// YouTubeLister lists playlists through the native ytget client, without
// spawning yt-dlp.
type YouTubeLister struct{}

// ListPlaylist fetches every item of the playlist
func (YouTubeLister) ListPlaylist(ctx context.Context, playlistID string) ([]model.ResolvedMedia, error) {
	items, err := ytnative.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	media := make([]model.ResolvedMedia, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		media = append(media, model.ResolvedMedia{
			ID:        it.VideoID,
			Title:     it.Title,
			URL:       fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
			Extractor: "Youtube",
		})
	}
	return media, nil
}

// NativePlaylists answers shallow resolves of YouTube playlist URLs with a
// native lister and hands everything else to the wrapped extractor.
type NativePlaylists struct {
	next    Extractor
	lister  PlaylistLister
	timeout time.Duration
	log     logrus.FieldLogger
}

// NewNativePlaylists wraps next. A nil lister uses YouTubeLister.
func NewNativePlaylists(next Extractor, lister PlaylistLister, log logrus.FieldLogger) *NativePlaylists {
	if lister == nil {
		lister = YouTubeLister{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &NativePlaylists{
		next:    next,
		lister:  lister,
		timeout: DefaultPlaylistParseTimeout,
		log:     log,
	}
}

// Resolve tries the native lister first for shallow playlist lookups. Any
// failure falls back to the wrapped extractor.
func (n *NativePlaylists) Resolve(ctx context.Context, url string, shallow bool) (*model.Resolved, error) {
	playlistID := ExtractPlaylistID(url)
	if !shallow || playlistID == "" {
		return n.next.Resolve(ctx, url, shallow)
	}

	listCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	entries, err := n.lister.ListPlaylist(listCtx, playlistID)
	if err != nil || len(entries) == 0 {
		n.log.WithFields(logrus.Fields{"playlist": playlistID, "error": err}).
			Warn("native playlist listing failed, falling back to yt-dlp")
		return n.next.Resolve(ctx, url, shallow)
	}

	return &model.Resolved{
		Kind:    model.ResolvedPlaylist,
		Title:   fmt.Sprintf("Playlist %s", playlistID),
		Entries: entries,
	}, nil
}

// Download delegates to the wrapped extractor
func (n *NativePlaylists) Download(ctx context.Context, req DownloadRequest, onProgress func(model.ProgressUpdate)) error {
	return n.next.Download(ctx, req, onProgress)
}

// ExtractPlaylistID returns the list parameter of a YouTube URL, or "" if absent.
// Supported forms:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(rawURL string) string {
	u, err := neturl.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if !slices.Contains(youTubeHosts, host) {
		return ""
	}
	return u.Query().Get(PlaylistURLParam)
}
