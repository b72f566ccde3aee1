package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ytget/vivid-downloader/internal/model"
)

// yt-dlp "_type" values that carry child entries
const (
	typePlaylist   = "playlist"
	typeMultiVideo = "multi_video"
)

// ErrEmptyInfo is returned when yt-dlp printed nothing to parse
var ErrEmptyInfo = errors.New("extractor returned no metadata")

// infoJSON mirrors the subset of yt-dlp's info dict the app reads
type infoJSON struct {
	Type       string        `json:"_type"`
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Uploader   string        `json:"uploader"`
	Channel    string        `json:"channel"`
	WebpageURL string        `json:"webpage_url"`
	URL        string        `json:"url"`
	Extractor  string        `json:"extractor_key"`
	IEKey      string        `json:"ie_key"`
	Entries    []*infoJSON   `json:"entries"`
	Formats    []*formatJSON `json:"formats"`
}

type formatJSON struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	Height         *float64 `json:"height"`
	VCodec         string   `json:"vcodec"`
	FileSize       *float64 `json:"filesize"`
	FileSizeApprox *float64 `json:"filesize_approx"`
}

// parseInfo converts yt-dlp -J output into a validated Resolved record
func parseInfo(raw []byte) (*model.Resolved, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, ErrEmptyInfo
	}

	var info infoJSON
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	if info.isPlaylist() {
		resolved := &model.Resolved{
			Kind:    model.ResolvedPlaylist,
			Title:   info.Title,
			Entries: make([]model.ResolvedMedia, 0, len(info.Entries)),
		}
		for _, child := range info.Entries {
			if child == nil {
				continue
			}
			media := child.toMedia()
			if media.URL == "" {
				continue
			}
			resolved.Entries = append(resolved.Entries, media)
		}
		return resolved, nil
	}

	media := info.toMedia()
	if media.URL == "" {
		return nil, fmt.Errorf("media %q has no resolvable url", info.ID)
	}
	return &model.Resolved{
		Kind:  model.ResolvedSingle,
		Title: media.Title,
		Media: media,
	}, nil
}

func (i *infoJSON) isPlaylist() bool {
	return i.Type == typePlaylist || i.Type == typeMultiVideo || i.Entries != nil
}

func (i *infoJSON) toMedia() model.ResolvedMedia {
	uploader := i.Uploader
	if uploader == "" {
		uploader = i.Channel
	}
	extractor := i.Extractor
	if extractor == "" {
		extractor = i.IEKey
	}

	media := model.ResolvedMedia{
		ID:        i.ID,
		Title:     i.Title,
		Uploader:  uploader,
		URL:       firstNonEmpty(i.WebpageURL, i.URL),
		Extractor: extractor,
	}

	for _, f := range i.Formats {
		if f == nil || f.FormatID == "" {
			continue
		}
		media.Formats = append(media.Formats, f.toStream())
	}
	return media
}

func (f *formatJSON) toStream() model.StreamFormat {
	stream := model.StreamFormat{
		ID:     f.FormatID,
		Ext:    f.Ext,
		VCodec: f.VCodec,
		Height: intValue(f.Height),
	}
	switch {
	case f.FileSize != nil && *f.FileSize > 0:
		stream.FileSize = int64(*f.FileSize)
	case f.FileSizeApprox != nil && *f.FileSizeApprox > 0:
		stream.FileSize = int64(*f.FileSizeApprox)
		stream.FileSizeApprox = true
	}
	return stream
}

func intValue(v *float64) int {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return int(*v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
