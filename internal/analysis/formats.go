package analysis

import (
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/ytget/vivid-downloader/internal/model"
)

// BuildFormats keeps the video streams and orders them by descending height.
// Streams of equal height keep the extractor's order.
func BuildFormats(streams []model.StreamFormat) []model.Format {
	video := lo.Filter(streams, func(s model.StreamFormat, _ int) bool {
		return s.HasVideo()
	})
	slices.SortStableFunc(video, func(a, b model.StreamFormat) int {
		return b.Height - a.Height
	})

	formats := make([]model.Format, 0, len(video))
	seen := make(map[string]struct{}, len(video))
	for _, s := range video {
		label := FormatLabel(s)
		if _, dup := seen[label]; dup {
			label = fmt.Sprintf("%s [%s]", label, s.ID)
		}
		seen[label] = struct{}{}

		formats = append(formats, model.Format{
			Label:    label,
			ID:       s.ID,
			Height:   s.Height,
			Ext:      s.Ext,
			FileSize: s.FileSize,
		})
	}
	return formats
}

// FormatLabel renders "720p (mp4) - 12 MiB", dropping the size when unknown.
func FormatLabel(s model.StreamFormat) string {
	resolution := "N/A"
	if s.Height > 0 {
		resolution = fmt.Sprintf("%dp", s.Height)
	}
	ext := s.Ext
	if ext == "" {
		ext = "N/A"
	}

	label := fmt.Sprintf("%s (%s)", resolution, ext)
	if s.FileSize > 0 {
		size := humanize.IBytes(uint64(s.FileSize))
		if s.FileSizeApprox {
			size = "~" + size
		}
		label += " - " + size
	}
	return label
}
