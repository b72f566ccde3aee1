package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/vivid-downloader/internal/model"
)

func TestBuildFormats_SortsByHeightStable(t *testing.T) {
	streams := []model.StreamFormat{
		{ID: "140", Ext: "m4a", VCodec: "none"},
		{ID: "18", Ext: "mp4", VCodec: "avc1", Height: 360},
		{ID: "137", Ext: "mp4", VCodec: "avc1", Height: 1080},
		{ID: "248", Ext: "webm", VCodec: "vp9", Height: 1080},
		{ID: "sb0", Ext: "mhtml", VCodec: "", Height: 0},
		{ID: "22", Ext: "mp4", VCodec: "avc1", Height: 720},
	}

	formats := BuildFormats(streams)

	ids := make([]string, 0, len(formats))
	for _, f := range formats {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"137", "248", "22", "18", "sb0"}, ids)

	for i := 1; i < len(formats); i++ {
		assert.GreaterOrEqual(t, formats[i-1].Height, formats[i].Height)
	}
}

func TestBuildFormats_UniqueLabels(t *testing.T) {
	streams := []model.StreamFormat{
		{ID: "136", Ext: "mp4", VCodec: "avc1", Height: 720},
		{ID: "22", Ext: "mp4", VCodec: "avc1", Height: 720},
	}

	formats := BuildFormats(streams)
	require.Len(t, formats, 2)
	assert.Equal(t, "720p (mp4)", formats[0].Label)
	assert.Equal(t, "720p (mp4) [22]", formats[1].Label)
}

func TestBuildFormats_Empty(t *testing.T) {
	assert.Empty(t, BuildFormats(nil))
	assert.Empty(t, BuildFormats([]model.StreamFormat{{ID: "140", VCodec: "none"}}))
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		stream   model.StreamFormat
		expected string
	}{
		{model.StreamFormat{Height: 720, Ext: "mp4"}, "720p (mp4)"},
		{model.StreamFormat{Height: 1080, Ext: "webm", FileSize: 12 * 1024 * 1024}, "1080p (webm) - 12 MiB"},
		{model.StreamFormat{Height: 480, Ext: "mp4", FileSize: 1024, FileSizeApprox: true}, "480p (mp4) - ~1.0 KiB"},
		{model.StreamFormat{}, "N/A (N/A)"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, FormatLabel(test.stream))
	}
}
