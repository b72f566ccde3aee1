package extractor

import (
	"testing"
	"time"

	goytdlp "github.com/lrstanley/go-ytdlp"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/vivid-downloader/internal/model"
)

func TestNewYTDLP_Options(t *testing.T) {
	y := NewYTDLP(
		WithProgressInterval(time.Second),
		WithResolveTimeout(0),
		WithLogger(quietLogger()),
	)

	assert.Equal(t, time.Second, y.progressInterval)
	assert.Equal(t, DefaultResolveTimeout, y.resolveTimeout)
}

func TestConvertProgress(t *testing.T) {
	update := convertProgress(goytdlp.ProgressUpdate{
		Status:          "downloading",
		DownloadedBytes: 512,
		TotalBytes:      1024,
		Filename:        "/tmp/clip.mp4",
	})
	assert.Equal(t, model.ProgressDownloading, update.Status)
	assert.Equal(t, int64(512), update.DownloadedBytes)
	assert.Equal(t, int64(1024), update.TotalBytes)
	assert.Equal(t, "/tmp/clip.mp4", update.Filename)

	finished := convertProgress(goytdlp.ProgressUpdate{Status: "finished"})
	assert.Equal(t, model.ProgressFinished, finished.Status)
}
