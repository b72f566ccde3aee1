package extractor

import (
	"context"
	"errors"
	"strings"
	"time"

	goytdlp "github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"

	"github.com/ytget/vivid-downloader/internal/model"
)

// Defaults for the yt-dlp backed extractor
const (
	DefaultProgressInterval = 500 * time.Millisecond
	DefaultResolveTimeout   = 60 * time.Second

	// stderrTailLength bounds how much of yt-dlp's stderr ends up in error messages
	stderrTailLength = 512
)

// YTDLP implements Extractor on top of the yt-dlp executable
type YTDLP struct {
	progressInterval time.Duration
	resolveTimeout   time.Duration
	log              logrus.FieldLogger
}

// Option configures YTDLP
type Option func(*YTDLP)

// WithProgressInterval sets how often progress updates are delivered
func WithProgressInterval(d time.Duration) Option {
	return func(y *YTDLP) {
		if d > 0 {
			y.progressInterval = d
		}
	}
}

// WithResolveTimeout bounds a single Resolve call
func WithResolveTimeout(d time.Duration) Option {
	return func(y *YTDLP) {
		if d > 0 {
			y.resolveTimeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(y *YTDLP) {
		if log != nil {
			y.log = log
		}
	}
}

// NewYTDLP creates a yt-dlp backed extractor
func NewYTDLP(opts ...Option) *YTDLP {
	y := &YTDLP{
		progressInterval: DefaultProgressInterval,
		resolveTimeout:   DefaultResolveTimeout,
		log:              logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

// Install makes sure a yt-dlp executable is available, downloading it into
// the user cache when it is missing from PATH.
func Install(ctx context.Context) error {
	_, err := goytdlp.Install(ctx, nil)
	return err
}

// Resolve runs yt-dlp in metadata-only mode
func (y *YTDLP) Resolve(ctx context.Context, url string, shallow bool) (*model.Resolved, error) {
	ctx, cancel := context.WithTimeout(ctx, y.resolveTimeout)
	defer cancel()

	cmd := goytdlp.New().
		DumpSingleJSON().
		SkipDownload().
		NoWarnings()
	if shallow {
		cmd = cmd.FlatPlaylist()
	}

	y.log.WithFields(logrus.Fields{"url": url, "shallow": shallow}).Debug("resolving url")

	res, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, &ExtractionError{URL: url, Message: failureText(res, err), Err: err}
	}

	resolved, err := parseInfo([]byte(res.Stdout))
	if err != nil {
		return nil, &ExtractionError{URL: url, Message: err.Error(), Err: err}
	}
	return resolved, nil
}

// Download runs yt-dlp for a single item
func (y *YTDLP) Download(ctx context.Context, req DownloadRequest, onProgress func(model.ProgressUpdate)) error {
	cmd := goytdlp.New().
		Format(req.Selector).
		Output(req.OutputTemplate).
		NoPlaylist().
		NoOverwrites().
		NoCheckCertificates().
		NoWarnings()

	if onProgress != nil {
		cmd = cmd.ProgressFunc(y.progressInterval, func(update goytdlp.ProgressUpdate) {
			onProgress(convertProgress(update))
		})
	}

	y.log.WithFields(logrus.Fields{
		"url":      req.URL,
		"format":   req.Selector,
		"template": req.OutputTemplate,
	}).Info("starting download")

	res, err := cmd.Run(ctx, req.URL)
	if err != nil {
		return &DownloadError{URL: req.URL, Message: failureText(res, err), Err: err}
	}
	return nil
}

// convertProgress maps a go-ytdlp update onto the app's progress record.
// Anything that is not a finished signal counts as downloading.
func convertProgress(update goytdlp.ProgressUpdate) model.ProgressUpdate {
	status := model.ProgressDownloading
	if string(update.Status) == string(model.ProgressFinished) {
		status = model.ProgressFinished
	}
	return model.ProgressUpdate{
		Status:          status,
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		Filename:        update.Filename,
	}
}

// failureText prefers yt-dlp's own error line over the generic exit error
func failureText(res *goytdlp.Result, err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err.Error()
	}
	if res != nil {
		if line := lastErrorLine(res.Stderr); line != "" {
			return line
		}
	}
	return err.Error()
}

// lastErrorLine returns the last "ERROR:" line of stderr, or its tail
func lastErrorLine(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
	}
	if len(stderr) > stderrTailLength {
		return stderr[len(stderr)-stderrTailLength:]
	}
	return stderr
}
