package extractor

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ytget/vivid-downloader/internal/config"
)

// FromConfig builds the extractor used by the application: yt-dlp, wrapped
// with native playlist listing when enabled. It installs yt-dlp first if cfg
// asks for it.
func FromConfig(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (Extractor, error) {
	if cfg.InstallYTDLP {
		if err := Install(ctx); err != nil {
			return nil, fmt.Errorf("install yt-dlp: %w", err)
		}
	}

	var ex Extractor = NewYTDLP(
		WithProgressInterval(cfg.ProgressInterval),
		WithResolveTimeout(cfg.AnalysisTimeout),
		WithLogger(log),
	)
	if cfg.NativePlaylists {
		ex = NewNativePlaylists(ex, YouTubeLister{}, log)
	}
	return ex, nil
}
