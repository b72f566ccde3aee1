package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/vivid-downloader/internal/model"
)

type stubLister struct {
	entries []model.ResolvedMedia
	err     error
	calls   int
}

func (s *stubLister) ListPlaylist(ctx context.Context, playlistID string) ([]model.ResolvedMedia, error) {
	s.calls++
	return s.entries, s.err
}

type stubExtractor struct {
	resolveCalls  int
	downloadCalls int
}

func (s *stubExtractor) Resolve(ctx context.Context, url string, shallow bool) (*model.Resolved, error) {
	s.resolveCalls++
	return &model.Resolved{Kind: model.ResolvedSingle, Media: model.ResolvedMedia{URL: url}}, nil
}

func (s *stubExtractor) Download(ctx context.Context, req DownloadRequest, onProgress func(model.ProgressUpdate)) error {
	s.downloadCalls++
	return nil
}

func quietLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/playlist?list=PL123", "PL123"},
		{"https://www.youtube.com/watch?v=abc&list=PL456&start_radio=1", "PL456"},
		{"https://music.youtube.com/playlist?list=OLAK5", "OLAK5"},
		{"https://www.youtube.com/watch?v=abc", ""},
		{"https://example.com/watch?list=PL789", ""},
		{"::not a url", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ExtractPlaylistID(test.url), test.url)
	}
}

func TestNativePlaylists_UsesListerForPlaylists(t *testing.T) {
	lister := &stubLister{entries: []model.ResolvedMedia{{ID: "a", URL: "https://www.youtube.com/watch?v=a"}}}
	next := &stubExtractor{}
	n := NewNativePlaylists(next, lister, quietLogger())

	resolved, err := n.Resolve(context.Background(), "https://www.youtube.com/playlist?list=PL1", true)
	require.NoError(t, err)

	assert.True(t, resolved.IsPlaylist())
	assert.Len(t, resolved.Entries, 1)
	assert.Equal(t, 1, lister.calls)
	assert.Equal(t, 0, next.resolveCalls)
}

func TestNativePlaylists_FallsBack(t *testing.T) {
	lister := &stubLister{err: errors.New("quota")}
	next := &stubExtractor{}
	n := NewNativePlaylists(next, lister, quietLogger())

	_, err := n.Resolve(context.Background(), "https://www.youtube.com/playlist?list=PL1", true)
	require.NoError(t, err)
	assert.Equal(t, 1, next.resolveCalls)

	lister.err = nil
	_, err = n.Resolve(context.Background(), "https://www.youtube.com/playlist?list=PL1", true)
	require.NoError(t, err)
	assert.Equal(t, 2, next.resolveCalls, "empty listing falls back too")
}

func TestNativePlaylists_SkipsNonPlaylistAndFullResolves(t *testing.T) {
	lister := &stubLister{}
	next := &stubExtractor{}
	n := NewNativePlaylists(next, lister, quietLogger())

	_, _ = n.Resolve(context.Background(), "https://www.youtube.com/watch?v=abc", true)
	_, _ = n.Resolve(context.Background(), "https://www.youtube.com/playlist?list=PL1", false)
	require.NoError(t, n.Download(context.Background(), DownloadRequest{URL: "x"}, nil))

	assert.Equal(t, 0, lister.calls)
	assert.Equal(t, 2, next.resolveCalls)
	assert.Equal(t, 1, next.downloadCalls)
}

func TestErrors(t *testing.T) {
	cause := errors.New("exit status 1")

	extractErr := &ExtractionError{URL: "u", Message: "Unsupported URL", Err: cause}
	assert.Equal(t, "Unsupported URL", extractErr.Error())
	assert.ErrorIs(t, extractErr, cause)

	downloadErr := &DownloadError{URL: "u", Err: cause}
	assert.Equal(t, "exit status 1", downloadErr.Error())
	assert.ErrorIs(t, downloadErr, cause)

	assert.Contains(t, (&DownloadError{URL: "u"}).Error(), "u")
}
