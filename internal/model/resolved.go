package model

// ResolvedKind tells whether a resolve call found one item or a playlist
type ResolvedKind int

const (
	ResolvedSingle ResolvedKind = iota
	ResolvedPlaylist
)

// StreamFormat is a format as reported by the extractor, before any filtering.
type StreamFormat struct {
	ID             string
	Ext            string
	Height         int // 0 if unknown
	VCodec         string
	FileSize       int64
	FileSizeApprox bool
}

// HasVideo reports whether the stream carries a video track
func (f StreamFormat) HasVideo() bool {
	return f.VCodec != "none"
}

// ResolvedMedia is a single media item returned by the extractor
type ResolvedMedia struct {
	ID        string
	Title     string
	Uploader  string
	URL       string
	Extractor string
	Formats   []StreamFormat // empty in shallow mode
}

// Source returns the record needed to download the media later
func (m ResolvedMedia) Source() SourceRecord {
	return SourceRecord{URL: m.URL, MediaID: m.ID, Extractor: m.Extractor}
}

// Resolved is the validated result of a resolve call
type Resolved struct {
	Kind    ResolvedKind
	Title   string
	Media   ResolvedMedia   // set for ResolvedSingle
	Entries []ResolvedMedia // set for ResolvedPlaylist
}

// IsPlaylist reports whether the result holds child entries
func (r *Resolved) IsPlaylist() bool {
	return r.Kind == ResolvedPlaylist
}

// ProgressStatus is the phase reported by the collaborator's progress hook
type ProgressStatus string

const (
	ProgressDownloading ProgressStatus = "downloading"
	ProgressFinished    ProgressStatus = "finished"
)

// ProgressUpdate is one progress report for an in-flight download
type ProgressUpdate struct {
	Status          ProgressStatus
	DownloadedBytes int64
	TotalBytes      int64 // 0 when neither total nor estimate is known
	Filename        string
}

// Percent returns downloaded/total*100, and false when the total is unknown.
func (p ProgressUpdate) Percent() (float64, bool) {
	if p.TotalBytes <= 0 {
		return 0, false
	}
	percent := float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
	if percent > 100 {
		percent = 100
	}
	return percent, true
}
