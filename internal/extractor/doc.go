package extractor

// Package extractor is the boundary to the external media-extraction tool.
// Results come back from yt-dlp as loosely typed JSON; they are validated and
// converted into model records here, before anything else sees them.
