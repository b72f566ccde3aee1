package analysis

// Package analysis implements the analysis worker: it turns a pasted URL into
// queue entries, expanding playlists shallowly and resolving the full format
// list for single items.
