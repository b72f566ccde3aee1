package queue

// Package queue implements the in-memory download queue: an ordered set of
// entries with selection, quality choice and per-entry status. Reads return
// copies, so callers on other goroutines never observe a half-applied update.
