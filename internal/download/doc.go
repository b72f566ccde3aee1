package download

// Package download implements the download worker. It takes a snapshot of the
// selected queue entries, downloads them one after another through the
// extractor, and reports per-entry progress as model events. One failing
// entry never aborts the rest of the batch.
