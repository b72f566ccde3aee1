package extractor

import "fmt"

// ExtractionError is returned when a URL cannot be resolved
type ExtractionError struct {
	URL     string
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("failed to extract %s", e.URL)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// DownloadError is returned when a download call fails
type DownloadError struct {
	URL     string
	Message string
	Err     error
}

func (e *DownloadError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("failed to download %s", e.URL)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
