package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCandidates signals an empty candidate list: nothing to post yet.
	ErrNoCandidates = errors.New("no unprocessed candidates")

	// ErrNotExist is returned by blob stores when a document is missing.
	ErrNotExist = errors.New("document does not exist")
)

// FetchError reports a failed HTTP retrieval of a feed or an article page.
type FetchError struct {
	Outlet Outlet
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError means no known marker pair matched the rendered page.
// It carries every marker that was tried: this usually means the outlet
// changed its page structure and the rules need updating.
type ExtractionError struct {
	Outlet      Outlet
	StartMarker string
	EndMarkers  []string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: no marker pair matched (start %q, ends %q)",
		e.Outlet, e.StartMarker, e.EndMarkers)
}

// SelectionError reports a non-numeric or out-of-range candidate index from
// the generation service. Indexes are never clamped.
type SelectionError struct {
	Raw   string
	Index int
	Count int
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("select: invalid choice %q: index %d not in [0, %d)", e.Raw, e.Index, e.Count)
}

// GenerationError means every retry was used up without obtaining a
// markdown-free structured response.
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate: no clean response after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
