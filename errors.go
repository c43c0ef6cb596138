package a3d

import "errors"

// Pipeline errors. Each marks one stage of content acquisition or conversion
// and is terminal: callers decide whether to retry, the library never does.
// Wrap sites add detail with fmt.Errorf("...: %w", err) so errors.Is keeps
// matching the sentinel.
var (
	// ErrNoContent is returned when neither markup, a file path, a URL nor
	// a pixel buffer was provided.
	ErrNoContent = errors.New("a3d: no content provided")

	// ErrFetchFailed is returned when a remote reference cannot be
	// retrieved or read.
	ErrFetchFailed = errors.New("a3d: fetch failed")

	// ErrInvalidMarkup is returned when content does not parse as vector
	// markup with the expected root element.
	ErrInvalidMarkup = errors.New("a3d: invalid markup")

	// ErrRasterizationFailed is returned when parsed markup cannot be
	// rendered into a pixel buffer.
	ErrRasterizationFailed = errors.New("a3d: rasterization failed")

	// ErrCanvasUnavailable is returned when a pixel buffer is missing or
	// has no readable pixel data.
	ErrCanvasUnavailable = errors.New("a3d: canvas unavailable")

	// ErrInvalidRamp is returned when a character ramp has fewer than two
	// glyphs.
	ErrInvalidRamp = errors.New("a3d: invalid character ramp")
)

// SourceError reports which acquisition stage failed. It wraps the stage's
// pipeline sentinel, so errors.Is keeps matching.
type SourceError struct {
	Stage string // "fetch", "parse" or "rasterize"
	Err   error
}

func (e *SourceError) Error() string {
	return "a3d: source " + e.Stage + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error { return e.Err }
