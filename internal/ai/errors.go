package ai

import "errors"

// ErrExtractionFailed means the provider response held no parseable payload
// of the expected shape. It is recovered internally by the fallback path and
// never reaches Service callers.
var ErrExtractionFailed = errors.New("ai response extraction failed")
