package contract

import "errors"

// Error sentinels shared by the engine and its callers.
var (
	// ErrInvalidInput reports lock-step inputs of different lengths or unusable shapes.
	ErrInvalidInput = errors.New("invalid input")

	// ErrReplayNotFound reports a replay file that does not exist.
	ErrReplayNotFound = errors.New("replay not found")

	// ErrMalformedReplay reports a replay file whose records cannot be decoded.
	ErrMalformedReplay = errors.New("malformed replay")

	// ErrChartNotFound reports a song folder without a readable chart file.
	ErrChartNotFound = errors.New("chart not found")
)
