package risk

import "errors"

// Error taxonomy for the risk components. Both are fatal to the call that
// triggered them and nothing else; the replay and poll loops keep running.
var (
	// ErrInvalidConfiguration marks malformed setup such as an unknown
	// stop-loss mode.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrMissingInput marks a call that omitted a required input, e.g. a
	// trailing stop without the highest price seen.
	ErrMissingInput = errors.New("missing input")
)
