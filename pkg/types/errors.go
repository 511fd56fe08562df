package types

import "errors"

// Structural parse failures. These abort the whole parse and surface to the
// caller as a single typed error.
var (
	// ErrMissingModuleHeader is returned when no module declaration is found
	// before the first definition.
	ErrMissingModuleHeader = errors.New("missing module header")

	// ErrUnterminatedQuote is returned when a quoted value opens but never
	// closes before the end of input.
	ErrUnterminatedQuote = errors.New("unterminated quoted string")
)
