package envcheck

import "errors"

var (
	// ErrReadingRules is returned when the rules file cannot be read.
	ErrReadingRules = errors.New("failed to read rules file")

	// ErrParsingRules is returned when the rules file is not valid YAML or
	// contains unknown keys.
	ErrParsingRules = errors.New("failed to parse rules file")

	// ErrInvalidRules is returned when the rules are well-formed YAML but
	// describe an impossible check (missing name, duplicate, unknown type).
	ErrInvalidRules = errors.New("invalid rules")
)
