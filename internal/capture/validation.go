package capture

// ValidationError represents why a captured value is considered invalid.
// It is supplied by the caller (typically a form controller running
// duplicate checks) and only affects styling; the session never sets it.
type ValidationError int

const (
	ValidationNone ValidationError = iota
	ValidationDuplicateKey
	ValidationEmptyKey
	ValidationNonSingleCharKey
)

// String returns a string representation of the validation error
func (v ValidationError) String() string {
	switch v {
	case ValidationNone:
		return "none"
	case ValidationDuplicateKey:
		return "duplicate key"
	case ValidationEmptyKey:
		return "empty key"
	case ValidationNonSingleCharKey:
		return "not a single character"
	default:
		return "unknown"
	}
}

// Check validates a single captured value in isolation. Duplicate detection
// needs the whole value set and is the caller's job.
func Check(value string, required bool) ValidationError {
	runes := []rune(value)
	switch {
	case len(runes) == 0 && required:
		return ValidationEmptyKey
	case len(runes) > 1:
		return ValidationNonSingleCharKey
	default:
		return ValidationNone
	}
}
