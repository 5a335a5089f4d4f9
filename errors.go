package arabic

import "errors"

// ═══════════════════════════════════════════════════════════════════════════════
// ERROR DEFINITIONS
// ═══════════════════════════════════════════════════════════════════════════════
// The analysis pipeline itself never fails. These errors belong to the index,
// its binary encoding and configuration loading. Match them with errors.Is;
// most are returned wrapped with context.
var (
	ErrUnknownDocument = errors.New("document is not indexed")
	ErrCorruptIndex    = errors.New("corrupt index data")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
