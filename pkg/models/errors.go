package models

import "errors"

// Sentinel errors surfaced by the dispatcher and engine. These identify
// infrastructure/validation failures; user-program outcomes are never errors,
// they are TestVerdicts (see spec §7).
var (
	ErrValidation       = errors.New("validation")
	ErrUnknownLanguage  = errors.New("unknown language")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrJobNotFound      = errors.New("job not found")
)
