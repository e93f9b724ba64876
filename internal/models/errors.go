package models

import "errors"

// Sentinel errors shared across repositories and services. Handlers map
// these onto HTTP status codes; everything else is treated as a dependency
// failure and surfaced as a generic 500.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrValidation    = errors.New("validation failed")
	ErrAssetNotFound = errors.New("asset not found")
)
