package sampler

import "github.com/pkg/errors"

var (
	// ErrResourceNotFound is returned when a reference path does not exist.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrInsufficientData is returned when the reference dataset has too few
	// rows to draw base indices from.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMalformedInput is returned when a reference table lacks a trait
	// column or carries a cell that is not a number.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidConfig is returned by NewSampler for unusable settings.
	ErrInvalidConfig = errors.New("invalid sampler config")
)
