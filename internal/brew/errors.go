// Package brew computes pour-over brewing plans and pour schedules.
package brew

import "errors"

var (
	// ErrAmbiguousInput is returned when water, coffee and ratio are all supplied.
	ErrAmbiguousInput = errors.New("must specify only water+coffee, water+ratio or coffee+ratio, not all three")
	// ErrInvalidQuantity is returned when a supplied amount or ratio is not positive.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrFormat is returned for a malformed M:SS time string.
	ErrFormat = errors.New("invalid time format")
	// ErrInvalidTiming is returned when timing parameters cannot produce a schedule.
	ErrInvalidTiming = errors.New("invalid timing")
)
