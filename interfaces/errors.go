package interfaces

import "errors"

var (
	// ErrNoUpstreamData is returned when the upstream responded but the
	// requested currency or asset was missing from the result
	ErrNoUpstreamData = errors.New("upstream returned no data for request")

	// ErrTimestampOutOfTolerance is returned when a historical fetch came
	// back with a quote time too far from the requested one to be usable
	ErrTimestampOutOfTolerance = errors.New("upstream timestamp out of tolerance")

	// ErrUpstreamUnavailable is returned on transport or timeout failure
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrEmptySyncTarget is returned on a programmer-facing misuse:
	// a refresh requested for an empty asset set or blank currency
	ErrEmptySyncTarget = errors.New("empty sync target")
)
