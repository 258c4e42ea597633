package eq

import "errors"

var (
	// ErrInvalidSampleRate is returned for non-positive or non-finite sample rates.
	ErrInvalidSampleRate = errors.New("eq: sample rate must be positive and finite")
	// ErrInvalidChannels is returned when the channel count is not positive.
	ErrInvalidChannels = errors.New("eq: channel count must be > 0")
	// ErrUnknownFilterType is returned by ParseFilterType.
	ErrUnknownFilterType = errors.New("eq: unknown filter type")
	// ErrUnknownParameter is returned by SetParameter for ids that name no parameter.
	ErrUnknownParameter = errors.New("eq: unknown parameter")
	// ErrInvalidBands is returned when WithBands is given the wrong number of bands.
	ErrInvalidBands = errors.New("eq: band count must equal NumBands")
)
