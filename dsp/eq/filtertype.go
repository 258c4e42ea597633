package eq

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

// FilterType selects the response shape of a band. The ordinal values are
// stable and match the choice index of the "<band>-type" parameter.
type FilterType int

const (
	NoFilter FilterType = iota
	HighPass
	HighPass1st
	LowShelf
	BandPass
	AllPass
	AllPass1st
	Notch
	Peak
	HighShelf
	LowPass1st
	LowPass

	numFilterTypes
)

var filterTypeNames = [numFilterTypes]string{
	"No Filter",
	"High Pass",
	"1st High Pass",
	"Low Shelf",
	"Band Pass",
	"All Pass",
	"1st All Pass",
	"Notch",
	"Peak",
	"High Shelf",
	"1st Low Pass",
	"Low Pass",
}

// FilterTypes returns every filter type in ordinal order.
func FilterTypes() []FilterType {
	out := make([]FilterType, numFilterTypes)
	for i := range out {
		out[i] = FilterType(i)
	}

	return out
}

// FilterTypeNames returns the display names in ordinal order.
func FilterTypeNames() []string {
	return append([]string(nil), filterTypeNames[:]...)
}

func (t FilterType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("FilterType(%d)", int(t))
	}

	return filterTypeNames[t]
}

// Valid reports whether t is one of the defined filter types.
func (t FilterType) Valid() bool {
	return t >= 0 && t < numFilterTypes
}

// UsesGain reports whether the gain parameter affects the response.
func (t FilterType) UsesGain() bool {
	return t == LowShelf || t == Peak || t == HighShelf
}

// UsesQuality reports whether the quality parameter affects the response.
func (t FilterType) UsesQuality() bool {
	switch t {
	case NoFilter, HighPass1st, AllPass1st, LowPass1st:
		return false
	default:
		return true
	}
}

// ParseFilterType resolves a display name ("Low Shelf") or a compact form
// ("lowshelf", "low-shelf", "1st-low-pass") to a FilterType.
func ParseFilterType(name string) (FilterType, error) {
	key := compactName(name)
	for i, n := range filterTypeNames {
		if compactName(n) == key {
			return FilterType(i), nil
		}
	}

	switch key {
	case "none", "off", "bypass":
		return NoFilter, nil
	case "lp", "lowpass2":
		return LowPass, nil
	case "hp", "highpass2":
		return HighPass, nil
	case "bell":
		return Peak, nil
	}

	return NoFilter, fmt.Errorf("%w: %q", ErrUnknownFilterType, name)
}

func compactName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Coefficients designs the biquad for one band. gain is linear; frequency
// and quality are expected to be clamped already. Invalid designs fall back
// to the identity response.
func Coefficients(t FilterType, freq, quality, gain, sampleRate float64) biquad.Coefficients {
	gainDB := 0.0
	if gain > 0 {
		gainDB = core.LinearToDB(gain)
	}

	var c biquad.Coefficients
	switch t {
	case NoFilter:
		c = biquad.Identity
	case LowPass:
		c = design.Lowpass(freq, quality, sampleRate)
	case LowPass1st:
		c = design.LowpassFirstOrder(freq, sampleRate)
	case LowShelf:
		c = design.LowShelf(freq, gainDB, quality, sampleRate)
	case BandPass:
		c = design.Bandpass(freq, quality, sampleRate)
	case AllPass:
		c = design.Allpass(freq, quality, sampleRate)
	case AllPass1st:
		c = design.AllpassFirstOrder(freq, sampleRate)
	case Notch:
		c = design.Notch(freq, quality, sampleRate)
	case Peak:
		c = design.Peak(freq, gainDB, quality, sampleRate)
	case HighShelf:
		c = design.HighShelf(freq, gainDB, quality, sampleRate)
	case HighPass1st:
		c = design.HighpassFirstOrder(freq, sampleRate)
	case HighPass:
		c = design.Highpass(freq, quality, sampleRate)
	default:
		c = biquad.Identity
	}

	if !c.IsFinite() {
		return biquad.Identity
	}

	return c
}
