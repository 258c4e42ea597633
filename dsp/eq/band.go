package eq

import (
	"fmt"
	"image/color"
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// NumBands is the fixed number of bands in a Bank.
const NumBands = 6

// Parameter limits shared by every band.
const (
	MinFrequency = 20.0
	MaxFrequency = 20000.0
	MinQuality   = 0.1
	MaxQuality   = 10.0
	MaxGainDB    = 24.0
	// MaxOutputGain is the upper bound of the linear output gain.
	MaxOutputGain = 2.0

	// nyquistGuard keeps centre frequencies safely below fs/2.
	nyquistGuard = 0.49
)

// MaxGain is MaxGainDB as a linear factor. Band gains live in [1/MaxGain, MaxGain].
var MaxGain = core.DBToLinear(MaxGainDB)

// Band describes one equalizer band. Gain is linear.
type Band struct {
	Name      string
	Colour    color.RGBA
	Type      FilterType
	Frequency float64
	Quality   float64
	Gain      float64
	Active    bool
}

// GainDB returns the band gain in decibels.
func (b Band) GainDB() float64 {
	return core.LinearToDB(b.Gain)
}

func (b Band) String() string {
	state := "active"
	if !b.Active {
		state = "bypassed"
	}

	return fmt.Sprintf("%s: %s %.0f Hz Q=%.2f %+.1f dB (%s)",
		b.Name, b.Type, b.Frequency, b.Quality, b.GainDB(), state)
}

// DefaultBands returns the factory band layout: a low shelf, four peaks and
// a high shelf spread over the audible range, all flat and active.
func DefaultBands() []Band {
	return []Band{
		newBand("Lowest", color.RGBA{R: 0xff, G: 0xff, A: 0xff}, LowShelf, 30),
		newBand("Low", color.RGBA{R: 0xa5, G: 0x2a, B: 0x2a, A: 0xff}, Peak, 250),
		newBand("Low Mids", color.RGBA{G: 0x80, A: 0xff}, Peak, 500),
		newBand("High Mids", color.RGBA{R: 0xff, G: 0x7f, B: 0x50, A: 0xff}, Peak, 1000),
		newBand("High", color.RGBA{R: 0xff, G: 0xa5, A: 0xff}, Peak, 5000),
		newBand("Highest", color.RGBA{R: 0xff, A: 0xff}, HighShelf, 12000),
	}
}

func newBand(name string, c color.RGBA, t FilterType, freq float64) Band {
	return Band{Name: name, Colour: c, Type: t, Frequency: freq, Quality: 1, Gain: 1, Active: true}
}

// Field names one editable band parameter.
type Field int

const (
	FieldType Field = iota
	FieldFrequency
	FieldQuality
	FieldGain
	FieldActive

	numFields
)

var fieldNames = [numFields]string{"type", "frequency", "quality", "gain", "active"}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}

	return fieldNames[f]
}

// Fields returns every band field in declaration order.
func Fields() []Field {
	return []Field{FieldType, FieldFrequency, FieldQuality, FieldGain, FieldActive}
}

// maxFrequency is the highest usable centre frequency at sampleRate.
func maxFrequency(sampleRate float64) float64 {
	return math.Min(MaxFrequency, nyquistGuard*sampleRate)
}

// withField returns b with field set to value, clamped into range.
func (b Band) withField(field Field, value float64, sampleRate float64) (Band, bool) {
	switch field {
	case FieldType:
		if math.IsNaN(value) {
			return b, false
		}
		b.Type = FilterType(core.Clamp(math.Round(value), 0, float64(numFilterTypes-1)))
	case FieldFrequency:
		b.Frequency = core.Clamp(value, MinFrequency, maxFrequency(sampleRate))
	case FieldQuality:
		b.Quality = core.Clamp(value, MinQuality, MaxQuality)
	case FieldGain:
		b.Gain = core.Clamp(value, 1/MaxGain, MaxGain)
	case FieldActive:
		b.Active = value >= 0.5
	default:
		return b, false
	}

	return b, true
}

// sanitize clamps every numeric field of b.
func (b Band) sanitize(sampleRate float64) Band {
	if !b.Type.Valid() {
		b.Type = NoFilter
	}
	b.Frequency = core.Clamp(b.Frequency, MinFrequency, maxFrequency(sampleRate))
	b.Quality = core.Clamp(b.Quality, MinQuality, MaxQuality)
	b.Gain = core.Clamp(b.Gain, 1/MaxGain, MaxGain)

	return b
}

// coefficients designs b at sampleRate.
func (b Band) coefficients(sampleRate float64) biquad.Coefficients {
	return Coefficients(b.Type, b.Frequency, b.Quality, b.Gain, sampleRate)
}
