package eq

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// OutputParamID is the id of the global output-gain parameter.
const OutputParamID = "output"

var bandIDs = [NumBands]string{"Lowest", "Low", "Low Mids", "High Mids", "High", "Highest"}

// BandID returns the stable identifier of band index, or "unknown".
func BandID(index int) string {
	if index < 0 || index >= NumBands {
		return "unknown"
	}

	return bandIDs[index]
}

// ParamID returns the parameter id for one field of band index, for example
// "Low Mids-frequency".
func ParamID(index int, field Field) string {
	return BandID(index) + "-" + field.String()
}

// ParseParamID splits a band parameter id into its band index and field.
// The output parameter is not a band parameter and reports false.
func ParseParamID(id string) (int, Field, bool) {
	for i, bandID := range bandIDs {
		rest, ok := strings.CutPrefix(id, bandID+"-")
		if !ok {
			continue
		}
		for _, f := range Fields() {
			if rest == f.String() {
				return i, f, true
			}
		}
	}

	return 0, 0, false
}

// Range is a normalisable parameter range with an optional skew, matching
// the usual plugin-host convention: normalised = ((v-min)/(max-min))^skew.
type Range struct {
	Min, Max float64
	Interval float64
	Skew     float64
}

// SkewFor returns the skew that maps value to the normalised position pos.
func SkewFor(minV, maxV, value, pos float64) float64 {
	return math.Log(pos) / math.Log((value-minV)/(maxV-minV))
}

// ToNormalised maps v into [0, 1].
func (r Range) ToNormalised(v float64) float64 {
	p := core.Clamp((r.Snap(v)-r.Min)/(r.Max-r.Min), 0, 1)
	if r.Skew == 1 || r.Skew == 0 {
		return p
	}

	return math.Pow(p, r.Skew)
}

// FromNormalised maps p in [0, 1] back into the range, snapped to Interval.
func (r Range) FromNormalised(p float64) float64 {
	p = core.Clamp(p, 0, 1)
	if r.Skew != 1 && r.Skew != 0 && p > 0 {
		p = math.Exp(math.Log(p) / r.Skew)
	}

	return r.Snap(r.Min + (r.Max-r.Min)*p)
}

// Snap clamps v into the range and rounds it to the nearest interval step.
func (r Range) Snap(v float64) float64 {
	if r.Interval > 0 {
		v = r.Min + r.Interval*math.Round((v-r.Min)/r.Interval)
	}

	return core.Clamp(v, r.Min, r.Max)
}

// Parameter describes one automatable parameter.
type Parameter struct {
	ID      string
	Name    string
	Range   Range
	Default float64
	// Choices lists the option names of a choice parameter.
	Choices []string
}

// Format renders value the way hosts display it.
func (p Parameter) Format(value float64) string {
	if p.ID == OutputParamID {
		return fmt.Sprintf("%.1fdB", core.GainToDecibels(value, -100))
	}

	_, field, _ := ParseParamID(p.ID)
	switch field {
	case FieldType:
		return FilterType(p.Range.Snap(value)).String()
	case FieldFrequency:
		if value < 1000 {
			return fmt.Sprintf("%.0fHz", value)
		}
		return fmt.Sprintf("%.2f kHz", value/1000)
	case FieldQuality:
		return fmt.Sprintf("%.1f", value)
	case FieldGain:
		return fmt.Sprintf("%.1f dB", core.GainToDecibels(value, -100))
	case FieldActive:
		if value > 0.5 {
			return "active"
		}
		return "bypassed"
	}

	return fmt.Sprintf("%g", value)
}

// Parameters returns the full parameter layout: the output gain followed by
// five parameters per band, with defaults taken from bands.
func Parameters(bands []Band) []Parameter {
	params := []Parameter{{
		ID:      OutputParamID,
		Name:    "Output",
		Range:   Range{Min: 0, Max: MaxOutputGain, Interval: 0.01, Skew: 1},
		Default: 1,
	}}

	freqRange := Range{Min: MinFrequency, Max: MaxFrequency, Interval: 1,
		Skew: SkewFor(MinFrequency, MaxFrequency, 1000, 0.5)}
	qRange := Range{Min: MinQuality, Max: MaxQuality, Interval: 0.1,
		Skew: SkewFor(MinQuality, MaxQuality, 1, 0.1)}
	gainRange := Range{Min: 1 / MaxGain, Max: MaxGain, Interval: 0.001,
		Skew: SkewFor(1/MaxGain, MaxGain, 1, 0.5)}

	for i := range min(len(bands), NumBands) {
		prefix := fmt.Sprintf("Q%d: ", i+1)
		def := bands[i]
		active := 0.0
		if def.Active {
			active = 1
		}

		params = append(params,
			Parameter{ID: ParamID(i, FieldType), Name: prefix + "Filter Type",
				Range:   Range{Min: 0, Max: float64(numFilterTypes - 1), Interval: 1, Skew: 1},
				Default: float64(def.Type), Choices: FilterTypeNames()},
			Parameter{ID: ParamID(i, FieldFrequency), Name: prefix + "Frequency",
				Range: freqRange, Default: def.Frequency},
			Parameter{ID: ParamID(i, FieldQuality), Name: prefix + "Quality",
				Range: qRange, Default: def.Quality},
			Parameter{ID: ParamID(i, FieldGain), Name: prefix + "Gain",
				Range: gainRange, Default: def.Gain},
			Parameter{ID: ParamID(i, FieldActive), Name: prefix + "Active",
				Range: Range{Min: 0, Max: 1, Interval: 1, Skew: 1}, Default: active},
		)
	}

	return params
}

// ParameterRanges returns the parameter layout of b's current bands, so
// each Default reflects the band's present setting.
func (b *Bank) ParameterRanges() []Parameter {
	params := Parameters(b.Bands())
	params[0].Default = b.OutputGain()
	return params
}

// SetParameter routes a parameter id to SetOutputGain or SetBandParameter.
func (b *Bank) SetParameter(id string, value float64) error {
	if id == OutputParamID {
		b.SetOutputGain(value)
		return nil
	}

	index, field, ok := ParseParamID(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	b.SetBandParameter(index, field, value)

	return nil
}

// Parameter returns the current plain value of parameter id.
func (b *Bank) Parameter(id string) (float64, error) {
	if id == OutputParamID {
		return b.OutputGain(), nil
	}

	index, field, ok := ParseParamID(id)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	band, _ := b.Band(index)
	switch field {
	case FieldType:
		return float64(band.Type), nil
	case FieldFrequency:
		return band.Frequency, nil
	case FieldQuality:
		return band.Quality, nil
	case FieldGain:
		return band.Gain, nil
	default:
		if band.Active {
			return 1, nil
		}
		return 0, nil
	}
}
