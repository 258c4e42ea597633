package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/processor"
)

var errBandSyntax = errors.New("band must be N[:TYPE[:FREQ[:Q[:GAIN_DB]]]]")

// bandSetting is one parsed --band flag. Missing fields keep the band's
// current value.
type bandSetting struct {
	Index   int
	Type    *eq.FilterType
	Freq    *float64
	Quality *float64
	GainDB  *float64
}

// parseBand parses "N:type:freq:q:gainDB" with N counted from 1. Trailing
// fields may be omitted and empty fields are skipped.
func parseBand(s string) (bandSetting, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) == 0 || len(parts) > 5 {
		return bandSetting{}, fmt.Errorf("%w: %q", errBandSyntax, s)
	}

	n, err := strconv.Atoi(parts[0])
	if err != nil || n < 1 || n > eq.NumBands {
		return bandSetting{}, fmt.Errorf("%w: band number %q not in 1..%d", errBandSyntax, parts[0], eq.NumBands)
	}
	bs := bandSetting{Index: n - 1}

	if len(parts) > 1 && parts[1] != "" {
		t, err := eq.ParseFilterType(parts[1])
		if err != nil {
			return bandSetting{}, err
		}
		bs.Type = &t
	}

	nums := []**float64{&bs.Freq, &bs.Quality, &bs.GainDB}
	for i, field := range parts[min(len(parts), 2):] {
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(field), "db"), 64)
		if err != nil {
			return bandSetting{}, fmt.Errorf("%w: %q: %w", errBandSyntax, s, err)
		}
		*nums[i] = &v
	}

	return bs, nil
}

// EQFlags are the band controls shared by every command that runs the
// equalizer.
type EQFlags struct {
	Bands  []string `name:"band" short:"b" sep:"none" placeholder:"N:TYPE:FREQ:Q:GAIN" help:"Configure band N (1-6). Repeatable."`
	Solo   int      `default:"0" help:"Solo band N (1-6), 0 for none."`
	Output float64  `default:"0" placeholder:"DB" help:"Output gain in dB."`
}

// apply pushes the flags into p's bank.
func (f EQFlags) apply(p *processor.Processor) error {
	for _, s := range f.Bands {
		bs, err := parseBand(s)
		if err != nil {
			return err
		}
		if bs.Type != nil {
			p.SetBandParameter(bs.Index, eq.FieldType, float64(*bs.Type))
		}
		if bs.Freq != nil {
			p.SetBandParameter(bs.Index, eq.FieldFrequency, *bs.Freq)
		}
		if bs.Quality != nil {
			p.SetBandParameter(bs.Index, eq.FieldQuality, *bs.Quality)
		}
		if bs.GainDB != nil {
			p.SetBandParameter(bs.Index, eq.FieldGain, core.DBToLinear(*bs.GainDB))
		}
	}

	switch {
	case f.Solo == 0:
		p.SetSolo(eq.NoSolo)
	case f.Solo >= 1 && f.Solo <= eq.NumBands:
		p.SetSolo(f.Solo - 1)
	default:
		return fmt.Errorf("solo band %d not in 0..%d", f.Solo, eq.NumBands)
	}

	p.SetOutputGain(core.DBToLinear(f.Output))

	return nil
}
