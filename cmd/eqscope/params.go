package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/processor"
)

// ParamsCmd lists the automatable parameters with their ranges and the
// values the band flags produce.
type ParamsCmd struct {
	EQFlags `embed:""`

	Set []string `sep:"none" placeholder:"ID=VALUE" help:"Set a parameter by id, e.g. \"Low Mids-gain=2\". Repeatable."`
}

func (c *ParamsCmd) Run(env *runEnv) error {
	p, err := processor.New(processor.WithLogger(env.log), processor.WithAnalysisEnabled(false))
	if err != nil {
		return err
	}
	if err := c.apply(p); err != nil {
		return err
	}
	for _, kv := range c.Set {
		id, value, err := parseAssignment(kv)
		if err != nil {
			return err
		}
		if err := p.SetParameter(id, value); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "ID\tName\tMin\tMax\tSkew\tValue\n")
	for _, prm := range p.Bank().ParameterRanges() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.3f\t%s\n",
			prm.ID, prm.Name, prm.Format(prm.Range.Min), prm.Format(prm.Range.Max),
			prm.Range.Skew, prm.Format(prm.Default))
	}

	return tw.Flush()
}

// parseAssignment splits "id=value". Ids may contain spaces.
func parseAssignment(kv string) (string, float64, error) {
	i := strings.LastIndexByte(kv, '=')
	if i <= 0 {
		return "", 0, fmt.Errorf("parameter must be ID=VALUE, got %q", kv)
	}
	id := kv[:i]
	value, err := strconv.ParseFloat(strings.TrimSpace(kv[i+1:]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("parameter %q: %w", id, err)
	}
	if _, _, ok := eq.ParseParamID(id); !ok && id != eq.OutputParamID {
		return "", 0, fmt.Errorf("%w: %q", eq.ErrUnknownParameter, id)
	}

	return id, value, nil
}
