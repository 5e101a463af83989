package webapi

import (
	"strings"

	"github.com/spboyer/cgpa/internal/gradetable"
)

// PolicyStore provides read access to grading policies.
// [*gradetable.Registry] satisfies it.
type PolicyStore interface {
	Lookup(name string) (*gradetable.Policy, error)
	Policies() []*gradetable.Policy
}

func summarize(p *gradetable.Policy, defaultName string) PolicySummary {
	return PolicySummary{
		Name:        p.Name(),
		Description: p.Description(),
		Default:     strings.EqualFold(p.Name(), defaultName),
	}
}

func detail(p *gradetable.Policy, defaultName string) PolicyDetail {
	bands := p.Bands()
	d := PolicyDetail{
		PolicySummary: summarize(p, defaultName),
		Bands:         make([]BandInfo, len(bands)),
		Floor:         p.Floor(),
	}
	for i, b := range bands {
		d.Bands[i] = BandInfo{Threshold: b.Threshold, Label: b.Label, Points: b.Points}
	}
	return d
}
