package gradetable

import "github.com/spboyer/cgpa/internal/models"

const (
	// PolicyCUI is the COMSATS (HEC adopted) scale with A- starting at 80%.
	PolicyCUI = "cui"
	// PolicyStandard is the coarser 90/85/80 scale.
	PolicyStandard = "standard"

	// DefaultPolicy is used when neither config nor flags pick one.
	DefaultPolicy = PolicyCUI
)

var failing = models.GradePoint{Label: "F", Value: 0}

func cuiPolicy() *Policy {
	return mustPolicy(PolicyCUI, "COMSATS University Islamabad grading policy (HEC adopted)", []Band{
		{Threshold: 85, Label: "A", Points: 4.00},
		{Threshold: 80, Label: "A-", Points: 3.66},
		{Threshold: 75, Label: "B+", Points: 3.33},
		{Threshold: 71, Label: "B", Points: 3.00},
		{Threshold: 68, Label: "B-", Points: 2.66},
		{Threshold: 64, Label: "C+", Points: 2.33},
		{Threshold: 61, Label: "C", Points: 2.00},
		{Threshold: 58, Label: "C-", Points: 1.66},
		{Threshold: 54, Label: "D+", Points: 1.30},
		{Threshold: 50, Label: "D", Points: 1.00},
	}, failing)
}

func standardPolicy() *Policy {
	return mustPolicy(PolicyStandard, "Five-point bands from 90% down to 50%", []Band{
		{Threshold: 90, Label: "A", Points: 4.00},
		{Threshold: 85, Label: "A-", Points: 3.70},
		{Threshold: 80, Label: "B+", Points: 3.30},
		{Threshold: 75, Label: "B", Points: 3.00},
		{Threshold: 70, Label: "B-", Points: 2.70},
		{Threshold: 65, Label: "C+", Points: 2.30},
		{Threshold: 60, Label: "C", Points: 2.00},
		{Threshold: 55, Label: "C-", Points: 1.70},
		{Threshold: 50, Label: "D", Points: 1.00},
	}, failing)
}

func mustPolicy(name, description string, bands []Band, floor models.GradePoint) *Policy {
	p, err := NewPolicy(name, description, bands, floor)
	if err != nil {
		panic(err)
	}
	return p
}
