package calculator

import (
	"github.com/spboyer/cgpa/internal/aggregate"
	"github.com/spboyer/cgpa/internal/models"
)

// Compute runs a whole transcript document through a fresh Transcript and
// returns the report. Rejected entries are reported in place and skipped;
// in strict mode the first one is returned as the error instead.
func (c *Calculator) Compute(doc models.TranscriptDoc) (*models.Report, error) {
	tr := NewTranscript()
	report := &models.Report{
		Student:   doc.Student,
		Policy:    c.policy.Name(),
		Semesters: make([]models.SemesterResult, 0, len(doc.Semesters)),
	}

	for i, sd := range doc.Semesters {
		index := sd.Index
		if index == 0 {
			index = i + 1
		}

		res, err := c.semester(index, sd)
		if err == nil && !res.NoData {
			err = tr.Append(res.Record)
		}
		if err != nil {
			if c.strict {
				return nil, err
			}
			c.logger.Warn("semester rejected", "semester", index, "error", err)
			res.Error = err.Error()
			if !res.NoData {
				report.Rejected++
			}
		} else if res.NoData {
			c.logger.Warn("semester has no credit hours", "semester", index)
		}
		report.Rejected += res.Rejected()
		report.Semesters = append(report.Semesters, res)
	}

	records := tr.Records()
	for i, avg := range tr.Trend() {
		report.Trend = append(report.Trend, models.TrendPoint{
			Semester: records[i].Index,
			GPA:      records[i].GPA,
			CGPA:     avg.Value,
		})
	}

	cgpa := tr.CGPA()
	report.CGPA = cgpa.Value
	report.TotalCreditHours = cgpa.Weight
	report.NoData = cgpa.NoData()
	return report, nil
}

func (c *Calculator) semester(index int, sd models.SemesterDoc) (models.SemesterResult, error) {
	if !sd.IsDirect() {
		return c.SemesterFromSubjects(index, sd.Subjects)
	}

	var credits float64
	if sd.Credits != nil {
		credits = *sd.Credits
	}
	res := models.SemesterResult{Record: models.SemesterRecord{
		Index:       index,
		GPA:         finiteOrZero(*sd.GPA),
		CreditHours: finiteOrZero(credits),
		Source:      models.SourceDirect,
	}}
	rec, err := c.DirectSemester(index, *sd.GPA, credits)
	if err != nil {
		return res, err
	}
	res.Record = rec
	return res, nil
}

// Summary is a display-ready view of a report's headline numbers.
type Summary struct {
	CGPA         float64
	CreditHours  float64
	LastSemester int
	NoData       bool
}

// Summarize rounds a report's headline numbers for display.
func Summarize(r *models.Report) Summary {
	return Summary{
		CGPA:         aggregate.Round2(r.CGPA),
		CreditHours:  r.TotalCreditHours,
		LastSemester: r.LastSemester(),
		NoData:       r.NoData,
	}
}
