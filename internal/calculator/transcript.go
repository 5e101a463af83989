package calculator

import (
	"fmt"

	"github.com/spboyer/cgpa/internal/aggregate"
	"github.com/spboyer/cgpa/internal/models"
)

// Transcript is the ordered list of completed semesters for one
// calculation session. It only grows by Append; CGPA and Trend are views
// computed on demand. A Transcript is not safe for concurrent use.
type Transcript struct {
	records []models.SemesterRecord
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds the next semester. Indexes must increase strictly so that
// insertion order stays chronological.
func (t *Transcript) Append(rec models.SemesterRecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}
	if n := len(t.records); n > 0 && rec.Index <= t.records[n-1].Index {
		return &InputError{
			Semester: rec.Index,
			Field:    "semester index",
			Value:    float64(rec.Index),
			Reason:   fmt.Sprintf("must come after semester %d", t.records[n-1].Index),
		}
	}
	t.records = append(t.records, rec)
	return nil
}

// AppendResult appends a semester computed from subjects.
func (t *Transcript) AppendResult(res models.SemesterResult) error {
	if res.NoData {
		return fmt.Errorf("semester %d: %w", res.Record.Index, ErrNoData)
	}
	return t.Append(res.Record)
}

// Len returns the number of semesters.
func (t *Transcript) Len() int { return len(t.records) }

// Records returns a copy of the semesters in chronological order.
func (t *Transcript) Records() []models.SemesterRecord {
	out := make([]models.SemesterRecord, len(t.records))
	copy(out, t.records)
	return out
}

// CGPA is the credit-weighted average over every semester so far.
func (t *Transcript) CGPA() aggregate.Average {
	return aggregate.WeightedAverage(recordPairs(t.records))
}

// CGPAAt is the CGPA after the first n semesters. n is clamped to [0, Len].
func (t *Transcript) CGPAAt(n int) aggregate.Average {
	n = max(0, min(n, len(t.records)))
	return aggregate.WeightedAverage(recordPairs(t.records[:n]))
}

// Trend returns the CGPA after each semester.
func (t *Transcript) Trend() []aggregate.Average {
	return aggregate.CumulativeSeries(recordPairs(t.records))
}

func recordPairs(records []models.SemesterRecord) []aggregate.Pair {
	pairs := make([]aggregate.Pair, len(records))
	for i, r := range records {
		pairs[i] = aggregate.Pair{Score: r.GPA, Weight: r.CreditHours}
	}
	return pairs
}
