package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spboyer/cgpa/internal/models"
)

// Row represents a single CSV row with column name to value mapping.
type Row map[string]string

// CSV column names. Headers are matched case-insensitively.
const (
	ColSemester = "semester"
	ColSubject  = "subject"
	ColMarks    = "marks"
	ColTotal    = "total"
	ColCredits  = "credits"
	ColGPA      = "gpa"
)

// LoadCSV reads a CSV file and returns rows as maps of column to value.
// The first row is treated as headers (column names).
func LoadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("csv: %s: %w", path, err)
	}
	return rows, nil
}

// ReadCSV parses CSV from r. Header names are trimmed and lower-cased.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty (no header row)")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	rows := make([]Row, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = strings.TrimSpace(record[j])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// TranscriptFromRows groups CSV rows into semesters in first-seen order.
// A row with a gpa value is a direct-entry semester; every other row is a
// subject of its semester. One semester cannot mix the two.
func TranscriptFromRows(rows []Row) (*models.TranscriptDoc, error) {
	doc := &models.TranscriptDoc{}
	positions := map[int]int{}

	for i, row := range rows {
		line := i + 2
		semester, err := intField(row, ColSemester, line)
		if err != nil {
			return nil, err
		}

		pos, seen := positions[semester]
		if !seen {
			pos = len(doc.Semesters)
			positions[semester] = pos
			doc.Semesters = append(doc.Semesters, models.SemesterDoc{Index: semester})
		}
		sem := &doc.Semesters[pos]

		if row[ColGPA] != "" {
			if seen {
				return nil, fmt.Errorf("csv: row %d: semester %d appears more than once with a gpa", line, semester)
			}
			gpa, err := floatField(row, ColGPA, line)
			if err != nil {
				return nil, err
			}
			credits, err := floatField(row, ColCredits, line)
			if err != nil {
				return nil, err
			}
			sem.GPA, sem.Credits = &gpa, &credits
			continue
		}

		if sem.IsDirect() {
			return nil, fmt.Errorf("csv: row %d: semester %d already has a gpa entry", line, semester)
		}
		subject, err := subjectFromRow(row, line)
		if err != nil {
			return nil, err
		}
		sem.Subjects = append(sem.Subjects, subject)
	}

	return doc, nil
}

func subjectFromRow(row Row, line int) (models.Subject, error) {
	marks, err := floatField(row, ColMarks, line)
	if err != nil {
		return models.Subject{}, err
	}
	total, err := floatField(row, ColTotal, line)
	if err != nil {
		return models.Subject{}, err
	}
	credits, err := floatField(row, ColCredits, line)
	if err != nil {
		return models.Subject{}, err
	}
	return models.Subject{Name: row[ColSubject], MarksObtained: marks, TotalMarks: total, CreditHours: credits}, nil
}

func floatField(row Row, col string, line int) (float64, error) {
	raw, ok := row[col]
	if !ok || raw == "" {
		return 0, fmt.Errorf("csv: row %d: missing %q", line, col)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("csv: row %d: %s %q is not a number", line, col, raw)
	}
	return v, nil
}

func intField(row Row, col string, line int) (int, error) {
	raw, ok := row[col]
	if !ok || raw == "" {
		return 0, fmt.Errorf("csv: row %d: missing %q", line, col)
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("csv: row %d: %s %q is not a positive whole number", line, col, raw)
	}
	return v, nil
}
