package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spboyer/cgpa/internal/models"
)

var csvHeader = []string{"Semester", "Subject", "Marks", "Percentage", "Grade", "Grade Point", "Credit Hours", "Status"}

// WriteCSV writes one row per subject, a GPA row per semester and a final
// CGPA row.
func WriteCSV(w io.Writer, r *models.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, s := range r.Semesters {
		sem := strconv.Itoa(s.Record.Index)
		for _, sub := range s.Subjects {
			status := "ok"
			if sub.Rejected {
				status = "rejected: " + sub.Error
			}
			row := []string{sem, sub.Name, sub.Marks, sub.Percentage, sub.Grade, "", fmtCredits(sub.CreditHours), status}
			if !sub.Rejected {
				row[5] = fmt2(sub.GradePoint)
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}

		gpa := ""
		if !s.NoData && s.Error == "" {
			gpa = fmt2(s.Record.GPA)
		}
		row := []string{sem, "Semester GPA", "", "", "", gpa, fmtCredits(s.Record.CreditHours), semesterStatus(s)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cgpa, status := fmt2(r.CGPA), "ok"
	if r.NoData {
		cgpa, status = "", "no data"
	}
	if err := cw.Write([]string{"", "CGPA", "", "", "", cgpa, fmtCredits(r.TotalCreditHours), status}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return nil
}
