package models

// TranscriptDoc is the on-disk / over-the-wire shape of a transcript.
type TranscriptDoc struct {
	Student   string        `json:"student,omitempty" yaml:"student,omitempty" mapstructure:"student"`
	Policy    string        `json:"policy,omitempty" yaml:"policy,omitempty" mapstructure:"policy"`
	Semesters []SemesterDoc `json:"semesters" yaml:"semesters" mapstructure:"semesters"`
}

// SemesterDoc holds either Subjects or a direct GPA with its credit hours.
// Index 0 means "use the 1-based position in the document".
type SemesterDoc struct {
	Index    int       `json:"index,omitempty" yaml:"index,omitempty" mapstructure:"index"`
	Subjects []Subject `json:"subjects,omitempty" yaml:"subjects,omitempty" mapstructure:"subjects"`
	GPA      *float64  `json:"gpa,omitempty" yaml:"gpa,omitempty" mapstructure:"gpa"`
	Credits  *float64  `json:"credits,omitempty" yaml:"credits,omitempty" mapstructure:"credits"`
}

// IsDirect reports whether the semester was entered as a pre-computed GPA.
func (s SemesterDoc) IsDirect() bool {
	return s.GPA != nil
}
