package academic

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// credits go over the wire as plain JSON numbers (5.4, not "5.4")
	decimal.MarshalJSONWithoutQuotes = true
}

const notAvailable = "N/A"

type (
	// Student is one roster row. StudentID is the merge key across imports.
	Student struct {
		StudentID             string   `json:"studentId"`
		BatchID               string   `json:"batchId"`
		University            string   `json:"university"`
		School                string   `json:"school"`
		FirstName             string   `json:"firstName"`
		LastName              string   `json:"lastName"`
		Address               string   `json:"address"`
		Country               string   `json:"country"`
		City                  string   `json:"city"`
		BirthDate             string   `json:"birthDate"`
		AssignedTutor         string   `json:"assignedTutor"`
		Emphasis              string   `json:"emphasis"`
		GradeLevel            string   `json:"gradeLevel"`
		Tier                  Tier     `json:"-"`
		TransferCredits       float64  `json:"transferCredits"`
		WorkExperienceCredits float64  `json:"workExperienceCredits"`
		MeritCredits          float64  `json:"meritCredits"`
		ThesisCredits         float64  `json:"thesisCredits"`
		CurriculumCloseDate   string   `json:"curriculumCloseDate"`
		Affectation           string   `json:"affectation"`
		Average               float64  `json:"average"`
		SpanishGrades         []string `json:"spanishGrades"`
		CareerName            string   `json:"careerName"`
	}

	// Course is one row of a student's course list.
	// The id prefix tells where it came from (see CourseOrigin).
	Course struct {
		ID        string          `json:"id"`
		Code      string          `json:"code,omitempty"`
		Name      string          `json:"name"`
		Credits   decimal.Decimal `json:"credits"`
		Grade     string          `json:"grade"`
		Term      string          `json:"term"`
		StudentID string          `json:"studentId"`
	}

	// CourseTemplate is an immutable catalog entry.
	CourseTemplate struct {
		Name    string          `json:"name"`
		Credits decimal.Decimal `json:"credits"`
	}

	// Roster is the whole session state: every student and their ordered course lists.
	Roster struct {
		Students         []Student           `json:"students"`
		CoursesByStudent map[string][]Course `json:"coursesByStudent"`
	}
)

// FullName is "{first} {last}".
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// HasThesis reports whether a thesis grade applies to the student.
func (s Student) HasThesis() bool {
	return s.ThesisCredits > 0
}

// CourseOrigin is the category encoded in a course id prefix.
type CourseOrigin int

const (
	OriginSheet CourseOrigin = iota // positional id from the courses sheet
	OriginInduction
	OriginBasic
	OriginProfessional
	OriginSpecialization
)

// id prefixes
const (
	prefixInduction         = "ind-"
	prefixSpecialization    = "spec-"
	prefixMaestriaBasic     = "bas-"
	prefixMaestriaProf      = "prof-"
	prefixLicenciaturaBasic = "lic-bas-"
	prefixLicenciaturaProf  = "lic-prof-"
	prefixDoctoradoBasic    = "doc-bas-"
	prefixDoctoradoProf     = "doc-prof-"
	prefixTecnicoProf       = "tec-prof-"
)

var (
	basicPrefixes        = []string{prefixMaestriaBasic, prefixLicenciaturaBasic, prefixDoctoradoBasic}
	professionalPrefixes = []string{prefixMaestriaProf, prefixLicenciaturaProf, prefixDoctoradoProf, prefixTecnicoProf}
)

// Origin classifies the course by its id prefix.
func (c Course) Origin() CourseOrigin {
	switch {
	case strings.HasPrefix(c.ID, prefixInduction):
		return OriginInduction
	case strings.HasPrefix(c.ID, prefixSpecialization):
		return OriginSpecialization
	case hasAnyPrefix(c.ID, basicPrefixes):
		return OriginBasic
	case hasAnyPrefix(c.ID, professionalPrefixes):
		return OriginProfessional
	}
	return OriginSheet
}

// IsProfessional reports whether the course is a professionalization elective.
func (c Course) IsProfessional() bool {
	return c.Origin() == OriginProfessional
}

// IsSpecialization reports whether the course was injected by a specialization upload.
func (c Course) IsSpecialization() bool {
	return c.Origin() == OriginSpecialization
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// NewRoster returns an empty roster.
func NewRoster() Roster {
	return Roster{Students: []Student{}, CoursesByStudent: map[string][]Course{}}
}

// Clone deep-copies the roster so callers can mutate it freely.
func (r Roster) Clone() Roster {
	out := Roster{
		Students:         make([]Student, len(r.Students)),
		CoursesByStudent: make(map[string][]Course, len(r.CoursesByStudent)),
	}
	for i, s := range r.Students {
		s.SpanishGrades = append([]string{}, s.SpanishGrades...)
		out.Students[i] = s
	}
	for id, cs := range r.CoursesByStudent {
		out.CoursesByStudent[id] = append([]Course(nil), cs...)
	}
	return out
}

// Merge applies r2 on top of r: students are replaced by StudentID (new ones appended
// in import order) and course lists are replaced wholesale per StudentID key.
func (r Roster) Merge(r2 Roster) Roster {
	out := r.Clone()
	index := make(map[string]int, len(out.Students))
	for i, s := range out.Students {
		index[s.StudentID] = i
	}
	for _, s := range r2.Students {
		s.SpanishGrades = append([]string{}, s.SpanishGrades...)
		if i, ok := index[s.StudentID]; ok {
			out.Students[i] = s
			continue
		}
		index[s.StudentID] = len(out.Students)
		out.Students = append(out.Students, s)
	}
	for id, cs := range r2.CoursesByStudent {
		out.CoursesByStudent[id] = append([]Course(nil), cs...)
	}
	return out
}
