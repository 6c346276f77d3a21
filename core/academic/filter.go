package academic

import (
	"strings"

	"github.com/cumaze/registro-consorcio/core"
)

// GradeAll disables the grade filter.
const GradeAll = "Todos"

// QueryFilter narrows the student list. Both criteria must match.
type QueryFilter struct {
	// Search is a case-insensitive substring of the first name, last name or id.
	Search string `query:"search"`
	// Grade is GradeAll, empty, or a tier label ("Doctorado" also matches Posdoctorado).
	Grade string `query:"grade"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && (qf.Grade == "" || qf.Grade == GradeAll)
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search, true /* lower */)
	qf.Grade = core.CleanString(qf.Grade)
}

// Matches reports whether s passes the filter. The filter must be cleaned.
func (qf QueryFilter) Matches(s Student) bool {
	if qf.Search != "" &&
		!strings.Contains(strings.ToLower(s.FirstName), qf.Search) &&
		!strings.Contains(strings.ToLower(s.LastName), qf.Search) &&
		!strings.Contains(strings.ToLower(s.StudentID), qf.Search) {
		return false
	}
	if qf.Grade == "" || qf.Grade == GradeAll {
		return true
	}
	return strings.Contains(core.FoldAccents(s.GradeLevel), core.FoldAccents(qf.Grade))
}

// FilterStudents keeps the students matching qf, in roster order.
func FilterStudents(students []Student, qf QueryFilter) []Student {
	qf.Clean()
	out := make([]Student, 0, len(students))
	if qf.IsEmpty() {
		return append(out, students...)
	}
	for _, s := range students {
		if qf.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}
