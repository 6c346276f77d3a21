package academic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterStudents(t *testing.T) {
	students := []Student{
		{StudentID: "L-1", FirstName: "Ana", LastName: "Pérez", GradeLevel: "Licenciatura"},
		{StudentID: "M-1", FirstName: "Beto", LastName: "Ramos", GradeLevel: "Maestria"},
		{StudentID: "D-1", FirstName: "Carla", LastName: "Anaya", GradeLevel: "Doctorado"},
		{StudentID: "P-1", FirstName: "Dario", LastName: "Soto", GradeLevel: "Posdoctorado"},
	}
	ids := func(ss []Student) []string {
		out := make([]string, len(ss))
		for i, s := range ss {
			out[i] = s.StudentID
		}
		return out
	}

	tests := []struct {
		name   string
		filter QueryFilter
		want   []string
	}{
		{name: "empty", filter: QueryFilter{}, want: []string{"L-1", "M-1", "D-1", "P-1"}},
		{name: "todos", filter: QueryFilter{Grade: GradeAll}, want: []string{"L-1", "M-1", "D-1", "P-1"}},
		{name: "search first or last name", filter: QueryFilter{Search: " ANA "}, want: []string{"L-1", "D-1"}},
		{name: "search id", filter: QueryFilter{Search: "m-1"}, want: []string{"M-1"}},
		{name: "grade", filter: QueryFilter{Grade: "Maestría"}, want: []string{"M-1"}},
		{name: "doctorado includes posdoctorado", filter: QueryFilter{Grade: "Doctorado"}, want: []string{"D-1", "P-1"}},
		{name: "both criteria", filter: QueryFilter{Search: "ana", Grade: "Doctorado"}, want: []string{"D-1"}},
		{name: "no match", filter: QueryFilter{Search: "zzz"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterStudents(students, tt.filter)))
		})
	}
}
