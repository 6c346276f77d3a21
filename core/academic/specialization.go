package academic

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cumaze/registro-consorcio/core"
)

var (
	errSpecializationFileName = "El nombre debe ser 'especialización [licenciatura|maestria|doctorado].xlsx'"
	errSpecializationEmpty    = "El archivo de especialización no contiene cursos."

	specializationCredits = decimal.RequireFromString("5.4")

	// file tiers a specialization upload may be named after, in match order
	specializationFileTiers = []Tier{TierLicenciatura, TierMaestria, TierDoctorado}

	// how many specialization courses a student gets, by the student's own tier
	specializationCounts = map[Tier]int{
		TierLicenciatura: 15,
		TierMaestria:     8,
		TierDoctorado:    8,
		TierPosdoctorado: 8,
		TierTecnico:      18,
	}
)

// Specialization is a parsed specialization workbook: its pool of courses and the tier its file is named after.
type Specialization struct {
	Tier Tier             `json:"tier"`
	Pool []CourseTemplate `json:"pool"`
}

// SpecializationTier resolves the tier of a specialization file from its name,
// which must start with "especialización licenciatura|maestria|doctorado".
func SpecializationTier(fileName string) (Tier, error) {
	folded := core.FoldAccents(strings.TrimSpace(fileName))
	for _, t := range specializationFileTiers {
		if strings.HasPrefix(folded, "especializacion "+t.Key()) {
			return t, nil
		}
	}
	return TierUnknown, core.NewValidationMessage(errSpecializationFileName)
}

// ParseSpecialization reads the "name" column of the first sheet of wb. Every course is worth 5.4 credits.
func ParseSpecialization(wb Workbook) (Specialization, error) {
	t, err := SpecializationTier(wb.FileName)
	if err != nil {
		return Specialization{}, err
	}
	if len(wb.Sheets) == 0 || len(wb.Sheets[0].Header) == 0 {
		return Specialization{}, core.NewValidationMessage(errFirstSheetUnreadable)
	}
	spec := Specialization{Tier: t, Pool: []CourseTemplate{}}
	for _, r := range wb.Sheets[0].records() {
		name := strings.TrimSpace(r[keyCourseName])
		if name == "" {
			continue
		}
		spec.Pool = append(spec.Pool, CourseTemplate{Name: name, Credits: specializationCredits})
	}
	if len(spec.Pool) == 0 {
		return Specialization{}, core.NewValidationMessage(errSpecializationEmpty)
	}
	return spec, nil
}

// Inject replaces the specialization courses of s with a seeded draw from the pool.
// The draw size depends on the student's tier. The second result is false when nothing changed.
func (spec Specialization) Inject(s Student, courses []Course, ts int64) ([]Course, bool) {
	count := specializationCounts[s.Tier]
	if count == 0 || len(spec.Pool) == 0 {
		return courses, false
	}
	picked := Select(spec.Pool, count, s.StudentID+prefixSpecialization+spec.Tier.Key())

	out := make([]Course, 0, len(courses)+len(picked))
	for _, c := range courses {
		if !c.IsSpecialization() {
			out = append(out, c)
		}
	}
	for i, t := range picked {
		out = append(out, Course{
			ID:        fmt.Sprintf("%s%s-%d-%d", prefixSpecialization, spec.Tier.Key(), i, ts),
			Name:      t.Name,
			Credits:   t.Credits,
			StudentID: s.StudentID,
		})
	}
	return out, true
}
