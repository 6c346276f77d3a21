package academic

// doctorate course lists are reordered as a whole after assembly, with this seed suffix
const doctorateOrderSeed = "doc-all"

// Seed returns the elective-selection seed for a student of this curriculum.
func (c Curriculum) Seed(studentID string) string {
	return studentID + c.seedSuffix
}

// Assemble builds the catalog-driven course list of a student:
// induction, then the basic block, then the seeded electives.
// Doctorate tiers get the whole list reordered by a second seeded shuffle.
func (c Curriculum) Assemble(studentID string) []Course {
	electives := Select(c.Electives, c.ElectiveCount, c.Seed(studentID))

	courses := make([]Course, 0, len(c.Induction)+len(c.Basic)+len(electives))
	courses = appendTemplates(courses, c.Induction, prefixInduction, studentID)
	courses = appendTemplates(courses, c.Basic, c.basicPrefix, studentID)
	courses = appendTemplates(courses, electives, c.electivePrefix, studentID)

	if c.Tier.DoctorateStyle() {
		courses = Shuffle(courses, studentID+doctorateOrderSeed)
	}
	return courses
}

func appendTemplates(dst []Course, ts []CourseTemplate, prefix, studentID string) []Course {
	for _, t := range ts {
		dst = append(dst, Course{
			ID:        prefix + t.Name,
			Name:      t.Name,
			Credits:   t.Credits,
			StudentID: studentID,
		})
	}
	return dst
}
