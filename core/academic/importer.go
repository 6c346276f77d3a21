package academic

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/shopspring/decimal"

	"github.com/cumaze/registro-consorcio/core"
)

var (
	errFirstSheetUnreadable = "La primera hoja de cálculo no pudo ser leída."
	errFirstSheetEmpty      = "La primera hoja de cálculo (Estudiantes) está vacía."

	// headers below this similarity get no suggestion
	headerHintMinRatio = .7
)

// student sheet keys
const (
	keyStudentID          = "iddeestudiante"
	keyUniversity         = "nombredelauniversidad"
	keySchool             = "nombredelafacultad"
	keyFirstName          = "nombrealumno"
	keyLastName           = "apellidoalumno"
	keyAddress            = "direccion"
	keyCountry            = "pais"
	keyCity               = "ciudad"
	keyBirthDate          = "fechadenacimiento"
	keyTransferCredits    = "creditostransferidospreviamente"
	keyWorkCreditsTypo    = "creditosporexpiritualaboral"
	keyWorkCredits        = "creditosporexperiencialaboral"
	keyMeritCredits       = "creditosobtenidospormeritodeestudio"
	keyThesisCredits      = "creditosportesisdegraduacion"
	keyCurriculumClose    = "nofechadecierredelpensum"
	keyAverage            = "promedio"
	keyCareerName         = "nombredelacarrera"
	keyCareer             = "carrera"
	keySpanishGrades      = "sistemaespanoldenotas"
	keyCourseCode         = "code"
	keyCourseName         = "name"
	keyCourseCredits      = "credits"
	keyCourseGrade        = "grade"
	keyCourseTerm         = "term"
	defaultTechThesisCred = 10
)

var (
	spanishGradeKeys = []string{keySpanishGrades, keySpanishGrades + "_1", keySpanishGrades + "_2", keySpanishGrades + "_3"}

	studentKeys = append([]string{
		keyStudentID, keyUniversity, keySchool, keyFirstName, keyLastName, keyAddress, keyCountry, keyCity,
		keyBirthDate, keyTransferCredits, keyWorkCreditsTypo, keyWorkCredits, keyMeritCredits, keyThesisCredits,
		keyCurriculumClose, keyAverage, keyCareerName, keyCareer,
	}, spanishGradeKeys...)

	courseKeys = []string{keyCourseCode, keyCourseName, keyCourseCredits, keyCourseGrade, keyCourseTerm, keyStudentID}
)

type (
	// HeaderHint reports a header no alias matched, with the closest known one if any.
	HeaderHint struct {
		Sheet      string `json:"sheet"`
		Header     string `json:"header"`
		Suggestion string `json:"suggestion,omitempty"`
	}

	// ImportResult is the outcome of one workbook import, not yet merged into the session.
	ImportResult struct {
		BatchID        string        `json:"batchId"`
		Tier           Tier          `json:"tier"`
		Roster         Roster        `json:"-"`
		Students       int           `json:"students"`
		SheetCourses   int           `json:"sheetCourses"`
		DroppedCourses int           `json:"droppedCourses"`
		UnknownHeaders []HeaderHint  `json:"unknownHeaders"`
		CourseIssues   []CourseIssue `json:"courseIssues"`
	}

	// Importer turns uploaded workbooks into roster fragments.
	Importer struct {
		logger core.Logger
		check  *CourseChecker
		now    func() time.Time
	}
)

func NewImporter(logger core.Logger, check *CourseChecker) *Importer {
	return &Importer{logger: logger, check: check, now: time.Now}
}

// Import parses wb as a roster upload for tier t.
// It fails without side effects when the file name lacks the tier keyword or the first sheet is unusable.
func (imp *Importer) Import(t Tier, wb Workbook) (ImportResult, error) {
	if err := CheckFileName(t, wb.FileName); err != nil {
		return ImportResult{}, err
	}
	if len(wb.Sheets) == 0 || len(wb.Sheets[0].Header) == 0 {
		return ImportResult{}, core.NewValidationMessage(errFirstSheetUnreadable)
	}
	studentSheet := wb.Sheets[0]
	rows := studentSheet.records()
	if len(rows) == 0 {
		return ImportResult{}, core.NewValidationMessage(errFirstSheetEmpty)
	}

	ts := imp.now().UnixMilli()
	res := ImportResult{
		BatchID:        fmt.Sprintf("%s-%d", t.Label(), ts),
		Tier:           t,
		Roster:         NewRoster(),
		UnknownHeaders: []HeaderHint{},
		CourseIssues:   []CourseIssue{},
	}
	res.UnknownHeaders = append(res.UnknownHeaders, unknownHeaders(studentSheet, studentKeys)...)

	// a repeated id keeps its last row
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		s := newStudent(t, res.BatchID, row, i, ts)
		if j, ok := index[s.StudentID]; ok {
			res.Roster.Students[j] = s
			continue
		}
		index[s.StudentID] = len(res.Roster.Students)
		res.Roster.Students = append(res.Roster.Students, s)
	}

	curriculum := CurriculumFor(t)
	for _, s := range res.Roster.Students {
		res.Roster.CoursesByStudent[s.StudentID] = curriculum.Assemble(s.StudentID)
	}

	if len(wb.Sheets) > 1 {
		courseSheet := wb.Sheets[1]
		res.UnknownHeaders = append(res.UnknownHeaders, unknownHeaders(courseSheet, courseKeys)...)
		for i, row := range courseSheet.records() {
			c := newSheetCourse(row, i)
			if _, ok := index[c.StudentID]; !ok || c.StudentID == "" {
				res.DroppedCourses++
				continue
			}
			if msgs := imp.check.Check(c); len(msgs) > 0 {
				res.CourseIssues = append(res.CourseIssues, CourseIssue{StudentID: c.StudentID, CourseID: c.ID, Messages: msgs})
			}
			res.Roster.CoursesByStudent[c.StudentID] = append(res.Roster.CoursesByStudent[c.StudentID], c)
			res.SheetCourses++
		}
	}
	res.Students = len(res.Roster.Students)

	for _, h := range res.UnknownHeaders {
		imp.logger.Warn("unknown spreadsheet header", map[string]interface{}{
			"sheet": h.Sheet, "header": h.Header, "suggestion": h.Suggestion,
		})
	}
	if res.DroppedCourses > 0 {
		imp.logger.Info(fmt.Sprintf("dropped %d course rows without a matching student", res.DroppedCourses))
	}
	return res, nil
}

func newStudent(t Tier, batchID string, r record, rowIndex int, ts int64) Student {
	id := strings.TrimSpace(r[keyStudentID])
	if id == "" {
		id = fmt.Sprintf("temp-id-%d-%d", rowIndex, ts)
	}

	thesis := r.num(keyThesisCredits)
	if thesis == 0 && (t == TierTecnico || t == TierPosdoctorado) {
		thesis = defaultTechThesisCred
	}

	grades := make([]string, 0, len(spanishGradeKeys))
	for _, k := range spanishGradeKeys {
		if v := strings.TrimSpace(r[k]); v != "" {
			grades = append(grades, r[k])
		}
	}

	return Student{
		StudentID:             id,
		BatchID:               batchID,
		University:            r.str(notAvailable, keyUniversity),
		School:                r.str(notAvailable, keySchool),
		FirstName:             r.str(notAvailable, keyFirstName),
		LastName:              r.str(notAvailable, keyLastName),
		Address:               r.str(notAvailable, keyAddress),
		Country:               r.str(notAvailable, keyCountry),
		City:                  r.str(notAvailable, keyCity),
		BirthDate:             r.str(notAvailable, keyBirthDate),
		AssignedTutor:         notAvailable,
		Emphasis:              notAvailable,
		GradeLevel:            t.Label(),
		Tier:                  t,
		TransferCredits:       r.num(keyTransferCredits),
		WorkExperienceCredits: r.num(keyWorkCreditsTypo, keyWorkCredits),
		MeritCredits:          r.num(keyMeritCredits),
		ThesisCredits:         thesis,
		CurriculumCloseDate:   r.str(notAvailable, keyCurriculumClose),
		Affectation:           r.str(notAvailable, keySchool),
		Average:               r.num(keyAverage),
		SpanishGrades:         grades,
		CareerName:            r.str(notAvailable, keyCareerName, keyCareer),
	}
}

func newSheetCourse(r record, rowIndex int) Course {
	credits := decimal.NewFromFloat(r.num(keyCourseCredits))
	return Course{
		ID:        fmt.Sprint(rowIndex + 1),
		Code:      r.str("", keyCourseCode),
		Name:      r.str("", keyCourseName),
		Credits:   credits,
		Grade:     r.str(notAvailable, keyCourseGrade),
		Term:      r.str("", keyCourseTerm),
		StudentID: strings.TrimSpace(r[keyStudentID]),
	}
}

// unknownHeaders lists the headers of s that match none of known, each with its closest alias.
func unknownHeaders(s Sheet, known []string) []HeaderHint {
	isKnown := make(map[string]bool, len(known))
	for _, k := range known {
		isKnown[k] = true
	}
	var hints []HeaderHint
	for i, key := range s.Keys() {
		if key == "" || isKnown[key] {
			continue
		}
		hints = append(hints, HeaderHint{Sheet: s.Name, Header: s.Header[i], Suggestion: closestKey(key, known)})
	}
	sort.SliceStable(hints, func(i, j int) bool { return hints[i].Header < hints[j].Header })
	return hints
}

func closestKey(key string, known []string) string {
	best, bestRatio := "", 0.0
	for _, k := range known {
		ratio := difflib.NewMatcher(strings.Split(key, ""), strings.Split(k, "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = k, ratio
		}
	}
	if bestRatio < headerHintMinRatio {
		return ""
	}
	return best
}
