package academic

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/cumaze/registro-consorcio/core"
	"github.com/cumaze/registro-consorcio/core/branding"
)

// DocumentKind names one of the document views of a student.
type DocumentKind string

const (
	KindKardex       DocumentKind = "kardex"
	KindHomologacion DocumentKind = "homologacion"
	KindTesis        DocumentKind = "tesis"
	KindCierre       DocumentKind = "cierre"
)

var (
	ErrUnknownDocument = errors.New("tipo de documento desconocido")

	DocumentKinds = []DocumentKind{KindKardex, KindHomologacion, KindTesis, KindCierre}

	documentTitles = map[DocumentKind]string{
		KindKardex:       "Registro Académico",
		KindHomologacion: "Cuadro Comparativo",
		KindTesis:        "Calificación de Tesis de Grado",
		KindCierre:       "Certificación de Cierre de Pensum",
	}
)

func ParseDocumentKind(s string) (DocumentKind, error) {
	k := DocumentKind(core.CleanString(s, true))
	if _, ok := documentTitles[k]; ok {
		return k, nil
	}
	return "", errors.Wrapf(ErrUnknownDocument, "%q", s)
}

func (k DocumentKind) Title() string {
	return documentTitles[k]
}

// ShowInfoCards reports whether the student info cards head the document.
func (k DocumentKind) ShowInfoCards() bool {
	return k != KindHomologacion
}

// DocumentFileName is the PDF name of a document: "Registro-Académico-X1.pdf".
func DocumentFileName(title, studentID string) string {
	return strings.Join(strings.Fields(title), "-") + "-" + studentID + ".pdf"
}

// DocumentSelector tracks the document currently on display. Every kind is reachable from every other.
type DocumentSelector struct {
	current DocumentKind
}

func NewDocumentSelector() *DocumentSelector {
	return &DocumentSelector{current: KindKardex}
}

func (ds *DocumentSelector) Current() DocumentKind {
	return ds.current
}

// Select switches to kind; unknown kinds leave the selection untouched.
func (ds *DocumentSelector) Select(kind DocumentKind) error {
	if _, ok := documentTitles[kind]; !ok {
		return errors.Wrapf(ErrUnknownDocument, "%q", kind)
	}
	ds.current = kind
	return nil
}

// DocumentContext is what a document reads besides the student: branding and time.
type DocumentContext struct {
	Institution  string
	Signed       map[branding.Role]bool
	Observations string
	Now          time.Time
}

// NewDocumentContext marks as signed every signature role with an uploaded image.
func NewDocumentContext(assets branding.Assets, observations string) DocumentContext {
	signed := make(map[branding.Role]bool, len(branding.SignatureRoles))
	for _, r := range branding.SignatureRoles {
		signed[r] = assets.Has(r)
	}
	return DocumentContext{
		Institution:  assets.Institution,
		Signed:       signed,
		Observations: strings.TrimSpace(observations),
	}
}

type (
	Document struct {
		Kind         DocumentKind    `json:"kind"`
		Title        string          `json:"title"`
		FileName     string          `json:"fileName"`
		Institution  string          `json:"institution"`
		Student      Student         `json:"student"`
		InfoCards    *InfoCards      `json:"infoCards,omitempty"`
		Kardex       *Kardex         `json:"kardex,omitempty"`
		Homologacion *Homologacion   `json:"homologacion,omitempty"`
		Tesis        *Tesis          `json:"tesis,omitempty"`
		Cierre       *Cierre         `json:"cierre,omitempty"`
		Signatures   []SignatureSlot `json:"signatures,omitempty"`
	}

	InfoItem struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}

	InfoCards struct {
		Credits      []InfoItem `json:"credits"`
		TotalCredits int        `json:"totalCredits"`
		Career       string     `json:"career,omitempty"`
		LectiveHours string     `json:"lectiveHours"`
		Identity     []InfoItem `json:"identity"`
		Summary      []InfoItem `json:"summary"`
	}

	KardexRow struct {
		No           int           `json:"no"`
		Date         string        `json:"administrativeDate"`
		Methodology  string        `json:"methodology"`
		CourseID     string        `json:"courseId,omitempty"`
		CourseName   string        `json:"courseName"`
		AverageHours string        `json:"averageHours,omitempty"`
		Grade        *GradeDetails `json:"grade,omitempty"`
		Credits      string        `json:"credits"`
	}

	KardexGroup struct {
		Title string      `json:"title"`
		Rows  []KardexRow `json:"rows"`
	}

	Kardex struct {
		Columns      []string      `json:"columns"`
		Groups       []KardexGroup `json:"groups"`
		Thesis       *KardexRow    `json:"thesis,omitempty"`
		Padding      []KardexRow   `json:"padding"`
		Average      int           `json:"average"`
		Observations string        `json:"observations"`
	}

	HomologacionRow struct {
		Home   string `json:"home"`
		Origin string `json:"origin"`
	}

	Homologacion struct {
		To      string            `json:"to"`
		From    string            `json:"from"`
		Subject string            `json:"subject"`
		Date    string            `json:"date"`
		Career  string            `json:"career,omitempty"`
		Intro   string            `json:"intro"`
		Columns []string          `json:"columns"`
		Rows    []HomologacionRow `json:"rows"`
	}

	Tesis struct {
		Paragraphs []string      `json:"paragraphs"`
		BoxTitle   string        `json:"boxTitle,omitempty"`
		Grade      *GradeDetails `json:"grade,omitempty"`
		Closing    string        `json:"closing,omitempty"`
	}

	Cierre struct {
		Paragraphs []string `json:"paragraphs"`
		Career     string   `json:"career"`
		Closing    string   `json:"closing"`
	}

	SignatureSlot struct {
		Role   branding.Role `json:"role"`
		Title  string        `json:"title"`
		Signed bool          `json:"signed"`
		Note   string        `json:"note,omitempty"`
	}
)

const (
	methodologyOnline = "En línea"
	thesisCourseName  = "Tesis de Graduación"
	noSignatureNote   = "Firma no cargada"

	doctorateLectiveHours = 1230
	doctorateTotalCredits = 123
)

var (
	maestriaColumns  = []string{"No", "Fecha administrativa", "Metodología", "Nombre del curso", "Nota Alfabética", "Sistema E", "Nota Numérica", "Créditos"}
	doctorateColumns = []string{"No", "Fecha administrativa", "Metodología", "Nombre del curso", "Horas promedio", "Nota Alfabética", "Sistema E", "Nota Numérica", "Créditos"}

	spanishMonths = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
		"agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// GradeBook holds the synthesized grades of a transcript, aligned with Courses by index.
type GradeBook struct {
	Style   TableStyle
	Courses []Course
	Grades  []GradeDetails
	Thesis  *GradeDetails
	Average int
}

// NewGradeBook grades the transcript courses of s. Draws are seeded by the student id:
// the thesis first (when it applies), then each course in list order.
func NewGradeBook(s Student, courses []Course) GradeBook {
	gb := GradeBook{Style: StyleFor(s.Tier), Courses: transcriptCourses(courses)}
	synth := SeededSynthesizer(s.StudentID)
	if s.HasThesis() {
		d := Details(synth.Thesis())
		gb.Thesis = &d
	}
	numeric := make([]int, 0, len(gb.Courses)+1)
	gb.Grades = make([]GradeDetails, len(gb.Courses))
	for i, c := range gb.Courses {
		gb.Grades[i] = Details(synth.Grade(gb.Style, c.Name))
		numeric = append(numeric, gb.Grades[i].Numeric)
	}
	if gb.Thesis != nil {
		numeric = append(numeric, gb.Thesis.Numeric)
	}
	gb.Average = Average(numeric, gb.Style.Rows())
	return gb
}

// a course literally named after the thesis is replaced by the thesis row
func transcriptCourses(courses []Course) []Course {
	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		if strings.EqualFold(strings.TrimSpace(c.Name), thesisCourseName) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// BuildDocument projects a student and their courses into the document of the given kind.
func BuildDocument(kind DocumentKind, s Student, courses []Course, ctx DocumentContext) (Document, error) {
	if _, ok := documentTitles[kind]; !ok {
		return Document{}, errors.Wrapf(ErrUnknownDocument, "%q", kind)
	}
	if ctx.Now.IsZero() {
		ctx.Now = time.Now()
	}
	institution := branding.DisplayName(ctx.Institution, core.DefaultInstitutionName)
	gb := NewGradeBook(s, courses)
	s.Average = float64(gb.Average)

	doc := Document{
		Kind:        kind,
		Title:       kind.Title(),
		FileName:    DocumentFileName(kind.Title(), s.StudentID),
		Institution: institution,
		Student:     s,
	}
	if kind.ShowInfoCards() {
		doc.InfoCards = newInfoCards(s, gb.Average)
	}

	switch kind {
	case KindKardex:
		doc.Kardex = newKardex(s, gb, ctx.Observations)
		doc.Signatures = signatures(ctx.Signed)
	case KindHomologacion:
		doc.Homologacion = newHomologacion(s, courses, ctx.Now)
	case KindTesis:
		doc.Tesis = newTesis(s, gb.Thesis, institution)
		if gb.Thesis != nil {
			doc.Signatures = signatures(ctx.Signed)
		}
	case KindCierre:
		doc.Cierre = newCierre(s)
		doc.Signatures = signatures(ctx.Signed)
	}
	return doc, nil
}

func newInfoCards(s Student, average int) *InfoCards {
	cards := &InfoCards{
		Credits: []InfoItem{
			{Label: "Créditos transferidos previamente", Value: formatNumber(s.TransferCredits)},
			{Label: "Créditos por experiancia laboral", Value: formatNumber(s.WorkExperienceCredits)},
			{Label: "Créditos obtenidos por merito de estudio", Value: formatNumber(s.MeritCredits)},
			{Label: "Créditos por tesis de graduación", Value: formatNumber(s.ThesisCredits)},
		},
		LectiveHours: notAvailable,
		Summary: []InfoItem{
			{Label: "Grado", Value: s.GradeLevel},
			{Label: "Afectación", Value: s.Affectation},
			{Label: "Fecha de cierre", Value: s.CurriculumCloseDate},
			{Label: "Promedio", Value: strconv.Itoa(average)},
		},
	}
	switch {
	case s.Tier == TierLicenciatura:
		cards.TotalCredits, cards.LectiveHours = 285, "2850 horas"
	case s.Tier == TierMaestria:
		cards.TotalCredits, cards.LectiveHours = 135, "1350 horas"
	case s.Tier.DoctorateStyle():
		cards.TotalCredits, cards.LectiveHours = doctorateTotalCredits, fmt.Sprintf("%d horas", doctorateLectiveHours)
	}
	if present(s.CareerName) {
		cards.Career = s.CareerName
	}

	identity := []InfoItem{
		{Label: "Facultad", Value: s.School},
		{Label: "País", Value: s.Country},
		{Label: "Nombre", Value: s.FirstName},
		{Label: "Ciudad", Value: s.City},
		{Label: "Apellido", Value: s.LastName},
		{Label: "ID de estudiante", Value: s.StudentID},
		{Label: "Dirección", Value: s.Address},
		{Label: "Fecha de Nac.", Value: s.BirthDate},
	}
	cards.Identity = make([]InfoItem, 0, len(identity))
	for _, it := range identity {
		if present(it.Value) {
			cards.Identity = append(cards.Identity, it)
		}
	}
	return cards
}

// kardex groups, in print order
const (
	groupInduction = iota
	groupBasic
	groupProfessional
	groupSpecialization
	groupOther
)

func newKardex(s Student, gb GradeBook, observations string) *Kardex {
	k := &Kardex{Columns: maestriaColumns, Average: gb.Average, Observations: observations, Padding: []KardexRow{}}
	titles := []string{"Cursos de Inducción", "Cursos Básicos", "Cursos Optativos Profesionales", "Cursos de Especialización", "Otros Cursos"}

	var hours, credits string
	if gb.Style == DoctorateStyle {
		k.Columns = doctorateColumns
		titles[groupSpecialization] = "Cursos Optativos de Especialización"
		n := len(gb.Courses)
		hours = strconv.Itoa(int(math.Round(float64(doctorateLectiveHours) / float64(max(n, 1)))))
		credits = "0.00"
		if n > 0 {
			credits = decimal.NewFromInt(doctorateTotalCredits).DivRound(decimal.NewFromInt(int64(n)), 2).StringFixed(2)
		}
	}

	grouped := make([][]int, len(titles))
	curriculum := CurriculumFor(s.Tier)
	for i, c := range gb.Courses {
		g := kardexGroup(c, curriculum)
		grouped[g] = append(grouped[g], i)
	}

	no := 0
	for g, title := range titles {
		if g == groupOther && len(grouped[g]) == 0 {
			continue
		}
		group := KardexGroup{Title: title, Rows: make([]KardexRow, 0, len(grouped[g]))}
		for _, i := range grouped[g] {
			no++
			c, grade := gb.Courses[i], gb.Grades[i]
			row := KardexRow{
				No:          no,
				Date:        s.CurriculumCloseDate,
				Methodology: methodologyOnline,
				CourseID:    c.ID,
				CourseName:  c.Name,
				Grade:       &grade,
				Credits:     c.Credits.String(),
			}
			if gb.Style == DoctorateStyle {
				row.AverageHours, row.Credits = hours, credits
			}
			group.Rows = append(group.Rows, row)
		}
		k.Groups = append(k.Groups, group)
	}

	used := len(gb.Courses)
	if gb.Thesis != nil {
		no++
		used++
		k.Thesis = &KardexRow{
			No:          no,
			Date:        s.CurriculumCloseDate,
			Methodology: methodologyOnline,
			CourseName:  thesisCourseName,
			Grade:       gb.Thesis,
			Credits:     formatNumber(s.ThesisCredits),
		}
	}
	for i := used; i < gb.Style.Rows(); i++ {
		no++
		k.Padding = append(k.Padding, KardexRow{No: no, Date: s.CurriculumCloseDate})
	}
	return k
}

// kardexGroup places a course by its id prefix; spreadsheet rows go where their name is catalogued.
func kardexGroup(c Course, cur Curriculum) int {
	switch c.Origin() {
	case OriginInduction:
		return groupInduction
	case OriginBasic:
		return groupBasic
	case OriginProfessional:
		return groupProfessional
	case OriginSpecialization:
		return groupSpecialization
	}
	switch {
	case hasTemplate(cur.Induction, c.Name):
		return groupInduction
	case hasTemplate(cur.Basic, c.Name):
		return groupBasic
	case hasTemplate(cur.Electives, c.Name):
		return groupProfessional
	}
	return groupOther
}

func hasTemplate(ts []CourseTemplate, name string) bool {
	for _, t := range ts {
		if t.Name == name {
			return true
		}
	}
	return false
}

func newHomologacion(s Student, courses []Course, now time.Time) *Homologacion {
	h := &Homologacion{
		To:      "DEPARTAMENTO DE ADMISIONES",
		From:    "VICERRECTORIA ACADEMICA",
		Subject: "Propuesta de Homologación de Cursos",
		Date:    LongDate(now),
		Intro: fmt.Sprintf("Presento a continuación la propuesta de homologación de cursos del programa de %s en %s, para el estudiante %s con número de ID %s.",
			s.GradeLevel, s.Affectation, s.FullName(), s.StudentID),
		Columns: []string{"Cursos NIU", "Cursos USM"},
		Rows:    []HomologacionRow{},
	}
	if present(s.CareerName) {
		h.Career = s.CareerName
	}
	for _, c := range courses {
		if c.IsProfessional() {
			h.Rows = append(h.Rows, HomologacionRow{Home: c.Name, Origin: c.Name})
		}
	}
	return h
}

func newTesis(s Student, grade *GradeDetails, institution string) *Tesis {
	if grade == nil {
		return &Tesis{Paragraphs: []string{"Este estudiante no tiene créditos de tesis asignados."}}
	}
	return &Tesis{
		Paragraphs: []string{
			fmt.Sprintf("La Secretaría de la Facultad de %s de %s, certifica que el estudiante %s, con ID %s, ha culminado el programa de %s.",
				s.School, institution, s.FullName(), s.StudentID, s.CareerName),
			"Su proyecto de tesis de graduación fue evaluado y aprobado con la siguiente calificación:",
		},
		BoxTitle: "Proyecto de Tesis de Graduación",
		Grade:    grade,
		Closing:  "Esta calificación certifica la culminación exitosa de los requerimientos académicos para la obtención del grado.",
	}
}

func newCierre(s Student) *Cierre {
	return &Cierre{
		Paragraphs: []string{
			fmt.Sprintf("La secretaría académica de %s de California.", s.University),
			"Certifica a la estudiante " + s.FullName(),
			"Que ha llenado los requisitos y culminó con éxito el plan de estudios de la carrera.",
		},
		Career:  `"` + s.CareerName + `"`,
		Closing: "Este registro se le entrega al estudiante para que lo use apropiadamente.",
	}
}

func signatures(signed map[branding.Role]bool) []SignatureSlot {
	slots := make([]SignatureSlot, 0, len(branding.SignatureRoles))
	for _, r := range branding.SignatureRoles {
		slot := SignatureSlot{Role: r, Title: r.Title(), Signed: signed[r]}
		if !slot.Signed {
			slot.Note = noSignatureNote
		}
		slots = append(slots, slot)
	}
	return slots
}

// LongDate formats t the way es-ES long dates read: "14 de octubre de 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

func present(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != notAvailable
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
