package academic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumaze/registro-consorcio/core/branding"
)

var docTime = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func testStudent(id string, tier Tier) Student {
	return Student{
		StudentID:           id,
		BatchID:             tier.Label() + "-1791970200000",
		University:          "Universidad Sur",
		School:              "Negocios",
		FirstName:           "Ana",
		LastName:            "Pérez",
		Address:             "N/A",
		Country:             "Perú",
		City:                "Lima",
		BirthDate:           "N/A",
		GradeLevel:          tier.Label(),
		Tier:                tier,
		CurriculumCloseDate: "2026-06-30",
		Affectation:         "Negocios",
		CareerName:          "Administración",
	}
}

func TestDocumentKinds(t *testing.T) {
	tests := []struct {
		in        string
		want      DocumentKind
		title     string
		fileName  string
		infoCards bool
	}{
		{in: "kardex", want: KindKardex, title: "Registro Académico", fileName: "Registro-Académico-X1.pdf", infoCards: true},
		{in: " Homologacion ", want: KindHomologacion, title: "Cuadro Comparativo", fileName: "Cuadro-Comparativo-X1.pdf"},
		{in: "tesis", want: KindTesis, title: "Calificación de Tesis de Grado", fileName: "Calificación-de-Tesis-de-Grado-X1.pdf", infoCards: true},
		{in: "CIERRE", want: KindCierre, title: "Certificación de Cierre de Pensum", fileName: "Certificación-de-Cierre-de-Pensum-X1.pdf", infoCards: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, err := ParseDocumentKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)
			assert.Equal(t, tt.title, k.Title())
			assert.Equal(t, tt.fileName, DocumentFileName(k.Title(), "X1"))
			assert.Equal(t, tt.infoCards, k.ShowInfoCards())
		})
	}

	_, err := ParseDocumentKind("diploma")
	assert.ErrorIs(t, err, ErrUnknownDocument)
}

func TestDocumentSelector(t *testing.T) {
	ds := NewDocumentSelector()
	assert.Equal(t, KindKardex, ds.Current())

	for _, from := range DocumentKinds {
		for _, to := range DocumentKinds {
			require.NoError(t, ds.Select(from))
			require.NoError(t, ds.Select(to))
			assert.Equal(t, to, ds.Current())
		}
	}

	assert.Error(t, ds.Select("diploma"))
	assert.Equal(t, KindCierre, ds.Current(), "a bad selection keeps the current document")
}

func TestBuildDocument_homologacionFilter(t *testing.T) {
	s := testStudent("X1", TierMaestria)
	courses := []Course{
		{ID: "ind-Formación virtual", Name: "Formación virtual"},
		{ID: "prof-Gestión de Capital Humano", Name: "Gestión de Capital Humano"},
		{ID: "spec-maestria-0-1", Name: "Auditoría"},
	}

	doc, err := BuildDocument(KindHomologacion, s, courses, DocumentContext{Now: docTime})
	require.NoError(t, err)
	require.NotNil(t, doc.Homologacion)

	h := doc.Homologacion
	assert.Equal(t, []HomologacionRow{{Home: "Gestión de Capital Humano", Origin: "Gestión de Capital Humano"}}, h.Rows)
	assert.Equal(t, "14 de octubre de 2026", h.Date)
	assert.Equal(t, "Administración", h.Career)
	assert.Equal(t, []string{"Cursos NIU", "Cursos USM"}, h.Columns)
	assert.Equal(t,
		"Presento a continuación la propuesta de homologación de cursos del programa de Maestria en Negocios, para el estudiante Ana Pérez con número de ID X1.",
		h.Intro)
	assert.Nil(t, doc.InfoCards)
	assert.Empty(t, doc.Signatures)
}

func TestBuildDocument_kardexMaestria(t *testing.T) {
	s := testStudent("X1", TierMaestria)
	courses := CurriculumFor(TierMaestria).Assemble("X1")
	courses = append(courses,
		Course{ID: "1", Name: "Formación virtual", Credits: specializationCredits},
		Course{ID: "2", Name: "Taller libre", Credits: specializationCredits},
		Course{ID: "3", Name: "Tesis de graduación", Credits: specializationCredits},
		Course{ID: "spec-maestria-0-5", Name: "Auditoría", Credits: specializationCredits},
	)

	doc, err := BuildDocument(KindKardex, s, courses, DocumentContext{
		Institution: "  ",
		Signed:      map[branding.Role]bool{branding.RoleSecretary: true},
		Now:         docTime,
	})
	require.NoError(t, err)
	require.NotNil(t, doc.Kardex)
	k := doc.Kardex

	assert.Equal(t, "Consortium Universitas", doc.Institution)
	assert.Equal(t, maestriaColumns, k.Columns)

	titles := make([]string, len(k.Groups))
	sizes := make([]int, len(k.Groups))
	for i, g := range k.Groups {
		titles[i], sizes[i] = g.Title, len(g.Rows)
	}
	assert.Equal(t, []string{"Cursos de Inducción", "Cursos Básicos", "Cursos Optativos Profesionales", "Cursos de Especialización", "Otros Cursos"}, titles)
	assert.Equal(t, []int{6, 7, 5, 1, 1}, sizes, "sheet rows are grouped by catalog name; the thesis-named row is dropped")

	// numbering runs through groups, then padding
	no := 0
	for _, g := range k.Groups {
		for _, r := range g.Rows {
			no++
			assert.Equal(t, no, r.No)
			assert.Equal(t, methodologyOnline, r.Methodology)
			assert.Equal(t, "2026-06-30", r.Date)
			require.NotNil(t, r.Grade)
			assert.Equal(t, "5.4", r.Credits)
		}
	}
	assert.Nil(t, k.Thesis)
	assert.Len(t, k.Padding, 25-20)
	assert.Equal(t, 21, k.Padding[0].No)
	assert.Equal(t, "2026-06-30", k.Padding[0].Date)
	assert.Empty(t, k.Padding[0].CourseName)

	require.Len(t, doc.Signatures, 3)
	assert.Equal(t, SignatureSlot{Role: branding.RoleCounselor, Title: "Consejero/ Revisor", Note: "Firma no cargada"}, doc.Signatures[0])
	assert.Equal(t, SignatureSlot{Role: branding.RoleSecretary, Title: "Secretaria", Signed: true}, doc.Signatures[1])

	require.NotNil(t, doc.InfoCards)
	assert.Equal(t, 135, doc.InfoCards.TotalCredits)
	assert.Equal(t, "1350 horas", doc.InfoCards.LectiveHours)
	for _, it := range doc.InfoCards.Identity {
		assert.NotEqual(t, "N/A", it.Value, it.Label)
	}
}

func TestBuildDocument_kardexDoctorate(t *testing.T) {
	s := testStudent("D1", TierDoctorado)
	s.ThesisCredits = 12
	courses := CurriculumFor(TierDoctorado).Assemble("D1")
	n := len(inductionCourses) + len(doctoradoBasicCourses) + 4

	doc, err := BuildDocument(KindKardex, s, courses, DocumentContext{Now: docTime})
	require.NoError(t, err)
	k := doc.Kardex

	assert.Equal(t, doctorateColumns, k.Columns)
	assert.Equal(t, "Cursos Optativos de Especialización", k.Groups[groupSpecialization].Title)
	assert.Empty(t, k.Groups[groupSpecialization].Rows)

	first := k.Groups[0].Rows[0]
	assert.Equal(t, "82", first.AverageHours, "round(1230/15)")
	assert.Equal(t, "8.20", first.Credits, "123/15")
	assert.GreaterOrEqual(t, first.Grade.Numeric, 80)

	require.NotNil(t, k.Thesis)
	assert.Equal(t, thesisCourseName, k.Thesis.CourseName)
	assert.Equal(t, n+1, k.Thesis.No)
	assert.Equal(t, "12", k.Thesis.Credits)
	assert.GreaterOrEqual(t, k.Thesis.Grade.Numeric, 83)
	assert.Len(t, k.Padding, 24-n-1)

	assert.Equal(t, 123, doc.InfoCards.TotalCredits)
	assert.Equal(t, "1230 horas", doc.InfoCards.LectiveHours)
}

func TestNewGradeBook(t *testing.T) {
	s := testStudent("X1", TierMaestria)
	s.ThesisCredits = 5
	courses := []Course{{ID: "a", Name: "Uno"}, {ID: "b", Name: "Dos"}, {ID: "c", Name: "Tres"}}

	gb := NewGradeBook(s, courses)
	require.Len(t, gb.Grades, 3)
	require.NotNil(t, gb.Thesis)

	sum := gb.Thesis.Numeric
	for _, g := range gb.Grades {
		sum += g.Numeric
	}
	assert.Equal(t, Average([]int{sum}, 25), gb.Average, "missing rows count as zeros")
	assert.Equal(t, gb, NewGradeBook(s, courses), "the same student always gets the same grades")
}

func TestBuildDocument_tesis(t *testing.T) {
	t.Run("without thesis credits", func(t *testing.T) {
		doc, err := BuildDocument(KindTesis, testStudent("X1", TierMaestria), nil, DocumentContext{Now: docTime})
		require.NoError(t, err)
		assert.Equal(t, []string{"Este estudiante no tiene créditos de tesis asignados."}, doc.Tesis.Paragraphs)
		assert.Nil(t, doc.Tesis.Grade)
		assert.Empty(t, doc.Signatures)
	})

	t.Run("with thesis credits", func(t *testing.T) {
		s := testStudent("T1", TierTecnico)
		s.ThesisCredits = 10
		doc, err := BuildDocument(KindTesis, s, nil, DocumentContext{Institution: "Universitas Nova", Now: docTime})
		require.NoError(t, err)
		require.NotNil(t, doc.Tesis.Grade)
		assert.Equal(t,
			"La Secretaría de la Facultad de Negocios de Universitas Nova, certifica que el estudiante Ana Pérez, con ID T1, ha culminado el programa de Administración.",
			doc.Tesis.Paragraphs[0])
		assert.Equal(t, "Proyecto de Tesis de Graduación", doc.Tesis.BoxTitle)
		assert.Equal(t, NewGradeBook(s, nil).Thesis, doc.Tesis.Grade)
		assert.Len(t, doc.Signatures, 3)
		assert.Equal(t, 0, doc.InfoCards.TotalCredits)
		assert.Equal(t, "N/A", doc.InfoCards.LectiveHours)
	})
}

func TestBuildDocument_cierre(t *testing.T) {
	doc, err := BuildDocument(KindCierre, testStudent("X1", TierLicenciatura), nil, DocumentContext{Now: docTime})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"La secretaría académica de Universidad Sur de California.",
		"Certifica a la estudiante Ana Pérez",
		"Que ha llenado los requisitos y culminó con éxito el plan de estudios de la carrera.",
	}, doc.Cierre.Paragraphs)
	assert.Equal(t, `"Administración"`, doc.Cierre.Career)
	assert.Len(t, doc.Signatures, 3)
	assert.Equal(t, 285, doc.InfoCards.TotalCredits)
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "1 de enero de 2027", LongDate(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 de diciembre de 2026", LongDate(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestNewDocumentContext(t *testing.T) {
	assets := branding.Assets{
		Institution: "Universitas Nova",
		Images: map[branding.Role]branding.Image{
			branding.RoleLogo:        {Role: branding.RoleLogo},
			branding.RoleCoordinator: {Role: branding.RoleCoordinator},
		},
	}
	ctx := NewDocumentContext(assets, "  revisar  ")
	assert.Equal(t, "Universitas Nova", ctx.Institution)
	assert.Equal(t, "revisar", ctx.Observations)
	assert.Equal(t, map[branding.Role]bool{
		branding.RoleCounselor:   false,
		branding.RoleSecretary:   false,
		branding.RoleCoordinator: true,
	}, ctx.Signed)
}
