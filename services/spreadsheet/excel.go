package spreadsheet

import (
	"bytes"
	"io"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/cumaze/registro-consorcio/core"
	"github.com/cumaze/registro-consorcio/core/academic"
)

const (
	zipMime = "application/zip"

	StudentSheetName = "Estudiantes"
	CourseSheetName  = "Cursos"
)

var (
	errNotWorkbook    = "El archivo debe ser un libro de Excel (.xlsx)."
	errUnreadableBook = "El libro de cálculo no pudo ser leído."

	// StudentHeaders are the roster sheet columns written by Template, in the order the dashboard exports them.
	StudentHeaders = []string{
		"ID de Estudiante", "Nombre de la Universidad", "Nombre de la Facultad", "Nombre Alumno", "Apellido Alumno",
		"Dirección", "País", "Ciudad", "Fecha de Nacimiento", "Créditos Transferidos Previamente",
		"Créditos por Experiencia Laboral", "Créditos Obtenidos por Mérito de Estudio", "Créditos por Tesis de Graduación",
		"No Fecha de Cierre del Pensum", "Promedio", "Nombre de la Carrera",
		"Sistema Español de Notas", "Sistema Español de Notas", "Sistema Español de Notas", "Sistema Español de Notas",
	}

	CourseHeaders = []string{"code", "name", "credits", "grade", "term", "ID de Estudiante"}
)

// Read parses an xlsx upload into a Workbook. The first row of every sheet is its header.
func Read(r io.Reader, fileName string) (academic.Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return academic.Workbook{}, errors.Wrap(err, "reading upload")
	}
	if !IsWorkbook(data) {
		return academic.Workbook{}, core.NewValidationMessage(errNotWorkbook)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return academic.Workbook{}, core.NewValidationError(errors.Wrap(err, errUnreadableBook))
	}
	defer f.Close()

	wb := academic.Workbook{FileName: fileName}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return academic.Workbook{}, core.NewValidationError(errors.Wrapf(err, "%s (%s)", errUnreadableBook, name))
		}
		sheet := academic.Sheet{Name: name}
		if len(rows) > 0 {
			sheet.Header = rows[0]
			sheet.Rows = rows[1:]
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

// IsWorkbook reports whether data looks like an OOXML (zip based) spreadsheet.
func IsWorkbook(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is(zipMime) {
			return true
		}
	}
	return false
}

// Template writes an empty roster workbook for tier t: a student sheet and a course sheet, headers only.
func Template(t academic.Tier, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", StudentSheetName); err != nil {
		return errors.Wrap(err, "naming student sheet")
	}
	if _, err := f.NewSheet(CourseSheetName); err != nil {
		return errors.Wrap(err, "adding course sheet")
	}
	if err := writeRow(f, StudentSheetName, 1, StudentHeaders); err != nil {
		return err
	}
	if err := writeRow(f, CourseSheetName, 1, CourseHeaders); err != nil {
		return err
	}
	props := &excelize.DocProperties{
		Title:   "Plantilla " + t.Label(),
		Creator: core.DefaultInstitutionName,
	}
	if err := f.SetDocProps(props); err != nil {
		return errors.Wrap(err, "setting properties")
	}
	return errors.Wrap(f.Write(w), "writing template")
}

// Write serializes wb to xlsx. Sheet headers go on the first row.
func Write(wb academic.Workbook, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range wb.Sheets {
		name := s.Name
		if name == "" {
			name = "Sheet" + strconv.Itoa(i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return errors.Wrapf(err, "naming sheet %q", name)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return errors.Wrapf(err, "adding sheet %q", name)
		}
		if err := writeRow(f, name, 1, s.Header); err != nil {
			return err
		}
		for j, row := range s.Rows {
			if err := writeRow(f, name, j+2, row); err != nil {
				return err
			}
		}
	}
	return errors.Wrap(f.Write(w), "writing workbook")
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrap(err, "resolving cell")
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return errors.Wrapf(f.SetSheetRow(sheet, cell, &cells), "writing %s!%s", sheet, cell)
}
