package academic

import (
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/cumaze/registro-consorcio/core"
)

var (
	positiveCreditsTag  = "poscredits"
	positiveCreditsText = "Créditos inválidos: El valor debe ser positivo."

	gradePresentTag  = "gradepresent"
	gradePresentText = "Calificación faltante."

	gradeLetterTag  = "gradeletter"
	gradeLetterText = "Calificación inválida: {0} no es un valor reconocido."

	validGrades = map[string]bool{
		"A": true, "A-": true, "B+": true, "B": true, "B-": true, "C+": true,
		"C": true, "D": true, "F": true, "P": true, "W": true, notAvailable: true,
	}
)

// CourseIssue collects the validation messages of one course.
type CourseIssue struct {
	StudentID string   `json:"studentId"`
	CourseID  string   `json:"courseId"`
	Messages  []string `json:"messages"`
}

// courseCheck is the validated view of a Course.
type courseCheck struct {
	Credits decimal.Decimal `json:"credits" validate:"poscredits"`
	Grade   string          `json:"grade" validate:"gradepresent,gradeletter"`
}

// CourseChecker validates courses coming from a spreadsheet.
type CourseChecker struct {
	validate   *validator.Validate
	translator ut.Translator
}

// InitValidators registers the academic validation rules.
func InitValidators(validate *validator.Validate, translator ut.Translator) *CourseChecker {
	// decimals are validated as their float value
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	_ = validate.RegisterValidation(positiveCreditsTag, positiveCreditsValidation)
	core.RegisterCustomTranslation(validate, translator, positiveCreditsTag, positiveCreditsText)

	_ = validate.RegisterValidation(gradePresentTag, gradePresentValidation)
	core.RegisterCustomTranslation(validate, translator, gradePresentTag, gradePresentText)

	_ = validate.RegisterValidation(gradeLetterTag, gradeLetterValidation)
	_ = validate.RegisterTranslation(
		gradeLetterTag, translator,
		func(t ut.Translator) error { return t.Add(gradeLetterTag, gradeLetterText, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(gradeLetterTag, `"`+fe.Value().(string)+`"`)
			return s
		},
	)
	return &CourseChecker{validate: validate, translator: translator}
}

// Check returns the problems of c, empty when it is valid.
func (cc *CourseChecker) Check(c Course) []string {
	err := cc.validate.Struct(courseCheck{Credits: c.Credits, Grade: c.Grade})
	if err == nil {
		return nil
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		msgs = append(msgs, fe.Translate(cc.translator))
	}
	return msgs
}

func decimalValue(v reflect.Value) interface{} {
	if d, ok := v.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func positiveCreditsValidation(fl validator.FieldLevel) bool {
	return fl.Field().Float() > 0
}

func gradePresentValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// blank grades are reported by gradepresent only
func gradeLetterValidation(fl validator.FieldLevel) bool {
	g := fl.Field().String()
	return strings.TrimSpace(g) == "" || validGrades[g]
}
