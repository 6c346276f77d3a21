package echoapi

import (
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/cumaze/registro-consorcio/core"
	"github.com/cumaze/registro-consorcio/core/academic"
)

type (
	ImportQuery struct {
		Tier string `query:"tier" json:"tier" validate:"required"`
	}

	RenameCourseRequest struct {
		Name string `json:"name" validate:"required,notblank"`
	}

	InstitutionRequest struct {
		Name string `json:"name"`
	}

	InstitutionResponse struct {
		Name string `json:"name"`
	}

	DocumentQuery struct {
		Observations string `query:"observations"`
	}

	StudentResponse struct {
		Student academic.Student  `json:"student"`
		Courses []academic.Course `json:"courses"`
		GPA     academic.GPA      `json:"gpa"`
	}

	SpecializationResponse struct {
		Courses []academic.Course `json:"courses"`
	}
)

// upload reads the multipart "file" field.
func upload(ctx echo.Context) (string, []byte, error) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return "", nil, core.NewValidationError(nil, core.FieldError{Field: "file", Error: errMissingFile})
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, errors.Wrap(err, "opening upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, errors.Wrap(err, "reading upload")
	}
	return strings.TrimSpace(fh.Filename), data, nil
}
