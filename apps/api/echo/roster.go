package echoapi

import (
	"bytes"
	"mime"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/cumaze/registro-consorcio/core"
	"github.com/cumaze/registro-consorcio/core/academic"
	"github.com/cumaze/registro-consorcio/core/branding"
	"github.com/cumaze/registro-consorcio/services/metrics"
	"github.com/cumaze/registro-consorcio/services/render"
	"github.com/cumaze/registro-consorcio/services/spreadsheet"
)

const (
	formatJSON = "json"
	formatPDF  = "pdf"
)

type rosterApi struct {
	svc      *academic.Service
	brand    *branding.Service
	exporter *render.Exporter
	metrics  *metrics.Metrics
	validate *validator.Validate
	logger   core.Logger
}

func registerRosterAPI(g *echo.Group, deps ServerDeps) {
	api := rosterApi{
		svc:      deps.Academic,
		brand:    deps.Branding,
		exporter: deps.Exporter,
		metrics:  deps.Metrics,
		validate: deps.Validate,
		logger:   deps.Logger,
	}

	g.POST("/imports", api.importRoster)
	g.GET("/batches", api.queryBatches)
	g.DELETE("/batches/:id", api.destroyBatch)
	g.DELETE("/session", api.resetSession)
	g.GET("/specializations", api.querySpecializations)

	sg := g.Group("/students")
	sg.GET("", api.queryStudents)
	sg.GET("/:id", api.retrieveStudent)
	sg.PUT("/:id/courses/:courseId", api.renameCourse)
	sg.POST("/:id/specialization", api.uploadSpecialization)
	sg.GET("/:id/documents/:kind", api.retrieveDocument)
	sg.GET("/:id/documents/:kind/pdf", api.exportDocument)
}

// Handlers

func (api *rosterApi) importRoster(ctx echo.Context) error {
	var q ImportQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &q); err != nil {
		return errors.Wrap(err, "binding to ImportQuery")
	}
	if err := api.validate.Struct(q); err != nil {
		return err
	}
	tier, err := academic.ParseTier(q.Tier)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "tier", Error: academic.ErrUnknownTier.Error()})
	}

	name, data, err := upload(ctx)
	if err != nil {
		return err
	}
	res, err := api.importWorkbook(tier, name, data)
	api.recordImport(tier, res.Students, err)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *rosterApi) importWorkbook(tier academic.Tier, name string, data []byte) (academic.ImportResult, error) {
	wb, err := spreadsheet.Read(bytes.NewReader(data), name)
	if err != nil {
		return academic.ImportResult{}, err
	}
	return api.svc.Import(tier, wb)
}

func (api *rosterApi) recordImport(tier academic.Tier, students int, err error) {
	if api.metrics == nil {
		return
	}
	api.metrics.ImportDone(tier.Label(), students, err)
	if r, rErr := api.svc.Roster(); rErr == nil {
		api.metrics.SessionSize(len(r.Students))
	}
}

func (api *rosterApi) queryStudents(ctx echo.Context) error {
	var filter academic.QueryFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	students, err := api.svc.Students(filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *rosterApi) retrieveStudent(ctx echo.Context) error {
	s, courses, err := api.svc.Student(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "retrieving student")
	}
	return ctx.JSON(http.StatusOK, StudentResponse{Student: s, Courses: courses, GPA: academic.CalculateGPA(courses)})
}

func (api *rosterApi) renameCourse(ctx echo.Context) error {
	var data RenameCourseRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RenameCourseRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	c, err := api.svc.RenameCourse(ctx.Param("id"), ctx.Param("courseId"), data.Name)
	if err != nil {
		return errors.Wrap(err, "renaming course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *rosterApi) uploadSpecialization(ctx echo.Context) error {
	name, data, err := upload(ctx)
	if err != nil {
		return err
	}
	wb, err := spreadsheet.Read(bytes.NewReader(data), name)
	if err != nil {
		return err
	}
	courses, err := api.svc.UploadSpecialization(ctx.Param("id"), wb)
	if err != nil {
		return errors.Wrap(err, "uploading specialization")
	}
	return ctx.JSON(http.StatusOK, SpecializationResponse{Courses: courses})
}

func (api *rosterApi) querySpecializations(ctx echo.Context) error {
	pools, err := api.svc.Specializations()
	if err != nil {
		return errors.Wrap(err, "querying specializations")
	}
	return ctx.JSON(http.StatusOK, pools)
}

func (api *rosterApi) document(ctx echo.Context) (academic.Document, error) {
	kind, err := academic.ParseDocumentKind(ctx.Param("kind"))
	if err != nil {
		return academic.Document{}, err
	}
	var q DocumentQuery
	if err = (&echo.DefaultBinder{}).BindQueryParams(ctx, &q); err != nil {
		return academic.Document{}, errors.Wrap(err, "binding to DocumentQuery")
	}
	doc, err := api.svc.Document(kind, ctx.Param("id"), academic.NewDocumentContext(api.brand.Assets(), q.Observations))
	if err != nil {
		return academic.Document{}, errors.Wrap(err, "building document")
	}
	return doc, nil
}

func (api *rosterApi) retrieveDocument(ctx echo.Context) error {
	doc, err := api.document(ctx)
	if err != nil {
		return err
	}
	api.recordDocument(doc.Kind, formatJSON)
	return ctx.JSON(http.StatusOK, doc)
}

func (api *rosterApi) exportDocument(ctx echo.Context) error {
	doc, err := api.document(ctx)
	if err != nil {
		return err
	}
	name, data, err := api.exporter.Export(doc, api.brand.Assets())
	if err != nil {
		return errors.Wrap(err, "exporting document")
	}
	api.recordDocument(doc.Kind, formatPDF)

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": name})
	ctx.Response().Header().Set(echo.HeaderContentDisposition, disposition)
	return ctx.Blob(http.StatusOK, "application/pdf", data)
}

func (api *rosterApi) recordDocument(kind academic.DocumentKind, format string) {
	if api.metrics != nil {
		api.metrics.DocumentBuilt(string(kind), format)
	}
}

func (api *rosterApi) queryBatches(ctx echo.Context) error {
	batches, err := api.svc.Batches()
	if err != nil {
		return errors.Wrap(err, "querying batches")
	}
	return ctx.JSON(http.StatusOK, batches)
}

func (api *rosterApi) destroyBatch(ctx echo.Context) error {
	if err := api.svc.DeleteBatch(strings.TrimSpace(ctx.Param("id"))); err != nil {
		return errors.Wrap(err, "deleting batch")
	}
	r, err := api.svc.Roster()
	if err != nil {
		return errors.Wrap(err, "loading roster")
	}
	if api.metrics != nil {
		api.metrics.SessionSize(len(r.Students))
	}

	// the last batch takes the whole session with it, images included
	if len(r.Students) == 0 {
		if err = api.brand.ClearImages(); err != nil {
			return errors.Wrap(err, "clearing images")
		}
		api.logger.Info("last batch deleted, session reset")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// resetSession drops the roster, the specialization pools and every image. The display name stays.
func (api *rosterApi) resetSession(ctx echo.Context) error {
	if err := api.svc.Reset(); err != nil {
		return errors.Wrap(err, "resetting roster")
	}
	if err := api.brand.ClearImages(); err != nil {
		return errors.Wrap(err, "clearing images")
	}
	if api.metrics != nil {
		api.metrics.SessionSize(0)
	}
	api.logger.Info("session reset")
	return ctx.NoContent(http.StatusNoContent)
}
