package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cumaze/registro-consorcio/core/academic"
)

func registerCatalogAPI(g *echo.Group) {
	g.GET("/catalog", retrieveSharedCatalog)
	g.GET("/catalog/:tier", retrieveCurriculum)
	g.GET("/documents", queryDocumentKinds)
}

func retrieveCurriculum(ctx echo.Context) error {
	tier, err := academic.ParseTier(ctx.Param("tier"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, academic.CurriculumFor(tier))
}

// SharedCatalog holds the tables that belong to no single tier.
type SharedCatalog struct {
	Induction     []academic.CourseTemplate `json:"induction"`
	OriginCourses []academic.CourseTemplate `json:"originCourses"`
}

func retrieveSharedCatalog(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, SharedCatalog{
		Induction:     academic.InductionCourses(),
		OriginCourses: academic.USMCourses(),
	})
}

type documentKind struct {
	Kind  academic.DocumentKind `json:"kind"`
	Title string                `json:"title"`
}

func queryDocumentKinds(ctx echo.Context) error {
	kinds := make([]documentKind, len(academic.DocumentKinds))
	for i, k := range academic.DocumentKinds {
		kinds[i] = documentKind{Kind: k, Title: k.Title()}
	}
	return ctx.JSON(http.StatusOK, kinds)
}
