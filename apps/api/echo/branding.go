package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/cumaze/registro-consorcio/core/branding"
)

type brandingApi struct {
	svc *branding.Service
}

func registerBrandingAPI(g *echo.Group, deps ServerDeps) {
	api := brandingApi{svc: deps.Branding}

	g.GET("/institution", api.retrieveInstitution)
	g.PUT("/institution", api.updateInstitution)

	ag := g.Group("/assets")
	ag.GET("", api.queryAssets)
	ag.GET("/:role", api.retrieveAsset)
	ag.PUT("/:role", api.uploadAsset)
	ag.DELETE("/:role", api.destroyAsset)
}

// Handlers

func (api *brandingApi) retrieveInstitution(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, InstitutionResponse{Name: api.svc.Name()})
}

// updateInstitution saves the display name; a blank name restores the default.
func (api *brandingApi) updateInstitution(ctx echo.Context) error {
	var data InstitutionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to InstitutionRequest")
	}
	name, err := api.svc.SetName(data.Name)
	if err != nil {
		return errors.Wrap(err, "saving institution name")
	}
	return ctx.JSON(http.StatusOK, InstitutionResponse{Name: name})
}

func (api *brandingApi) queryAssets(ctx echo.Context) error {
	assets := api.svc.Assets()
	images := make([]branding.Image, 0, len(assets.Images))
	for _, r := range branding.Roles {
		if img, ok := assets.Images[r]; ok {
			images = append(images, img)
		}
	}
	return ctx.JSON(http.StatusOK, images)
}

func (api *brandingApi) retrieveAsset(ctx echo.Context) error {
	role, err := branding.ParseRole(ctx.Param("role"))
	if err != nil {
		return err
	}
	img, err := api.svc.Image(role)
	if err != nil {
		return errors.Wrap(err, "retrieving image")
	}
	return ctx.Blob(http.StatusOK, img.ContentType, img.Data)
}

func (api *brandingApi) uploadAsset(ctx echo.Context) error {
	role, err := branding.ParseRole(ctx.Param("role"))
	if err != nil {
		return err
	}
	_, data, err := upload(ctx)
	if err != nil {
		return err
	}
	img, err := api.svc.SetImage(role, data)
	if err != nil {
		return errors.Wrap(err, "saving image")
	}
	return ctx.JSON(http.StatusOK, img)
}

func (api *brandingApi) destroyAsset(ctx echo.Context) error {
	role, err := branding.ParseRole(ctx.Param("role"))
	if err != nil {
		return err
	}
	if err = api.svc.ClearImage(role); err != nil {
		return errors.Wrap(err, "clearing image")
	}
	return ctx.NoContent(http.StatusNoContent)
}
