package branding

import (
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"github.com/cumaze/registro-consorcio/core"
)

var (
	errUnsupportedImage = "La imagen debe ser PNG o JPEG."

	allowedImageTypes = []string{"image/png", "image/jpeg"}
)

type (
	// ImageRepository keeps one current image per role.
	ImageRepository interface {
		GetImage(role Role) (Image, error)
		PutImage(img Image) error
		DeleteImage(role Role) error
		DeleteAllImages() error
	}

	// NameStore persists the institution display name between runs.
	NameStore interface {
		LoadName() (string, error)
		SaveName(name string) error
	}

	Service struct {
		images      ImageRepository
		names       NameStore
		defaultName string
		logger      core.Logger
	}
)

func NewService(images ImageRepository, names NameStore, conf *core.Config, logger core.Logger) *Service {
	return &Service{
		images:      images,
		names:       names,
		defaultName: DisplayName(conf.DefaultInstitution, core.DefaultInstitutionName),
		logger:      logger,
	}
}

// Name returns the institution display name, falling back to the default when none was saved.
func (svc *Service) Name() string {
	name, err := svc.names.LoadName()
	if err != nil {
		svc.logger.Warn("loading institution name", err)
		return svc.defaultName
	}
	return DisplayName(name, svc.defaultName)
}

// SetName saves name (blank resets to the default) and returns the effective name.
func (svc *Service) SetName(name string) (string, error) {
	name = DisplayName(name, svc.defaultName)
	if err := svc.names.SaveName(name); err != nil {
		return "", errors.Wrap(err, "saving institution name")
	}
	return name, nil
}

// SetImage stores data as the current image of role; only PNG and JPEG are accepted.
func (svc *Service) SetImage(role Role, data []byte) (Image, error) {
	if _, err := ParseRole(string(role)); err != nil {
		return Image{}, err
	}
	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return Image{}, core.NewValidationMessage(errUnsupportedImage)
	}
	img := Image{Role: role, ContentType: mtype.String(), Data: append([]byte(nil), data...)}
	if err := svc.images.PutImage(img); err != nil {
		return Image{}, errors.Wrap(err, "storing image")
	}
	return img, nil
}

func (svc *Service) Image(role Role) (Image, error) {
	return svc.images.GetImage(role)
}

func (svc *Service) ClearImage(role Role) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	return svc.images.DeleteImage(role)
}

// ClearImages drops the logo and every signature. The display name is kept.
func (svc *Service) ClearImages() error {
	return svc.images.DeleteAllImages()
}

// Assets gathers what a document needs from branding: the name and the uploaded images.
func (svc *Service) Assets() Assets {
	a := Assets{Institution: svc.Name(), Images: make(map[Role]Image, len(Roles))}
	for _, r := range Roles {
		if img, err := svc.images.GetImage(r); err == nil {
			a.Images[r] = img
		}
	}
	return a
}

// Assets is a snapshot of the branding state used while rendering.
type Assets struct {
	Institution string
	Images      map[Role]Image
}

// Has reports whether an image is loaded for role.
func (a Assets) Has(role Role) bool {
	_, ok := a.Images[role]
	return ok
}
