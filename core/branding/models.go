package branding

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/cumaze/registro-consorcio/core"
)

// Role names an uploaded image slot.
type Role string

const (
	RoleLogo        Role = "logo"
	RoleCounselor   Role = "counselor"
	RoleSecretary   Role = "secretary"
	RoleCoordinator Role = "coordinator"
)

var (
	ErrUnknownRole = errors.New("rol de imagen desconocido")
	ErrNoImage     = errors.New("imagen no cargada")

	// SignatureRoles are printed in this order under every signed document.
	SignatureRoles = []Role{RoleCounselor, RoleSecretary, RoleCoordinator}

	Roles = append([]Role{RoleLogo}, SignatureRoles...)

	signatureTitles = map[Role]string{
		RoleCounselor:   "Consejero/ Revisor",
		RoleSecretary:   "Secretaria",
		RoleCoordinator: "Coordinador",
	}
)

// Title is the caption printed under a signature.
func (r Role) Title() string {
	return signatureTitles[r]
}

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	r := Role(core.CleanString(s, true))
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownRole, "%q", s)
}

// Image is an uploaded picture kept in memory.
type Image struct {
	Role        Role   `json:"role"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

// DisplayName applies the blank-means-default rule to a requested institution name.
func DisplayName(name, def string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if def = strings.TrimSpace(def); def != "" {
		return def
	}
	return core.DefaultInstitutionName
}
