package academic

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/cumaze/registro-consorcio/core"
)

// Tier is an academic program level.
type Tier int

const (
	TierUnknown Tier = iota
	TierTecnico
	TierLicenciatura
	TierMaestria
	TierDoctorado
	TierPosdoctorado
)

var (
	ErrUnknownTier = errors.New("nivel académico desconocido")

	// Tiers lists every known tier in upload-button order.
	Tiers = []Tier{TierLicenciatura, TierMaestria, TierDoctorado, TierTecnico, TierPosdoctorado}

	tierLabels = map[Tier]string{
		TierTecnico:      "Técnico",
		TierLicenciatura: "Licenciatura",
		TierMaestria:     "Maestria",
		TierDoctorado:    "Doctorado",
		TierPosdoctorado: "Posdoctorado",
	}

	tierKeys = map[Tier]string{
		TierTecnico:      "tecnico",
		TierLicenciatura: "licenciatura",
		TierMaestria:     "maestria",
		TierDoctorado:    "doctorado",
		TierPosdoctorado: "posdoctorado",
	}

	// keywords a file name must contain for an upload of that tier
	tierFileKeywords = map[Tier][]string{
		TierTecnico:      {"tecnico"},
		TierLicenciatura: {"licenciatura"},
		TierMaestria:     {"maestria"},
		TierDoctorado:    {"doctorado"},
		TierPosdoctorado: {"posdoctorado", "pos doctorado", "postdoctorado"},
	}
)

// Label is the value stored in Student.GradeLevel and used in batch ids.
func (t Tier) Label() string {
	if l, ok := tierLabels[t]; ok {
		return l
	}
	return "N/A"
}

// Key is the accent-free lowercase name of the tier ("maestria").
func (t Tier) Key() string {
	return tierKeys[t]
}

func (t Tier) String() string {
	return t.Label()
}

// DoctorateStyle reports whether the tier uses the doctorate transcript layout.
func (t Tier) DoctorateStyle() bool {
	return t == TierDoctorado || t == TierPosdoctorado
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.Label()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	tier, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// ParseTier resolves free text ("Maestría", "doctorado", "Pos Doctorado") to a Tier.
// Posdoctorado is checked before Doctorado since its keywords contain "doctorado".
func ParseTier(s string) (Tier, error) {
	folded := core.FoldAccents(strings.TrimSpace(s))
	if folded == "" {
		return TierUnknown, ErrUnknownTier
	}
	for _, t := range []Tier{TierPosdoctorado, TierDoctorado, TierLicenciatura, TierMaestria, TierTecnico} {
		for _, kw := range tierFileKeywords[t] {
			if strings.Contains(folded, kw) {
				return t, nil
			}
		}
	}
	return TierUnknown, errors.Wrapf(ErrUnknownTier, "%q", s)
}

// CheckFileName validates that an upload for tier t is named after it.
func CheckFileName(t Tier, fileName string) error {
	folded := core.FoldAccents(fileName)
	for _, kw := range tierFileKeywords[t] {
		if strings.Contains(folded, kw) {
			return nil
		}
	}
	return core.NewValidationMessage(fileNameKeywordMessage(t.Key()))
}

func fileNameKeywordMessage(keyword string) string {
	return "El nombre del archivo debe contener la palabra '" + keyword + "'."
}
