package academic

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumaze/registro-consorcio/core"
)

func specWorkbook(fileName string, names ...string) Workbook {
	rows := make([][]string, len(names))
	for i, n := range names {
		rows[i] = []string{n}
	}
	return Workbook{FileName: fileName, Sheets: []Sheet{{Name: "Hoja1", Header: []string{"name"}, Rows: rows}}}
}

func numbered(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %02d", prefix, i+1)
	}
	return out
}

func TestSpecializationTier(t *testing.T) {
	tests := []struct {
		fileName string
		want     Tier
		wantErr  bool
	}{
		{fileName: "especialización licenciatura.xlsx", want: TierLicenciatura},
		{fileName: "Especializacion Maestría 2026.xlsx", want: TierMaestria},
		{fileName: "especializacion doctorado.xlsx", want: TierDoctorado},
		{fileName: "especializacion tecnico.xlsx", wantErr: true},
		{fileName: "mi especializacion maestria.xlsx", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			got, err := SpecializationTier(tt.fileName)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, core.IsValidationError(err))
				assert.EqualError(t, err, errSpecializationFileName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSpecialization(t *testing.T) {
	spec, err := ParseSpecialization(specWorkbook("especializacion maestria.xlsx", "Auditoría", " ", "Riesgos "))
	require.NoError(t, err)
	assert.Equal(t, TierMaestria, spec.Tier)
	require.Len(t, spec.Pool, 2)
	assert.Equal(t, "Riesgos", spec.Pool[1].Name)
	assert.Equal(t, "5.4", spec.Pool[1].Credits.String())

	_, err = ParseSpecialization(specWorkbook("especializacion maestria.xlsx"))
	assert.True(t, core.IsValidationError(err))
}

func TestSpecialization_Inject(t *testing.T) {
	spec := Specialization{Tier: TierMaestria, Pool: templates("5.4", numbered("Curso", 30)...)}

	tests := []struct {
		tier Tier
		want int
	}{
		{tier: TierLicenciatura, want: 15},
		{tier: TierMaestria, want: 8},
		{tier: TierDoctorado, want: 8},
		{tier: TierPosdoctorado, want: 8},
		{tier: TierTecnico, want: 18},
	}
	for _, tt := range tests {
		t.Run(tt.tier.Key(), func(t *testing.T) {
			s := testStudent("S1", tt.tier)
			existing := []Course{
				{ID: "ind-a", Name: "a"},
				{ID: "spec-maestria-0-1", Name: "old"},
				{ID: "1", Name: "sheet"},
			}

			got, changed := spec.Inject(s, existing, 99)
			require.True(t, changed)
			require.Len(t, got, 2+tt.want)
			assert.Equal(t, "a", got[0].Name)
			assert.Equal(t, "sheet", got[1].Name, "older specialization courses are replaced")
			for i, c := range got[2:] {
				assert.Equal(t, fmt.Sprintf("spec-maestria-%d-99", i), c.ID)
				assert.True(t, c.IsSpecialization())
				assert.Empty(t, c.Grade)
				assert.Empty(t, c.Term)
				assert.Equal(t, "S1", c.StudentID)
				assert.True(t, strings.HasPrefix(c.Name, "Curso "))
			}

			again, _ := spec.Inject(s, existing, 99)
			assert.Equal(t, got, again, "the draw is seeded by student and tier")
		})
	}

	t.Run("unknown tier keeps courses", func(t *testing.T) {
		existing := []Course{{ID: "x", Name: "x"}}
		got, changed := spec.Inject(Student{StudentID: "S1"}, existing, 1)
		assert.False(t, changed)
		assert.Equal(t, existing, got)
	})
}
