package academic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumaze/registro-consorcio/core"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{in: "Técnico", want: TierTecnico},
		{in: "LICENCIATURA", want: TierLicenciatura},
		{in: "Maestría en Negocios", want: TierMaestria},
		{in: "doctorado", want: TierDoctorado},
		{in: "Posdoctorado", want: TierPosdoctorado},
		{in: "Pos Doctorado", want: TierPosdoctorado},
		{in: "postdoctorado", want: TierPosdoctorado},
		{in: "", wantErr: true},
		{in: "bachillerato", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTier(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTier_text(t *testing.T) {
	for _, tier := range Tiers {
		b, err := tier.MarshalText()
		require.NoError(t, err)

		var back Tier
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, tier, back)
	}
	assert.Equal(t, "Maestria", TierMaestria.Label())
	assert.Equal(t, "tecnico", TierTecnico.Key())
	assert.Equal(t, "N/A", TierUnknown.Label())
}

func TestCheckFileName(t *testing.T) {
	tests := []struct {
		tier     Tier
		fileName string
		wantErr  string
	}{
		{tier: TierMaestria, fileName: "Maestría 2026.xlsx"},
		{tier: TierTecnico, fileName: "TÉCNICO.xlsx"},
		{tier: TierPosdoctorado, fileName: "pos doctorado.xlsx"},
		{tier: TierPosdoctorado, fileName: "PostDoctorado.xlsx"},
		{tier: TierLicenciatura, fileName: "lic.xlsx", wantErr: "El nombre del archivo debe contener la palabra 'licenciatura'."},
		{tier: TierPosdoctorado, fileName: "doctorado.xlsx", wantErr: "El nombre del archivo debe contener la palabra 'posdoctorado'."},
	}
	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			err := CheckFileName(tt.tier, tt.fileName)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, core.IsValidationError(err))
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
