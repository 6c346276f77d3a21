package core

import "testing"

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "empty", key: "", want: ""},
		{name: "blank", key: "   ", want: ""},
		{name: "id header", key: " ID de Estudiante ", want: "iddeestudiante"},
		{name: "accents", key: "Dirección", want: "direccion"},
		{name: "enye", key: "País Año", want: "paisano"},
		{name: "upper enye", key: "AÑO", want: "ano"},
		{name: "tabs and newlines", key: "Créditos por\ttesis de\ngraduación", want: "creditosportesisdegraduacion"},
		{name: "duplicate suffix kept", key: "Sistema español de notas_1", want: "sistemaespanoldenotas_1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeKey(tt.key); got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q; want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestFoldAccents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Maestría-Cohorte.XLSX", want: "maestria-cohorte.xlsx"},
		{in: "Técnico", want: "tecnico"},
		{in: "pos doctorado", want: "pos doctorado"},
	}
	for _, tt := range tests {
		if got := FoldAccents(tt.in); got != tt.want {
			t.Errorf("FoldAccents(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
