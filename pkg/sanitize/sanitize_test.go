package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{
			name:      "elimina etiquetas HTML",
			input:     "<script>alert('x')</script>Hola",
			maxLength: 100,
			want:      "Hola",
		},
		{
			name:      "recorta espacios",
			input:     "  texto con espacios  ",
			maxLength: 100,
			want:      "texto con espacios",
		},
		{
			name:      "limita la longitud en runas",
			input:     "añoañoaño",
			maxLength: 3,
			want:      "año",
		},
		{
			name:      "sin límite cuando maxLength es cero",
			input:     "texto largo",
			maxLength: 0,
			want:      "texto largo",
		},
		{
			name:      "conserva el texto plano",
			input:     "abogado penalista en CDMX",
			maxLength: 100,
			want:      "abogado penalista en CDMX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.input, tt.maxLength))
		})
	}
}
