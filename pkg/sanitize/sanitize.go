// Package sanitize limpia texto introducido por usuarios antes de
// persistirlo: elimina cualquier marcado HTML y recorta la longitud.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text elimina etiquetas HTML, recorta espacios y limita la longitud a
// maxLength runas.
func Text(input string, maxLength int) string {
	s := strings.TrimSpace(policy.Sanitize(input))
	runes := []rune(s)
	if maxLength > 0 && len(runes) > maxLength {
		return string(runes[:maxLength])
	}
	return s
}
