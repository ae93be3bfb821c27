package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// MaxIDLength bounds identifiers taken from the URL.
const MaxIDLength = 128

// PathID returns the trimmed chi URL parameter, cut to MaxIDLength.
func PathID(r *http.Request, key string) string {
	return SanitizeString(chi.URLParam(r, key), MaxIDLength)
}

func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
