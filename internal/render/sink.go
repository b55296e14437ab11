package render

import (
	"strings"

	"github.com/Nazarious-ucu/console-weather/internal/models"
)

// Sink describes what the output stream is able to display.
type Sink struct {
	SupportsGlyphs bool
}

// DetectSink decides once, from the locale, whether weather glyphs can be
// written. An unset locale is taken as UTF-8.
func DetectSink(getenv func(string) string) Sink {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := getenv(name); v != "" {
			return Sink{SupportsGlyphs: isUTF8Locale(v)}
		}
	}
	return Sink{SupportsGlyphs: true}
}

// Render formats conds, leaving the icon out when asked to or when the sink
// cannot display it.
func (s Sink) Render(city, state, postal string, conds models.Conditions, noIcons bool) (string, error) {
	return Printable(city, state, postal, conds, noIcons || !s.SupportsGlyphs)
}

// isUTF8Locale reports whether a locale name such as "en_US.UTF-8@euro"
// names a UTF-8 codeset. Names without a codeset use a legacy one.
func isUTF8Locale(locale string) bool {
	_, codeset, ok := strings.Cut(locale, ".")
	if !ok {
		return false
	}
	codeset, _, _ = strings.Cut(codeset, "@")
	codeset = strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(codeset))
	return codeset == "utf8"
}
