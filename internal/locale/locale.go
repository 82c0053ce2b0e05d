// Package locale implements the per-field language fallback chain used
// everywhere localized scheme text or UI messages are shown back to the
// user. Matching itself is language-agnostic; only display goes through
// the resolver.
package locale

// Language codes supported by the platform.
const (
	Hindi   = "hi"
	Tamil   = "ta"
	Telugu  = "te"
	Bengali = "bn"
	Marathi = "mr"
	English = "en"
)

// Resolve returns the localized value for the requested language,
// falling back requested -> hi -> en -> "". The hi step is never
// skipped: Hindi is the platform default before English, even when the
// requested language is en.
func Resolve(values map[string]string, lang string) string {
	if values == nil {
		return ""
	}
	if v, ok := values[lang]; ok && v != "" {
		return v
	}
	if v, ok := values[Hindi]; ok && v != "" {
		return v
	}
	if v, ok := values[English]; ok && v != "" {
		return v
	}
	return ""
}

// Normalizer validates requested languages against the configured
// supported set, substituting the default for anything unknown.
type Normalizer struct {
	supported map[string]bool
	def       string
}

func NewNormalizer(supported []string, defaultLanguage string) *Normalizer {
	set := make(map[string]bool, len(supported))
	for _, code := range supported {
		set[code] = true
	}
	return &Normalizer{supported: set, def: defaultLanguage}
}

// Normalize maps an invalid or empty language code to the default.
func (n *Normalizer) Normalize(lang string) string {
	if n.supported[lang] {
		return lang
	}
	return n.def
}

// Default returns the configured default language.
func (n *Normalizer) Default() string {
	return n.def
}
