package config

const (
	LangEN = "en"
	LangES = "es"
)

// GetLocaleConfig returns a supported language code for lang and whether lang
// itself was supported. Unknown values fall back to English.
func GetLocaleConfig(lang string) (string, bool) {
	switch lang {
	case LangEN, LangES:
		return lang, true
	default:
		return LangEN, false
	}
}
