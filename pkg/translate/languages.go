package translate

import "strings"

// Languages NewsAPI can filter by, which are also the dashboard's targets.
var languages = map[string]string{
	"ar": "Arabic",
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"he": "Hebrew",
	"it": "Italian",
	"nl": "Dutch",
	"no": "Norwegian",
	"pt": "Portuguese",
	"ru": "Russian",
	"sv": "Swedish",
	"ud": "Urdu",
	"zh": "Chinese",
}

// LanguageName maps an ISO 639-1 code to its English name, "" if unknown.
func LanguageName(code string) string {
	return languages[strings.ToLower(strings.TrimSpace(code))]
}

// Supported reports whether code is a known language.
func Supported(code string) bool {
	return LanguageName(code) != ""
}
