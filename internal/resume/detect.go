package resume

import "strings"

// Detect classifies text by required-keyword membership. Every keyword of a
// locale must appear as a byte-exact substring of the lower-cased text.
func Detect(text string) Locale {
	lower := strings.ToLower(text)
	for _, locale := range detectionOrder {
		if containsAll(lower, vocabularies[locale].keywords) {
			return locale
		}
	}
	return LocaleUndetected
}

func containsAll(text string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// IsLinkedInExport reports whether text carries a public profile URL.
func IsLinkedInExport(text string) bool {
	return strings.Contains(strings.ToLower(text), "linkedin.com/in/")
}
