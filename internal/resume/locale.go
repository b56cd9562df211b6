// Package resume turns the raw text of a LinkedIn PDF export into labeled
// sections and the extraction prompt handed to the language model.
package resume

// Locale is the detected résumé language. The zero value is LocaleUndetected,
// so an unset Locale can never be mistaken for a usable one.
type Locale int

const (
	LocaleUndetected Locale = iota
	LocaleEN
	LocaleES
)

func (l Locale) String() string {
	switch l {
	case LocaleEN:
		return "en"
	case LocaleES:
		return "es"
	default:
		return "undetected"
	}
}

// Supported reports whether l selects an anchor vocabulary.
func (l Locale) Supported() bool {
	_, ok := vocabularies[l]
	return ok
}

// SectionName identifies one slice of the résumé.
type SectionName string

const (
	SectionHeader     SectionName = "header"
	SectionContact    SectionName = "contact"
	SectionSummary    SectionName = "summary"
	SectionExperience SectionName = "experience"
	SectionEducation  SectionName = "education"
	SectionSkills     SectionName = "skills"
)

type anchor struct {
	section  SectionName
	keyword  string
	optional bool
}

type vocabulary struct {
	// required lowercase keywords for detection
	keywords []string
	// section headings in the order LinkedIn prints them
	anchors []anchor
	// labels used when the sections are handed to the model
	labels map[SectionName]string
}

var vocabularies = map[Locale]vocabulary{
	LocaleEN: {
		keywords: []string{"contact", "summary", "experience", "education"},
		anchors: []anchor{
			{section: SectionContact, keyword: "Contact"},
			{section: SectionSkills, keyword: "Top Skills", optional: true},
			{section: SectionSummary, keyword: "Summary"},
			{section: SectionExperience, keyword: "Experience"},
			{section: SectionEducation, keyword: "Education"},
		},
		labels: map[SectionName]string{
			SectionHeader:     "Header",
			SectionContact:    "Contact",
			SectionSkills:     "Top Skills",
			SectionSummary:    "Summary",
			SectionExperience: "Experience",
			SectionEducation:  "Education",
		},
	},
	LocaleES: {
		keywords: []string{"contactar", "extracto", "experiencia", "educación"},
		anchors: []anchor{
			{section: SectionContact, keyword: "Contactar"},
			{section: SectionSkills, keyword: "Aptitudes principales", optional: true},
			{section: SectionSummary, keyword: "Extracto"},
			{section: SectionExperience, keyword: "Experiencia"},
			{section: SectionEducation, keyword: "Educación"},
		},
		labels: map[SectionName]string{
			SectionHeader:     "Encabezado",
			SectionContact:    "Contactar",
			SectionSkills:     "Aptitudes principales",
			SectionSummary:    "Extracto",
			SectionExperience: "Experiencia",
			SectionEducation:  "Educación",
		},
	},
}

// detectionOrder fixes the tie-break when a text satisfies both keyword sets.
// Spanish exports routinely carry English words ("contact" is a prefix of
// "contactar"), so ES is checked first.
var detectionOrder = []Locale{LocaleES, LocaleEN}
