package resume

import (
	"fmt"
	"strings"
)

// cvShape mirrors model.CV. Keep both in sync.
const cvShape = `{
  "contact": {
    "github": "string",
    "mobile": "string",
    "email": "string (valid email address)",
    "linkedin": "string"
  },
  "name": "string",
  "title": "string",
  "location": "string",
  "summary": "string",
  "skills": {
    "mainSkills": ["string"],
    "languages": [{ "name": "string", "level": "string" }]
  },
  "experience": [
    {
      "company": "string",
      "position": "string",
      "startDate": "string",
      "endDate": "string",
      "duration": "string",
      "location": "string",
      "description": ["string"]
    }
  ],
  "education": [
    {
      "institution": "string",
      "degree": "string",
      "field": "string",
      "period": "string"
    }
  ]
}`

const extractionInstructions = `Instructions:
- Extract every field of the JSON structure from the resume sections above.
- Return ONLY the JSON object. No explanations, no markdown, no code fences.
- If a field cannot be found, use an empty string "" or an empty array [].
- The contact email must be a valid email address.
- Normalize dates to "Month YYYY" (for example "January 2021"); use "Present" for ongoing positions.
- Keep experience and education entries in the order they appear in the resume.`

const translationInstruction = `- The resume is written in Spanish. Translate every extracted value into English, except proper nouns such as names, companies and institutions.`

// promptSections is the order sections are presented to the model.
var promptSections = []SectionName{
	SectionHeader,
	SectionContact,
	SectionSkills,
	SectionSummary,
	SectionExperience,
	SectionEducation,
}

// BuildPrompt composes the structured-extraction request for sections.
func BuildPrompt(sections *SectionSet, locale Locale) (string, error) {
	vocab, ok := vocabularies[locale]
	if !ok {
		return "", &UnsupportedLocaleError{Locale: locale}
	}
	if sections == nil {
		return "", fmt.Errorf("build prompt: nil section set")
	}

	var sb strings.Builder
	sb.WriteString("You are an expert resume parser. Extract the information from this LinkedIn resume into the following JSON structure:\n\n")
	sb.WriteString(cvShape)
	sb.WriteString("\n\nResume sections:\n")
	for _, name := range promptSections {
		fmt.Fprintf(&sb, "\n%s:\n%s\n", vocab.labels[name], sections.Get(name))
	}
	sb.WriteString("\n")
	sb.WriteString(extractionInstructions)
	if locale != LocaleEN {
		sb.WriteString("\n")
		sb.WriteString(translationInstruction)
	}
	sb.WriteString("\n")
	return sb.String(), nil
}
