package resume

import (
	"regexp"
	"strings"
)

var (
	pageFooterPattern = regexp.MustCompile(`(?i)(page\s+\d+\s+of\s+\d+|página\s+\d+\s+de\s+\d+)`)
	blankRunPattern   = regexp.MustCompile(`\n{3,}`)
)

// AnchorHit records where a section heading was found. Index is -1 when the
// heading is absent.
type AnchorHit struct {
	Section SectionName
	Keyword string
	Index   int
	Found   bool
}

// Span is a half-open byte range of the cleaned text, heading included.
type Span struct {
	Section SectionName
	Start   int
	End     int
}

// SectionSet is the result of segmenting one résumé.
type SectionSet struct {
	Locale   Locale
	Cleaned  string
	Sections map[SectionName]string
	Anchors  []AnchorHit
	Spans    []Span
}

// Get returns the trimmed text of a section, or "" when it is empty.
func (s *SectionSet) Get(name SectionName) string {
	return s.Sections[name]
}

// Span returns the span recorded for name.
func (s *SectionSet) Span(name SectionName) (Span, bool) {
	for _, sp := range s.Spans {
		if sp.Section == name {
			return sp, true
		}
	}
	return Span{}, false
}

// Clean strips page footers and collapses runs of blank lines.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = pageFooterPattern.ReplaceAllString(text, "")
	return blankRunPattern.ReplaceAllString(text, "\n")
}

// Segment slices text into sections using the locale's ordered headings.
//
// The scan only moves forward: each heading is looked up after the previous
// one, so offsets never decrease. A missing required heading is reported as
// an *AnchorNotFoundError instead of producing a misaligned slice.
func Segment(text string, locale Locale) (*SectionSet, error) {
	vocab, ok := vocabularies[locale]
	if !ok {
		return nil, &UnsupportedLocaleError{Locale: locale}
	}

	cleaned := Clean(text)
	hits, err := scanAnchors(cleaned, locale, vocab.anchors)
	if err != nil {
		return nil, err
	}

	byName := make(map[SectionName]AnchorHit, len(hits))
	for _, h := range hits {
		byName[h.Section] = h
	}

	contact := byName[SectionContact]
	skills := byName[SectionSkills]
	summary := byName[SectionSummary]
	experience := byName[SectionExperience]
	education := byName[SectionEducation]

	contactEnd := summary.Index
	skillsSpan := Span{Section: SectionSkills, Start: summary.Index, End: summary.Index}
	if skills.Found {
		contactEnd = skills.Index
		skillsSpan.Start = skills.Index
	}

	spans := []Span{
		{Section: SectionHeader, Start: 0, End: summary.Index},
		{Section: SectionContact, Start: contact.Index, End: contactEnd},
		skillsSpan,
		{Section: SectionSummary, Start: summary.Index, End: experience.Index},
		{Section: SectionExperience, Start: experience.Index, End: education.Index},
		{Section: SectionEducation, Start: education.Index, End: len(cleaned)},
	}

	sections := make(map[SectionName]string, len(spans))
	for _, sp := range spans {
		body := cleaned[sp.Start:sp.End]
		if h, ok := byName[sp.Section]; ok && h.Found {
			body = body[len(h.Keyword):]
		}
		sections[sp.Section] = strings.TrimSpace(body)
	}

	return &SectionSet{
		Locale:   locale,
		Cleaned:  cleaned,
		Sections: sections,
		Anchors:  hits,
		Spans:    spans,
	}, nil
}

func scanAnchors(text string, locale Locale, anchors []anchor) ([]AnchorHit, error) {
	hits := make([]AnchorHit, 0, len(anchors))
	cursor := 0
	for _, a := range anchors {
		idx := findAnchor(text, a.keyword, cursor)
		if idx < 0 {
			if !a.optional {
				return nil, &AnchorNotFoundError{Section: a.section, Keyword: a.keyword, Locale: locale}
			}
			hits = append(hits, AnchorHit{Section: a.section, Keyword: a.keyword, Index: -1})
			continue
		}
		hits = append(hits, AnchorHit{Section: a.section, Keyword: a.keyword, Index: idx, Found: true})
		cursor = idx + len(a.keyword)
	}
	return hits, nil
}

// findAnchor returns the first occurrence of keyword at or after from that
// sits alone on its line, falling back to the first plain occurrence.
func findAnchor(text, keyword string, from int) int {
	first := -1
	for pos := from; pos < len(text); {
		i := strings.Index(text[pos:], keyword)
		if i < 0 {
			break
		}
		idx := pos + i
		if first < 0 {
			first = idx
		}
		if standsAlone(text, idx, idx+len(keyword)) {
			return idx
		}
		pos = idx + len(keyword)
	}
	return first
}

func standsAlone(text string, start, end int) bool {
	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	lineEnd := len(text)
	if i := strings.IndexByte(text[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}
	return strings.TrimSpace(text[lineStart:start]) == "" && strings.TrimSpace(text[end:lineEnd]) == ""
}
