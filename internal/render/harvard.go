// Package render lays a CV out in the Harvard single-column format.
package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/fadilmartias/harvard-cv/internal/model"
)

//go:embed harvard.html.tmpl
var harvardHTML string

var harvardTemplate = template.Must(template.New("harvard").Funcs(template.FuncMap{
	"formatDate":   FormatDate,
	"join":         strings.Join,
	"joinNonEmpty": joinNonEmpty,
	"languages":    formatLanguages,
}).Parse(harvardHTML))

// dateLayouts are tried in order by FormatDate.
var dateLayouts = []string{
	"January 2006",
	"Jan 2006",
	"January, 2006",
	"2006-01-02",
	"2006-01",
	"01/2006",
	"1/2006",
}

// HarvardHTML writes cv as a standalone HTML document.
func HarvardHTML(w io.Writer, cv *model.CV) error {
	if cv == nil {
		return fmt.Errorf("render: nil cv")
	}
	return harvardTemplate.Execute(w, cv)
}

// FormatDate renders a date as "Month YYYY". "present" in any case becomes
// "Present"; values it cannot parse are returned unchanged.
func FormatDate(value string) string {
	v := strings.TrimSpace(value)
	if strings.EqualFold(v, "present") {
		return "Present"
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("January 2006")
		}
	}
	return value
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func formatLanguages(langs []model.Language) string {
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		if l.Level != "" {
			out = append(out, fmt.Sprintf("%s (%s)", l.Name, l.Level))
			continue
		}
		out = append(out, l.Name)
	}
	return strings.Join(out, ", ")
}
