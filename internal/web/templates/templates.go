// Package templates renders the server-side HTML of the careers pages as
// templ components.
package templates

import (
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCase = cases.Title(language.English)

// JobTypeLabel turns a stored job type such as "full-time" into the label
// shown to candidates ("Full-Time").
func JobTypeLabel(jobType string) string {
	if jobType == "" {
		return ""
	}
	return titleCase.String(jobType)
}

// html writes markup and keeps the first write error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

// text writes s escaped.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes name="value" with value escaped and a leading space.
func (h *html) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func selected(ok bool) string {
	if ok {
		return " selected"
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
