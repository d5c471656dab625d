// Package section names the fixed regions of the portfolio page.
package section

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section identifies one region of the single page.
type Section string

const (
	Home       Section = "home"
	About      Section = "about"
	Skills     Section = "skills"
	Experience Section = "experience"
	Education  Section = "education"
	Projects   Section = "projects"
	Contact    Section = "contact"
)

// All lists every section in document order.
var All = []Section{Home, About, Skills, Experience, Education, Projects, Contact}

// Label returns the navigation label, e.g. "Experience".
func (s Section) Label() string {
	// a Caser carries state and is not safe to share between goroutines
	return cases.Title(language.English).String(string(s))
}

// Valid reports whether s is one of the fixed sections.
func (s Section) Valid() bool {
	for _, v := range All {
		if v == s {
			return true
		}
	}
	return false
}

// Parse converts a raw id into a Section.
func Parse(raw string) (Section, bool) {
	s := Section(raw)
	return s, s.Valid()
}

// Index returns the position of s in All, or -1.
func (s Section) Index() int {
	for i, v := range All {
		if v == s {
			return i
		}
	}
	return -1
}

// At returns the i-th section in document order.
func At(i int) (Section, bool) {
	if i < 0 || i >= len(All) {
		return "", false
	}
	return All[i], true
}
