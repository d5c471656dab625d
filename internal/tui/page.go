package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yukesshwaran21/My-Portfolio/internal/content"
	"github.com/yukesshwaran21/My-Portfolio/internal/section"
)

// document is the portfolio laid out as terminal lines.
type document struct {
	lines []string
	tops  map[section.Section]int // first line of each section
}

func (d document) height() int { return len(d.lines) }

type pageWriter struct {
	width int
	doc   document
}

func (w *pageWriter) begin(s section.Section) {
	if len(w.doc.lines) > 0 {
		w.blank()
	}
	w.doc.tops[s] = len(w.doc.lines)
	w.line(sectionStyle.Render(strings.ToUpper(s.Label())))
	w.blank()
}

func (w *pageWriter) line(s string) {
	w.doc.lines = append(w.doc.lines, s)
}

func (w *pageWriter) blank() {
	w.line("")
}

// text word-wraps s to the page width.
func (w *pageWriter) text(s string) {
	if s == "" {
		w.blank()
		return
	}
	wrapped := lipgloss.NewStyle().Width(w.width).Render(s)
	w.doc.lines = append(w.doc.lines, strings.Split(wrapped, "\n")...)
}

func (w *pageWriter) field(label, value string) {
	if value == "" {
		return
	}
	w.text(accentStyle.Render(label+":") + " " + value)
}

// renderDocument lays out every section in document order. Only projects carrying
// tag are listed.
func renderDocument(p *content.Portfolio, tags []string, tag string, width int) document {
	if width < 20 {
		width = 20
	}
	w := &pageWriter{width: width, doc: document{tops: make(map[section.Section]int)}}

	for _, s := range section.All {
		switch s {
		case section.Home:
			renderHome(w, p)
		case section.About:
			renderAbout(w, p)
		case section.Skills:
			renderSkills(w, p)
		case section.Experience:
			renderExperience(w, p)
		case section.Education:
			renderEducation(w, p)
		case section.Projects:
			renderProjects(w, p, tags, tag)
		case section.Contact:
			renderContact(w, p)
		}
	}
	return w.doc
}

func renderHome(w *pageWriter, p *content.Portfolio) {
	w.begin(section.Home)
	w.line(titleStyle.Render(p.Profile.Name))
	w.text(p.Profile.Role)
	w.blank()
	w.text(p.Profile.Tagline)
	w.blank()
	names := make([]string, 0, len(p.Socials))
	for _, s := range p.Socials {
		names = append(names, s.Name)
	}
	w.text(dimStyle.Render(strings.Join(names, " · ")))
}

func renderAbout(w *pageWriter, p *content.Portfolio) {
	w.begin(section.About)
	for _, para := range strings.Split(content.PlainText(p.Profile.Bio), "\n\n") {
		w.text(para)
		w.blank()
	}
	w.field("Email", p.Profile.Email)
	w.field("Phone", p.Profile.Phone)
	w.field("Place", p.Profile.Place)
	w.field("Tech Stack", p.Profile.TechStack)
	w.field("Languages", p.Profile.Languages)
	w.field("Certification", p.Profile.Certification)
	w.blank()
	for _, st := range p.Stats {
		w.line(fmt.Sprintf("%s %s", accentStyle.Render(content.FormatStat(st.Value)), st.Label))
	}
}

func renderSkills(w *pageWriter, p *content.Portfolio) {
	w.begin(section.Skills)
	for _, g := range p.SkillGroups {
		names := make([]string, 0, len(g.Skills))
		for _, s := range g.Skills {
			names = append(names, s.Name)
		}
		w.line(accentStyle.Render(g.Title))
		w.text("  " + strings.Join(names, ", "))
	}
}

func renderExperience(w *pageWriter, p *content.Portfolio) {
	w.begin(section.Experience)
	for i, e := range p.Experience {
		if i > 0 {
			w.blank()
		}
		w.line(accentStyle.Render(e.Company) + dimStyle.Render("  "+e.Period))
		w.text(e.Role)
		w.text(e.Summary)
		if len(e.Tools) > 0 {
			w.text(dimStyle.Render("Tools: " + strings.Join(e.Tools, ", ")))
		}
	}
}

func renderEducation(w *pageWriter, p *content.Portfolio) {
	w.begin(section.Education)
	for i, e := range p.Education {
		if i > 0 {
			w.blank()
		}
		w.line(accentStyle.Render(e.Degree) + dimStyle.Render("  "+e.Period))
		w.text(e.Institution + ", " + e.Location)
		w.text(e.Summary)
	}
}

func renderProjects(w *pageWriter, p *content.Portfolio, tags []string, tag string) {
	w.begin(section.Projects)
	bar := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == tag {
			bar = append(bar, activeTagStyle.Render(t))
		} else {
			bar = append(bar, tagStyle.Render(t))
		}
	}
	w.text(strings.Join(bar, " "))
	w.blank()

	projects := content.FilterProjects(p.Projects, tag)
	if len(projects) == 0 {
		w.text(dimStyle.Render("No projects tagged " + tag + "."))
		return
	}
	for i, pr := range projects {
		if i > 0 {
			w.blank()
		}
		title := accentStyle.Render(pr.Title)
		if pr.Featured {
			title += dimStyle.Render("  featured")
		}
		w.line(title)
		w.text(pr.Description)
		w.text(dimStyle.Render(strings.Join(pr.Tech, " · ")))
		if pr.LiveURL != "" {
			w.text("Live: " + pr.LiveURL)
		}
		if pr.GithubURL != "" {
			w.text("Code: " + pr.GithubURL)
		}
	}
}

func renderContact(w *pageWriter, p *content.Portfolio) {
	w.begin(section.Contact)
	w.line(accentStyle.Render(p.Contact.Heading))
	w.text(p.Contact.Blurb)
	w.blank()
	w.field("Email", p.Profile.Email)
	w.field("Phone", p.Profile.Phone)
	w.field("Location", p.Profile.Place)
	for _, s := range p.Socials {
		w.field(s.Name, s.URL)
	}
	w.blank()
	w.text(dimStyle.Render("Run the web server to use the contact form."))
}
