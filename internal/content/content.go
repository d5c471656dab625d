// Package content holds the static portfolio data embedded at build time.
package content

import (
	"bytes"
	_ "embed"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var portfolioYAML []byte

type Profile struct {
	Name          string `yaml:"name"`
	ShortName     string `yaml:"short_name"`
	Role          string `yaml:"role"`
	Tagline       string `yaml:"tagline"`
	Bio           string `yaml:"bio"` // markdown
	Email         string `yaml:"email"`
	Phone         string `yaml:"phone"`
	Place         string `yaml:"place"`
	TechStack     string `yaml:"tech_stack"`
	Languages     string `yaml:"languages"`
	Certification string `yaml:"certification"`
	Resume        string `yaml:"resume"`
}

type Social struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Skill struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

type SkillGroup struct {
	Title  string  `yaml:"title"`
	Icon   string  `yaml:"icon"`
	Skills []Skill `yaml:"skills"`
}

type Stat struct {
	Label string `yaml:"label"`
	Value int    `yaml:"value"`
}

// Experience is one timeline entry.
type Experience struct {
	ID      string   `yaml:"id"`
	Company string   `yaml:"company"`
	Role    string   `yaml:"role"`
	Period  string   `yaml:"period"`
	Summary string   `yaml:"summary"`
	Tools   []string `yaml:"tools"`
	// Letter is the completion-letter file name under the letters asset dir.
	Letter string `yaml:"letter"`
}

type Education struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
	Period      string `yaml:"period"`
	Location    string `yaml:"location"`
	Summary     string `yaml:"summary"`
}

// Project is a card in the projects grid.
type Project struct {
	ID          int      `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	Tags        []string `yaml:"tags"`
	Image       string   `yaml:"image"`
	LiveURL     string   `yaml:"live_url"`
	GithubURL   string   `yaml:"github_url"`
	Featured    bool     `yaml:"featured"`
}

// HasTag reports whether the project carries tag.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type Contact struct {
	Heading string `yaml:"heading"`
	Blurb   string `yaml:"blurb"`
	Intro   string `yaml:"intro"`
}

// Portfolio is the whole page's data.
type Portfolio struct {
	Profile     Profile      `yaml:"profile"`
	Socials     []Social     `yaml:"socials"`
	SkillGroups []SkillGroup `yaml:"skill_groups"`
	Stats       []Stat       `yaml:"stats"`
	Experience  []Experience `yaml:"experience"`
	Education   []Education  `yaml:"education"`
	Projects    []Project    `yaml:"projects"`
	Contact     Contact      `yaml:"contact"`
}

// Load parses the embedded portfolio.
func Load() (*Portfolio, error) {
	return Parse(portfolioYAML)
}

// Parse decodes and validates a portfolio document.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "decoding portfolio yaml")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate rejects data the page cannot render.
func (p *Portfolio) Validate() error {
	if p.Profile.Name == "" {
		return errors.New("profile name is required")
	}
	if err := assetName(p.Profile.Resume); err != nil {
		return errors.Wrap(err, "profile resume")
	}

	seen := make(map[int]bool, len(p.Projects))
	for i, proj := range p.Projects {
		if proj.Title == "" {
			return errors.Errorf("project %d has no title", i)
		}
		if seen[proj.ID] {
			return errors.Errorf("duplicate project id %d", proj.ID)
		}
		seen[proj.ID] = true
		for _, tag := range proj.Tags {
			if tag == AllTag {
				return errors.Errorf("project %d uses reserved tag %q", proj.ID, AllTag)
			}
		}
	}

	ids := make(map[string]bool, len(p.Experience))
	for _, e := range p.Experience {
		if e.ID == "" || ids[e.ID] {
			return errors.Errorf("experience %q has a missing or duplicate id", e.Company)
		}
		ids[e.ID] = true
		if e.Letter != "" {
			if err := assetName(e.Letter); err != nil {
				return errors.Wrapf(err, "experience %s letter", e.ID)
			}
		}
	}
	return nil
}

func assetName(name string) error {
	if name == "" {
		return errors.New("asset name is empty")
	}
	if filepath.Base(name) != name || strings.HasPrefix(name, ".") {
		return errors.Errorf("asset %q must be a plain file name", name)
	}
	return nil
}

// LetterDir is the asset subdirectory holding completion letters.
const LetterDir = "letters"

// CheckAssets reports the first downloadable file or static image the page links to
// that is missing under dir.
func (p *Portfolio) CheckAssets(dir string) error {
	paths := []string{p.Profile.Resume}
	for _, e := range p.Experience {
		if e.Letter != "" {
			paths = append(paths, filepath.Join(LetterDir, e.Letter))
		}
	}
	for _, proj := range p.Projects {
		if strings.HasPrefix(proj.Image, "/static/") {
			paths = append(paths, filepath.FromSlash(strings.TrimPrefix(proj.Image, "/")))
		}
	}

	for _, rel := range paths {
		info, err := os.Stat(filepath.Join(dir, rel))
		if err != nil {
			return errors.Wrapf(err, "asset %s", rel)
		}
		if !info.Mode().IsRegular() {
			return errors.Errorf("asset %s is not a regular file", rel)
		}
	}
	return nil
}

// Project returns the project with id.
func (p *Portfolio) Project(id int) (Project, bool) {
	for _, proj := range p.Projects {
		if proj.ID == id {
			return proj, true
		}
	}
	return Project{}, false
}

// ExperienceByID returns the timeline entry with id.
func (p *Portfolio) ExperienceByID(id string) (Experience, bool) {
	for _, e := range p.Experience {
		if e.ID == id {
			return e, true
		}
	}
	return Experience{}, false
}

var md = goldmark.New(goldmark.WithExtensions(extension.Linkify))

// Markdown renders a markdown field for the web view.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Wrap(err, "rendering markdown")
	}
	return template.HTML(buf.String()), nil
}

// PlainText strips markdown markup for the terminal view. Paragraphs are
// separated by a blank line.
func PlainText(src string) string {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	var buf strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Kind() == ast.KindParagraph || n.Kind() == ast.KindHeading {
				buf.WriteString("\n\n")
			}
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			buf.Write(n.Segment.Value(source))
			if n.SoftLineBreak() {
				buf.WriteByte(' ')
			}
			if n.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.AutoLink:
			buf.Write(n.Label(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

var printer = message.NewPrinter(language.English)

// FormatStat renders a stat value with grouping, e.g. 1,247.
func FormatStat(v int) string {
	return printer.Sprintf("%d", v)
}
