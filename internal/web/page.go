package web

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yukesshwaran21/My-Portfolio/internal/content"
	"github.com/yukesshwaran21/My-Portfolio/internal/download"
	"github.com/yukesshwaran21/My-Portfolio/internal/scroll"
	"github.com/yukesshwaran21/My-Portfolio/internal/section"
)

type navItem struct {
	ID    section.Section
	Label string
}

type projectsData struct {
	Tags     []string
	Tag      string
	Projects []content.Project
}

type pageData struct {
	P           *content.Portfolio
	Bio         template.HTML
	Nav         []navItem
	Projects    projectsData
	Transcript  []string
	Commands    []string
	Status      download.Status
	Year        int
	Offset      int
	BackToTopAt int
	Dark        bool
}

func navItems() []navItem {
	out := make([]navItem, len(section.All))
	for i, s := range section.All {
		out[i] = navItem{ID: s, Label: s.Label()}
	}
	return out
}

func (s *Server) projectsFor(tag string) projectsData {
	if tag == "" {
		tag = content.AllTag
	}
	return projectsData{
		Tags:     content.ProjectTags(s.portfolio.Projects),
		Tag:      tag,
		Projects: content.FilterProjects(s.portfolio.Projects, tag),
	}
}

// Home page route
func (s *Server) handleIndex(c *gin.Context) {
	var transcript []string
	status := download.StatusIdle
	if v := s.visits.existing(c); v != nil {
		transcript = v.console.Lines()
		status = v.flow.Status()
	}
	layout := scroll.PageLayout()

	c.HTML(http.StatusOK, "index.html", pageData{
		P:           s.portfolio,
		Bio:         s.bio,
		Nav:         navItems(),
		Projects:    s.projectsFor(c.Query("tag")),
		Transcript:  transcript,
		Commands:    s.commands.Names(),
		Status:      status,
		Year:        time.Now().Year(),
		Offset:      layout.Header,
		BackToTopAt: layout.BackToTop,
		Dark:        themeFor(c) == themeDark,
	})
}

// HTMX project grid filtered by tag
func (s *Server) handleProjects(c *gin.Context) {
	c.HTML(http.StatusOK, "projects.html", s.projectsFor(c.Query("tag")))
}

// HTMX project detail modal
func (s *Server) handleProjectDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid project id")
		return
	}
	p, ok := s.portfolio.Project(id)
	if !ok {
		c.String(http.StatusNotFound, "project not found")
		return
	}
	c.HTML(http.StatusOK, "project-modal.html", p)
}
