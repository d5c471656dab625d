package web

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/yukesshwaran21/My-Portfolio/internal/content"
	"github.com/yukesshwaran21/My-Portfolio/internal/download"
)

// Starts the cosmetic download status for this visit; the file itself is a plain link.
func (s *Server) handleResumeDownload(c *gin.Context) {
	v := s.visits.forRequest(c)
	v.flow.Trigger()
	c.Header("HX-Trigger", `{"download":"resume"}`)
	c.HTML(http.StatusOK, "resume-status.html", gin.H{"label": v.flow.Status().Label()})
}

func (s *Server) handleResumeStatus(c *gin.Context) {
	status := download.StatusIdle
	if v := s.visits.existing(c); v != nil {
		status = v.flow.Status()
	}
	c.HTML(http.StatusOK, "resume-status.html", gin.H{"label": status.Label()})
}

func (s *Server) handleResumeAsset(c *gin.Context) {
	s.serveAsset(c, s.portfolio.Profile.Resume, s.portfolio.Profile.Name+" Resume.pdf")
}

// Completion letters are keyed by experience id.
func (s *Server) handleLetterAsset(c *gin.Context) {
	exp, ok := s.portfolio.ExperienceByID(c.Param("id"))
	if !ok || exp.Letter == "" {
		c.String(http.StatusNotFound, "letter not found")
		return
	}
	s.serveAsset(c, filepath.Join(content.LetterDir, exp.Letter), exp.Company+" Completion Letter.pdf")
}

func (s *Server) serveAsset(c *gin.Context, rel, downloadName string) {
	path := filepath.Join(s.cfg.AssetsDir, rel)
	if _, err := os.Stat(path); err != nil {
		c.String(http.StatusNotFound, "file not found")
		return
	}

	// HEAD is the page checking the link before following it
	if c.Request.Method != http.MethodHead {
		if err := s.store.RecordDownload(c.Request.Context(), rel); err != nil {
			log.Printf("Error recording download of %s: %v", rel, err)
		}
	}
	c.FileAttachment(path, downloadName)
}
