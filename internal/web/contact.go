package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/yukesshwaran21/My-Portfolio/internal/config"
	"github.com/yukesshwaran21/My-Portfolio/internal/store"
)

// Mailer delivers a contact message.
type Mailer interface {
	Send(ctx context.Context, m store.Message) error
}

// ErrMailerNotConfigured is returned when no SMTP credentials are set.
var ErrMailerNotConfigured = errors.New("SMTP credentials not configured")

// SMTPMailer sends contact messages through an SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
	to  string
}

func NewSMTPMailer(cfg config.SMTPConfig, to string) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, to: to}
}

func (m *SMTPMailer) Send(_ context.Context, msg store.Message) error {
	if !m.cfg.Configured() {
		return ErrMailerNotConfigured
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	err := smtp.SendMail(m.cfg.Addr(), auth, m.cfg.User, []string{m.to}, composeMail(m.cfg.User, m.to, msg))
	return errors.Wrap(err, "sending contact email")
}

func composeMail(from, to string, msg store.Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", msg.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Body)

	return []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + msg.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

type contactForm struct {
	Name    string `form:"fullName"`
	Email   string `form:"email"`
	Message string `form:"message"`
}

func (f contactForm) validate() error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Message) == "" {
		return errors.New("name and message are required")
	}
	if strings.ContainsAny(f.Name, "\r\n") {
		return errors.New("name must be a single line")
	}
	addr, err := mail.ParseAddress(f.Email)
	if err != nil || addr.Address != f.Email {
		return errors.New("a valid email address is required")
	}
	return nil
}

// Handle contact form submission with HTMX
func (s *Server) handleContact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "contact-error.html", gin.H{"error": "Please fill in every field."})
		return
	}
	if err := form.validate(); err != nil {
		c.HTML(http.StatusBadRequest, "contact-error.html", gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	msg := store.Message{
		Name:  strings.TrimSpace(form.Name),
		Email: form.Email,
		Body:  strings.TrimSpace(form.Message),
	}
	id, err := s.store.SaveMessage(ctx, msg)
	if err != nil {
		log.Printf("Error saving contact message: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	// Stored messages show up in the admin dashboard even when mail is not configured.
	if err := s.mailer.Send(ctx, msg); err != nil {
		if !errors.Is(err, ErrMailerNotConfigured) {
			log.Printf("Error sending email: %v", err)
		}
	} else if err := s.store.MarkMailed(ctx, id); err != nil {
		log.Printf("Error marking message %d mailed: %v", id, err)
	} else {
		log.Printf("Email sent successfully from %s (%s)", msg.Name, msg.Email)
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
