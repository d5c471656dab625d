package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.SMTP.Addr() != "smtp.gmail.com:587" {
		t.Errorf("Expected default SMTP addr, got %s", cfg.SMTP.Addr())
	}
	if cfg.SMTP.Configured() {
		t.Error("Expected SMTP to be unconfigured without credentials")
	}
	if cfg.VisitorRetention != 365*24*time.Hour {
		t.Errorf("Expected one year retention, got %v", cfg.VisitorRetention)
	}
}

func TestLoadEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")

	err := os.WriteFile(envPath, []byte("PORT=9090\nSMTP_USER=me\nSMTP_PASS=secret\n"), 0600)
	if err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("SMTP_USER")
		os.Unsetenv("SMTP_PASS")
	})

	cfg, err := Load(envPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if !cfg.SMTP.Configured() {
		t.Error("Expected SMTP to be configured")
	}
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")
	if err := os.WriteFile(envPath, []byte("PORT=9090\n"), 0600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Setenv("PORT", "7070")

	cfg, err := Load(envPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("Expected environment port 7070, got %s", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("GIN_MODE", "loud")
	if _, err := Load(""); err == nil {
		t.Error("Expected invalid GIN_MODE to fail")
	}
}

func TestAdminCredentials(t *testing.T) {
	cfg := &Config{}
	user, pass, explicit := cfg.AdminCredentials()
	if user != "admin" || pass != "admin123" || explicit {
		t.Errorf("Expected development defaults, got %s/%s %v", user, pass, explicit)
	}

	cfg = &Config{AdminUsername: "yk", AdminPassword: "pw"}
	if _, _, explicit := cfg.AdminCredentials(); !explicit {
		t.Error("Expected explicit credentials")
	}
}
