package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yukesshwaran21/My-Portfolio/internal/config"
	"github.com/yukesshwaran21/My-Portfolio/internal/content"
	"github.com/yukesshwaran21/My-Portfolio/internal/download"
	"github.com/yukesshwaran21/My-Portfolio/internal/store"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []store.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, m store.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

type testEnv struct {
	srv    *Server
	router *gin.Engine
	store  *store.Store
	mailer *fakeMailer
}

// writeAssets lays out the files the portfolio content references under dir.
func writeAssets(t *testing.T, dir string) string {
	t.Helper()
	assets := filepath.Join(dir, "assets")
	for _, sub := range []string{content.LetterDir, "static/img"} {
		if err := os.MkdirAll(filepath.Join(assets, sub), 0755); err != nil {
			t.Fatalf("Failed to create assets: %v", err)
		}
	}
	for _, name := range []string{
		"resume.pdf",
		"letters/cognifyz.pdf",
		"letters/prodigy.pdf",
		"static/img/placeholder.svg",
	} {
		if err := os.WriteFile(filepath.Join(assets, name), []byte("%PDF-1.4"), 0600); err != nil {
			t.Fatalf("Failed to write asset: %v", err)
		}
	}
	return assets
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithAssets(t, writeAssets(t, t.TempDir()))
}

func newTestEnvWithAssets(t *testing.T, assets string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := testConfig(assets)

	st, err := store.Open(context.Background(), filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	p, err := content.Load()
	if err != nil {
		t.Fatalf("Failed to load content: %v", err)
	}

	mailer := &fakeMailer{}
	srv, err := New(cfg, p, st, Options{
		Mailer: mailer,
		DownloadOptions: download.Options{
			FinishAfter: 150 * time.Millisecond,
			ClearAfter:  30 * time.Millisecond,
		},
	})
	if err != nil {
		t.Fatalf("Failed to build server: %v", err)
	}
	router, err := srv.Router()
	if err != nil {
		t.Fatalf("Failed to build router: %v", err)
	}

	t.Cleanup(func() {
		srv.Close()
		st.Close()
	})
	return &testEnv{srv: srv, router: router, store: st, mailer: mailer}
}

func testConfig(assets string) *config.Config {
	return &config.Config{
		Port:             "0",
		GinMode:          gin.TestMode,
		AssetsDir:        assets,
		AdminUsername:    "owner",
		AdminPassword:    "hunter2",
		VisitorRetention: time.Hour,
	}
}

// do sends a request, carrying the cookies from prior responses.
func (e *testEnv) do(t *testing.T, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodGet, "/", nil, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`id="home"`, `id="about"`, `id="skills"`, `id="experience"`,
		`id="education"`, `id="projects"`, `id="contact"`,
		"Cognifyz Technologies", "1,247", "<strong>Information Technology</strong>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
	if strings.Contains(body, "alex@example.com") {
		t.Error("Expected placeholder contact details to be gone")
	}
}

func TestProjectsFilter(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/projects?tag=Animation", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if n := strings.Count(w.Body.String(), `class="project-card`); n != 1 {
		t.Errorf("Expected 1 Animation project, got %d", n)
	}

	w = e.do(t, http.MethodGet, "/projects", nil, nil)
	if n := strings.Count(w.Body.String(), `class="project-card`); n != 4 {
		t.Errorf("Expected 4 projects for All, got %d", n)
	}
}

func TestProjectDetail(t *testing.T) {
	e := newTestEnv(t)

	if w := e.do(t, http.MethodGet, "/projects/3", nil, nil); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Weather Dashboard") {
		t.Errorf("Expected weather dashboard modal, got %d", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/projects/99", nil, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/projects/x", nil, nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestConsoleSubmit(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/console", url.Values{"command": {"Skills"}}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("HX-Trigger"); got != `{"navigate":"skills"}` {
		t.Errorf("Expected navigate trigger, got %q", got)
	}
	cookies := w.Result().Cookies()

	w = e.do(t, http.MethodPost, "/console", url.Values{"command": {"foobar"}}, cookies)
	body := w.Body.String()
	if strings.Count(body, "console-line") != 4 {
		t.Errorf("Expected 4 transcript lines, got body %s", body)
	}
	if !strings.Contains(body, "Command not found: foobar.") {
		t.Errorf("Expected diagnostic, got %s", body)
	}

	w = e.do(t, http.MethodPost, "/console", url.Values{"command": {"clear"}}, cookies)
	if strings.Contains(w.Body.String(), "console-line") {
		t.Errorf("Expected empty transcript after clear, got %s", w.Body.String())
	}

	stats, err := e.store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Failed to load stats: %v", err)
	}
	if len(stats.TopCommands) != 2 {
		t.Errorf("Expected skills and clear recorded, got %+v", stats.TopCommands)
	}
}

func TestConsoleClose(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/console", url.Values{"command": {"help"}}, nil)
	cookies := w.Result().Cookies()
	e.do(t, http.MethodDelete, "/console", nil, cookies)

	w = e.do(t, http.MethodGet, "/", nil, cookies)
	if strings.Contains(w.Body.String(), `class="console-line`) {
		t.Error("Expected transcript to be cleared after closing the console")
	}
}

func TestResumeCommandStartsDownloadFlow(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/console", url.Values{"command": {"resume"}}, nil)
	if got := w.Header().Get("HX-Trigger"); got != `{"download":"resume"}` {
		t.Errorf("Expected download trigger, got %q", got)
	}
	cookies := w.Result().Cookies()

	w = e.do(t, http.MethodGet, "/resume/status", nil, cookies)
	if !strings.Contains(w.Body.String(), "Downloading...") {
		t.Errorf("Expected downloading status, got %q", w.Body.String())
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		w = e.do(t, http.MethodGet, "/resume/status", nil, cookies)
		if strings.TrimSpace(w.Body.String()) == "" {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("Expected status to return to idle, still %q", w.Body.String())
}

func TestAssets(t *testing.T) {
	e := newTestEnv(t)
	if err := os.Remove(filepath.Join(e.srv.cfg.AssetsDir, "letters", "prodigy.pdf")); err != nil {
		t.Fatalf("Failed to remove letter: %v", err)
	}

	if w := e.do(t, http.MethodGet, "/assets/resume", nil, nil); w.Code != http.StatusOK {
		t.Errorf("Expected resume download, got %d", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/assets/letters/cognifyz", nil, nil); w.Code != http.StatusOK {
		t.Errorf("Expected letter download, got %d", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/assets/letters/prodigy", nil, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected missing letter file to 404, got %d", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/assets/letters/nobody", nil, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected unknown letter to 404, got %d", w.Code)
	}

	stats, err := e.store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Failed to load stats: %v", err)
	}
	if stats.TotalDownloads != 2 {
		t.Errorf("Expected 2 recorded downloads, got %d", stats.TotalDownloads)
	}
}

func TestContact(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/contact", url.Values{
		"fullName": {"Ada"},
		"email":    {"ada@example.com"},
		"message":  {"Loved the portfolio"},
	}, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Thank you") {
		t.Fatalf("Expected success fragment, got %d %s", w.Code, w.Body.String())
	}

	msgs, err := e.store.ListMessages(context.Background())
	if err != nil {
		t.Fatalf("Failed to list messages: %v", err)
	}
	if len(msgs) != 1 || !msgs[0].Mailed {
		t.Errorf("Expected one mailed message, got %+v", msgs)
	}
	if len(e.mailer.sent) != 1 {
		t.Errorf("Expected one email, got %d", len(e.mailer.sent))
	}
}

func TestContactValidation(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/contact", url.Values{
		"fullName": {"Ada"},
		"email":    {"not-an-email"},
		"message":  {"hi"},
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestContactStoredWhenMailFails(t *testing.T) {
	e := newTestEnv(t)
	e.mailer.err = ErrMailerNotConfigured

	w := e.do(t, http.MethodPost, "/contact", url.Values{
		"fullName": {"Ada"},
		"email":    {"ada@example.com"},
		"message":  {"hi"},
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	msgs, _ := e.store.ListMessages(context.Background())
	if len(msgs) != 1 || msgs[0].Mailed {
		t.Errorf("Expected one unmailed message, got %+v", msgs)
	}
}

func TestAdmin(t *testing.T) {
	e := newTestEnv(t)

	if w := e.do(t, http.MethodGet, "/admin/dashboard", nil, nil); w.Code != http.StatusFound {
		t.Errorf("Expected redirect without token, got %d", w.Code)
	}

	w := e.do(t, http.MethodPost, "/admin/login", url.Values{"username": {"owner"}, "password": {"nope"}}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for bad password, got %d", w.Code)
	}

	w = e.do(t, http.MethodPost, "/admin/login", url.Values{"username": {"owner"}, "password": {"hunter2"}}, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("Expected redirect after login, got %d", w.Code)
	}
	cookies := w.Result().Cookies()

	w = e.do(t, http.MethodGet, "/admin/api/stats", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected stats, got %d", w.Code)
	}
	var stats store.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}

	if w := e.do(t, http.MethodGet, "/admin/dashboard", nil, cookies); w.Code != http.StatusOK {
		t.Errorf("Expected dashboard, got %d", w.Code)
	}
	if w := e.do(t, http.MethodDelete, "/admin/messages/42", nil, cookies); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 deleting missing message, got %d", w.Code)
	}
}

func TestVisitorTracking(t *testing.T) {
	e := newTestEnv(t)

	e.do(t, http.MethodGet, "/", nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	e.router.ServeHTTP(httptest.NewRecorder(), req)
	e.do(t, http.MethodGet, "/healthz", nil, nil)
	e.srv.tracking.Wait()

	visitors, err := e.store.RecentVisitors(context.Background(), 10)
	if err != nil {
		t.Fatalf("Failed to list visitors: %v", err)
	}
	if len(visitors) != 1 {
		t.Fatalf("Expected exactly one tracked visit, got %d", len(visitors))
	}
	if len(visitors[0].HashedIP) != 16 || strings.Contains(visitors[0].HashedIP, ".") {
		t.Errorf("Expected hashed IP, got %q", visitors[0].HashedIP)
	}
}

func TestConsoleSocket(t *testing.T) {
	e := newTestEnv(t)
	ts := httptest.NewServer(e.router)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/console/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(socketIn{Input: "resume"}); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var gotReply bool
	var statuses []string
	for !gotReply || len(statuses) < 3 {
		var msg socketOut
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Failed to read (reply=%v statuses=%v): %v", gotReply, statuses, err)
		}
		if msg.Download != nil {
			statuses = append(statuses, *msg.Download)
			continue
		}
		gotReply = true
		if msg.Effect == nil || msg.Effect.Download != "resume" {
			t.Errorf("Expected download effect, got %+v", msg.Effect)
		}
		if len(msg.Lines) != 2 || msg.Lines[0] != "$ resume" {
			t.Errorf("Unexpected lines: %v", msg.Lines)
		}
	}

	want := []string{string(download.StatusDownloading), string(download.StatusDownloaded), string(download.StatusIdle)}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("status %d: expected %q, got %q", i, want[i], statuses[i])
		}
	}
}

func TestVisitsExpire(t *testing.T) {
	vs := newVisits(time.Minute, download.Options{}, nil)
	vs.create()
	if n := vs.expire(time.Now().Add(2 * time.Minute)); n != 1 || vs.len() != 0 {
		t.Errorf("Expected idle visit to expire, removed %d, left %d", n, vs.len())
	}
}

func TestShippedAssetsServed(t *testing.T) {
	e := newTestEnvWithAssets(t, filepath.Join("..", "..", "assets"))

	for _, target := range []string{"/assets/resume", "/assets/letters/cognifyz", "/assets/letters/prodigy"} {
		w := e.do(t, http.MethodGet, target, nil, nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", target, w.Code)
			continue
		}
		if !strings.HasPrefix(w.Body.String(), "%PDF-") {
			t.Errorf("%s: expected a PDF body", target)
		}
	}
	if w := e.do(t, http.MethodGet, "/static/img/placeholder.svg", nil, nil); w.Code != http.StatusOK {
		t.Errorf("Expected project placeholder image, got %d", w.Code)
	}
}

func TestAssetHeadNotCounted(t *testing.T) {
	e := newTestEnv(t)

	if w := e.do(t, http.MethodHead, "/assets/resume", nil, nil); w.Code != http.StatusOK {
		t.Errorf("Expected HEAD on resume to succeed, got %d", w.Code)
	}
	if w := e.do(t, http.MethodHead, "/assets/letters/nobody", nil, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected HEAD on unknown letter to 404, got %d", w.Code)
	}

	stats, err := e.store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Failed to load stats: %v", err)
	}
	if stats.TotalDownloads != 0 {
		t.Errorf("Expected HEAD requests not to count as downloads, got %d", stats.TotalDownloads)
	}
}

func TestNewRejectsMissingAsset(t *testing.T) {
	assets := writeAssets(t, t.TempDir())
	if err := os.Remove(filepath.Join(assets, "resume.pdf")); err != nil {
		t.Fatalf("Failed to remove resume: %v", err)
	}
	p, err := content.Load()
	if err != nil {
		t.Fatalf("Failed to load content: %v", err)
	}

	_, err = New(testConfig(assets), p, nil, Options{Mailer: &fakeMailer{}})
	if err == nil {
		t.Fatal("Expected a missing resume to fail server start")
	}
	if !strings.Contains(err.Error(), "resume.pdf") {
		t.Errorf("Expected the error to name the missing file, got %v", err)
	}
}

func TestThemeToggle(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/theme", nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("HX-Trigger"); got != `{"theme":"dark"}` {
		t.Errorf("Expected dark theme trigger, got %q", got)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != themeCookie || cookies[0].Value != "dark" {
		t.Fatalf("Expected theme cookie, got %+v", cookies)
	}

	if body := e.do(t, http.MethodGet, "/", nil, cookies).Body.String(); !strings.Contains(body, `<html lang="en" class="dark">`) {
		t.Error("Expected the page to render dark")
	}
	if body := e.do(t, http.MethodGet, "/", nil, nil).Body.String(); strings.Contains(body, `class="dark"`) {
		t.Error("Expected the page to render light without the cookie")
	}

	w = e.do(t, http.MethodPost, "/theme", nil, cookies)
	if got := w.Header().Get("HX-Trigger"); got != `{"theme":"light"}` {
		t.Errorf("Expected toggling back to light, got %q", got)
	}
}

func TestIndexMobileMenu(t *testing.T) {
	e := newTestEnv(t)
	body := e.do(t, http.MethodGet, "/", nil, nil).Body.String()

	for _, want := range []string{`id="mobile-menu"`, `id="mobile-menu-toggle"`, "setMobileMenu(false)"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
	// every section is reachable from the mobile menu
	menu := body[strings.Index(body, `id="mobile-menu"`):]
	menu = menu[:strings.Index(menu, "</nav>")]
	for _, item := range navItems() {
		if !strings.Contains(menu, `data-nav="`+string(item.ID)+`"`) {
			t.Errorf("Expected mobile menu link to %s", item.ID)
		}
	}
}

func TestReadOnlyRoutesAllocateNoVisit(t *testing.T) {
	e := newTestEnv(t)

	for _, target := range []string{"/", "/resume/status", "/projects?tag=React"} {
		w := e.do(t, http.MethodGet, target, nil, nil)
		for _, c := range w.Result().Cookies() {
			if c.Name == visitCookie {
				t.Errorf("%s: expected no visit cookie", target)
			}
		}
	}
	e.do(t, http.MethodDelete, "/console", nil, nil)
	if n := e.srv.visits.len(); n != 0 {
		t.Errorf("Expected no visits from read-only routes, got %d", n)
	}

	e.do(t, http.MethodPost, "/console", url.Values{"command": {"help"}}, nil)
	if n := e.srv.visits.len(); n != 1 {
		t.Errorf("Expected the console to create one visit, got %d", n)
	}
}

func TestFragmentsNotTrackedAsPageViews(t *testing.T) {
	e := newTestEnv(t)

	e.do(t, http.MethodGet, "/projects?tag=React", nil, nil)
	e.do(t, http.MethodGet, "/projects/1", nil, nil)
	e.do(t, http.MethodGet, "/assets/resume", nil, nil)
	e.do(t, http.MethodPost, "/theme", nil, nil)
	e.srv.tracking.Wait()

	visitors, err := e.store.RecentVisitors(context.Background(), 10)
	if err != nil {
		t.Fatalf("Failed to list visitors: %v", err)
	}
	if len(visitors) != 0 {
		t.Errorf("Expected no page views from fragments, got %d", len(visitors))
	}
}
