package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"claimcheck/internal/check"
	"claimcheck/internal/feedback"
	"claimcheck/internal/ledger"
	"claimcheck/internal/quota"
	"claimcheck/internal/search"
	"claimcheck/internal/store"
)

type stubSearcher struct {
	results []search.Result
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]search.Result, error) {
	return s.results, nil
}

type stubClassifier struct {
	raw string
}

func (s *stubClassifier) Classify(ctx context.Context, claim string, evidence []search.Result) (string, error) {
	return s.raw, nil
}

func newTestRouter(t *testing.T, raw string) (*gin.Engine, *ledger.Ledger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	tracker := quota.NewTracker(fs, 20)
	led := ledger.New(fs)
	fb := feedback.NewLog(fs)
	checker := check.NewService(
		&stubSearcher{results: []search.Result{{Title: "Source", Link: "https://example.com", Snippet: "snippet"}}},
		&stubClassifier{raw: raw},
		tracker,
		led,
	)

	server, err := NewServer(Config{
		TemplateGlob: filepath.Join("..", "..", "web", "templates", "*.html"),
	}, checker, fb, led)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	router, err := server.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return router, led
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestIndexPage(t *testing.T) {
	router, _ := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `action="/check"`) {
		t.Fatalf("index page missing claim form: %s", w.Body.String())
	}
}

func TestCheckRendersVerdict(t *testing.T) {
	router, led := newTestRouter(t, "Classification: Factual\nExplanation: Confirmed by multiple outlets.")

	w := postForm(router, "/check", url.Values{"statement": {"water is wet"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Factual") {
		t.Fatalf("result page missing verdict: %s", body)
	}
	if !strings.Contains(body, "Confirmed by multiple outlets.") {
		t.Fatalf("result page missing explanation: %s", body)
	}
	if !strings.Contains(body, "https://example.com") {
		t.Fatalf("result page missing source link: %s", body)
	}
	if !strings.Contains(body, "1 / 20") {
		t.Fatalf("result page missing usage counter: %s", body)
	}

	snapshot, err := led.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	total := 0
	for _, day := range snapshot {
		total += day["Factual"]
	}
	if total != 1 {
		t.Fatalf("expected one recorded verdict, got %v", snapshot)
	}
}

func TestCheckOversizedStatement(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := postForm(router, "/check", url.Values{"statement": {strings.Repeat("x", 501)}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Input too long") {
		t.Fatalf("expected Input too long verdict: %s", w.Body.String())
	}
}

func TestFeedbackThankYou(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := postForm(router, "/feedback", url.Values{
		"liked":      {"clear verdicts"},
		"disliked":   {""},
		"suggestion": {"show more sources"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Thank you") {
		t.Fatalf("expected thank-you page: %s", w.Body.String())
	}
}

func TestAdminStats(t *testing.T) {
	router, led := newTestRouter(t, "")

	if err := led.Increment("Factual"); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Factual") {
		t.Fatalf("stats page missing verdict: %s", w.Body.String())
	}
}
