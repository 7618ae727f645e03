package insights

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func compareRequest(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.POST("/compare", NewHandler(nil).Compare)

	req := httptest.NewRequest(http.MethodPost, "/compare", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCompareWithoutCoachAnswersNotImplemented(t *testing.T) {
	rec := compareRequest(t, `{"transcript":"Agent: hello"}`)
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501 when analysis backend is disabled, got %d", rec.Code)
	}
}

func TestBuildComparePromptPrefersTranscript(t *testing.T) {
	prompt := buildComparePrompt("human text", "ai text", "Agent: hello\nCaller: hi")
	if !strings.HasPrefix(prompt, "Transcript:\nAgent: hello") {
		t.Fatalf("expected transcript prompt, got %q", prompt)
	}
	if strings.Contains(prompt, "human text") {
		t.Fatalf("expected transcript to override the response pair, got %q", prompt)
	}
}

func TestBuildComparePromptPairsResponses(t *testing.T) {
	prompt := buildComparePrompt("be patient", "I understand", "")
	if prompt != "Human: be patient\nAI: I understand" {
		t.Fatalf("unexpected prompt %q", prompt)
	}
}
