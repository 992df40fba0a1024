package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/genomatch/genomatch/internal/models"
)

// mockLimiter is a no-op limiter for tests.
type mockLimiter struct{}

func (mockLimiter) Wait(_ context.Context) error { return nil }
func (mockLimiter) Allow() bool                  { return true }
func (mockLimiter) RetryAfter(int) time.Duration { return 0 }

func sampleContexts() []models.ExplanationContext {
	return []models.ExplanationContext{
		{GeneSymbol: "HFE", Condition: "Hereditary hemochromatosis", Genotype: "AA", Zygosity: models.ZygosityHomozygous},
		{GeneSymbol: "SERPINA1", Condition: "Alpha-1 antitrypsin deficiency", Genotype: "CT", Zygosity: models.ZygosityHeterozygous},
	}
}

func TestBuildPromptContainsOnlyExposedFields(t *testing.T) {
	prompt := BuildPrompt(sampleContexts())
	for _, want := range []string{"HFE", "Hereditary hemochromatosis", "AA", "Homozygous (2 copies)"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptEmptyFindings(t *testing.T) {
	prompt := BuildPrompt(nil)
	if !strings.Contains(prompt, "No confirmed pathogenic risks were found.") {
		t.Fatalf("expected empty-findings sentence, got %q", prompt)
	}
}

func TestExplain(t *testing.T) {
	var captured chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"You carry one copy."},"done":true}`))
	}))
	defer ts.Close()

	client := NewClient(mockLimiter{}, ts.URL, "llama3")
	answer, err := client.Explain(context.Background(), sampleContexts(), "Explain my results.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "You carry one copy." {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if captured.Model != "llama3" || captured.Stream {
		t.Fatalf("unexpected request: %+v", captured)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Content != "Explain my results." {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
	// Raw coordinates must never reach the model.
	if strings.Contains(captured.Messages[0].Content, "Position") {
		t.Fatalf("prompt leaked coordinates")
	}
}

func TestExplainServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(mockLimiter{}, ts.URL, "llama3")
	if _, err := client.Explain(context.Background(), nil, "hi"); err == nil {
		t.Fatalf("expected error on server failure")
	}
}
