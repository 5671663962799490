package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certportal/verification/client"
	"github.com/certportal/verification/dto"
)

func newGroqStub(t *testing.T, reply string, capture *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": reply}},
			},
		})
	}))
}

func longExtractedText() string {
	return strings.Repeat("Income certificate issued by the Tehsildar office. ", 5)
}

func TestNarrative(t *testing.T) {
	var captured map[string]any
	server := newGroqStub(t, "  Fields match. Eligible.  ", &captured)
	defer server.Close()

	groq := client.NewGroqClient("test-key", "llama-3.3-70b-versatile", server.URL, 5*time.Second)
	svc := NewCrossCheckService(groq, testLogger())

	narrative, err := svc.Narrative(context.Background(), seniorApplication(), registeredCitizen(), longExtractedText(), "check the address")
	require.NoError(t, err)
	assert.Equal(t, "Fields match. Eligible.", narrative)

	assert.Equal(t, "llama-3.3-70b-versatile", captured["model"])
	messages := captured["messages"].([]any)
	require.Len(t, messages, 2)
	user := messages[1].(map[string]any)["content"].(string)
	assert.Contains(t, user, "Ramesh Kumar")
	assert.Contains(t, user, "Admin question: check the address")
	assert.Contains(t, user, `"Eligible" or "Not Eligible"`)
}

func TestNarrativeSkipsShortText(t *testing.T) {
	groq := client.NewGroqClient("test-key", "m", "http://localhost:0", time.Second)
	svc := NewCrossCheckService(groq, testLogger())

	_, err := svc.Narrative(context.Background(), seniorApplication(), registeredCitizen(), "too short", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "too short for cross-check")
}

func TestNarrativeDisabledWithoutKey(t *testing.T) {
	groq := client.NewGroqClient("", "m", "http://localhost:0", time.Second)
	svc := NewCrossCheckService(groq, testLogger())

	_, err := svc.Narrative(context.Background(), seniorApplication(), registeredCitizen(), longExtractedText(), "")
	assert.Error(t, err)
}

func TestNarrativeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	groq := client.NewGroqClient("test-key", "m", server.URL, 5*time.Second)
	svc := NewCrossCheckService(groq, testLogger())

	_, err := svc.Narrative(context.Background(), seniorApplication(), registeredCitizen(), longExtractedText(), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestBuildPromptOmitsEmptyQuery(t *testing.T) {
	svc := NewCrossCheckService(client.NewGroqClient("k", "m", "u", time.Second), testLogger())

	prompt := svc.buildPrompt(seniorApplication(), registeredCitizen(), "doc text", "  ")
	assert.NotContains(t, prompt, "Admin question")

	citizen := &dto.Citizen{FirstName: "A", LastName: "B"}
	prompt = svc.buildPrompt(seniorApplication(), citizen, "doc text", "is this valid?")
	assert.Contains(t, prompt, "Admin question: is this valid?")
}
