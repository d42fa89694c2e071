package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected api key in query, got %q", r.URL.Query().Get("key"))
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "trồng cây gì bây giờ?" {
			t.Errorf("unexpected request body: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "Trồng "}, {"text": "xoài."}]}}]}`))
	}))
	defer server.Close()

	client := NewGemini("test-key")
	client.BaseURL = server.URL

	text, err := client.Generate(context.Background(), "trồng cây gì bây giờ?")
	require.NoError(t, err)
	assert.Equal(t, "Trồng xoài.", text)
}

func TestGeminiClient_ErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 400, "message": "API key not valid"}}`))
	}))
	defer server.Close()

	client := NewGemini("bad-key")
	client.BaseURL = server.URL

	_, err := client.Generate(context.Background(), "xin chào")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGeminiClient_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := NewGemini("test-key")
	client.BaseURL = server.URL

	_, err := client.Generate(context.Background(), "xin chào")
	assert.Error(t, err)
}

func TestGeminiClient_Unreachable(t *testing.T) {
	client := NewGemini("test-key")
	client.BaseURL = "http://invalid-url-that-does-not-exist"

	_, err := client.Generate(context.Background(), "xin chào")
	assert.Error(t, err)
}
