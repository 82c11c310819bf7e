package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func TestGeminiGenerate_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/gemini-test:generateContent" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Fatalf("missing api key")
		}
		var payload geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.GenerationConfig.ResponseMimeType != "application/json" {
			t.Fatalf("expected json mime type, got %q", payload.GenerationConfig.ResponseMimeType)
		}
		if payload.Contents[0].Parts[0].Text != "hello" {
			t.Fatalf("prompt not forwarded")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": `{"ok":true}`}}}},
			},
		})
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.GeminiConfig{APIKey: "test-key", Model: "gemini-test", BaseURL: ts.URL})
	out, err := client.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestGeminiGenerate_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"quota"}`))
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.GeminiConfig{APIKey: "k", BaseURL: ts.URL})
	_, err := client.Generate(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestGroqGenerate_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Model != "llama-test" || payload.Messages[0].Content != "prompt" {
			t.Fatalf("unexpected payload %+v", payload)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{{"message": map[string]string{"content": "```json\n{\"a\":1}\n```"}}},
		})
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL, Model: "llama-test"})
	out, err := client.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	decoded, err := DecodeJSON(out)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded["a"] != float64(1) {
		t.Fatalf("unexpected decoded %v", decoded)
	}
}

func TestGenerate_RequiresKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := NewGroqClient(nil).Generate(context.Background(), "x"); err == nil {
		t.Fatal("expected error without groq key")
	}
	if _, err := NewGeminiClient(nil).Generate(context.Background(), "x"); err == nil {
		t.Fatal("expected error without gemini key")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range cases {
		if got := ExtractJSON(in); got != want {
			t.Errorf("ExtractJSON(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := DecodeJSON("not json"); err == nil {
		t.Fatal("expected decode error")
	}
}
