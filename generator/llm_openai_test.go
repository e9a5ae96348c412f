package generator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAILLM {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	llm, err := NewOpenAILLMFromConfig(&LLMSettings{
		APIKey:       "test-key",
		BaseURL:      srv.URL + "/",
		PlannerModel: "gpt-4o-mini",
		VisionModel:  "gpt-4o-mini",
		ImageModel:   "gpt-image-1",
	}, nil)
	require.NoError(t, err)
	return llm
}

func chatResponse(content string) string {
	out, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	})
	return string(out)
}

func TestOpenAILLM_Complete(t *testing.T) {
	var body map[string]any
	llm := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, chatResponse(`{"screens":[]}`))
	})

	text, err := llm.Complete(context.Background(), BuildPlannerPrompt("Build a login screen"))

	require.NoError(t, err)
	assert.Equal(t, `{"screens":[]}`, text)
	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.InDelta(t, 0.2, body["temperature"], 1e-9)
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 2)
}

func TestOpenAILLM_NoRetryOnFailure(t *testing.T) {
	var calls atomic.Int32
	llm := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"upstream exploded","type":"server_error"}}`)
	})

	_, err := llm.Complete(context.Background(), Prompt{System: "s", User: "u"})

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAILLM_GenerateImages(t *testing.T) {
	png := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	var body map[string]any
	llm := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"created":1,"data":[{"b64_json":"`+png+`"},{"b64_json":"`+png+`"}]}`)
	})

	images, err := llm.GenerateImages(context.Background(), ImageRequest{Prompt: "draw", N: 2, Size: "1024x1024"})

	require.NoError(t, err)
	assert.Equal(t, []string{png, png}, images)
	assert.Equal(t, "gpt-image-1", body["model"])
	assert.EqualValues(t, 2, body["n"])
	assert.Equal(t, "1024x1024", body["size"])
	assert.NotContains(t, body, "response_format")
}

func TestOpenAILLM_GenerateImagesMissingPayload(t *testing.T) {
	llm := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"created":1,"data":[{"url":"https://example.com/a.png"}]}`)
	})

	_, err := llm.GenerateImages(context.Background(), ImageRequest{Prompt: "draw", N: 1, Size: "1024x1024"})

	assert.Error(t, err)
}

func TestOpenAILLM_Inspect(t *testing.T) {
	var body struct {
		Messages []struct {
			Role    string           `json:"role"`
			Content []map[string]any `json:"content"`
		} `json:"messages"`
	}
	llm := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, chatResponse("  Missing: Logo \n"))
	})

	report, err := llm.Inspect(context.Background(), VisionRequest{Text: "check", ImageBase64: "QUJD", Temperature: 0.2})

	require.NoError(t, err)
	assert.Equal(t, "Missing: Logo", report)
	require.Len(t, body.Messages, 1)
	assert.Equal(t, "user", body.Messages[0].Role)
	require.Len(t, body.Messages[0].Content, 2)
	assert.Equal(t, "text", body.Messages[0].Content[0]["type"])
	imageURL, ok := body.Messages[0].Content[1]["image_url"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,QUJD", imageURL["url"])
}

func TestNewOpenAILLMFromConfig_MissingKey(t *testing.T) {
	_, err := NewOpenAILLMFromConfig(&LLMSettings{PlannerModel: "a", VisionModel: "b", ImageModel: "c"}, nil)
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestHTTPPlaceholder_FetchesOnceAndCaches(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("placeholder"))
	}))
	defer srv.Close()

	p := NewHTTPPlaceholder(srv.URL, time.Second, nil)
	first, err := p.Fetch(context.Background())
	require.NoError(t, err)
	second, err := p.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("placeholder")), first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPPlaceholder_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPPlaceholder(srv.URL, time.Second, nil).Fetch(context.Background())

	assert.ErrorContains(t, err, "404")
}
