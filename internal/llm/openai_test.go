package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etesami/chatterlit/internal/chat"
)

func TestGenerateText(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"choices":[{"message":{"content":"hi there"}}]}`)
	}))
	defer srv.Close()

	p := newOpenAICompatible("test-key", srv.URL, time.Second)
	msgs := []chat.Message{chat.NewMessage(chat.RoleUser, chat.TextBlock("hello"))}

	reply, err := p.GenerateText(context.Background(), msgs, "gpt-4o")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("reply mismatch: %q", reply)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("wrong path: %s", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("wrong auth header: %s", gotAuth)
	}

	var req oaiChatRequest
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}
	if req.Model != "gpt-4o" || len(req.Messages) != 1 {
		t.Errorf("request mismatch: %+v", req)
	}
}

func TestGenerateTextHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `upstream down`)
	}))
	defer srv.Close()

	p := newOpenAICompatible("test-key", srv.URL, time.Second)
	_, err := p.GenerateText(context.Background(), nil, "gpt-4o")

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Model != "gpt-4o" {
		t.Errorf("error should carry the model, got %q", genErr.Model)
	}
	if !strings.Contains(genErr.Error(), "status 502") {
		t.Errorf("provider status should be preserved: %v", genErr)
	}
}

func TestGenerateTextAPIErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"error":{"message":"model overloaded"}}`)
	}))
	defer srv.Close()

	p := newOpenAICompatible("test-key", srv.URL, time.Second)
	_, err := p.GenerateText(context.Background(), nil, "gpt-4o")

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !strings.Contains(genErr.Error(), "model overloaded") {
		t.Errorf("provider message should be preserved: %v", genErr)
	}
}

func TestGenerateTextNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	p := newOpenAICompatible("test-key", srv.URL, time.Second)
	if _, err := p.GenerateText(context.Background(), nil, "gpt-4o"); err == nil {
		t.Fatal("expected an error for an empty choice list")
	}
}

func TestGenerateImage(t *testing.T) {
	raw := []byte("fake png bytes")
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		resp := map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(raw)}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := newOpenAICompatible("test-key", srv.URL, time.Second)
	img, err := p.GenerateImage(context.Background(), "a lighthouse at dusk", "gpt-image-1", "1024x1024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(img) != string(raw) {
		t.Errorf("image bytes do not round-trip: %q", img)
	}

	var req oaiImageRequest
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}
	if req.Prompt != "a lighthouse at dusk" || req.N != 1 || req.Size != "1024x1024" {
		t.Errorf("request mismatch: %+v", req)
	}
}

func TestGenerateImageFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newOpenAICompatible("test-key", srv.URL, time.Second)
	_, err := p.GenerateImage(context.Background(), "prompt", "gpt-image-1", "1024x1024")

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
}

func TestConvertMessages(t *testing.T) {
	msgs := []chat.Message{
		chat.NewMessage(chat.RoleUser,
			chat.TextBlock("look at this"),
			chat.ImageBlock("image/jpeg", "c29tZWJ5dGVz")),
		chat.NewMessage(chat.RoleAssistant, chat.TextBlock("nice photo")),
	}

	out := convertMessages(msgs)
	if len(out) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(out))
	}

	parts, ok := out[0].Content.([]oaiPart)
	if !ok {
		t.Fatalf("user content should be structured parts, got %T", out[0].Content)
	}
	if len(parts) != 2 || parts[0].Type != "text" || parts[1].Type != "image_url" {
		t.Errorf("user parts mismatch: %+v", parts)
	}
	if parts[1].ImageURL.URL != "data:image/jpeg;base64,c29tZWJ5dGVz" {
		t.Errorf("image data URL mismatch: %s", parts[1].ImageURL.URL)
	}

	text, ok := out[1].Content.(string)
	if !ok || text != "nice photo" {
		t.Errorf("assistant content should be plain text, got %#v", out[1].Content)
	}
}

func TestConvertMessagesImageReplyPlaceholder(t *testing.T) {
	asst := chat.NewMessage(chat.RoleAssistant, chat.ImageBlock("image/png", "aGVsbG8="))
	asst.IsImage = true

	out := convertMessages([]chat.Message{asst})
	if len(out) != 1 {
		t.Fatalf("expected 1 message, got %d", len(out))
	}
	if out[0].Content != "[generated image]" {
		t.Errorf("generated images must be sent as a placeholder, got %#v", out[0].Content)
	}
}
