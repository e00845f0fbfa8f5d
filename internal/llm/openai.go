package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/etesami/chatterlit/internal/chat"
)

// openaiCompatible speaks the OpenAI wire format and covers the grok, gemini
// and default routes; only the base URL and credential differ.
type openaiCompatible struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type oaiImageURL struct {
	URL string `json:"url"`
}

type oaiPart struct {
	Type     string       `json:"type"`
	Text     string       `json:"text,omitempty"`
	ImageURL *oaiImageURL `json:"image_url,omitempty"`
}

type oaiMessage struct {
	Role string `json:"role"`
	// string for assistant turns, []oaiPart for user turns
	Content any `json:"content"`
}

type oaiChatRequest struct {
	Model    string       `json:"model"`
	Messages []oaiMessage `json:"messages"`
}

type oaiChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type oaiImageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type oaiImageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func newOpenAICompatible(apiKey, baseURL string, timeout time.Duration) *openaiCompatible {
	return &openaiCompatible{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (o *openaiCompatible) GenerateText(ctx context.Context, messages []chat.Message, model string) (string, error) {
	reqBody := oaiChatRequest{
		Model:    model,
		Messages: convertMessages(messages),
	}

	body, err := o.post(ctx, "/chat/completions", reqBody)
	if err != nil {
		return "", &GenerationError{Model: model, Err: err}
	}

	var oaiResp oaiChatResponse
	if err := json.Unmarshal(body, &oaiResp); err != nil {
		return "", &GenerationError{Model: model, Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if oaiResp.Error != nil {
		return "", &GenerationError{Model: model, Err: fmt.Errorf("api error: %s", oaiResp.Error.Message)}
	}

	if len(oaiResp.Choices) == 0 {
		return "", &GenerationError{Model: model, Err: fmt.Errorf("no choices in response")}
	}

	return oaiResp.Choices[0].Message.Content, nil
}

func (o *openaiCompatible) GenerateImage(ctx context.Context, prompt, model, size string) ([]byte, error) {
	reqBody := oaiImageRequest{
		Model:  model,
		Prompt: prompt,
		N:      1,
		Size:   size,
	}

	body, err := o.post(ctx, "/images/generations", reqBody)
	if err != nil {
		return nil, &GenerationError{Model: model, Err: err}
	}

	var imgResp oaiImageResponse
	if err := json.Unmarshal(body, &imgResp); err != nil {
		return nil, &GenerationError{Model: model, Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if imgResp.Error != nil {
		return nil, &GenerationError{Model: model, Err: fmt.Errorf("api error: %s", imgResp.Error.Message)}
	}

	if len(imgResp.Data) == 0 {
		return nil, &GenerationError{Model: model, Err: fmt.Errorf("no image in response")}
	}

	img, err := base64.StdEncoding.DecodeString(imgResp.Data[0].B64JSON)
	if err != nil {
		return nil, &GenerationError{Model: model, Err: fmt.Errorf("decode image: %w", err)}
	}

	return img, nil
}

func (o *openaiCompatible) post(ctx context.Context, path string, reqBody any) ([]byte, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// convertMessages normalizes the session history into the OpenAI shape. User
// turns keep their multimodal parts; assistant turns collapse to plain text,
// with generated images replaced by a placeholder since image bytes cannot be
// resent as assistant content.
func convertMessages(messages []chat.Message) []oaiMessage {
	out := make([]oaiMessage, 0, len(messages))

	for _, msg := range messages {
		if msg.Role == chat.RoleAssistant {
			text := msg.Text()
			if msg.IsImage {
				text = "[generated image]"
			}
			out = append(out, oaiMessage{Role: "assistant", Content: text})
			continue
		}

		parts := make([]oaiPart, 0, len(msg.Content))
		for _, b := range msg.Content {
			switch b.Type {
			case chat.BlockText:
				parts = append(parts, oaiPart{Type: "text", Text: b.Text})
			case chat.BlockImage:
				parts = append(parts, oaiPart{
					Type:     "image_url",
					ImageURL: &oaiImageURL{URL: "data:" + b.MimeType + ";base64," + b.Base64Data},
				})
			}
		}
		out = append(out, oaiMessage{Role: string(msg.Role), Content: parts})
	}

	return out
}
