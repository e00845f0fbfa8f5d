package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/etesami/chatterlit/internal/chat"
)

const maxRetries = 3
const baseDelay = 2 * time.Second

const claudeMaxTokens = 4096

type claudeProvider struct {
	client  anthropic.Client
	timeout time.Duration
}

func newClaude(apiKey string, timeout time.Duration) *claudeProvider {
	return &claudeProvider{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		timeout: timeout,
	}
}

func (c *claudeProvider) GenerateText(ctx context.Context, messages []chat.Message, model string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: claudeMaxTokens,
		Messages:  convertToAnthropic(messages),
	}

	var resp *anthropic.Message
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err = c.client.Messages.New(ctx, params)
		if err == nil {
			break
		}
		if !isRetryableError(err) {
			return "", &GenerationError{Model: model, Err: err}
		}
		if attempt < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<attempt)
			time.Sleep(delay)
		}
	}
	if err != nil {
		return "", &GenerationError{Model: model, Err: err}
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", &GenerationError{Model: model, Err: fmt.Errorf("no text block in response")}
}

func (c *claudeProvider) GenerateImage(ctx context.Context, prompt, model, size string) ([]byte, error) {
	return nil, &GenerationError{Model: model, Err: errors.New("image generation is not available on this backend")}
}

func isRetryableError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "529") ||
		strings.Contains(errStr, "overloaded") ||
		strings.Contains(errStr, "Overloaded") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "502")
}

func convertToAnthropic(messages []chat.Message) []anthropic.MessageParam {
	var result []anthropic.MessageParam

	for _, msg := range messages {
		if msg.Role == chat.RoleAssistant {
			text := msg.Text()
			if msg.IsImage {
				text = "[generated image]"
			}
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)))
			continue
		}

		var blocks []anthropic.ContentBlockParamUnion
		for _, b := range msg.Content {
			switch b.Type {
			case chat.BlockText:
				blocks = append(blocks, anthropic.NewTextBlock(b.Text))
			case chat.BlockImage:
				blocks = append(blocks, anthropic.NewImageBlockBase64(b.MimeType, b.Base64Data))
			}
		}

		if len(blocks) > 0 {
			result = append(result, anthropic.NewUserMessage(blocks...))
		}
	}

	return result
}
