package llm

import (
	"context"
	"fmt"

	"github.com/etesami/chatterlit/internal/chat"
)

// Provider is one resolved backend. Both calls are the only I/O in the core;
// each runs under the router's bounded timeout.
type Provider interface {
	// GenerateText sends the structured message sequence to the backend's
	// chat-completion capability and returns the assistant reply text.
	GenerateText(ctx context.Context, messages []chat.Message, model string) (string, error)

	// GenerateImage sends a single text prompt to the backend's
	// image-generation capability and returns decoded raw image bytes.
	GenerateImage(ctx context.Context, prompt, model, size string) ([]byte, error)
}

// MissingCredentialError means the env var holding a provider credential is
// unset. It is raised before any network call and is fatal to the turn.
type MissingCredentialError struct {
	EnvVar string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s not set", e.EnvVar)
}

// GenerationError wraps a transport or provider failure.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for %s: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
