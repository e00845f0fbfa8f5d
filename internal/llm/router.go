// Package llm routes model names to provider backends and exposes a uniform
// generate capability over them.
package llm

import (
	"os"
	"strings"
	"time"
)

type route struct {
	prefix  string
	envVar  string
	baseURL string
}

// Prioritized: first matching prefix wins. Anything unmatched falls through to
// the OpenAI default route.
var routes = []route{
	{prefix: "grok", envVar: "GROK_API_KEY", baseURL: "https://api.x.ai/v1"},
	{prefix: "gemini", envVar: "GEMINI_API_KEY", baseURL: "https://generativelanguage.googleapis.com/v1beta/openai/"},
	{prefix: "claude", envVar: "ANTHROPIC_API_KEY"},
}

const (
	defaultEnvVar  = "OPENAI_API_KEY"
	defaultBaseURL = "https://api.openai.com/v1"
)

type Router struct {
	timeout time.Duration
}

func NewRouter(timeout time.Duration) *Router {
	return &Router{timeout: timeout}
}

// Resolve picks the backend for a model name. The credential is checked here,
// before any request is attempted; resolution is per request and never cached
// across models.
func (r *Router) Resolve(model string) (Provider, error) {
	for _, rt := range routes {
		if !strings.HasPrefix(model, rt.prefix) {
			continue
		}

		key := os.Getenv(rt.envVar)
		if key == "" {
			return nil, &MissingCredentialError{EnvVar: rt.envVar}
		}

		if rt.prefix == "claude" {
			return newClaude(key, r.timeout), nil
		}
		return newOpenAICompatible(key, rt.baseURL, r.timeout), nil
	}

	key := os.Getenv(defaultEnvVar)
	if key == "" {
		return nil, &MissingCredentialError{EnvVar: defaultEnvVar}
	}
	return newOpenAICompatible(key, defaultBaseURL, r.timeout), nil
}
