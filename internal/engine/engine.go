// Package engine orchestrates one conversation turn: compose the prompt,
// build content blocks, append the user turn, dispatch to the resolved
// provider and append the assistant turn.
package engine

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/etesami/chatterlit/internal/archive"
	"github.com/etesami/chatterlit/internal/catalog"
	"github.com/etesami/chatterlit/internal/chat"
	"github.com/etesami/chatterlit/internal/content"
	"github.com/etesami/chatterlit/internal/llm"
	"github.com/etesami/chatterlit/internal/logger"
	"github.com/etesami/chatterlit/internal/prompt"
	"github.com/etesami/chatterlit/internal/tokens"
)

// ErrBusy means a turn is already in flight for the session.
var ErrBusy = errors.New("a turn is already in flight for this session")

// ValidationError is a locally recoverable input problem; no state is mutated.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Resolver maps a model name to a provider backend.
type Resolver interface {
	Resolve(model string) (llm.Provider, error)
}

type Engine struct {
	sessions  *chat.Store
	router    Resolver
	catalog   *catalog.Catalog
	archive   *archive.Store // optional
	imageSize string
}

type Option func(*Engine)

// WithArchive enables best-effort archiving of generated images.
func WithArchive(store *archive.Store) Option {
	return func(e *Engine) { e.archive = store }
}

// WithImageSize overrides the generated-image size.
func WithImageSize(size string) Option {
	return func(e *Engine) { e.imageSize = size }
}

func New(sessions *chat.Store, router Resolver, cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		sessions:  sessions,
		router:    router,
		catalog:   cat,
		imageSize: "1024x1024",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TurnRequest is one user input with its options.
type TurnRequest struct {
	SessionID      string
	Input          string
	Attachments    []content.Attachment
	Modifiers      prompt.Set
	Model          string
	IncludeHistory bool
}

// ProcessTurn runs a full turn against the named session and returns the
// appended assistant message. On any resolution or generation failure the
// user message stays persisted, no assistant message is fabricated and the
// typed error is returned to the caller.
func (e *Engine) ProcessTurn(ctx context.Context, req TurnRequest) (chat.Message, error) {
	if strings.TrimSpace(req.Input) == "" {
		return chat.Message{}, &ValidationError{Reason: "empty turn"}
	}

	sess, err := e.sessions.Get(req.SessionID)
	if err != nil {
		return chat.Message{}, err
	}

	// one turn per session at a time
	if !sess.TryAcquire() {
		return chat.Message{}, ErrBusy
	}
	defer sess.Release()

	text := prompt.Compose(req.Input, req.Modifiers)
	blocks := append([]chat.ContentBlock{chat.TextBlock(text)}, content.ProcessAttachments(req.Attachments)...)

	user := chat.NewMessage(chat.RoleUser, blocks...)
	sess.Append(&user)
	logger.Debug("user turn appended", "session", sess.ID(), "seq", user.Seq, "blocks", len(blocks))

	provider, err := e.router.Resolve(req.Model)
	if err != nil {
		return chat.Message{}, err
	}

	if e.catalog.IsImageCapable(req.Model) {
		return e.dispatchImage(ctx, provider, sess, user, req.Model)
	}
	return e.dispatchText(ctx, provider, sess, req)
}

func (e *Engine) dispatchText(ctx context.Context, provider llm.Provider, sess *chat.Session, req TurnRequest) (chat.Message, error) {
	history := sess.Messages()
	if !req.IncludeHistory {
		// send only the turn just appended
		history = history[len(history)-1:]
	}

	reply, err := provider.GenerateText(ctx, history, req.Model)
	if err != nil {
		logger.Warn("text generation failed", "session", sess.ID(), "model", req.Model, "error", err)
		return chat.Message{}, err
	}

	asst := chat.NewMessage(chat.RoleAssistant, chat.TextBlock(reply))
	sess.Append(&asst)
	logger.Debug("assistant turn appended", "session", sess.ID(), "seq", asst.Seq)

	return asst, nil
}

func (e *Engine) dispatchImage(ctx context.Context, provider llm.Provider, sess *chat.Session, user chat.Message, model string) (chat.Message, error) {
	img, err := provider.GenerateImage(ctx, user.Text(), model, e.imageSize)
	if err != nil {
		logger.Warn("image generation failed", "session", sess.ID(), "model", model, "error", err)
		return chat.Message{}, err
	}

	asst := chat.NewMessage(chat.RoleAssistant, chat.ImageBlock("image/png", base64.StdEncoding.EncodeToString(img)))
	asst.IsImage = true
	sess.Append(&asst)

	if e.archive != nil {
		if name, err := e.archive.SaveImage(ctx, sess.ID(), img); err != nil {
			logger.Warn("image archive failed", "session", sess.ID(), "error", err)
		} else {
			logger.Debug("image archived", "object", name)
		}
	}

	return asst, nil
}

// NewSession creates a session and returns its id.
func (e *Engine) NewSession() string {
	return e.sessions.Create().ID()
}

// Switch makes the named session active and returns its history.
func (e *Engine) Switch(id string) ([]chat.Message, error) {
	return e.sessions.SwitchActive(id)
}

// ActiveSession returns the active session id, creating the first session on
// demand.
func (e *Engine) ActiveSession() string {
	return e.sessions.Active().ID()
}

// Sessions lists session ids, most recent first.
func (e *Engine) Sessions() []string {
	return e.sessions.List()
}

// History returns the ordered message sequence of a session.
func (e *Engine) History(id string) ([]chat.Message, error) {
	sess, err := e.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return sess.Messages(), nil
}

// HistoryWithTokens returns the message sequence alongside per-message token
// counts and the running total for the given model.
func (e *Engine) HistoryWithTokens(id, model string) ([]chat.Message, []int, int, error) {
	msgs, err := e.History(id)
	if err != nil {
		return nil, nil, 0, err
	}
	counts, total := tokens.Running(msgs, model)
	return msgs, counts, total, nil
}

// Generating reports whether a turn is in flight for the session. Unknown
// sessions report false.
func (e *Engine) Generating(id string) bool {
	sess, err := e.sessions.Get(id)
	if err != nil {
		return false
	}
	return sess.Generating()
}

// Describe returns a one-line preview for a session id, for listings.
func (e *Engine) Describe(id string) string {
	sess, err := e.sessions.Get(id)
	if err != nil {
		return id
	}

	msgs := sess.Messages()
	if len(msgs) == 0 {
		return fmt.Sprintf("%s (empty)", id)
	}
	return fmt.Sprintf("%s: %s", id, chat.Truncate(msgs[0].Text(), 60))
}
