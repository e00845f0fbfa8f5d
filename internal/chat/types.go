package chat

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type BlockType string

const (
	BlockText  BlockType = "text"
	BlockImage BlockType = "image"
)

// ContentBlock is one typed unit of message content: either prompt/attachment
// text or a base64-encoded image reference.
type ContentBlock struct {
	Type       BlockType
	Text       string
	MimeType   string
	Base64Data string
}

func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockText, Text: text}
}

func ImageBlock(mimeType, base64Data string) ContentBlock {
	return ContentBlock{Type: BlockImage, MimeType: mimeType, Base64Data: base64Data}
}

// Message is one turn half. Seq is the explicit position within the session,
// assigned on append, so display pairing never depends on index parity.
// IsImage marks assistant replies whose content is a generated image.
type Message struct {
	ID        string
	Seq       int
	Role      Role
	Content   []ContentBlock
	IsImage   bool
	CreatedAt time.Time
}

// NewMessage builds an unappended message with a fresh ID.
func NewMessage(role Role, blocks ...ContentBlock) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: blocks,
	}
}

// Text returns the first text block's content, or "" if there is none.
func (m Message) Text() string {
	for _, b := range m.Content {
		if b.Type == BlockText {
			return b.Text
		}
	}
	return ""
}

// Truncate shortens text for session previews and log lines.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
