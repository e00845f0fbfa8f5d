// Package content normalizes raw uploaded bytes into message content blocks.
package content

import (
	"encoding/base64"
	"strings"

	"github.com/etesami/chatterlit/internal/chat"
)

// Attachment is an already-read uploaded file. The core does no disk I/O; the
// caller hands over name, declared mime type and bytes.
type Attachment struct {
	Name     string
	MimeType string
	Data     []byte
}

// EncodeImage wraps raw image bytes as a base64 image block.
func EncodeImage(data []byte, mimeType string) chat.ContentBlock {
	return chat.ImageBlock(mimeType, base64.StdEncoding.EncodeToString(data))
}

// DecodeTextFile decodes bytes as UTF-8, replacing invalid sequences instead
// of failing.
func DecodeTextFile(data []byte) chat.ContentBlock {
	return chat.TextBlock(strings.ToValidUTF8(string(data), "�"))
}

// ProcessAttachments converts uploads into content blocks. Images become image
// blocks, .txt files become text blocks, anything else is skipped. Skipping is
// a permissive policy, not a validation failure.
func ProcessAttachments(files []Attachment) []chat.ContentBlock {
	var blocks []chat.ContentBlock

	for _, f := range files {
		switch {
		case strings.HasPrefix(f.MimeType, "image/"):
			blocks = append(blocks, EncodeImage(f.Data, f.MimeType))
		case strings.HasSuffix(strings.ToLower(f.Name), ".txt"):
			blocks = append(blocks, DecodeTextFile(f.Data))
		}
	}

	return blocks
}
