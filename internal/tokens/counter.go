// Package tokens estimates per-message token cost. Counts are approximate but
// deterministic: the same message and model always yield the same number.
package tokens

import (
	"strings"

	"github.com/etesami/chatterlit/internal/chat"
)

// Profile approximates one tokenizer family as a blend of word and character
// counts.
type Profile struct {
	CharsPerToken int
}

// baseline covers any model the counter does not recognize. An unknown model
// is not an error; it degrades to an approximate count.
var baseline = Profile{CharsPerToken: 4}

// longest matching prefix wins
var profiles = map[string]Profile{
	"gpt":    {CharsPerToken: 4},
	"o3":     {CharsPerToken: 4},
	"o4":     {CharsPerToken: 4},
	"claude": {CharsPerToken: 3},
	"gemini": {CharsPerToken: 4},
	"grok":   {CharsPerToken: 4},
}

// ProfileFor selects the tokenizer profile for a model name.
func ProfileFor(model string) Profile {
	best := ""
	for prefix := range profiles {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return baseline
	}
	return profiles[best]
}

func (p Profile) estimate(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	chars := len(text)
	return (words + chars/p.CharsPerToken) / 2
}

// Count estimates the token cost of one message. Only text blocks contribute;
// image blocks count as zero.
func Count(msg chat.Message, model string) int {
	p := ProfileFor(model)

	total := 0
	for _, b := range msg.Content {
		if b.Type == chat.BlockText {
			total += p.estimate(b.Text)
		}
	}
	return total
}

// Running returns per-message counts in display order plus the running total
// as a left-to-right prefix sum.
func Running(msgs []chat.Message, model string) ([]int, int) {
	counts := make([]int, len(msgs))
	total := 0
	for i, msg := range msgs {
		counts[i] = Count(msg, model)
		total += counts[i]
	}
	return counts, total
}
