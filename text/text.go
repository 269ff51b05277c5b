package text

import (
	"context"
	"errors"
	"strings"
)

var ErrNoMessages = errors.New("no messages to send")

type (
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	// Options tune a single completion. Zero values leave the provider's
	// defaults alone.
	Options struct {
		Temperature float32
		TopP        float32
		Seed        int64
	}

	// Connector sends a conversation to a language model and returns its
	// reply.
	Connector interface {
		Invoke(ctx context.Context, messages []Message, opts Options) (string, error)
	}
)

func System(content string) Message {
	return Message{Role: "system", Content: content}
}

func User(content string) Message {
	return Message{Role: "user", Content: content}
}

// SplitSystem separates system messages from the conversation. Several
// system messages are joined with a blank line.
func SplitSystem(messages []Message) (string, []Message) {
	var system []string
	var rest []Message
	for _, msg := range messages {
		if msg.Role == "system" {
			system = append(system, msg.Content)
			continue
		}
		rest = append(rest, msg)
	}
	return strings.Join(system, "\n\n"), rest
}
