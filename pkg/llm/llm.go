package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the
// summarizer and translator. It hides concrete providers.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
