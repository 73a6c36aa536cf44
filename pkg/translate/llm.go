package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/artem13815/newsdash/pkg/llm"
)

// LLM translates through a chat model. Used when no Google key is configured.
type LLM struct {
	model llm.ChatModel
}

func NewLLM(model llm.ChatModel) *LLM {
	return &LLM{model: model}
}

func (t *LLM) Translate(ctx context.Context, text, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	name := LanguageName(target)
	if name == "" {
		return "", fmt.Errorf("unsupported target language %q", target)
	}
	system := fmt.Sprintf("You are a professional translator. Translate the user's text into %s. Keep names, numbers and URLs unchanged. Reply with the translation only.", name)
	answer, err := t.model.Ask(ctx, system, text)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", errors.New("model returned an empty translation")
	}
	return answer, nil
}
