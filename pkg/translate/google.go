package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/artem13815/newsdash/pkg/upstream"
)

const googleBaseURL = "https://translation.googleapis.com/language/translate/v2"

// Google calls the Cloud Translation v2 REST API with an API key.
type Google struct {
	APIKey  string
	BaseURL string
	httpDo  *http.Client
}

func NewGoogle(apiKey, baseURL string, timeout time.Duration) *Google {
	if baseURL == "" {
		baseURL = googleBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Google{APIKey: apiKey, BaseURL: baseURL, httpDo: &http.Client{Timeout: timeout}}
}

type googleRequest struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

func (g *Google) Translate(ctx context.Context, text, target string) (string, error) {
	if g.APIKey == "" {
		return "", errors.New("google translate api key is empty")
	}
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	data, err := json.Marshal(googleRequest{Q: []string{text}, Target: target, Format: "text"})
	if err != nil {
		return "", err
	}
	endpoint := g.BaseURL + "?key=" + url.QueryEscape(g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpDo.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", upstream.FromResponse("google-translate", resp)
	}
	var out googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode google translate response: %w", err)
	}
	if len(out.Data.Translations) == 0 {
		return "", errors.New("google translate returned no translations")
	}
	return out.Data.Translations[0].TranslatedText, nil
}
