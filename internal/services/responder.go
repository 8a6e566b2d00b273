package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Responder produces a reply for a chat message given the message text and a
// project context blob. The output is opaque text; callers never parse it.
type Responder interface {
	Generate(ctx context.Context, userText, projectContext string) (string, error)
}

// StaticResponder is the default generator. It echoes the project context back
// in a canned analysis reply, so responses always reference the project the
// question was asked about.
type StaticResponder struct{}

func (StaticResponder) Generate(_ context.Context, _, projectContext string) (string, error) {
	return fmt.Sprintf(
		"I understand your question. Here is what I know so far:\n%s\nLet me analyze this further based on the project details.",
		projectContext), nil
}

// LLMResponder calls a chat-completions endpoint.
type LLMResponder struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

func NewLLMResponder(baseURL, apiKey, model string) *LLMResponder {
	return &LLMResponder{BaseURL: baseURL, APIKey: apiKey, Model: model, Client: &http.Client{}}
}

const responderSystemPrompt = "You are an assistant for a construction project chat room. " +
	"Answer the user's question using the project context provided. Be concise and practical."

func (r *LLMResponder) Generate(ctx context.Context, userText, projectContext string) (string, error) {
	body := map[string]interface{}{
		"model": r.Model,
		"messages": []map[string]string{
			{"role": "system", "content": responderSystemPrompt + "\n\n" + projectContext},
			{"role": "user", "content": userText},
		},
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", r.BaseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.APIKey)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm status %d: %s", resp.StatusCode, data)
	}

	data, _ := io.ReadAll(resp.Body)
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices")
	}
	return result.Choices[0].Message.Content, nil
}
