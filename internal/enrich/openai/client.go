// Package openai implements enrich.Client with the OpenAI chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/keepsake/internal/enrich"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(defaultBaseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

func (client *Client) Model() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

const vocabularyPrompt = `You are a Japanese teacher helping an English speaking learner keep a vocabulary list.

For the Japanese word given by the user, return ONLY a JSON object with these string fields:
- "word": the word as given
- "reading": the reading in hiragana
- "meaning": a short English meaning
- "meaning_jp": a short explanation in simple Japanese
- "example_sentence": one natural Japanese sentence using the word
- "example_translation": the English translation of that sentence

Use an empty string for a field you cannot answer. No text outside the JSON object.`

// isRetryableError reports failures worth another attempt: truncated JSON,
// transient network errors, 5xx responses and rate limiting.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	for _, marker := range []string{
		"json.Unmarshal",
		"unexpected end of JSON input",
		"connection refused",
		"i/o timeout",
		"response error 5",
		"response error 429",
	} {
		if strings.Contains(errStr, marker) {
			return true
		}
	}
	return false
}

// EnrichVocabulary implements enrich.Client.
func (client *Client) EnrichVocabulary(ctx context.Context, word string) (enrich.VocabularyDetails, error) {
	var result enrich.VocabularyDetails
	if err := retry.Do(
		func() error {
			details, err := client.enrichVocabulary(ctx, word)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().Info("retrying OpenAI API call", "word", word, "error", err)
				return err
			}
			result = details
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return enrich.VocabularyDetails{}, err
	}
	return result, nil
}

func (client *Client) enrichVocabulary(ctx context.Context, word string) (enrich.VocabularyDetails, error) {
	requestBody := ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{Role: RoleSystem, Content: vocabularyPrompt},
			{Role: RoleUser, Content: word},
		},
		Temperature:    0.2,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return enrich.VocabularyDetails{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return enrich.VocabularyDetails{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return enrich.VocabularyDetails{}, fmt.Errorf("empty response body or choices: %s", response.String())
	}
	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return enrich.VocabularyDetails{}, fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"word", word,
		"usage", responseBody.Usage,
	)

	var details enrich.VocabularyDetails
	if err := json.Unmarshal([]byte(content), &details); err != nil {
		return enrich.VocabularyDetails{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	return details, nil
}
