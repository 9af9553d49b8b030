package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mrlokans/lexicon/internal/lexicon"
)

const (
	DefaultChatBaseURL = "https://api.lingyiwanwu.com/v1/chat/completions"
	DefaultChatModel   = "yi-lightning"
	DefaultTimeout     = 30 * time.Second
)

// ChatClient is a generative provider that posts chat-completion JSON
// directly over HTTP.
type ChatClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

// NewChatClient validates cfg and returns a ready client.
func NewChatClient(cfg Config) (*ChatClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, lexicon.ConfigErrorf("api key is required for %s", KindChat)
	}

	c := &ChatClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
	}
	if c.httpClient.Timeout <= 0 {
		c.httpClient.Timeout = DefaultTimeout
	}
	if c.baseURL == "" {
		c.baseURL = DefaultChatBaseURL
	}
	if c.model == "" {
		c.model = DefaultChatModel
	}
	return c, nil
}

func (c *ChatClient) Name() string {
	return KindChat.String()
}

func (c *ChatClient) Kind() Kind {
	return KindChat
}

func (c *ChatClient) GetPhonetics(ctx context.Context, word string) (string, string, error) {
	return getPhonetics(ctx, c.Name(), c.complete, word)
}

func (c *ChatClient) GetExampleSentences(ctx context.Context, word string) (string, error) {
	return getExampleSentences(ctx, c.Name(), c.complete, word)
}

func (c *ChatClient) GetWordInfo(ctx context.Context, word string) (*lexicon.WordInfo, error) {
	return getWordInfo(ctx, c.Name(), c.complete, word)
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float32   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *ChatClient) complete(ctx context.Context, r request) (string, error) {
	if c.httpClient == nil || c.apiKey == "" {
		return "", lexicon.ConfigErrorf("%s client not constructed with NewChatClient", KindChat)
	}

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    r.messages,
		Temperature: r.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", lexicon.TransportErrorf("%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &lexicon.ProviderError{
			StatusCode: resp.StatusCode,
			Err:        lexicon.TransportErrorf("unexpected status: %s", strings.TrimSpace(string(snippet))),
		}
	}

	var body chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", lexicon.SchemaErrorf("decode response: %v", err)
	}
	if len(body.Choices) == 0 || strings.TrimSpace(body.Choices[0].Message.Content) == "" {
		return "", lexicon.SchemaErrorf("response has no choices[0].message.content")
	}
	return body.Choices[0].Message.Content, nil
}
