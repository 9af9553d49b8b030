package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mrlokans/lexicon/internal/lexicon"
	"github.com/mrlokans/lexicon/internal/workerpool"
)

const (
	DefaultSDKBaseURL = "https://api.deepseek.com"
	// DefaultSDKModel answers the low-temperature structured calls unless
	// LLM_DEEPSEEK_MODEL names another.
	DefaultSDKModel = "deepseek-coder"
	// DefaultSDKCreativeModel answers calls sampled above creativeThreshold.
	DefaultSDKCreativeModel = "deepseek-chat"

	creativeThreshold float32 = 0.5
)

// SDKClient is a generative provider reached through the OpenAI-compatible
// client library. Each blocking completion call runs on the shared worker
// pool.
type SDKClient struct {
	client        *openai.Client
	pool          *workerpool.Pool
	model         string
	creativeModel string
	timeout       time.Duration
}

// NewSDKClient validates cfg and returns a ready client. A nil pool gets a
// private pool of the default size.
func NewSDKClient(cfg Config, pool *workerpool.Pool) (*SDKClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, lexicon.ConfigErrorf("api key is required for %s", KindSDK)
	}
	if pool == nil {
		pool = workerpool.New(workerpool.DefaultSize)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = DefaultSDKBaseURL
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	oc.HTTPClient = &http.Client{Timeout: timeout}

	c := &SDKClient{
		client:        openai.NewClientWithConfig(oc),
		pool:          pool,
		model:         DefaultSDKModel,
		creativeModel: DefaultSDKCreativeModel,
		timeout:       timeout,
	}
	// The creative model stays fixed; cfg.Model only replaces the
	// low-temperature one.
	if cfg.Model != "" {
		c.model = cfg.Model
	}
	return c, nil
}

func (c *SDKClient) Name() string {
	return KindSDK.String()
}

func (c *SDKClient) Kind() Kind {
	return KindSDK
}

func (c *SDKClient) GetPhonetics(ctx context.Context, word string) (string, string, error) {
	return getPhonetics(ctx, c.Name(), c.complete, word)
}

func (c *SDKClient) GetExampleSentences(ctx context.Context, word string) (string, error) {
	return getExampleSentences(ctx, c.Name(), c.complete, word)
}

func (c *SDKClient) GetWordInfo(ctx context.Context, word string) (*lexicon.WordInfo, error) {
	return getWordInfo(ctx, c.Name(), c.complete, word)
}

func (c *SDKClient) modelFor(temperature float32) string {
	if temperature > creativeThreshold {
		return c.creativeModel
	}
	return c.model
}

func (c *SDKClient) complete(ctx context.Context, r request) (string, error) {
	if c.client == nil || c.pool == nil {
		return "", lexicon.ConfigErrorf("%s client not constructed with NewSDKClient", KindSDK)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(r.messages))
	for _, m := range r.messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	req := openai.ChatCompletionRequest{
		Model:       c.modelFor(r.temperature),
		Messages:    messages,
		Temperature: r.temperature,
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := workerpool.Do(callCtx, c.pool, func() (openai.ChatCompletionResponse, error) {
		return c.client.CreateChatCompletion(callCtx, req)
	})
	if err != nil {
		return "", classifySDKError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", lexicon.SchemaErrorf("response has no choices[0].message.content")
	}
	return resp.Choices[0].Message.Content, nil
}

func classifySDKError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &lexicon.ProviderError{
			StatusCode: apiErr.HTTPStatusCode,
			Err:        lexicon.TransportErrorf("%s", apiErr.Message),
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &lexicon.ProviderError{
			StatusCode: reqErr.HTTPStatusCode,
			Err:        lexicon.TransportErrorf("%v", reqErr.Err),
		}
	}
	return lexicon.TransportErrorf("%v", err)
}
