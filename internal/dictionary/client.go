// Package dictionary implements the structured dictionary provider. It
// answers word-info and phonetics lookups from a fixed positional response
// format and does not offer example sentences.
package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mrlokans/lexicon/internal/lexicon"
)

const (
	ProviderName   = "hongliang"
	DefaultBaseURL = "https://pt.hongliang.fun/api/v1/pt"
	DefaultTimeout = 10 * time.Second

	defaultRateInterval = 200 * time.Millisecond
	breakerTripAfter    = 5
	breakerOpenFor      = 30 * time.Second
)

// Client talks to the structured dictionary API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
	breaker     *gobreaker.CircuitBreaker
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if since := time.Since(r.lastCall); since < r.interval {
		timer := time.NewTimer(r.interval - since)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.lastCall = time.Now()
	return nil
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateInterval sets the minimum spacing between requests.
func WithRateInterval(d time.Duration) Option {
	return func(c *Client) {
		c.rateLimiter = newRateLimiter(d)
	}
}

// NewClient creates a structured dictionary client. The dictionary needs no
// credential, so construction cannot fail.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL:     DefaultBaseURL,
		rateLimiter: newRateLimiter(defaultRateInterval),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    ProviderName,
		Timeout: breakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[DICT] circuit %s: %s -> %s", name, from, to)
		},
	})
	return c
}

func (c *Client) Name() string {
	return ProviderName
}

// GetWordInfo looks the word up and converts the first result row.
func (c *Client) GetWordInfo(ctx context.Context, word string) (*lexicon.WordInfo, error) {
	info, err := c.lookup(ctx, word)
	if err != nil {
		return nil, &lexicon.ProviderError{Provider: ProviderName, Op: "get_word_info", Word: word, Err: err}
	}
	return info, nil
}

// GetPhonetics returns the US and UK transcriptions from a word-info lookup.
func (c *Client) GetPhonetics(ctx context.Context, word string) (string, string, error) {
	info, err := c.lookup(ctx, word)
	if err != nil {
		return "", "", &lexicon.ProviderError{Provider: ProviderName, Op: "get_phonetics", Word: word, Err: err}
	}
	return info.USPhonetic, info.UKPhonetic, nil
}

// GetExampleSentences is not offered by the structured dictionary.
func (c *Client) GetExampleSentences(_ context.Context, word string) (string, error) {
	return "", &lexicon.ProviderError{Provider: ProviderName, Op: "get_example_sentences", Word: word, Err: lexicon.ErrUnsupported}
}

func (c *Client) lookup(ctx context.Context, word string) (*lexicon.WordInfo, error) {
	if c == nil || c.httpClient == nil || c.breaker == nil {
		return nil, lexicon.ConfigErrorf("dictionary client not constructed with NewClient")
	}
	word, err := lexicon.NormalizeWord(word)
	if err != nil {
		return nil, err
	}

	body, err := c.fetch(ctx, word)
	if err != nil {
		return nil, err
	}

	var resp ptResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, lexicon.SchemaErrorf("decode response: %v", err)
	}
	return resp.wordInfo()
}

// fetch performs the HTTP exchange behind the circuit breaker. Only transport
// failures count against the breaker.
func (c *Client) fetch(ctx context.Context, word string) ([]byte, error) {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, lexicon.TransportErrorf("rate limiter: %v", err)
	}

	payload, err := json.Marshal(ptRequest{Re: true, Content: word})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "Lexicon/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, lexicon.TransportErrorf("fetch word info: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, lexicon.TransportErrorf("unexpected status: %d", resp.StatusCode)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, lexicon.TransportErrorf("read response: %v", err)
		}
		return data, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, lexicon.TransportErrorf("%v", err)
		}
		return nil, err
	}
	return out.([]byte), nil
}
