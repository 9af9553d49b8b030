// Package provider defines the capability contract shared by all lexical
// providers, builds concrete clients from configuration and caches them.
package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/lexicon/internal/dictionary"
	"github.com/mrlokans/lexicon/internal/lexicon"
)

// Client is the capability set every provider exposes. Providers with a
// narrower capability set return an error wrapping lexicon.ErrUnsupported.
type Client interface {
	Name() string
	Kind() Kind
	GetPhonetics(ctx context.Context, word string) (us, uk string, err error)
	GetExampleSentences(ctx context.Context, word string) (string, error)
	GetWordInfo(ctx context.Context, word string) (*lexicon.WordInfo, error)
}

// StructuredClient exposes the structured dictionary as a Client.
type StructuredClient struct {
	*dictionary.Client
}

func (*StructuredClient) Kind() Kind {
	return KindDictionary
}

var _ Client = (*StructuredClient)(nil)

// Kind is the closed set of provider implementations.
type Kind int

const (
	// KindChat is a generative provider reached with direct HTTP JSON calls.
	KindChat Kind = iota + 1
	// KindSDK is a generative provider reached through a blocking client
	// library bridged onto the worker pool.
	KindSDK
	// KindDictionary is the structured dictionary.
	KindDictionary
)

var kindNames = map[Kind]string{
	KindChat:       "yi",
	KindSDK:        "deepseek",
	KindDictionary: dictionary.ProviderName,
}

// Kinds lists every provider kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindChat, KindSDK, KindDictionary}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(k)) + ")"
}

// Generative reports whether the kind answers through a language model.
func (k Kind) Generative() bool {
	return k == KindChat || k == KindSDK
}

// ParseKind maps a short provider name to its kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, lexicon.ConfigErrorf("unknown provider %q", name)
}

// Config describes one provider instance. Treat it as immutable.
type Config struct {
	Kind    Kind
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// CacheKey derives a deterministic fingerprint of the fields that identify a
// client instance. Fields are length-prefixed before hashing so distinct
// tuples never collide on separators, and the key does not carry the API key
// in clear text.
func CacheKey(cfg Config) string {
	h := sha256.New()
	for _, field := range []string{cfg.Kind.String(), cfg.APIKey, cfg.BaseURL, cfg.Model} {
		h.Write([]byte(strconv.Itoa(len(field))))
		h.Write([]byte{':'})
		h.Write([]byte(field))
	}
	return cfg.Kind.String() + ":" + hex.EncodeToString(h.Sum(nil))
}
