package provider

import (
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/lexicon/internal/dictionary"
	"github.com/mrlokans/lexicon/internal/lexicon"
	"github.com/mrlokans/lexicon/internal/workerpool"
)

// ConfigSource supplies named configuration values. *viper.Viper satisfies it.
type ConfigSource interface {
	GetString(key string) string
}

// Factory builds a client for a configuration.
type Factory func(cfg Config) (Client, error)

// Registry builds provider clients and keeps one instance per CacheKey for
// the life of the process.
type Registry struct {
	source  ConfigSource
	pool    *workerpool.Pool
	factory Factory
	cache   sync.Map // CacheKey -> Client
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithFactory replaces the client constructor.
func WithFactory(f Factory) RegistryOption {
	return func(r *Registry) {
		r.factory = f
	}
}

// NewRegistry creates a registry reading named provider settings from source.
// SDK clients share pool.
func NewRegistry(source ConfigSource, pool *workerpool.Pool, opts ...RegistryOption) *Registry {
	if pool == nil {
		pool = workerpool.New(workerpool.DefaultSize)
	}
	r := &Registry{
		source: source,
		pool:   pool,
	}
	r.factory = r.build
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetOrCreate returns the cached client for cfg, building it on first use.
// Concurrent first calls may each build a client but only one is retained
// and returned to all of them. Build errors are not cached.
func (r *Registry) GetOrCreate(cfg Config) (Client, error) {
	key := CacheKey(cfg)
	if cached, ok := r.cache.Load(key); ok {
		return cached.(Client), nil
	}

	client, err := r.factory(cfg)
	if err != nil {
		return nil, err
	}

	actual, loaded := r.cache.LoadOrStore(key, client)
	if !loaded {
		log.Printf("[REGISTRY] created %s client", cfg.Kind)
	}
	return actual.(Client), nil
}

// Setting suffixes read for a named provider, e.g. LLM_YI_API_KEY.
const (
	settingAPIKey  = "API_KEY"
	settingBaseURL = "BASE_URL"
	settingModel   = "MODEL"
	settingTimeout = "TIMEOUT"
)

// SettingKey returns the configuration key holding one setting of a provider.
func SettingKey(name, setting string) string {
	return "LLM_" + strings.ToUpper(strings.TrimSpace(name)) + "_" + setting
}

// CreateFromName resolves a short provider name to a Config using the
// registry's configuration source, then delegates to GetOrCreate.
// Generative providers need all four settings; the dictionary needs none.
func (r *Registry) CreateFromName(name string) (Client, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	if r.source == nil {
		return nil, lexicon.ConfigErrorf("no configuration source for provider %q", name)
	}

	name = kind.String()
	values := make(map[string]string, 4)
	var missing []string
	for _, setting := range []string{settingAPIKey, settingBaseURL, settingModel, settingTimeout} {
		key := SettingKey(name, setting)
		v := strings.TrimSpace(r.source.GetString(key))
		if v == "" && kind.Generative() {
			missing = append(missing, key)
		}
		values[setting] = v
	}
	if len(missing) > 0 {
		return nil, lexicon.ConfigErrorf("provider %q is missing %s", name, strings.Join(missing, ", "))
	}

	cfg := Config{
		Kind:    kind,
		APIKey:  values[settingAPIKey],
		BaseURL: values[settingBaseURL],
		Model:   values[settingModel],
	}
	if raw := values[settingTimeout]; raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return nil, lexicon.ConfigErrorf("provider %q: %s must be a positive number of seconds, got %q", name, SettingKey(name, settingTimeout), raw)
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}

	return r.GetOrCreate(cfg)
}

// Names lists the known provider names.
func (r *Registry) Names() []string {
	kinds := Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	return names
}

func (r *Registry) build(cfg Config) (Client, error) {
	switch cfg.Kind {
	case KindChat:
		c, err := NewChatClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindSDK:
		c, err := NewSDKClient(cfg, r.pool)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindDictionary:
		return &StructuredClient{Client: dictionary.NewClient(
			dictionary.WithBaseURL(cfg.BaseURL),
			dictionary.WithTimeout(cfg.Timeout),
		)}, nil
	default:
		return nil, lexicon.ConfigErrorf("unknown provider kind %s", cfg.Kind)
	}
}
