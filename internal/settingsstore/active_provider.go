package settingsstore

import (
	"context"
	"strings"

	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/lexicon"
	"github.com/mrlokans/lexicon/internal/provider"
)

// ClientResolver turns a provider name into a ready client.
// *provider.Registry implements it.
type ClientResolver interface {
	CreateFromName(name string) (provider.Client, error)
}

// ActiveProvider resolves the provider currently selected in the store.
// The stored name is read on every call, so a change applies to the next
// request without a restart.
type ActiveProvider struct {
	store    KeyValueStore
	resolver ClientResolver
}

func NewActiveProvider(store KeyValueStore, resolver ClientResolver) *ActiveProvider {
	return &ActiveProvider{store: store, resolver: resolver}
}

// Active returns the stored provider name.
func (a *ActiveProvider) Active(ctx context.Context) (string, error) {
	name, ok, err := a.store.Get(ctx, entities.SettingKeyActiveProvider)
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", lexicon.NotConfiguredErrorf("setting %q is not set", entities.SettingKeyActiveProvider)
	}
	return name, nil
}

// Resolve returns a client for the active provider. Only generative
// providers can be active; the structured dictionary is rejected.
func (a *ActiveProvider) Resolve(ctx context.Context) (provider.Client, error) {
	name, err := a.Active(ctx)
	if err != nil {
		return nil, err
	}
	client, err := a.resolver.CreateFromName(name)
	if err != nil {
		return nil, err
	}
	if !client.Kind().Generative() {
		return nil, lexicon.ConfigErrorf("provider %q is not generative and cannot be the active provider", name)
	}
	return client, nil
}

// SetActive stores name as the active provider. Whether the name resolves
// is checked on the next Resolve, not here.
func (a *ActiveProvider) SetActive(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return lexicon.NewValidationError("name", "must not be empty")
	}
	return a.store.Set(ctx, entities.SettingKeyActiveProvider, name)
}
