// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Provider Interfaces
//
//   - provider.Client: phonetics, example sentences and word info for one
//     backend (internal/provider/provider.go). Implemented by the chat
//     client (yi), the SDK client (deepseek) and the structured
//     dictionary (hongliang).
//   - settingsstore.ClientResolver: builds a client from a provider name
//     (implemented by provider.Registry)
//   - enrichment.ProviderResolver: yields the active generative client
//
// ## Data Access Interfaces
//
//   - enrichment.Store: vocabulary record persistence
//   - settingsstore.KeyValueStore: settings backed by the database or redis
//   - http.ProviderCatalog: the seeded provider list
//
// ## Orchestration Interfaces
//
//   - http.WordService / tasks.WordEnricher: single-word enrichment
//   - scheduler.Refiller: a refill pass over records missing meanings
//   - http.RefillRunner / tasks.RefillRunner: a refill pass that records its outcome
//   - http.TaskQueue: background task submission
//
// # Adding a New Generative Provider
//
//  1. Add a Kind in internal/provider/provider.go and give it a name.
//
//  2. Implement provider.Client:
//
//     type MoonshotClient struct {
//         cfg        Config
//         httpClient *http.Client
//     }
//
//     func (c *MoonshotClient) GetWordInfo(ctx context.Context, word string) (*lexicon.WordInfo, error)
//
//     var _ Client = (*MoonshotClient)(nil)
//
//  3. Build it in Registry.build and seed it in database.defaultProviders.
//
//  4. Configure it with LLM_<NAME>_API_KEY, _BASE_URL, _MODEL and _TIMEOUT.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
