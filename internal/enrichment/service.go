// Package enrichment decides which providers to consult for a word, merges
// their answers into a vocabulary record and persists it. It also runs the
// batch job that fills in records still missing metadata.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/lexicon"
	"github.com/mrlokans/lexicon/internal/provider"
)

// Store persists vocabulary records. Lookups of missing records return an
// error wrapping lexicon.ErrNotFound.
type Store interface {
	FindByID(ctx context.Context, id uint) (*entities.VocabularyRecord, error)
	FindByWord(ctx context.Context, word string) (*entities.VocabularyRecord, error)
	FindAll(ctx context.Context) ([]entities.VocabularyRecord, error)
	List(ctx context.Context, limit, offset int) ([]entities.VocabularyRecord, int64, error)
	Save(ctx context.Context, record *entities.VocabularyRecord) error
	Delete(ctx context.Context, id uint) error
}

// ProviderResolver returns the generative provider currently in use.
type ProviderResolver interface {
	Resolve(ctx context.Context) (provider.Client, error)
}

// Strategy names the provider order used for one word.
type Strategy string

const (
	// StrategyStructuredFirst asks the dictionary for word info and falls
	// back to the generative provider when it fails.
	StrategyStructuredFirst Strategy = "structured_first"
	// StrategyGenerativeOnly never consults the dictionary.
	StrategyGenerativeOnly Strategy = "generative_only"
)

// Accent codes understood by the pronunciation service.
const (
	AccentUS = 0
	AccentUK = 1
)

const pronunciationBaseURL = "http://dict.youdao.com/dictvoice"

// PronunciationURL returns the audio URL for word in the given accent.
func PronunciationURL(word string, accent int) string {
	return fmt.Sprintf("%s?type=%d&audio=%s", pronunciationBaseURL, accent, url.QueryEscape(word))
}

// DisplayPhonetic wraps a bare transcription for storage, e.g. "ˈæpəl" -> "/ˈæpəl/".
func DisplayPhonetic(phonetic string) string {
	if phonetic == "" {
		return ""
	}
	return "/" + phonetic + "/"
}

// Error reports a failed enrichment together with the route that was taken.
type Error struct {
	Word     string
	Strategy Strategy
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("enrich %q (%s via %s): %v", e.Word, e.Strategy, e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Service orchestrates word enrichment.
type Service struct {
	store      Store
	resolver   ProviderResolver
	dictionary provider.Client
	policy     BatchPolicy
}

// Option customizes a Service.
type Option func(*Service)

// WithDictionary sets the structured provider tried first for single words.
// Without one, every word is enriched generative-only.
func WithDictionary(c provider.Client) Option {
	return func(s *Service) {
		s.dictionary = c
	}
}

// WithBatchPolicy sets how RefillMissing reacts to a failed word.
func WithBatchPolicy(p BatchPolicy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

func NewService(store Store, resolver ProviderResolver, opts ...Option) *Service {
	s := &Service{
		store:    store,
		resolver: resolver,
		policy:   ContinueOnError,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enrich returns the enriched record for word, creating or completing it
// as needed. A record that already has meanings is returned unchanged
// without contacting any provider. Nothing is saved when a provider fails.
func (s *Service) Enrich(ctx context.Context, word string) (*entities.VocabularyRecord, error) {
	word, err := lexicon.NormalizeWord(word)
	if err != nil {
		return nil, err
	}

	record, err := s.store.FindByWord(ctx, word)
	switch {
	case err == nil:
		if record.HasMeanings() {
			log.Printf("[ENRICH] %q already enriched, skipping providers", word)
			return record, nil
		}
	case errors.Is(err, lexicon.ErrNotFound):
		record = &entities.VocabularyRecord{Word: word}
	default:
		return nil, fmt.Errorf("find %q: %w", word, err)
	}

	generative, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	strategy := s.strategyFor(word)
	result, err := s.fetch(ctx, word, strategy, generative)
	if err != nil {
		return nil, newError(word, strategy, generative, err)
	}

	if err := result.applyTo(record); err != nil {
		return nil, newError(word, strategy, generative, err)
	}
	if err := s.store.Save(ctx, record); err != nil {
		// A concurrent first enrichment stored the word first.
		if errors.Is(err, lexicon.ErrConflict) {
			if stored, ferr := s.store.FindByWord(ctx, word); ferr == nil {
				log.Printf("[ENRICH] %q stored concurrently, returning stored record", word)
				return stored, nil
			}
		}
		return nil, fmt.Errorf("save %q: %w", word, err)
	}

	log.Printf("[ENRICH] enriched %q (%s via %s)", word, strategy, generative.Name())
	return record, nil
}

// Lookup returns the stored record for word.
func (s *Service) Lookup(ctx context.Context, word string) (*entities.VocabularyRecord, error) {
	word, err := lexicon.NormalizeWord(word)
	if err != nil {
		return nil, err
	}
	return s.store.FindByWord(ctx, word)
}

// Get returns the stored record with the given ID.
func (s *Service) Get(ctx context.Context, id uint) (*entities.VocabularyRecord, error) {
	return s.store.FindByID(ctx, id)
}

// List returns one page of stored records and the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]entities.VocabularyRecord, int64, error) {
	return s.store.List(ctx, limit, offset)
}

// Delete removes a stored record.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) strategyFor(word string) Strategy {
	if s.dictionary == nil || lexicon.IsPhrase(word) {
		return StrategyGenerativeOnly
	}
	return StrategyStructuredFirst
}

type fetched struct {
	word     string
	info     *lexicon.WordInfo
	examples string
}

// fetch runs the word-info chain and the example sentence call concurrently.
// Both must succeed.
func (s *Service) fetch(ctx context.Context, word string, strategy Strategy, generative provider.Client) (*fetched, error) {
	out := &fetched{word: word}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info, err := s.wordInfo(gctx, word, strategy, generative)
		if err != nil {
			return err
		}
		out.info = info
		return nil
	})
	g.Go(func() error {
		examples, err := generative.GetExampleSentences(gctx, word)
		if err != nil {
			return err
		}
		out.examples = examples
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) wordInfo(ctx context.Context, word string, strategy Strategy, generative provider.Client) (*lexicon.WordInfo, error) {
	if strategy == StrategyStructuredFirst {
		info, err := s.dictionary.GetWordInfo(ctx, word)
		if err == nil {
			return info, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("[ENRICH] %s has no usable entry for %q, falling back to %s: %v",
			s.dictionary.Name(), word, generative.Name(), err)
	}
	return generative.GetWordInfo(ctx, word)
}

func (f *fetched) applyTo(record *entities.VocabularyRecord) error {
	if f.info == nil {
		return lexicon.SchemaErrorf("no word info for %q", f.word)
	}
	if err := record.SetMeanings(f.info.Meanings); err != nil {
		return err
	}
	record.PhoneticUS = DisplayPhonetic(f.info.USPhonetic)
	record.PhoneticUK = DisplayPhonetic(f.info.UKPhonetic)
	record.Example = f.examples
	record.PronunciationUS = PronunciationURL(f.word, AccentUS)
	record.PronunciationUK = PronunciationURL(f.word, AccentUK)
	return nil
}

func newError(word string, strategy Strategy, generative provider.Client, err error) *Error {
	name := generative.Name()
	var pErr *lexicon.ProviderError
	if errors.As(err, &pErr) && pErr.Provider != "" {
		name = pErr.Provider
	}
	return &Error{Word: word, Strategy: strategy, Provider: name, Err: err}
}
