package provider

import (
	"context"
	"errors"
	"log"

	"github.com/mrlokans/lexicon/internal/lexicon"
	"github.com/mrlokans/lexicon/internal/normalize"
)

// completeFunc sends one prompt exchange and returns the raw model text.
type completeFunc func(ctx context.Context, req request) (string, error)

// wrapErr attaches provider context, keeping a status code set by the transport.
func wrapErr(provider, op, word string, err error) error {
	var pErr *lexicon.ProviderError
	if errors.As(err, &pErr) {
		if pErr.Provider == "" {
			pErr.Provider = provider
		}
		if pErr.Op == "" {
			pErr.Op = op
		}
		if pErr.Word == "" {
			pErr.Word = word
		}
		return pErr
	}
	return &lexicon.ProviderError{Provider: provider, Op: op, Word: word, Err: err}
}

func getPhonetics(ctx context.Context, provider string, complete completeFunc, word string) (string, string, error) {
	const op = "get_phonetics"
	word, err := lexicon.NormalizeWord(word)
	if err != nil {
		return "", "", wrapErr(provider, op, word, err)
	}

	text, err := complete(ctx, phoneticsRequest(word))
	if err != nil {
		return "", "", wrapErr(provider, op, word, err)
	}

	us, uk, err := normalize.ParsePhonetics(text)
	if err != nil {
		return "", "", wrapErr(provider, op, word, err)
	}
	return us, uk, nil
}

func getExampleSentences(ctx context.Context, provider string, complete completeFunc, word string) (string, error) {
	const op = "get_example_sentences"
	word, err := lexicon.NormalizeWord(word)
	if err != nil {
		return "", wrapErr(provider, op, word, err)
	}

	text, err := complete(ctx, exampleSentencesRequest(word))
	if err != nil {
		return "", wrapErr(provider, op, word, err)
	}

	pairs, err := normalize.ParseExampleSentences(text)
	if err != nil {
		return "", wrapErr(provider, op, word, err)
	}
	if !normalize.MentionsWord(pairs, word) {
		log.Printf("[PROVIDER] %s: example sentences for %q do not mention the word", provider, word)
	}
	return normalize.FormatExamples(pairs), nil
}

func getWordInfo(ctx context.Context, provider string, complete completeFunc, word string) (*lexicon.WordInfo, error) {
	const op = "get_word_info"
	word, err := lexicon.NormalizeWord(word)
	if err != nil {
		return nil, wrapErr(provider, op, word, err)
	}

	text, err := complete(ctx, wordInfoRequest(word))
	if err != nil {
		return nil, wrapErr(provider, op, word, err)
	}

	info, err := normalize.ParseWordInfo(text)
	if err != nil {
		return nil, wrapErr(provider, op, word, err)
	}
	return info, nil
}
