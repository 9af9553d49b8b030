package enrichment

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/lexicon"
	"github.com/mrlokans/lexicon/internal/provider"
)

type memoryStore struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]entities.VocabularyRecord
	saves   int

	// beforeSave runs ahead of each Save, outside the lock.
	beforeSave func()
}

func newMemoryStore(words ...string) *memoryStore {
	s := &memoryStore{records: map[uint]entities.VocabularyRecord{}}
	for _, w := range words {
		s.put(entities.VocabularyRecord{Word: w})
	}
	return s
}

func (s *memoryStore) put(r entities.VocabularyRecord) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r.ID = s.nextID
	s.records[r.ID] = r
	return r.ID
}

func (s *memoryStore) FindByID(_ context.Context, id uint) (*entities.VocabularyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return nil, lexicon.NotFoundErrorf("word id %d", id)
	}
	return &r, nil
}

func (s *memoryStore) FindByWord(_ context.Context, word string) (*entities.VocabularyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Word == word {
			copied := r
			return &copied, nil
		}
	}
	return nil, lexicon.NotFoundErrorf("word %q", word)
}

func (s *memoryStore) FindAll(context.Context) ([]entities.VocabularyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.VocabularyRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) List(ctx context.Context, limit, offset int) ([]entities.VocabularyRecord, int64, error) {
	all, _ := s.FindAll(ctx)
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (s *memoryStore) Save(_ context.Context, r *entities.VocabularyRecord) error {
	if s.beforeSave != nil {
		s.beforeSave()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if r.ID == 0 {
		for _, existing := range s.records {
			if existing.Word == r.Word {
				return lexicon.ConflictErrorf("word %q", r.Word)
			}
		}
		s.nextID++
		r.ID = s.nextID
	}
	s.records[r.ID] = *r
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return lexicon.NotFoundErrorf("word id %d", id)
	}
	delete(s.records, id)
	return nil
}

func (s *memoryStore) get(word string) (entities.VocabularyRecord, bool) {
	r, err := s.FindByWord(context.Background(), word)
	if err != nil {
		return entities.VocabularyRecord{}, false
	}
	return *r, true
}

// fakeProvider answers from fixed tables and counts calls per operation.
type fakeProvider struct {
	name      string
	kind      provider.Kind
	info      map[string]*lexicon.WordInfo
	infoErr   map[string]error
	examples  string
	sentErr   map[string]error
	onlyWords bool
	t         *testing.T

	mu    sync.Mutex
	calls map[string][]string
}

func newFakeProvider(name string) *fakeProvider {
	return &fakeProvider{
		name:     name,
		kind:     provider.KindChat,
		info:     map[string]*lexicon.WordInfo{},
		infoErr:  map[string]error{},
		sentErr:  map[string]error{},
		examples: "An example.\n一个例子。\nAnother one.\n另一个。\n",
		calls:    map[string][]string{},
	}
}

// newFakeDictionary fails the test when asked about a phrase.
func newFakeDictionary(t *testing.T) *fakeProvider {
	p := newFakeProvider("hongliang")
	p.kind = provider.KindDictionary
	p.onlyWords = true
	p.t = t
	return p
}

func (p *fakeProvider) record(op, word string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[op] = append(p.calls[op], word)
	if p.onlyWords && lexicon.IsPhrase(word) {
		p.t.Errorf("%s called with phrase %q", p.name, word)
	}
}

func (p *fakeProvider) count(op string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls[op])
}

func (p *fakeProvider) Name() string        { return p.name }
func (p *fakeProvider) Kind() provider.Kind { return p.kind }

func (p *fakeProvider) GetPhonetics(_ context.Context, word string) (string, string, error) {
	p.record("phonetics", word)
	return "", "", lexicon.ErrUnsupported
}

func (p *fakeProvider) GetExampleSentences(_ context.Context, word string) (string, error) {
	p.record("sentences", word)
	if err := p.sentErr[word]; err != nil {
		return "", err
	}
	return p.examples, nil
}

func (p *fakeProvider) GetWordInfo(_ context.Context, word string) (*lexicon.WordInfo, error) {
	p.record("word_info", word)
	if err := p.infoErr[word]; err != nil {
		return nil, err
	}
	if info, ok := p.info[word]; ok {
		return info, nil
	}
	return &lexicon.WordInfo{
		USPhonetic: word + "-us",
		UKPhonetic: word + "-uk",
		Meanings:   []lexicon.Meaning{{POS: "n.", Definition: p.name + " " + word}},
	}, nil
}

type fakeResolver struct {
	client provider.Client
	err    error

	mu    sync.Mutex
	calls int
}

func (r *fakeResolver) Resolve(context.Context) (provider.Client, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.client, nil
}

func providerErr(name, op, word string, err error) error {
	return &lexicon.ProviderError{Provider: name, Op: op, Word: word, Err: err}
}
