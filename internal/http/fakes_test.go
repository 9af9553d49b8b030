package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/lexicon/internal/enrichment"
	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/lexicon"
	"github.com/mrlokans/lexicon/internal/settingsstore"
)

type fakeWords struct {
	mu       sync.Mutex
	records  map[string]*entities.VocabularyRecord
	enrichFn func(word string) (*entities.VocabularyRecord, error)
	enriched []string
}

func newFakeWords(words ...string) *fakeWords {
	f := &fakeWords{records: map[string]*entities.VocabularyRecord{}}
	for i, w := range words {
		f.records[w] = &entities.VocabularyRecord{ID: uint(i + 1), Word: w}
	}
	return f
}

func (f *fakeWords) Enrich(_ context.Context, word string) (*entities.VocabularyRecord, error) {
	f.mu.Lock()
	f.enriched = append(f.enriched, word)
	f.mu.Unlock()
	if f.enrichFn != nil {
		return f.enrichFn(word)
	}
	return &entities.VocabularyRecord{ID: 99, Word: word, Meanings: `[{"pos":"n.","definition":"x"}]`}, nil
}

func (f *fakeWords) Lookup(_ context.Context, word string) (*entities.VocabularyRecord, error) {
	normalized, err := lexicon.NormalizeWord(word)
	if err != nil {
		return nil, err
	}
	if r, ok := f.records[normalized]; ok {
		return r, nil
	}
	return nil, lexicon.NotFoundErrorf("word %q", normalized)
}

func (f *fakeWords) List(_ context.Context, limit, offset int) ([]entities.VocabularyRecord, int64, error) {
	all := make([]entities.VocabularyRecord, 0, len(f.records))
	for _, r := range f.records {
		all = append(all, *r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return []entities.VocabularyRecord{}, total, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], total, nil
}

func (f *fakeWords) Delete(_ context.Context, id uint) error {
	for w, r := range f.records {
		if r.ID == id {
			delete(f.records, w)
			return nil
		}
	}
	return lexicon.NotFoundErrorf("record %d", id)
}

type fakeRefill struct {
	report *enrichment.RefillReport
	err    error
	calls  int
}

func (f *fakeRefill) RunOnce(context.Context) (*enrichment.RefillReport, error) {
	f.calls++
	return f.report, f.err
}

type fakeQueue struct {
	enqueued []backlite.Task
	err      error
	statuses map[string]backlite.TaskStatus
}

func (f *fakeQueue) Enqueue(_ context.Context, task backlite.Task) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.enqueued = append(f.enqueued, task)
	return "task-1", nil
}

func (f *fakeQueue) Status(_ context.Context, id string) (backlite.TaskStatus, error) {
	if s, ok := f.statuses[id]; ok {
		return s, nil
	}
	return backlite.TaskStatusNotFound, nil
}

type fakeSelector struct {
	name string
}

func (f *fakeSelector) Active(context.Context) (string, error) {
	if f.name == "" {
		return "", lexicon.NotConfiguredErrorf("no active provider")
	}
	return f.name, nil
}

func (f *fakeSelector) SetActive(_ context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return lexicon.NewValidationError("name", "must not be empty")
	}
	f.name = name
	return nil
}

type fakeCatalog struct {
	providers []entities.ModelProvider
}

func (f fakeCatalog) ListActive(context.Context) ([]entities.ModelProvider, error) {
	return f.providers, nil
}

type fakeRefillSettings struct {
	cfg    settingsstore.RefillScheduleConfig
	status settingsstore.RefillStatus
}

func (f *fakeRefillSettings) Info(context.Context) settingsstore.RefillScheduleInfo {
	return settingsstore.RefillScheduleInfo{
		Enabled:        f.cfg.Enabled,
		EnabledSource:  settingsstore.SourceConfig,
		Schedule:       f.cfg.Schedule,
		ScheduleSource: settingsstore.SourceConfig,
	}
}

func (f *fakeRefillSettings) Save(_ context.Context, cfg settingsstore.RefillScheduleConfig) error {
	if err := settingsstore.ValidateCronSchedule(cfg.Schedule); err != nil {
		return err
	}
	f.cfg = cfg
	return nil
}

func (f *fakeRefillSettings) Status(context.Context) settingsstore.RefillStatus {
	return f.status
}

type fakeSchedule struct {
	rescheduled int
	next        *time.Time
	refilling   bool
}

func (f *fakeSchedule) Reschedule(context.Context) error {
	f.rescheduled++
	return nil
}

func (f *fakeSchedule) NextRunTime() *time.Time { return f.next }
func (f *fakeSchedule) IsRefilling() bool       { return f.refilling }

type routerFixture struct {
	words    *fakeWords
	refill   *fakeRefill
	queue    *fakeQueue
	selector *fakeSelector
	settings *fakeRefillSettings
	schedule *fakeSchedule
}

func newRouterFixture() *routerFixture {
	return &routerFixture{
		words:    newFakeWords("apple", "banana", "cherry"),
		refill:   &fakeRefill{},
		selector: &fakeSelector{name: "yi"},
		settings: &fakeRefillSettings{cfg: settingsstore.RefillScheduleConfig{Schedule: "0 3 * * *"}},
		schedule: &fakeSchedule{},
	}
}

func (f *routerFixture) config() RouterConfig {
	cfg := RouterConfig{
		Version:        "test",
		Words:          f.words,
		Refill:         f.refill,
		Providers:      f.selector,
		Catalog:        fakeCatalog{providers: []entities.ModelProvider{{Name: "yi", IsActive: true}}},
		RefillSettings: f.settings,
		Schedule:       f.schedule,
	}
	if f.queue != nil {
		cfg.TaskQueue = f.queue
	}
	return cfg
}

func (f *routerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	NewRouter(f.config()).ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}
