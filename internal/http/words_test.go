package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/lexicon/internal/enrichment"
	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/lexicon"
	"github.com/mrlokans/lexicon/internal/scheduler"
	"github.com/mrlokans/lexicon/internal/tasks"
)

func TestWordsController_Create(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodPost, "/api/word/create", WordRequest{Word: "  xylophone "})

	require.Equal(t, http.StatusOK, w.Code)
	record := decode[entities.VocabularyRecord](t, w)
	assert.Equal(t, "xylophone", record.Word)
	assert.Equal(t, []string{"xylophone"}, f.words.enriched)
}

func TestWordsController_Create_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		enrichFn func(string) (*entities.VocabularyRecord, error)
		wantCode int
		wantErr  string
	}{
		{
			name:     "empty word",
			body:     WordRequest{Word: "   "},
			wantCode: http.StatusBadRequest,
			wantErr:  CodeValidation,
		},
		{
			name:     "malformed body",
			body:     "not an object",
			wantCode: http.StatusBadRequest,
			wantErr:  CodeValidation,
		},
		{
			name: "no active provider",
			body: WordRequest{Word: "apple"},
			enrichFn: func(string) (*entities.VocabularyRecord, error) {
				return nil, lexicon.NotConfiguredErrorf("no active provider")
			},
			wantCode: http.StatusPreconditionFailed,
			wantErr:  CodeNotConfigured,
		},
		{
			name: "provider failure",
			body: WordRequest{Word: "apple"},
			enrichFn: func(string) (*entities.VocabularyRecord, error) {
				return nil, &enrichment.Error{Word: "apple", Err: lexicon.TransportErrorf("timeout")}
			},
			wantCode: http.StatusBadGateway,
			wantErr:  CodeProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture()
			f.words.enrichFn = tt.enrichFn

			w := f.do(t, http.MethodPost, "/api/word/create", tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, decode[ErrorResponse](t, w).Code)
		})
	}
}

func TestWordsController_Create_Async(t *testing.T) {
	t.Run("enqueues when a queue is available", func(t *testing.T) {
		f := newRouterFixture()
		f.queue = &fakeQueue{}

		w := f.do(t, http.MethodPost, "/api/word/create", WordRequest{Word: " apple ", Async: true})

		require.Equal(t, http.StatusAccepted, w.Code)
		require.Len(t, f.queue.enqueued, 1)
		assert.Equal(t, tasks.EnrichWordTask{Word: "apple"}, f.queue.enqueued[0])
		assert.Empty(t, f.words.enriched)
	})

	t.Run("runs inline without a queue", func(t *testing.T) {
		f := newRouterFixture()

		w := f.do(t, http.MethodPost, "/api/word/create", WordRequest{Word: "apple", Async: true})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"apple"}, f.words.enriched)
	})

	t.Run("enqueue failure", func(t *testing.T) {
		f := newRouterFixture()
		f.queue = &fakeQueue{err: errors.New("disk full")}

		w := f.do(t, http.MethodPost, "/api/word/create", WordRequest{Word: "apple", Async: true})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}

func TestWordsController_Get(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodPost, "/api/word/get", WordRequest{Word: " banana"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "banana", decode[entities.VocabularyRecord](t, w).Word)

	w = f.do(t, http.MethodGet, "/api/word/cherry", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), decode[entities.VocabularyRecord](t, w).ID)

	w = f.do(t, http.MethodGet, "/api/word/durian", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, f.words.enriched)
}

func TestWordsController_List(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodGet, "/api/word?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[struct {
		Data    []entities.VocabularyRecord `json:"data"`
		Total   int64                       `json:"total"`
		Limit   int                         `json:"limit"`
		HasMore bool                        `json:"has_more"`
	}](t, w)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Limit)
	assert.True(t, page.HasMore)

	w = f.do(t, http.MethodGet, "/api/word?limit=2&offset=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[PaginatedResponse](t, w).HasMore)

	w = f.do(t, http.MethodGet, "/api/word?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWordsController_Delete(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodDelete, "/api/word/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotContains(t, f.words.records, "apple")

	w = f.do(t, http.MethodDelete, "/api/word/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, "/api/word/apple", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWordsController_UpdateBatch(t *testing.T) {
	t.Run("inline returns the report", func(t *testing.T) {
		f := newRouterFixture()
		f.refill.report = &enrichment.RefillReport{Total: 2, Enriched: 1, Failed: 1}
		f.refill.err = errors.New("word broken failed")

		w := f.do(t, http.MethodPost, "/api/word/update-batch", nil)

		require.Equal(t, http.StatusOK, w.Code)
		report := decode[enrichment.RefillReport](t, w)
		assert.Equal(t, 1, report.Enriched)
		assert.Equal(t, 1, report.Failed)
		assert.Equal(t, 1, f.refill.calls)
	})

	t.Run("concurrent run", func(t *testing.T) {
		f := newRouterFixture()
		f.refill.err = scheduler.ErrRefillInProgress

		w := f.do(t, http.MethodPost, "/api/word/update-batch", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("no provider", func(t *testing.T) {
		f := newRouterFixture()
		f.refill.err = lexicon.NotConfiguredErrorf("no active provider")

		w := f.do(t, http.MethodPost, "/api/word/update-batch", nil)

		assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	})

	t.Run("enqueued", func(t *testing.T) {
		f := newRouterFixture()
		f.queue = &fakeQueue{}

		w := f.do(t, http.MethodPost, "/api/word/update-batch", nil)

		require.Equal(t, http.StatusAccepted, w.Code)
		require.Len(t, f.queue.enqueued, 1)
		assert.IsType(t, tasks.RefillMissingTask{}, f.queue.enqueued[0])
		assert.Zero(t, f.refill.calls)
	})
}
