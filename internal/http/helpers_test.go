package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/lexicon/internal/lexicon"
	"github.com/mrlokans/lexicon/internal/scheduler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		value  string
		wantID uint
		wantOK bool
	}{
		{"123", 123, true},
		{"abc", 0, false},
		{"-1", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			id, ok := parseIDParam(c, "id")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), "invalid id")
			}
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
		wantOK     bool
	}{
		{"", defaultPageSize, 0, true},
		{"limit=5&offset=10", 5, 10, true},
		{"limit=1000", maxPageSize, 0, true},
		{"limit=0", 0, 0, false},
		{"offset=-3", 0, 0, false},
		{"limit=ten", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest("GET", "/api/word?"+tt.query, nil)

			limit, offset, ok := parsePagination(c)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", lexicon.NewValidationError("word", "must not be empty"), http.StatusBadRequest, CodeValidation},
		{"not found", lexicon.NotFoundErrorf("word %q", "apple"), http.StatusNotFound, CodeNotFound},
		{"not configured", lexicon.NotConfiguredErrorf("not set"), http.StatusPreconditionFailed, CodeNotConfigured},
		{"refill busy", scheduler.ErrRefillInProgress, http.StatusConflict, CodeConflict},
		{"duplicate word", lexicon.ConflictErrorf("word %q", "apple"), http.StatusConflict, CodeConflict},
		{"transport", fmt.Errorf("enrich: %w", lexicon.TransportErrorf("status 503")), http.StatusBadGateway, CodeProvider},
		{"schema", lexicon.SchemaErrorf("not json"), http.StatusBadGateway, CodeProvider},
		{"configuration", lexicon.ConfigErrorf("missing LLM_YI_API_KEY"), http.StatusInternalServerError, CodeInternal},
		{"unknown", errors.New("disk full"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondDomainError(c, tt.err, "test")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRespondDomainError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondDomainError(c, lexicon.ConfigErrorf("provider \"yi\" is missing LLM_YI_API_KEY"), "test")

	assert.NotContains(t, w.Body.String(), "LLM_YI_API_KEY")
}
