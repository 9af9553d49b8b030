package http

import (
	"net/http"
	"testing"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Ping(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodGet, "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestRouter_TaskStatus(t *testing.T) {
	t.Run("not mounted without a queue", func(t *testing.T) {
		f := newRouterFixture()

		w := f.do(t, http.MethodGet, "/api/tasks/abc", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("known and unknown tasks", func(t *testing.T) {
		f := newRouterFixture()
		f.queue = &fakeQueue{statuses: map[string]backlite.TaskStatus{"abc": backlite.TaskStatusSuccess}}

		w := f.do(t, http.MethodGet, "/api/tasks/abc", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"success"`)

		w = f.do(t, http.MethodGet, "/api/tasks/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
