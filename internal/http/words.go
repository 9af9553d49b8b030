package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexicon/internal/lexicon"
	"github.com/mrlokans/lexicon/internal/tasks"
)

// WordsController serves vocabulary enrichment endpoints.
type WordsController struct {
	service WordService
	refill  RefillRunner
	queue   TaskQueue
}

// NewWordsController creates a WordsController. queue may be nil, in which
// case every request is served synchronously.
func NewWordsController(service WordService, refill RefillRunner, queue TaskQueue) *WordsController {
	return &WordsController{service: service, refill: refill, queue: queue}
}

// WordRequest is the body of the create and get endpoints.
type WordRequest struct {
	Word  string `json:"word"`
	Async bool   `json:"async,omitempty"`
}

// TaskResponse is returned for work handed to the task queue.
type TaskResponse struct {
	TaskID string `json:"task_id"`
	Type   string `json:"type"`
}

// Create handles POST /api/word/create
// Enriches a word and returns the stored record. With async=true and a
// task queue available, the work is enqueued and 202 is returned.
func (wc *WordsController) Create(c *gin.Context) {
	var req WordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	word, err := lexicon.NormalizeWord(req.Word)
	if err != nil {
		respondDomainError(c, err, "create word")
		return
	}

	if req.Async && wc.queue != nil {
		task := tasks.EnrichWordTask{Word: word}
		id, err := wc.queue.Enqueue(c.Request.Context(), task)
		if err != nil {
			respondInternalError(c, err, "enqueue enrich word")
			return
		}
		respondAccepted(c, "enrichment enqueued", TaskResponse{TaskID: id, Type: task.Config().Name})
		return
	}

	record, err := wc.service.Enrich(c.Request.Context(), word)
	if err != nil {
		respondDomainError(c, err, "create word")
		return
	}
	c.JSON(http.StatusOK, record)
}

// Get handles POST /api/word/get
func (wc *WordsController) Get(c *gin.Context) {
	var req WordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	wc.lookup(c, req.Word)
}

// GetByPath handles GET /api/word/:word
func (wc *WordsController) GetByPath(c *gin.Context) {
	wc.lookup(c, c.Param("word"))
}

func (wc *WordsController) lookup(c *gin.Context, word string) {
	record, err := wc.service.Lookup(c.Request.Context(), word)
	if err != nil {
		respondDomainError(c, err, "get word")
		return
	}
	c.JSON(http.StatusOK, record)
}

// List handles GET /api/word?limit=&offset=
func (wc *WordsController) List(c *gin.Context) {
	limit, offset, ok := parsePagination(c)
	if !ok {
		return
	}

	records, total, err := wc.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondInternalError(c, err, "list words")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    records,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(records)) < total,
	})
}

// Delete handles DELETE /api/word/:id
func (wc *WordsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := wc.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, lexicon.ErrNotFound) {
			respondNotFound(c, "word")
			return
		}
		respondInternalError(c, err, "delete word")
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateBatch handles POST /api/word/update-batch
// Fills in every record missing meanings. Runs on the task queue when one
// is available, otherwise inline.
func (wc *WordsController) UpdateBatch(c *gin.Context) {
	if wc.queue != nil {
		task := tasks.RefillMissingTask{}
		id, err := wc.queue.Enqueue(c.Request.Context(), task)
		if err != nil {
			respondInternalError(c, err, "enqueue refill")
			return
		}
		respondAccepted(c, "refill enqueued", TaskResponse{TaskID: id, Type: task.Config().Name})
		return
	}

	report, err := wc.refill.RunOnce(c.Request.Context())
	if report == nil {
		respondDomainError(c, err, "refill")
		return
	}
	// Per-word failures are listed in the report outcomes.
	c.JSON(http.StatusOK, report)
}
