package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexicon/internal/settingsstore"
)

// SystemController exposes provider selection and refill schedule settings.
type SystemController struct {
	selector ProviderSelector
	catalog  ProviderCatalog
	refill   RefillSettingsStore
	schedule RefillScheduleControl
}

func NewSystemController(selector ProviderSelector, catalog ProviderCatalog, refill RefillSettingsStore, schedule RefillScheduleControl) *SystemController {
	return &SystemController{
		selector: selector,
		catalog:  catalog,
		refill:   refill,
		schedule: schedule,
	}
}

// ModelRequest selects the active provider.
type ModelRequest struct {
	Name string `json:"name"`
}

// GetModel handles GET /api/system/model
func (sc *SystemController) GetModel(c *gin.Context) {
	name, err := sc.selector.Active(c.Request.Context())
	if err != nil {
		respondDomainError(c, err, "get active provider")
		return
	}
	c.JSON(http.StatusOK, ModelRequest{Name: name})
}

// SetModel handles POST /api/system/model
// The name is stored as given; an unknown provider fails on the next
// enrichment, not here.
func (sc *SystemController) SetModel(c *gin.Context) {
	var req ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := sc.selector.SetActive(c.Request.Context(), req.Name); err != nil {
		respondDomainError(c, err, "set active provider")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "active provider updated", Data: req})
}

// ListModels handles GET /api/model/list
func (sc *SystemController) ListModels(c *gin.Context) {
	list, err := sc.catalog.ListActive(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list providers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": list})
}

// RefillInfo describes the refill schedule and last run.
type RefillInfo struct {
	Schedule   settingsstore.RefillScheduleInfo `json:"schedule"`
	LastRun    settingsstore.RefillStatus       `json:"last_run"`
	NextRunAt  *time.Time                       `json:"next_run_at,omitempty"`
	InProgress bool                             `json:"in_progress"`
}

// GetRefill handles GET /api/system/refill
func (sc *SystemController) GetRefill(c *gin.Context) {
	ctx := c.Request.Context()
	info := RefillInfo{
		Schedule: sc.refill.Info(ctx),
		LastRun:  sc.refill.Status(ctx),
	}
	if sc.schedule != nil {
		info.NextRunAt = sc.schedule.NextRunTime()
		info.InProgress = sc.schedule.IsRefilling()
	}
	c.JSON(http.StatusOK, info)
}

// UpdateRefill handles PUT /api/system/refill
func (sc *SystemController) UpdateRefill(c *gin.Context) {
	var req settingsstore.RefillScheduleConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	if err := sc.refill.Save(ctx, req); err != nil {
		respondDomainError(c, err, "save refill schedule")
		return
	}

	if sc.schedule != nil {
		if err := sc.schedule.Reschedule(ctx); err != nil {
			respondInternalError(c, err, "reschedule refill")
			return
		}
	}
	sc.GetRefill(c)
}
