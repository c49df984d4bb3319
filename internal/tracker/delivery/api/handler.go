package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github-pr-watcher/internal/tracker"
	pkgResponse "github-pr-watcher/pkg/response"
)

// SyncReadyForQA godoc
// @Summary Run the Ready For QA sync
// @Description Moves tasks whose key matches a branch recently merged into the target branch to "Ready For QA".
// @Tags Tracker
// @Accept json
// @Produce json
// @Param request body SyncRequest false "Overrides of the configured sync input"
// @Success 200 {object} response.Resp{data=tracker.SyncOutput}
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /tracker/sync [post]
func (h *handler) SyncReadyForQA(c *gin.Context) {
	ctx := c.Request.Context()

	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.l.Warnf(ctx, "internal.tracker.delivery.api.SyncReadyForQA: bad request: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	out, err := h.uc.SyncReadyForQA(ctx, req.toInput(h.defaults))
	if err != nil {
		h.respondError(c, err)
		return
	}

	pkgResponse.OK(c, out)
}

// UpdateTaskStatus godoc
// @Summary Update one task's status
// @Tags Tracker
// @Accept json
// @Produce json
// @Param key path string true "Task key, e.g. PRJ-T12"
// @Param request body UpdateStatusRequest false "Target status and optional comment"
// @Success 200 {object} response.Resp{data=tracker.TaskUpdate}
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /tracker/tasks/{key}/status [post]
func (h *handler) UpdateTaskStatus(c *gin.Context) {
	ctx := c.Request.Context()

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		pkgResponse.Error(c, err, nil)
		return
	}

	out, err := h.uc.UpdateStatusByKey(ctx, tracker.UpdateStatusInput{
		TaskKey: c.Param("key"),
		Status:  req.Status,
		Comment: req.Comment,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	pkgResponse.OK(c, out)
}

func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tracker.ErrInvalidInput), errors.Is(err, tracker.ErrUnknownStatus),
		errors.Is(err, tracker.ErrTargetIsTaskKey):
		pkgResponse.Error(c, err, nil)
	case errors.Is(err, tracker.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, pkgResponse.Resp{ErrorCode: http.StatusNotFound, Message: err.Error()})
	default:
		h.l.Errorf(c.Request.Context(), "internal.tracker.delivery.api: %v", err)
		pkgResponse.InternalError(c, err)
	}
}
