package api

import "github.com/gin-gonic/gin"

// Handler exposes the tracker sync over HTTP.
type Handler interface {
	// SyncReadyForQA runs one Ready For QA sync.
	SyncReadyForQA(c *gin.Context)
	// UpdateTaskStatus moves a single task to a named status.
	UpdateTaskStatus(c *gin.Context)
}
