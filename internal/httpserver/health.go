package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github-pr-watcher/pkg/response"
)

const (
	HealthVersion = "1.0.0"
	ServiceName   = "GitHub PR Watcher"
)

// HealthResponse is the fixed /health payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// healthCheck always answers {"status":"ok"} while the process serves HTTP.
// @Summary Health Check
// @Description Fixed liveness payload
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Service: ServiceName})
}

// readyCheck reports the optional components that are wired in.
// @Summary Readiness Check
// @Description Reports readiness and whether the task tracker sync is configured
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "ready",
		"version": HealthVersion,
		"service": ServiceName,
		"tracker": srv.trackerHandler != nil,
	})
}

// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": HealthVersion,
		"service": ServiceName,
	})
}
