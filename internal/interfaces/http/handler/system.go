package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erp/sellerops/internal/interfaces/http/router"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	startTime time.Time
	routes    func() []router.RouteInfo
}

// NewSystemHandler creates a new SystemHandler. routes may be nil.
func NewSystemHandler(name, version string, routes func() []router.RouteInfo) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		startTime: time.Now(),
		routes:    routes,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string             `json:"name"`
	Version   string             `json:"version"`
	GoVersion string             `json:"go_version"`
	Uptime    string             `json:"uptime"`
	Routes    []router.RouteInfo `json:"routes,omitempty"`
}

// GetSystemInfo returns the service version, uptime and registered API routes.
// @ID getSystemInfo
// @Summary Get system information
// @Description Returns the service name, version, uptime and registered API routes
// @Tags system
// @Produce json
// @Success 200 {object} APIResponse[SystemInfoResponse]
// @Router /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.routes != nil {
		info.Routes = h.routes()
	}
	h.Success(c, info)
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping answers a liveness check.
// @ID pingSystem
// @Summary Ping
// @Description Answers pong with the server time
// @Tags system
// @Produce json
// @Success 200 {object} APIResponse[PingResponse]
// @Router /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
