package handler

import (
	"net/http"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/sellerops/internal/interfaces/http/router"
)

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	routes := func() []router.RouteInfo {
		return []router.RouteInfo{{Domain: "routes", Method: http.MethodGet, Path: "/api/v1/routes"}}
	}
	h := NewSystemHandler("sellerops", "1.2.0", routes)

	w := perform(func(r *gin.Engine) { r.GET("/system/info", h.GetSystemInfo) }, http.MethodGet, "/system/info", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var info SystemInfoResponse
	decodeData(t, w, &info)
	assert.Equal(t, "sellerops", info.Name)
	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	require.Len(t, info.Routes, 1)
	assert.Equal(t, "/api/v1/routes", info.Routes[0].Path)
}

func TestSystemHandler_GetSystemInfoWithoutRoutes(t *testing.T) {
	h := NewSystemHandler("sellerops", "dev", nil)

	w := perform(func(r *gin.Engine) { r.GET("/system/info", h.GetSystemInfo) }, http.MethodGet, "/system/info", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"routes"`)
}

func TestSystemHandler_Ping(t *testing.T) {
	h := NewSystemHandler("sellerops", "dev", nil)

	w := perform(func(r *gin.Engine) { r.GET("/system/ping", h.Ping) }, http.MethodGet, "/system/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var pong PingResponse
	decodeData(t, w, &pong)
	assert.Equal(t, "pong", pong.Message)
	_, err := time.Parse(time.RFC3339, pong.Timestamp)
	assert.NoError(t, err)
}
