package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weibaohui/landingkit/internal/service"
	"k8s.io/klog/v2"
)

// statusFor 将服务层错误映射为 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidClientData),
		errors.Is(err, service.ErrInvalidTemplateData),
		errors.Is(err, service.ErrInvalidProjectData),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidShopifyRequest),
		errors.Is(err, service.ErrShopifyNotConnected),
		errors.Is(err, service.ErrVariantUnresolved),
		errors.Is(err, service.ErrInvalidCopyRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrShopifyNotConfigured),
		errors.Is(err, service.ErrCopyUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError 输出 {"error": ...}，5xx 同时记录日志
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		klog.Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
