package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weibaohui/landingkit/internal/service"
)

// CopyHandler AI 文案 Handler
type CopyHandler struct {
	service service.CopywriterService
}

func NewCopyHandler(service service.CopywriterService) *CopyHandler {
	return &CopyHandler{service: service}
}

// Generate POST /ai/generate，action 为 full、section 或 improve
func (h *CopyHandler) Generate(c *gin.Context) {
	var req service.CopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}
