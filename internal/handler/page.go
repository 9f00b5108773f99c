package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weibaohui/landingkit/internal/service"
)

// PageHandler 公开落地页
type PageHandler struct {
	service service.PageService
}

func NewPageHandler(service service.PageService) *PageHandler {
	return &PageHandler{service: service}
}

// Get GET /p/:slug，未发布的页面与不存在的页面同样返回 404
func (h *PageHandler) Get(c *gin.Context) {
	page, err := h.service.Page(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=60")
	c.JSON(http.StatusOK, gin.H{"data": page})
}
