package handler

import (
	"net/http"
	"strconv"

	"folio-go/internal/service"
	"folio-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// SearchHandler 负责处理站点全文搜索的 API 请求。
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler 创建一个新的 SearchHandler 实例。
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Search 处理全文搜索请求（公开接口），跨文章与项目检索。
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的查询参数"})
		return
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || size <= 0 {
		size = 20
	}

	results, err := h.searchService.Search(c.Request.Context(), query, size)
	if err != nil {
		log.Errorf("Search: failed, query: '%s', error: %v", query, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "搜索失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": results, "message": "success"})
}
