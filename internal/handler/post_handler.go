// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"folio-go/internal/model"
	"folio-go/internal/service"
	"folio-go/pkg/log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PostHandler 负责处理博客文章相关的 API 请求。
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler 创建一个新的 PostHandler 实例。
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// List 返回文章列表。公开访问只看到已发布文章，管理接口传 all=true 看全部。
func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	publishedOnly := c.Query("all") != "true"

	posts, total, err := h.postService.ListPosts(publishedOnly, page, pageSize)
	if err != nil {
		log.Error("ListPosts: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"items": posts,
			"total": total,
		},
	})
}

// GetBySlug 根据 slug 返回一篇已发布的文章（公开接口）。
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.postService.GetPostBySlug(c.Param("slug"), true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "文章不存在"})
			return
		}
		log.Error("GetPostBySlug: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": post, "message": "success"})
}

// Create 创建一篇文章（管理接口）。
func (h *PostHandler) Create(c *gin.Context) {
	var post model.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	if err := h.postService.CreatePost(c.Request.Context(), &post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": post, "message": "文章创建成功"})
}

// Update 更新一篇文章（管理接口）。
func (h *PostHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	var post model.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}
	post.ID = uint(id)

	if err := h.postService.UpdatePost(c.Request.Context(), &post); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "文章不存在"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": post, "message": "文章更新成功"})
}

// Delete 删除一篇文章（管理接口）。
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), uint(id)); err != nil {
		log.Error("DeletePost: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "文章删除成功"})
}

// SetPublishedRequest 定义了设置发布状态 API 的请求体结构。
type SetPublishedRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// SetPublished 切换文章发布状态（管理接口）。
func (h *PostHandler) SetPublished(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	var req SetPublishedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	if err := h.postService.SetPublished(c.Request.Context(), uint(id), *req.Published); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "文章不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "发布状态更新成功"})
}
