// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"strconv"

	"folio-go/internal/model"
	"folio-go/internal/service"
	"folio-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ReviewHandler 负责处理访客评价相关的 API 请求。
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler 创建一个新的 ReviewHandler 实例。
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// SubmitReviewRequest 定义了提交评价 API 的请求体结构。
type SubmitReviewRequest struct {
	Author  string `json:"author" binding:"required"`
	Company string `json:"company"`
	Content string `json:"content" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
}

// Submit 接收一条访客评价（公开接口），进入待审核状态。
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	review := &model.Review{
		Author:  req.Author,
		Company: req.Company,
		Content: req.Content,
		Rating:  req.Rating,
	}
	if err := h.reviewService.SubmitReview(review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "评价已提交，等待审核"})
}

// ListPublic 返回已通过审核的评价（公开接口）。
func (h *ReviewHandler) ListPublic(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	reviews, total, err := h.reviewService.ListApproved(page, pageSize)
	if err != nil {
		log.Error("ListApprovedReviews: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"items": reviews,
			"total": total,
		},
	})
}

// ListAll 返回全部评价（管理接口），可按 status 过滤。
func (h *ReviewHandler) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	status := c.Query("status")

	reviews, total, err := h.reviewService.ListAll(status, page, pageSize)
	if err != nil {
		log.Error("ListAllReviews: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"items": reviews,
			"total": total,
		},
	})
}

// Approve 通过一条评价的审核（管理接口）。
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	if err := h.reviewService.Approve(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "评价不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "评价审核通过"})
}

// Delete 删除一条评价（管理接口）。
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	if err := h.reviewService.Delete(uint(id)); err != nil {
		log.Error("DeleteReview: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "评价删除成功"})
}
