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

// ProfileHandler 负责处理个人资料与工作经历相关的 API 请求。
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler 创建一个新的 ProfileHandler 实例。
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile 返回站点个人资料（公开接口）。
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile()
	if err != nil {
		log.Error("GetProfile: failed to load profile", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": profile, "message": "success"})
}

// UpdateProfile 更新站点个人资料（管理接口）。
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var profile model.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	if err := h.profileService.UpdateProfile(&profile); err != nil {
		log.Warnf("UpdateProfile: failed, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "个人资料更新成功"})
}

// ListExperiences 按展示顺序返回全部工作经历（公开接口）。
func (h *ProfileHandler) ListExperiences(c *gin.Context) {
	experiences, err := h.profileService.ListExperiences()
	if err != nil {
		log.Error("ListExperiences: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": experiences, "message": "success"})
}

// CreateExperience 创建一条工作经历（管理接口）。
func (h *ProfileHandler) CreateExperience(c *gin.Context) {
	var exp model.WorkExperience
	if err := c.ShouldBindJSON(&exp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	if err := h.profileService.CreateExperience(&exp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": exp, "message": "工作经历创建成功"})
}

// UpdateExperience 更新一条工作经历（管理接口）。
func (h *ProfileHandler) UpdateExperience(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	var exp model.WorkExperience
	if err := c.ShouldBindJSON(&exp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}
	exp.ID = uint(id)

	if err := h.profileService.UpdateExperience(&exp); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "工作经历不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": exp, "message": "工作经历更新成功"})
}

// DeleteExperience 删除一条工作经历（管理接口）。
func (h *ProfileHandler) DeleteExperience(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	if err := h.profileService.DeleteExperience(uint(id)); err != nil {
		log.Error("DeleteExperience: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "工作经历删除成功"})
}
