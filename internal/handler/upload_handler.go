// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"folio-go/internal/service"
	"folio-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// UploadHandler 负责处理站点素材上传相关的 API 请求。
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler 创建一个新的 UploadHandler 实例。
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadAsset 处理图片素材上传（管理接口），表单字段名为 file。
func (h *UploadHandler) UploadAsset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未能获取上传的文件"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法读取上传的文件"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	objectName, err := h.uploadService.UploadImage(c.Request.Context(), fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		log.Errorf("UploadAsset: failed, filename: '%s', error: %v", fileHeader.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "素材上传成功",
		"data":    gin.H{"objectName": objectName},
	})
}

// GetAssetURL 为已上传的素材生成预签名下载链接（公开接口）。
func (h *UploadHandler) GetAssetURL(c *gin.Context) {
	objectName := c.Query("object")
	if objectName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 object 参数"})
		return
	}

	url, err := h.uploadService.GetDownloadURL(objectName)
	if err != nil {
		log.Errorf("GetAssetURL: failed, object: '%s', error: %v", objectName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成下载链接失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"url": url},
	})
}
