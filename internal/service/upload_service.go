package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"folio-go/internal/config"
	"folio-go/pkg/storage"
	"folio-go/pkg/token"
)

// 仅接受站点展示会用到的图片格式。
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".svg":  true,
}

// UploadService 接口定义了站点素材的上传与访问操作。
type UploadService interface {
	UploadImage(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (objectName string, err error)
	GetDownloadURL(objectName string) (string, error)
}

type uploadService struct {
	minioCfg config.MinIOConfig
}

// NewUploadService 创建一个新的 UploadService 实例。
func NewUploadService(minioCfg config.MinIOConfig) UploadService {
	return &uploadService{minioCfg: minioCfg}
}

// UploadImage 将一张图片写入对象存储，返回生成的对象名。
func (s *uploadService) UploadImage(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return "", errors.New("不支持的图片格式")
	}

	objectName := fmt.Sprintf("assets/%s%s", token.GenerateRandomString(16), ext)
	if err := storage.PutObject(ctx, s.minioCfg.BucketName, objectName, reader, size, contentType); err != nil {
		return "", err
	}
	return objectName, nil
}

// GetDownloadURL 为一个对象生成 24 小时有效的预签名下载链接。
func (s *uploadService) GetDownloadURL(objectName string) (string, error) {
	return storage.GetPresignedURL(s.minioCfg.BucketName, objectName, 24*time.Hour)
}
