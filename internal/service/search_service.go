package service

import (
	"context"
	"strings"

	"folio-go/internal/config"
	"folio-go/internal/model"
	"folio-go/pkg/es"
)

// ContentIndexer 供内容服务在写路径上联动搜索索引。
type ContentIndexer interface {
	IndexPost(ctx context.Context, post *model.BlogPost) error
	RemovePost(ctx context.Context, id uint) error
	IndexProject(ctx context.Context, project *model.Project) error
	RemoveProject(ctx context.Context, id uint) error
}

// SearchService 接口定义了站点全文搜索的业务操作。
type SearchService interface {
	ContentIndexer
	Search(ctx context.Context, query string, size int) ([]model.SearchDocument, error)
}

type searchService struct {
	esCfg config.ElasticsearchConfig
}

// NewSearchService 创建一个新的 SearchService 实例。
func NewSearchService(esCfg config.ElasticsearchConfig) SearchService {
	return &searchService{esCfg: esCfg}
}

// Search 在站点索引中执行全文检索，query 为空时返回空结果。
func (s *searchService) Search(ctx context.Context, query string, size int) ([]model.SearchDocument, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.SearchDocument{}, nil
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return es.Search(ctx, s.esCfg.IndexName, query, size)
}

// IndexPost 将一篇博客文章写入搜索索引（同 ID 覆盖）。
func (s *searchService) IndexPost(ctx context.Context, post *model.BlogPost) error {
	return es.IndexDocument(ctx, s.esCfg.IndexName, model.SearchDocument{
		DocType:   model.SearchDocPost,
		RefID:     post.ID,
		Slug:      post.Slug,
		Title:     post.Title,
		Summary:   post.Summary,
		Content:   post.Content,
		Tags:      post.Tags,
		Published: post.Published,
	})
}

// RemovePost 将一篇博客文章从搜索索引中移除。
func (s *searchService) RemovePost(ctx context.Context, id uint) error {
	return es.DeleteDocument(ctx, s.esCfg.IndexName, model.SearchDocPost, id)
}

// IndexProject 将一个项目写入搜索索引（同 ID 覆盖）。
func (s *searchService) IndexProject(ctx context.Context, project *model.Project) error {
	return es.IndexDocument(ctx, s.esCfg.IndexName, model.SearchDocument{
		DocType:   model.SearchDocProject,
		RefID:     project.ID,
		Slug:      project.Slug,
		Title:     project.Title,
		Summary:   project.Summary,
		Content:   project.Description,
		Tags:      project.Tags,
		Published: project.Published,
	})
}

// RemoveProject 将一个项目从搜索索引中移除。
func (s *searchService) RemoveProject(ctx context.Context, id uint) error {
	return es.DeleteDocument(ctx, s.esCfg.IndexName, model.SearchDocProject, id)
}
