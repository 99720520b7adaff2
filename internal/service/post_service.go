package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"folio-go/internal/model"
	"folio-go/internal/repository"
	"folio-go/pkg/log"

	"gorm.io/gorm"
)

// PostService 接口定义了博客文章相关的业务操作。
type PostService interface {
	ListPosts(publishedOnly bool, page, pageSize int) ([]model.BlogPost, int64, error)
	GetPostBySlug(slug string, publishedOnly bool) (*model.BlogPost, error)
	CreatePost(ctx context.Context, post *model.BlogPost) error
	UpdatePost(ctx context.Context, post *model.BlogPost) error
	DeletePost(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) error
}

type postService struct {
	postRepo repository.PostRepository
	indexer  ContentIndexer
}

// NewPostService 创建一个新的 PostService 实例。
func NewPostService(postRepo repository.PostRepository, indexer ContentIndexer) PostService {
	return &postService{
		postRepo: postRepo,
		indexer:  indexer,
	}
}

// ListPosts 分页返回博客文章列表。
func (s *postService) ListPosts(publishedOnly bool, page, pageSize int) ([]model.BlogPost, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return s.postRepo.FindWithPagination(publishedOnly, (page-1)*pageSize, pageSize)
}

// GetPostBySlug 根据 slug 返回一篇文章；公开访问时未发布文章视同不存在。
func (s *postService) GetPostBySlug(slug string, publishedOnly bool) (*model.BlogPost, error) {
	post, err := s.postRepo.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if publishedOnly && !post.Published {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

// CreatePost 创建一篇文章，slug 为空时由标题生成并保证唯一。
func (s *postService) CreatePost(ctx context.Context, post *model.BlogPost) error {
	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Content) == "" {
		return errors.New("文章标题与正文不能为空")
	}
	if post.Slug == "" {
		post.Slug = slugify(post.Title)
	}
	if _, err := s.postRepo.FindBySlug(post.Slug); err == nil {
		return errors.New("slug 已被占用")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if post.Published && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.postRepo.Create(post); err != nil {
		return err
	}
	if err := s.indexer.IndexPost(ctx, post); err != nil {
		log.Warnf("文章写入搜索索引失败: id=%d, error: %v", post.ID, err)
	}
	return nil
}

// UpdatePost 更新一篇已存在的文章。
func (s *postService) UpdatePost(ctx context.Context, post *model.BlogPost) error {
	existing, err := s.postRepo.FindByID(post.ID)
	if err != nil {
		return err
	}
	if post.Slug == "" {
		post.Slug = existing.Slug
	}
	if post.Published && post.PublishedAt == nil {
		post.PublishedAt = existing.PublishedAt
		if post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}
	if err := s.postRepo.Update(post); err != nil {
		return err
	}
	if err := s.indexer.IndexPost(ctx, post); err != nil {
		log.Warnf("文章更新搜索索引失败: id=%d, error: %v", post.ID, err)
	}
	return nil
}

// DeletePost 删除一篇文章并同步移除其搜索文档。
func (s *postService) DeletePost(ctx context.Context, id uint) error {
	if err := s.postRepo.Delete(id); err != nil {
		return err
	}
	if err := s.indexer.RemovePost(ctx, id); err != nil {
		log.Warnf("文章移除搜索索引失败: id=%d, error: %v", id, err)
	}
	return nil
}

// SetPublished 切换文章的发布状态。
func (s *postService) SetPublished(ctx context.Context, id uint, published bool) error {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		return err
	}
	post.Published = published
	if published && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	return s.UpdatePost(ctx, post)
}
