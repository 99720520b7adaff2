package service

import (
	"context"
	"errors"
	"strings"

	"folio-go/internal/model"
	"folio-go/internal/repository"
	"folio-go/pkg/log"

	"gorm.io/gorm"
)

// ProjectService 接口定义了项目相关的业务操作。
type ProjectService interface {
	ListProjects(publishedOnly, featuredOnly bool, page, pageSize int) ([]model.Project, int64, error)
	GetProjectBySlug(slug string) (*model.Project, error)
	CreateProject(ctx context.Context, project *model.Project) error
	UpdateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id uint) error
	SetFeatured(ctx context.Context, id uint, featured bool) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	indexer     ContentIndexer
}

// NewProjectService 创建一个新的 ProjectService 实例。
func NewProjectService(projectRepo repository.ProjectRepository, indexer ContentIndexer) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		indexer:     indexer,
	}
}

// ListProjects 分页返回项目列表。
func (s *projectService) ListProjects(publishedOnly, featuredOnly bool, page, pageSize int) ([]model.Project, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.projectRepo.FindWithPagination(publishedOnly, featuredOnly, (page-1)*pageSize, pageSize)
}

// GetProjectBySlug 根据 slug 返回一个项目。
func (s *projectService) GetProjectBySlug(slug string) (*model.Project, error) {
	return s.projectRepo.FindBySlug(slug)
}

// CreateProject 创建一个项目，slug 为空时由标题生成并保证唯一。
func (s *projectService) CreateProject(ctx context.Context, project *model.Project) error {
	if strings.TrimSpace(project.Title) == "" {
		return errors.New("项目标题不能为空")
	}
	if project.Slug == "" {
		project.Slug = slugify(project.Title)
	}
	if _, err := s.projectRepo.FindBySlug(project.Slug); err == nil {
		return errors.New("slug 已被占用")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.projectRepo.Create(project); err != nil {
		return err
	}
	// 索引联动失败不影响写库结果，只记录日志
	if err := s.indexer.IndexProject(ctx, project); err != nil {
		log.Warnf("项目写入搜索索引失败: id=%d, error: %v", project.ID, err)
	}
	return nil
}

// UpdateProject 更新一个已存在的项目。
func (s *projectService) UpdateProject(ctx context.Context, project *model.Project) error {
	existing, err := s.projectRepo.FindByID(project.ID)
	if err != nil {
		return err
	}
	if project.Slug == "" {
		project.Slug = existing.Slug
	}
	if err := s.projectRepo.Update(project); err != nil {
		return err
	}
	if err := s.indexer.IndexProject(ctx, project); err != nil {
		log.Warnf("项目更新搜索索引失败: id=%d, error: %v", project.ID, err)
	}
	return nil
}

// DeleteProject 删除一个项目并同步移除其搜索文档。
func (s *projectService) DeleteProject(ctx context.Context, id uint) error {
	if err := s.projectRepo.Delete(id); err != nil {
		return err
	}
	if err := s.indexer.RemoveProject(ctx, id); err != nil {
		log.Warnf("项目移除搜索索引失败: id=%d, error: %v", id, err)
	}
	return nil
}

// SetFeatured 切换项目的精选状态。
func (s *projectService) SetFeatured(ctx context.Context, id uint, featured bool) error {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return err
	}
	project.Featured = featured
	return s.UpdateProject(ctx, project)
}
