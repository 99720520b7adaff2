package service

import (
	"errors"
	"strings"

	"folio-go/internal/model"
	"folio-go/internal/repository"
)

// ReviewService 接口定义了访客评价相关的业务操作。
type ReviewService interface {
	SubmitReview(review *model.Review) error
	ListApproved(page, pageSize int) ([]model.Review, int64, error)
	ListAll(status string, page, pageSize int) ([]model.Review, int64, error)
	Approve(id uint) error
	Delete(id uint) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

// NewReviewService 创建一个新的 ReviewService 实例。
func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

// SubmitReview 接收一条访客评价，进入待审核状态。
func (s *reviewService) SubmitReview(review *model.Review) error {
	if strings.TrimSpace(review.Author) == "" {
		return errors.New("署名不能为空")
	}
	if strings.TrimSpace(review.Content) == "" {
		return errors.New("评价内容不能为空")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return errors.New("评分必须在 1 到 5 之间")
	}
	review.Status = model.ReviewStatusPending
	return s.reviewRepo.Create(review)
}

// ListApproved 分页返回已通过审核、可对外展示的评价。
func (s *reviewService) ListApproved(page, pageSize int) ([]model.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.reviewRepo.FindByStatus(model.ReviewStatusApproved, (page-1)*pageSize, pageSize)
}

// ListAll 分页返回全部评价，供管理后台审核使用。
func (s *reviewService) ListAll(status string, page, pageSize int) ([]model.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.reviewRepo.FindByStatus(status, (page-1)*pageSize, pageSize)
}

// Approve 将一条评价标记为已通过审核。
func (s *reviewService) Approve(id uint) error {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		return err
	}
	review.Status = model.ReviewStatusApproved
	return s.reviewRepo.Update(review)
}

// Delete 删除一条评价。
func (s *reviewService) Delete(id uint) error {
	return s.reviewRepo.Delete(id)
}
