package service

import (
	"errors"
	"strings"

	"folio-go/internal/model"
	"folio-go/internal/repository"

	"gorm.io/gorm"
)

// ProfileService 接口定义了个人资料与工作经历的业务操作。
type ProfileService interface {
	GetProfile() (*model.Profile, error)
	UpdateProfile(profile *model.Profile) error
	ListExperiences() ([]model.WorkExperience, error)
	CreateExperience(exp *model.WorkExperience) error
	UpdateExperience(exp *model.WorkExperience) error
	DeleteExperience(id uint) error
}

type profileService struct {
	profileRepo    repository.ProfileRepository
	experienceRepo repository.ExperienceRepository
}

// NewProfileService 创建一个新的 ProfileService 实例。
func NewProfileService(profileRepo repository.ProfileRepository, experienceRepo repository.ExperienceRepository) ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		experienceRepo: experienceRepo,
	}
}

// GetProfile 返回站点个人资料，记录不存在时返回空资料而非错误。
func (s *profileService) GetProfile() (*model.Profile, error) {
	profile, err := s.profileRepo.Get()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Profile{}, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile 更新站点个人资料（单行，始终写 ID=1）。
func (s *profileService) UpdateProfile(profile *model.Profile) error {
	if strings.TrimSpace(profile.FullName) == "" {
		return errors.New("姓名不能为空")
	}
	profile.ID = 1
	return s.profileRepo.Save(profile)
}

// ListExperiences 按展示顺序返回全部工作经历。
func (s *profileService) ListExperiences() ([]model.WorkExperience, error) {
	return s.experienceRepo.FindAll()
}

// CreateExperience 创建一条工作经历。
func (s *profileService) CreateExperience(exp *model.WorkExperience) error {
	if strings.TrimSpace(exp.Company) == "" || strings.TrimSpace(exp.Position) == "" {
		return errors.New("公司与职位不能为空")
	}
	if strings.TrimSpace(exp.StartDate) == "" {
		return errors.New("开始时间不能为空")
	}
	return s.experienceRepo.Create(exp)
}

// UpdateExperience 更新一条已存在的工作经历。
func (s *profileService) UpdateExperience(exp *model.WorkExperience) error {
	if _, err := s.experienceRepo.FindByID(exp.ID); err != nil {
		return err
	}
	return s.experienceRepo.Update(exp)
}

// DeleteExperience 删除一条工作经历。
func (s *profileService) DeleteExperience(id uint) error {
	return s.experienceRepo.Delete(id)
}
