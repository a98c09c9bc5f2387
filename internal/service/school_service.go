package service

import (
	"context"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"
	"strings"
)

// SchoolRequest 创建/更新学校
// swagger:model SchoolRequest
type SchoolRequest struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required"`
	City         string `json:"city"`
	Address      string `json:"address"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
}

type SchoolService struct {
	Schools SchoolStore
}

func NewSchoolService(schools SchoolStore) *SchoolService {
	return &SchoolService{Schools: schools}
}

func (s *SchoolService) Create(ctx context.Context, req SchoolRequest) (*model.School, error) {
	school := &model.School{
		Name:         strings.TrimSpace(req.Name),
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		City:         req.City,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
	}
	if school.Code == "" {
		return nil, util.Validationf("code is required")
	}
	if err := s.Schools.Create(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) Update(ctx context.Context, id uint, req SchoolRequest) (*model.School, error) {
	school, err := s.Schools.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	school.Name = strings.TrimSpace(req.Name)
	school.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	school.City = req.City
	school.Address = req.Address
	school.ContactEmail = req.ContactEmail
	if err := s.Schools.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Schools.FindByID(ctx, id); err != nil {
		return err
	}
	return s.Schools.Delete(ctx, id)
}

func (s *SchoolService) Get(ctx context.Context, id uint) (*model.School, error) {
	return s.Schools.FindByID(ctx, id)
}

func (s *SchoolService) List(ctx context.Context, city, search string, page, limit int) ([]model.School, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}
	return s.Schools.List(ctx, city, search, page, limit)
}
