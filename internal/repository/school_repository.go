package repository

import (
	"context"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"

	"gorm.io/gorm"
)

type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

func (r *SchoolRepository) Create(ctx context.Context, school *model.School) error {
	return translate(r.DB.WithContext(ctx).Create(school).Error, nil, util.ErrSchoolCodeExists)
}

func (r *SchoolRepository) Update(ctx context.Context, school *model.School) error {
	return translate(r.DB.WithContext(ctx).Save(school).Error, nil, util.ErrSchoolCodeExists)
}

func (r *SchoolRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.School{}, id).Error
}

func (r *SchoolRepository) FindByID(ctx context.Context, id uint) (*model.School, error) {
	var school model.School
	if err := r.DB.WithContext(ctx).First(&school, id).Error; err != nil {
		return nil, translate(err, util.ErrSchoolNotFound, nil)
	}
	return &school, nil
}

func (r *SchoolRepository) List(ctx context.Context, city, search string, page, limit int) ([]model.School, int64, error) {
	var schools []model.School
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.School{})
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", like, like)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset((page - 1) * limit).Limit(limit).Order("name ASC").Find(&schools).Error
	return schools, total, err
}
