package repository

import (
	"context"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.DB.WithContext(ctx).Create(q).Error
}

func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	return r.DB.WithContext(ctx).Save(q).Error
}

func (r *QuestionRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, translate(err, util.ErrQuestionNotFound, nil)
	}
	return &q, nil
}

// ListByLevel 按主键顺序返回，保证每日抽题可复现
func (r *QuestionRepository) ListByLevel(ctx context.Context, level int, enabledOnly bool) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.WithContext(ctx).Where("level = ?", level)
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	err := query.Order("id ASC").Find(&questions).Error
	return questions, err
}
