package repository

import (
	"context"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *model.QuizAttempt) error {
	return translate(r.DB.WithContext(ctx).Create(attempt).Error, nil, util.ErrAttemptExists)
}

func (r *AttemptRepository) FindByUserAndDate(ctx context.Context, userID uint, day string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND quiz_date = ?", userID, day).
		First(&attempt).Error
	if err != nil {
		return nil, translate(err, util.ErrAttemptNotFound, nil)
	}
	return &attempt, nil
}

func (r *AttemptRepository) ListByDate(ctx context.Context, day string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Select("id", "user_id", "quiz_date", "score", "elapsed_seconds").
		Where("quiz_date = ?", day).
		Order("score DESC, elapsed_seconds ASC, id ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("quiz_date DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) DeleteByDate(ctx context.Context, day string) (int64, error) {
	query := r.DB.WithContext(ctx)
	if day != "" {
		query = query.Where("quiz_date = ?", day)
	} else {
		query = query.Where("1 = 1")
	}
	res := query.Delete(&model.QuizAttempt{})
	return res.RowsAffected, res.Error
}
