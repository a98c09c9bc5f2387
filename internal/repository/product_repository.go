package repository

import (
	"context"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, util.ErrProductNotFound, nil)
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, enabledOnly bool) ([]model.Product, error) {
	var products []model.Product
	query := r.DB.WithContext(ctx)
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	err := query.Order("price_cents ASC").Find(&products).Error
	return products, err
}
