package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"
	"school_quiz_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ProductRequest 礼品录入
// swagger:model ProductRequest
type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents" binding:"min=0"`
	Stock       int    `json:"stock" binding:"min=0"`
	Enabled     *bool  `json:"enabled"`
}

type ProductService struct {
	Products ProductStore
	Storage  *StorageService
}

func NewProductService(products ProductStore, storage *StorageService) *ProductService {
	return &ProductService{Products: products, Storage: storage}
}

func (r ProductRequest) apply(p *model.Product) {
	p.Name = strings.TrimSpace(r.Name)
	p.Description = r.Description
	p.PriceCents = r.PriceCents
	p.Stock = r.Stock
	if r.Enabled != nil {
		p.Enabled = *r.Enabled
	}
}

func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*model.Product, error) {
	p := &model.Product{Enabled: true}
	req.apply(p)
	if p.Name == "" {
		return nil, util.Validationf("name is required")
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, req ProductRequest) (*model.Product, error) {
	p, err := s.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(p)
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Products.FindByID(ctx, id); err != nil {
		return err
	}
	return s.Products.Delete(ctx, id)
}

func (s *ProductService) List(ctx context.Context, enabledOnly bool) ([]model.Product, error) {
	return s.Products.List(ctx, enabledOnly)
}

// UploadImage 上传礼品图片并替换原图
func (s *ProductService) UploadImage(ctx context.Context, id uint, filename string, reader io.Reader, size int64, contentType string) (*model.Product, error) {
	p, err := s.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !util.HasAllowedExtension(filename, util.AllowedImageExtensions) {
		return nil, util.Validationf("unsupported image extension %q", filepath.Ext(filename))
	}
	if size > util.MaxImageSizeByte {
		return nil, util.Validationf("image exceeds %d bytes", util.MaxImageSizeByte)
	}

	key := fmt.Sprintf("products/%d/%d%s", p.ID, time.Now().UnixNano(), strings.ToLower(filepath.Ext(filename)))
	url, err := s.Storage.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	old := p.ImageURL
	p.ImageURL = url
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}

	if old != "" {
		if oldKey := s.Storage.KeyFromURL(old); oldKey != "" {
			if err := s.Storage.Delete(ctx, oldKey); err != nil {
				logger.Log.Warn("delete old product image failed", zap.String("key", oldKey), zap.Error(err))
			}
		}
	}
	return p, nil
}
