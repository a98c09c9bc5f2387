package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"school_quiz_backend/internal/config"
	"school_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductImageUploadReplacesOld(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(context.Background(), &config.StorageConfig{Type: util.StorageLocal, LocalPath: dir})
	svc := NewProductService(newMemProductStore(), storage)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProductRequest{Name: " Pen set ", PriceCents: 9900, Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, "Pen set", p.Name)
	assert.True(t, p.Enabled)

	first, err := svc.UploadImage(ctx, p.ID, "pen.PNG", strings.NewReader("one"), 3, "image/png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(first.ImageURL, "/uploads/products/"))
	firstPath := filepath.Join(dir, filepath.FromSlash(storage.KeyFromURL(first.ImageURL)))
	assert.FileExists(t, firstPath)

	second, err := svc.UploadImage(ctx, p.ID, "pen2.jpg", strings.NewReader("two"), 3, "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, first.ImageURL, second.ImageURL)

	_, statErr := os.Stat(firstPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestProductImageUploadValidation(t *testing.T) {
	storage := NewStorageService(context.Background(), &config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()})
	svc := NewProductService(newMemProductStore(), storage)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProductRequest{Name: "Bag"})
	require.NoError(t, err)

	_, err = svc.UploadImage(ctx, p.ID, "script.exe", strings.NewReader("x"), 1, "image/png")
	assert.True(t, errors.Is(err, util.ErrValidation))

	_, err = svc.UploadImage(ctx, p.ID, "big.png", strings.NewReader("x"), util.MaxImageSizeByte+1, "image/png")
	assert.True(t, errors.Is(err, util.ErrValidation))

	_, err = svc.UploadImage(ctx, 999, "a.png", strings.NewReader("x"), 1, "image/png")
	assert.True(t, errors.Is(err, util.ErrProductNotFound))
}

func TestProductListEnabledOnly(t *testing.T) {
	svc := NewProductService(newMemProductStore(), nil)
	ctx := context.Background()
	off := false

	_, err := svc.Create(ctx, ProductRequest{Name: "On"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ProductRequest{Name: "Off", Enabled: &off})
	require.NoError(t, err)

	visible, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "On", visible[0].Name)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
