package service

import (
	"testing"

	"school_quiz_backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestKeyFromURL(t *testing.T) {
	cases := []struct {
		name     string
		provider StorageProvider
		key      string
	}{
		{"local", &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: "uploads"}}, "products/1/a.png"},
		{"minio", &MinioStorageProvider{Config: &config.StorageConfig{MinioEndpoint: "minio:9000", MinioBucket: "quiz", MinioUseSSL: true}}, "products/2/b.png"},
		{"oss", &OSSStorageProvider{Config: &config.StorageConfig{OSSEndpoint: "oss-cn-hangzhou.aliyuncs.com", OSSBucket: "quiz"}}, "products/3/c.png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &StorageService{Provider: tc.provider}
			url := s.GetURL(tc.key)
			assert.Equal(t, tc.key, s.KeyFromURL(url))
			assert.Empty(t, s.KeyFromURL("https://elsewhere.example/"+tc.key))
		})
	}

	minio := &StorageService{Provider: cases[1].provider}
	assert.Equal(t, "https://minio:9000/quiz/products/2/b.png", minio.GetURL("products/2/b.png"))
}
