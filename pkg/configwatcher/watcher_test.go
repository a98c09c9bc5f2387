package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"school_quiz_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloadsReleaseTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quiz:\n  release_hour: 20\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 4)
	require.NoError(t, Watch(ctx, dir, func(cfg *config.Config) { reloaded <- cfg }))

	// 无关文件不触发重载
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("quiz:\n  release_hour: 18\n  release_minute: 30\n"), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 18, cfg.Quiz.ReleaseHour)
		assert.Equal(t, 30, cfg.Quiz.ReleaseMinute)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "absent"), func(*config.Config) {})
	assert.Error(t, err)
}
