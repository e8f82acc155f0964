package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bento-planner/internal/core/ai/cache"
	"bento-planner/internal/infrastructure/config"
	"bento-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider 計次的假模型供應商
type fakeProvider struct {
	content string
	err     error
	calls   int
}

func (f *fakeProvider) Generate(context.Context, string, string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func (f *fakeProvider) Model() string          { return "fake" }
func (f *fakeProvider) Timeout() time.Duration { return time.Second }
func (f *fakeProvider) Close() error           { return nil }

func serviceConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         10,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
	}
}

func TestProcessRequest(t *testing.T) {
	p := &fakeProvider{content: `[{"day":"Mon"}]`}
	s := NewService(serviceConfig(), p, nil)

	resp, err := s.ProcessRequest(context.Background(), "指令", "素材")
	require.NoError(t, err)
	assert.Equal(t, `[{"day":"Mon"}]`, resp.Content)
	assert.Equal(t, 1, p.calls)
}

func TestProcessRequestProviderError(t *testing.T) {
	p := &fakeProvider{err: errors.New("boom")}
	s := NewService(serviceConfig(), p, nil)

	_, err := s.ProcessRequest(context.Background(), "指令", "素材")
	require.Error(t, err)
}

func TestProcessRequestCacheHit(t *testing.T) {
	cfg := serviceConfig()
	store := cache.NewManager(cfg)
	defer store.Close()

	p := &fakeProvider{content: "回應"}
	s := NewService(cfg, p, store)

	ctx := context.Background()
	_, err := s.ProcessRequest(ctx, "指令", "素材")
	require.NoError(t, err)

	// 第二次同樣的請求應命中快取，不再打供應商
	resp, err := s.ProcessRequest(ctx, "指令", "素材")
	require.NoError(t, err)
	assert.Equal(t, "回應", resp.Content)
	assert.Equal(t, 1, p.calls)
}

func TestProcessRequestRateLimited(t *testing.T) {
	cfg := serviceConfig()
	cfg.RateLimit = config.RateLimitConfig{
		Enabled:  true,
		Requests: 1,
		Window:   time.Minute,
	}

	p := &fakeProvider{content: "回應"}
	s := NewService(cfg, p, nil)

	ctx := context.Background()
	_, err := s.ProcessRequest(ctx, "指令", "素材")
	require.NoError(t, err)

	_, err = s.ProcessRequest(ctx, "指令", "素材")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrTooManyRequests))
	assert.Equal(t, 1, p.calls)
}
