package service

import (
	"context"
	"sync"
	"time"

	"bento-planner/internal/core/ai/cache"
	"bento-planner/internal/core/ai/provider"
	"bento-planner/internal/infrastructure/config"
	"bento-planner/internal/pkg/common"
)

// Response AI 回應結構
type Response struct {
	Content string
}

// Service AI 服務
// 包住模型供應商：先查快取，未命中才真的打一次模型，成功後回填
type Service struct {
	config      *config.Config
	provider    provider.Provider
	store       cache.Store
	mu          sync.Mutex
	lastRequest time.Time
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config, p provider.Provider, store cache.Store) *Service {
	return &Service{
		config:   cfg,
		provider: p,
		store:    store,
	}
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, instruction, payload string) (*Response, error) {
	if err := s.checkRequestRate(); err != nil {
		return nil, err
	}

	// 檢查緩存
	if s.store != nil {
		if val, err := s.store.Get(ctx, instruction, payload); err == nil && val != "" {
			return &Response{Content: val}, nil
		}
	}

	requestID := common.GenerateUUID()
	start := time.Now()
	content, err := s.provider.Generate(ctx, instruction, payload)
	common.LogAICall(time.Since(start), err, requestID)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		_ = s.store.Set(ctx, instruction, payload, content)
	}

	return &Response{Content: content}, nil
}

// checkRequestRate 檢查請求頻率
func (s *Service) checkRequestRate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.config.RateLimit.Enabled && now.Sub(s.lastRequest) < s.config.RateLimit.Window/time.Duration(max(s.config.RateLimit.Requests, 1)) {
		return common.ErrTooManyRequests
	}

	s.lastRequest = now
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
