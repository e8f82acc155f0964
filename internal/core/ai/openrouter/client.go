package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bento-planner/internal/infrastructure/config"
	"bento-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://openrouter.ai/api/v1"

// Client OpenRouter API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建新的 OpenRouter 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://bento-planner.com").
		SetHeader("X-Title", "Bento Planner")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 送出指令與參考資料，回傳模型的文字輸出
// 指令走 system 角色、參考資料（食譜語料）走 user 角色
func (c *Client) Generate(ctx context.Context, instruction, payload string) (string, error) {
	req := map[string]interface{}{
		"model": c.config.OpenRouter.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "system",
				"content": instruction,
			},
			{
				"role":    "user",
				"content": payload,
			},
		},
		"max_tokens":  c.config.OpenRouter.MaxTokens,
		"temperature": c.config.OpenRouter.Temperature,
	}

	common.LogInfo("Sending request to OpenRouter",
		zap.String("model", c.config.OpenRouter.Model),
		zap.Int("instruction_length", len(instruction)),
		zap.Int("payload_length", len(payload)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	// 額度用盡要跟其他失敗分開回報，呼叫端據此回 429
	if isQuotaError(resp) {
		common.LogWarn("OpenRouter 回報額度用盡",
			zap.Int("status_code", resp.StatusCode()),
		)
		return "", common.ErrQuotaExceeded.WithDetail(fmt.Errorf("openrouter: %s", resp.String()))
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API returned error (status %d): %s", resp.StatusCode(), resp.String())
	}

	// 解析回應
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	content := result.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in OpenRouter response")
	}

	return content, nil
}

// isQuotaError 判斷是否為額度/限流類失敗
func isQuotaError(resp *resty.Response) bool {
	if resp.StatusCode() == http.StatusTooManyRequests {
		return true
	}
	if resp.StatusCode() == http.StatusOK {
		return false
	}
	return strings.Contains(resp.String(), "insufficient_quota")
}

// Model 獲取當前使用的模型名稱
func (c *Client) Model() string {
	return c.config.OpenRouter.Model
}

// Timeout 獲取請求超時時間
func (c *Client) Timeout() time.Duration {
	return c.config.OpenRouter.Timeout
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
