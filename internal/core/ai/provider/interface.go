package provider

import (
	"context"
	"time"
)

// Provider 定義模型供應商介面
type Provider interface {
	// Generate 送出指令與參考資料，回傳模型的文字輸出
	Generate(ctx context.Context, instruction, payload string) (string, error)

	// Model 獲取當前使用的模型名稱
	Model() string

	// Timeout 獲取請求超時時間
	Timeout() time.Duration

	// Close 關閉供應商連接
	Close() error
}
