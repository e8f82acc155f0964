package common

import (
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Error   string `json:"error"`            // 錯誤種類標籤
	Message string `json:"message"`          // 錯誤信息
	Detail  string `json:"detail,omitempty"` // 詳細信息
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤種類標籤（對外的機器可讀值）
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap 支援 errors.Is / errors.As 鏈
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// WithDetail 以既有錯誤為模板附帶詳細信息
func (e *CustomError) WithDetail(err error) *CustomError {
	return &CustomError{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Err:     err,
	}
}

// Is 讓帶 detail 的副本仍可被 errors.Is 比對到模板錯誤
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// 預定義錯誤種類標籤（同時也是對外 API 的 error 欄位值）
const (
	// 客戶端錯誤 (4xx)
	ErrCodeFormat          = "format"            // 400：Plan 結構不正確
	ErrCodeMissingName     = "missing_name"      // 400：查詢缺少 name
	ErrCodeInvalidRequest  = "invalid_request"   // 400：請求無法解析
	ErrCodeNotFound        = "not_found"         // 404：查無此食譜
	ErrCodeQuota           = "quota"             // 429：模型供應商額度用盡
	ErrCodeTooManyRequests = "too_many_requests" // 429：本服務限流

	// 服務器錯誤 (5xx)
	ErrCodeServer         = "server"          // 500：模型呼叫或解析失敗
	ErrCodeInternalError  = "internal_error"  // 500：其他內部錯誤
	ErrCodeGatewayTimeout = "gateway_timeout" // 504：請求超時
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrPlanFormat      = NewError(ErrCodeFormat, "Plan 格式不正確", http.StatusBadRequest, nil)
	ErrMissingName     = NewError(ErrCodeMissingName, "缺少食譜名稱", http.StatusBadRequest, nil)
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrRecipeNotFound  = NewError(ErrCodeNotFound, "查無此食譜", http.StatusNotFound, nil)
	ErrQuotaExceeded   = NewError(ErrCodeQuota, "模型額度已用盡，請稍後再試", http.StatusTooManyRequests, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrGenerationFailed = NewError(ErrCodeServer, "獻立生成失敗", http.StatusInternalServerError, nil)
	ErrInternalError    = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrGatewayTimeout   = NewError(ErrCodeGatewayTimeout, "網關超時", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrCacheFull     = NewError("cache_full", "緩存已滿", http.StatusServiceUnavailable, nil)
	ErrCacheDisabled = NewError("cache_disabled", "緩存已禁用", http.StatusServiceUnavailable, nil)
	ErrCacheMiss     = NewError("cache_miss", "快取未命中", http.StatusServiceUnavailable, nil)
)
