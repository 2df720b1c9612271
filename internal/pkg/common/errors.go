package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
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

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ErrorKind 管線內部的失敗分類。
// 解析器只在 orchestration 層消費它來決定是否前進 fallback 鏈，
// 不會傳播到 Resolve 的呼叫者。
type ErrorKind int

const (
	// KindSourceUnavailable 來源不可用（網路錯誤、逾時、非 200）
	KindSourceUnavailable ErrorKind = iota
	// KindInsufficientData 資料不足或格式錯誤（食材太少、缺數量）
	KindInsufficientData
	// KindNotConfigured 來源未設定憑證，直接跳過
	KindNotConfigured
)

// SourceError 帶分類的來源錯誤
type SourceError struct {
	Kind   ErrorKind
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Err.Error()
	}
	switch e.Kind {
	case KindInsufficientData:
		return e.Source + ": insufficient data"
	case KindNotConfigured:
		return e.Source + ": not configured"
	default:
		return e.Source + ": source unavailable"
	}
}

func (e *SourceError) Unwrap() error { return e.Err }

// NewSourceError 創建來源錯誤
func NewSourceError(kind ErrorKind, source string, err error) *SourceError {
	return &SourceError{Kind: kind, Source: source, Err: err}
}

// KindOf 取出錯誤的分類，未知錯誤視為來源不可用
func KindOf(err error) ErrorKind {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindSourceUnavailable
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"   // 408
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "請求超時", http.StatusRequestTimeout, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "服務暫時不可用", http.StatusServiceUnavailable, nil)

	// 業務錯誤
	ErrDishNameRequired  = NewError("DISH_NAME_REQUIRED", "菜名不能為空", http.StatusBadRequest, nil)
	ErrHouseholdRequired = NewError("HOUSEHOLD_SIZE_REQUIRED", "家庭人數不能為空", http.StatusBadRequest, nil)
	ErrCacheDisabled     = NewError("CACHE_DISABLED", "緩存已禁用", http.StatusServiceUnavailable, nil)
	ErrCacheMiss         = NewError("CACHE_MISS", "緩存未命中", http.StatusNotFound, nil)
)
