package domain

const (
	ErrCodeUnresolvedID     = "unresolved_id"
	ErrCodeFetchFailed      = "fetch_failed"
	ErrCodeParseFailed      = "parse_failed"
	ErrCodeBackendFailed    = "backend_failed"
	ErrCodeConfigMissingEnv = "config_missing_env"
	ErrCodeConfigInvalid    = "config_invalid"
)

// SyncReport 是 sync 命令对外稳定输出的结构（stdout JSON）。
//
// Unresolved 统计无法解析出视频 ID 而被丢弃的行数。历史行为是静默丢弃，
// 文本输出保持原有各行不变，该计数只出现在 JSON 里。
type SyncReport struct {
	Status string `json:"status"`

	TotalRecords int `json:"total_records"`
	UniqueVideos int `json:"unique_videos"`
	Updated      int `json:"updated"`
	Skipped      int `json:"skipped"`
	Failed       int `json:"failed"`
	Unresolved   int `json:"unresolved"`

	// Error 仅在 Status != "success" 时非空。
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}
