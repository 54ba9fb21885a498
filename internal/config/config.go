package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/clawbot/dysync/internal/domain"
)

// Config 汇总一次调用所需的全部环境配置。
// 只在进程入口加载一次，然后显式向下传递；包内不留全局状态。
type Config struct {
	// TikHub
	TikHubAPIKey    string // DOUYIN_API_KEY，必填
	TikHubDetailURL string // DOUYIN_API_URL，可选：覆盖详情接口地址

	// 飞书（仅 sync / yuntu 写表时必填）
	FeishuAppID     string
	FeishuAppSecret string

	// 语音转写（二选一即可）
	GroqAPIKey   string
	OpenAIAPIKey string

	// 本地数据目录：brands_config.json / yuntu_scripts.json
	DataDir string

	// 可选代理：http/https/socks5
	ProxyURL string

	Verbose bool
}

// Error 是配置错误：带稳定错误码，便于 JSON 报告与脚本判断。
type Error struct {
	Code    string
	Missing []string
	Msg     string
}

func (e *Error) Error() string {
	if len(e.Missing) > 0 {
		return "缺少必需的环境变量: " + strings.Join(e.Missing, ", ")
	}
	return e.Msg
}

const defaultDataDir = "data"

// Load 从环境变量加载配置。needFeishu 为真时校验飞书凭据。
func Load(needFeishu bool) (*Config, error) {
	cfg := &Config{
		TikHubAPIKey:    os.Getenv("DOUYIN_API_KEY"),
		TikHubDetailURL: os.Getenv("DOUYIN_API_URL"),
		FeishuAppID:     os.Getenv("FEISHU_APP_ID"),
		FeishuAppSecret: os.Getenv("FEISHU_APP_SECRET"),
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		DataDir:         os.Getenv("DYSYNC_DATA_DIR"),
		ProxyURL:        os.Getenv("DYSYNC_PROXY_URL"),
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}

	var missing []string
	if cfg.TikHubAPIKey == "" {
		missing = append(missing, "DOUYIN_API_KEY")
	}
	if needFeishu {
		if cfg.FeishuAppID == "" {
			missing = append(missing, "FEISHU_APP_ID")
		}
		if cfg.FeishuAppSecret == "" {
			missing = append(missing, "FEISHU_APP_SECRET")
		}
	}
	if len(missing) > 0 {
		return nil, &Error{Code: domain.ErrCodeConfigMissingEnv, Missing: missing}
	}

	if cfg.TikHubDetailURL != "" && !strings.HasPrefix(cfg.TikHubDetailURL, "http") {
		return nil, &Error{
			Code: domain.ErrCodeConfigInvalid,
			Msg:  fmt.Sprintf("DOUYIN_API_URL 不是合法的 HTTP 地址: %s", cfg.TikHubDetailURL),
		}
	}
	return cfg, nil
}
