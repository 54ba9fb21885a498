package tikhub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/clawbot/dysync/internal/domain"
)

const (
	defaultBaseURL = "https://api.tikhub.io"

	webDetailPath   = "/api/v1/douyin/web/fetch_video_detail"
	mobileVideoPath = "/api/v1/douyin/app/v3/fetch_one_video"
	statsPath       = "/api/v1/douyin/app/v3/fetch_video_statistics"
	multiVideoPath  = "/api/v1/douyin/web/fetch_multi_video"
	oneVideoPath    = "/api/v1/douyin/web/fetch_one_video"
	translatePath   = "/api/v1/tiktok/app/v3/fetch_content_translate"

	// 抓取级重试是固定 3 次 + 固定休眠：这是既有行为，不做退避/抖动。
	fetchAttempts = 3
	fetchSleep    = 2 * time.Second
	statsAttempts = 3
	statsSleep    = 1 * time.Second

	detailTimeout = 30 * time.Second
	mobileTimeout = 20 * time.Second
	statsTimeout  = 10 * time.Second
	batchTimeout  = 60 * time.Second
)

// ErrUnavailable 表示重试耗尽后仍拿不到该视频的数据。
// 批量路径把它降级为 nil 结果；单视频路径按硬失败处理。
var ErrUnavailable = errors.New("视频数据不可用")

// Client 是 TikHub 视频数据 API 的客户端。
//
// 约束：
// - 所有请求串行、阻塞、带超时；没有并发扇出
// - 重试是固定次数 + 固定休眠（见常量），刻意保持简单
// - BaseURL / DetailURL 可覆盖（DOUYIN_API_URL 与测试都依赖）
type Client struct {
	BaseURL   string
	DetailURL string

	// Logf 输出过程信息（请求尝试、回退、补充统计）；默认丢弃。
	Logf func(format string, args ...any)

	// Sleep 可替换：测试里置为 no-op，避免真实等待。
	Sleep func(time.Duration)

	apiKey string
	http   *http.Client
}

func NewClient(apiKey string, c *http.Client) *Client {
	if c == nil {
		c = &http.Client{}
	}
	return &Client{
		BaseURL:   defaultBaseURL,
		DetailURL: "",
		Logf:      func(string, ...any) {},
		Sleep:     time.Sleep,
		apiKey:    apiKey,
		http:      c,
	}
}

func (c *Client) detailURL() string {
	if c.DetailURL != "" {
		return c.DetailURL
	}
	return c.BaseURL + webDetailPath
}

// FetchVideo 获取单个视频的规范化元数据。
//
// 流程（固定，兼容既有行为）：
// 1) Web 详情接口，至多 3 次，间隔 2s
// 2) 404 时回退 Mobile API V3；回退也失败且后端明确 Not Found 时，
//    合成"已下架"记录返回（不是错误）
// 3) 成功后用 App 统计接口补充播放量等（最大值合并）
func (c *Client) FetchVideo(ctx context.Context, id domain.VideoID) (*domain.VideoMetadata, error) {
	if id == "" {
		return nil, errors.New("视频 ID 不能为空")
	}

	var body []byte
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		c.Logf("请求尝试 %d/%d：%s", attempt, fetchAttempts, id)

		b, status, err := c.get(ctx, c.detailURL(), url.Values{"aweme_id": {string(id)}}, detailTimeout)
		switch {
		case err != nil:
			c.Logf("请求失败：%v（尝试 %d）", err, attempt)
		case status == http.StatusOK && len(b) > 0:
			body = b
		case status == http.StatusNotFound:
			// 回退 Mobile API V3。
			c.Logf("Web API 404，尝试 Mobile API V3 回退…")
			if mb, ok := c.fetchMobile(ctx, id); ok {
				body = mb
				break
			}
			// 回退也失败：后端明确 Not Found 时按"已下架"处理。
			if gjson.GetBytes(b, "detail").String() == "Not Found" {
				c.Logf("视频 %s 已下架", id)
				return syntheticDeleted(id, "视频不存在或已下架"), nil
			}
			c.Logf("API 返回状态 %d（尝试 %d）", status, attempt)
		default:
			c.Logf("API 返回状态 %d（尝试 %d）", status, attempt)
		}

		if body != nil {
			break
		}
		if attempt < fetchAttempts {
			c.Sleep(fetchSleep)
		}
	}

	if body == nil {
		return nil, fmt.Errorf("%d 次尝试后仍无法获取视频 %s：%w", fetchAttempts, id, ErrUnavailable)
	}

	root := gjson.ParseBytes(body)
	if root.Get("code").Int() != 200 {
		msg := root.Get("message").String()
		if msg == "" {
			msg = "未知错误"
		}
		return nil, fmt.Errorf("API 返回错误：%s", msg)
	}

	aweme := root.Get("data.aweme_detail")
	if !aweme.Exists() || len(aweme.Map()) == 0 {
		// 视频可能已删除或不可见：filter_detail 带说明。
		if fd := root.Get("data.filter_detail"); fd.Exists() {
			c.Logf("视频可能已删除或不可见：%s", fd.Get("detail_msg").String())
			return syntheticDeleted(id, domain.DeletedTitle), nil
		}
		return nil, errors.New("API 返回数据中缺少 aweme_detail")
	}

	meta := metadataFromAweme(aweme, id, "Web API")
	c.supplementStatistics(ctx, id, meta)
	return meta, nil
}

// fetchMobile 尝试 Mobile API V3；只有拿到完整 aweme_detail 才算成功。
func (c *Client) fetchMobile(ctx context.Context, id domain.VideoID) ([]byte, bool) {
	b, status, err := c.get(ctx, c.BaseURL+mobileVideoPath, url.Values{"aweme_id": {string(id)}}, mobileTimeout)
	if err != nil {
		c.Logf("回退失败：%v", err)
		return nil, false
	}
	if status != http.StatusOK {
		return nil, false
	}
	root := gjson.ParseBytes(b)
	if root.Get("code").Int() != 200 || !root.Get("data.aweme_detail").Exists() {
		return nil, false
	}
	c.Logf("Mobile API 回退成功：%s", id)
	return b, true
}

// FetchPlayAddr 返回视频的下载地址（脚本提取用）。
func (c *Client) FetchPlayAddr(ctx context.Context, id domain.VideoID) (string, error) {
	b, status, err := c.get(ctx, c.BaseURL+oneVideoPath, url.Values{"aweme_id": {string(id)}}, detailTimeout)
	if err != nil {
		return "", fmt.Errorf("获取视频地址失败：%w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("获取视频地址失败：HTTP %d", status)
	}

	urls := gjson.GetBytes(b, "data.aweme_detail.video.play_addr.url_list")
	if !urls.Exists() || len(urls.Array()) == 0 {
		return "", errors.New("未找到视频地址")
	}
	return urls.Array()[0].String(), nil
}

func (c *Client) get(ctx context.Context, rawURL string, q url.Values, timeout time.Duration) (body []byte, status int, err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return b, resp.StatusCode, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}
