package domain

import (
	"regexp"
	"strings"
)

// VideoID 是视频的唯一主键（规范化后的抖音视频 ID，通常是 19 位数字）。
//
// 约束：要么解析出唯一 ID，要么失败；宁可丢弃该行，也不允许写错目标。
type VideoID string

// 抖音视频 ID 当前固定 19 位；兼容旧链接格式时允许更短的纯数字串。
var videoIDRE = regexp.MustCompile(`^[0-9]{5,19}$`)

// ParseVideoID 校验并解析规范化后的视频 ID 字符串。
func ParseVideoID(s string) (VideoID, bool) {
	s = strings.TrimSpace(s)
	if !videoIDRE.MatchString(s) {
		return "", false
	}
	return VideoID(s), true
}

// ShareURL 返回该视频的标准分享链接。
func (id VideoID) ShareURL() string {
	return "https://www.douyin.com/video/" + string(id)
}

// DeletedTitle 是视频下架/失效时写入标题字段的哨兵值。
// 完整性判定与 applyResults 都依赖该值，改动会破坏与既有表格数据的兼容。
const DeletedTitle = "视频已下架"

// Statistics 是单个视频的五项统计计数。
type Statistics struct {
	PlayCount    int64 `json:"play_count"`
	DiggCount    int64 `json:"digg_count"`
	CommentCount int64 `json:"comment_count"`
	ShareCount   int64 `json:"share_count"`
	CollectCount int64 `json:"collect_count"`
}

// Author 是视频作者的最小标识。
type Author struct {
	Nickname string `json:"nickname"`
	UniqueID string `json:"unique_id"`
}

// Promotion 描述视频挂载的商品（挂车）。价格单位为分。
type Promotion struct {
	Title string `json:"title"`
	Price int64  `json:"price"`
	Sales int64  `json:"sales"`
	URL   string `json:"url"`
}

// VideoMetadata 是 fetch 适配层返回的规范化元数据。
//
// 约束：
// - 构造后不可变；调用方只读
// - 字段缺失允许为零值，但结构必须稳定
// - DataSource 标记统计数据的最终来源（"Web API" / "App API"）
type VideoMetadata struct {
	AwemeID    VideoID     `json:"aweme_id"`
	ShareURL   string      `json:"url"`
	Desc       string      `json:"title"`
	Author     Author      `json:"author"`
	CreateTime int64       `json:"create_time"` // epoch 秒
	DurationMS int64       `json:"-"`           // 毫秒
	Statistics Statistics  `json:"statistics"`
	Hashtags   []string    `json:"hashtags"`
	Promotions []Promotion `json:"promotions,omitempty"`
	IsDeleted  bool        `json:"is_deleted"`
	DataSource string      `json:"data_source"`
	FetchedAt  int64       `json:"fetched_at"` // epoch 秒
}

// DurationSeconds 返回保留两位小数的时长（秒），与表格字段口径一致。
func (m VideoMetadata) DurationSeconds() float64 {
	return float64(m.DurationMS) / 1000
}

// HashtagLine 把话题标签拼成 "#a #b" 形式的单行文本。
func (m VideoMetadata) HashtagLine() string {
	if len(m.Hashtags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.Hashtags))
	for _, h := range m.Hashtags {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		parts = append(parts, "#"+h)
	}
	return strings.Join(parts, " ")
}
