package tikhub

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/clawbot/dysync/internal/domain"
)

// MergeStatistics 以最大值策略把 src 合并进 dst。
//
// 两个数据源（Web 详情接口 / App 统计接口）对同一指标的口径不完全一致，
// 取较大者；0 视为"该来源没有数据"，永远不会覆盖已有的正值。
func MergeStatistics(dst *domain.Statistics, src domain.Statistics) {
	merge := func(d *int64, s int64) {
		if s > *d {
			*d = s
		}
	}
	merge(&dst.PlayCount, src.PlayCount)
	merge(&dst.DiggCount, src.DiggCount)
	merge(&dst.CommentCount, src.CommentCount)
	merge(&dst.ShareCount, src.ShareCount)
	merge(&dst.CollectCount, src.CollectCount)
}

// supplementStatistics 用 App 统计接口补充单视频的统计数据。
// 至多 3 次，间隔 1s；全部失败只记日志，不影响主流程。
func (c *Client) supplementStatistics(ctx context.Context, id domain.VideoID, m *domain.VideoMetadata) {
	for attempt := 1; attempt <= statsAttempts; attempt++ {
		stats, ok := c.fetchStatistics(ctx, []domain.VideoID{id})
		if ok {
			if s, found := stats[id]; found {
				MergeStatistics(&m.Statistics, s)
				c.Logf("统计数据已补充：%s 播放量=%d", id, m.Statistics.PlayCount)
			}
			return
		}
		c.Logf("补充统计失败（尝试 %d/%d）：%s", attempt, statsAttempts, id)
		if attempt < statsAttempts {
			c.Sleep(statsSleep)
		}
	}
}

// fetchStatistics 调 App 统计接口，一次最多查若干个 ID（逗号拼接）。
func (c *Client) fetchStatistics(ctx context.Context, ids []domain.VideoID) (map[domain.VideoID]domain.Statistics, bool) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	q := url.Values{"aweme_ids": {strings.Join(parts, ",")}}

	b, status, err := c.get(ctx, c.BaseURL+statsPath, q, statsTimeout)
	if err != nil || status != http.StatusOK {
		return nil, false
	}
	root := gjson.ParseBytes(b)
	if root.Get("code").Int() != 200 {
		return nil, false
	}

	out := make(map[domain.VideoID]domain.Statistics)
	root.Get("data.statistics_list").ForEach(func(_, v gjson.Result) bool {
		id := domain.VideoID(v.Get("aweme_id").String())
		if id == "" {
			return true
		}
		out[id] = domain.Statistics{
			PlayCount:    v.Get("play_count").Int(),
			DiggCount:    v.Get("digg_count").Int(),
			CommentCount: v.Get("comment_count").Int(),
			ShareCount:   v.Get("share_count").Int(),
			CollectCount: v.Get("collect_count").Int(),
		}
		return true
	})
	return out, true
}
