package tikhub

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/clawbot/dysync/internal/domain"
)

const (
	batchChunkSize = 50
	// 播放量补充接口一次只查 2 个 ID，再多容易被风控截断。
	playChunkSize = 2
)

// FetchVideosBatch 批量获取视频元数据，结果按 ID 对齐。
//
// 任何单个视频的失败都不会中断整批：失败的 ID 在结果里是 nil，
// 调用方据此做降级（只更新标题列）。流程：
// 1) 批量接口按 50 个一组 POST
// 2) 批量没返回的 ID 逐个走单视频接口补捞
// 3) 成功的 ID 再按 2 个一组补充播放量（批量接口的播放量恒为 0）
func (c *Client) FetchVideosBatch(ctx context.Context, ids []domain.VideoID) map[domain.VideoID]*domain.VideoMetadata {
	results := make(map[domain.VideoID]*domain.VideoMetadata, len(ids))
	for _, id := range ids {
		results[id] = nil
	}

	for start := 0; start < len(ids); start += batchChunkSize {
		end := start + batchChunkSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]
		c.Logf("批量获取 %d 个视频（%d-%d）…", len(chunk), start+1, end)
		c.fetchChunk(ctx, chunk, results)
	}

	// 批量接口偶尔漏掉个别 ID：逐个补捞。
	for _, id := range ids {
		if results[id] != nil {
			continue
		}
		c.Logf("批量结果缺少 %s，回退单视频接口…", id)
		m, err := c.FetchVideo(ctx, id)
		if err != nil {
			c.Logf("单视频回退失败：%s：%v", id, err)
			continue
		}
		results[id] = m
	}

	c.supplementPlayCounts(ctx, ids, results)
	return results
}

func (c *Client) fetchChunk(ctx context.Context, chunk []domain.VideoID, results map[domain.VideoID]*domain.VideoMetadata) {
	parts := make([]string, len(chunk))
	for i, id := range chunk {
		parts[i] = string(id)
	}
	payload, err := json.Marshal(map[string]any{"aweme_ids": parts})
	if err != nil {
		c.Logf("批量请求编码失败：%v", err)
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.BaseURL+multiVideoPath, bytes.NewReader(payload))
	if err != nil {
		c.Logf("批量请求构造失败：%v", err)
		return
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.Logf("批量请求失败：%v", err)
		return
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil || resp.StatusCode != http.StatusOK {
		c.Logf("批量请求失败：HTTP %d", resp.StatusCode)
		return
	}

	root := gjson.ParseBytes(b)
	if root.Get("code").Int() != 200 {
		c.Logf("批量接口返回错误：%s", root.Get("message").String())
		return
	}

	for _, aweme := range awemeList(root.Get("data")) {
		id := domain.VideoID(aweme.Get("aweme_id").String())
		if _, wanted := results[id]; !wanted || id == "" {
			continue
		}
		results[id] = metadataFromAweme(aweme, id, "Web API")
	}
}

// awemeList 兼容批量接口 data 字段的三种形态：
// JSON 字符串（再解析一层）、数组、带 aweme_list/aweme_details 的对象。
func awemeList(data gjson.Result) []gjson.Result {
	if data.Type == gjson.String {
		data = gjson.Parse(data.String())
	}
	if data.IsArray() {
		return data.Array()
	}
	for _, key := range []string{"aweme_list", "aweme_details"} {
		if list := data.Get(key); list.IsArray() {
			return list.Array()
		}
	}
	return nil
}

// supplementPlayCounts 给批量结果补播放量，来源标记为 App API。
func (c *Client) supplementPlayCounts(ctx context.Context, ids []domain.VideoID, results map[domain.VideoID]*domain.VideoMetadata) {
	var ok []domain.VideoID
	for _, id := range ids {
		if results[id] != nil && !results[id].IsDeleted {
			ok = append(ok, id)
		}
	}

	for start := 0; start < len(ok); start += playChunkSize {
		end := start + playChunkSize
		if end > len(ok) {
			end = len(ok)
		}
		chunk := ok[start:end]

		stats, fetched := c.fetchStatistics(ctx, chunk)
		if !fetched {
			c.Logf("播放量补充失败：%v", chunk)
			continue
		}
		for _, id := range chunk {
			s, found := stats[id]
			if !found {
				continue
			}
			MergeStatistics(&results[id].Statistics, s)
			results[id].DataSource = "App API"
		}
	}
}
