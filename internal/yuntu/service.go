package yuntu

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clawbot/dysync/internal/domain"
	"github.com/clawbot/dysync/internal/feishu"
	"github.com/clawbot/dysync/internal/tikhub"
)

// ErrBrowserUnavailable 表示当前构建不带浏览器支持（构建标签 browser）。
// 遇到它时走 TikHub 元数据兜底，而不是整个命令失败。
var ErrBrowserUnavailable = errors.New("浏览器自动化不可用（需要 browser 构建标签）")

// Browser 封装无头浏览器会话配置；实际实现按构建标签二选一。
type Browser struct {
	ProxyURL string
	Logf     func(format string, args ...any)
}

func (b *Browser) logf(format string, args ...any) {
	if b.Logf != nil {
		b.Logf(format, args...)
	}
}

// PageFetcher 是 Service 对浏览器的唯一依赖（测试替身从这里进来）。
type PageFetcher interface {
	FetchVideoPage(ctx context.Context, brandURL string, id domain.VideoID) (string, error)
}

// Service 编排一次云图脚本采集：浏览器抓页 → 解析 → TikHub 兜底。
type Service struct {
	Fetcher PageFetcher
	TikHub  *tikhub.Client
	Logf    func(format string, args ...any)
}

func (s *Service) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// CollectScripts 逐个视频采集脚本。
// 单个视频的失败（抓页失败、解析为空、兜底也失败）只记日志并跳过。
func (s *Service) CollectScripts(ctx context.Context, brandURL string, ids []domain.VideoID) []domain.VideoScript {
	var out []domain.VideoScript
	for _, id := range ids {
		vs, ok := s.collectOne(ctx, brandURL, id)
		if !ok {
			s.logf("视频 %s：云图与 TikHub 均未取到数据，跳过", id)
			continue
		}
		out = append(out, vs)
	}
	return out
}

func (s *Service) collectOne(ctx context.Context, brandURL string, id domain.VideoID) (domain.VideoScript, bool) {
	html, err := s.Fetcher.FetchVideoPage(ctx, brandURL, id)
	if err != nil {
		if errors.Is(err, ErrBrowserUnavailable) {
			s.logf("视频 %s：%v，改用 TikHub 兜底", id, err)
		} else {
			s.logf("视频 %s：云图抓取失败：%v，改用 TikHub 兜底", id, err)
		}
		return s.fallback(ctx, id)
	}

	text, err := ExtractPageText(html)
	if err != nil {
		s.logf("视频 %s：页面解析失败：%v", id, err)
		return s.fallback(ctx, id)
	}

	vs := ParsePage(text, brandURL)
	if vs.RawScript == "" && vs.Title == "" {
		s.logf("视频 %s：云图页面没有脚本内容，改用 TikHub 兜底", id)
		return s.fallback(ctx, id)
	}
	vs.VideoID = string(id)
	return vs, true
}

// fallback 用 TikHub 元数据拼一条降级记录：没有脚本正文，只有基本信息。
func (s *Service) fallback(ctx context.Context, id domain.VideoID) (domain.VideoScript, bool) {
	if s.TikHub == nil {
		return domain.VideoScript{}, false
	}
	m, err := s.TikHub.FetchVideo(ctx, id)
	if err != nil || m.IsDeleted {
		return domain.VideoScript{}, false
	}
	return domain.VideoScript{
		VideoID:    string(id),
		Title:      m.Desc,
		Views:      strconv.FormatInt(m.Statistics.PlayCount, 10),
		TalentName: m.Author.Nickname,
		DouyinID:   m.Author.UniqueID,
		Source:     "tikhub",
		SourceURL:  id.ShareURL(),
		ScrapedAt:  time.Now().Format(time.RFC3339),
	}, true
}

// 飞书脚本表的字段长度限制。
const feishuScriptLimit = 2000

// SyncToFeishu 把采集到的脚本逐条写入多维表格。
// 单条失败记日志继续，返回成功条数。
func SyncToFeishu(ctx context.Context, fc *feishu.Client, appToken, tableID string, scripts []domain.VideoScript, logf func(string, ...any)) int {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	synced := 0
	for _, vs := range scripts {
		script := vs.RawScript
		if r := []rune(script); len(r) > feishuScriptLimit {
			script = string(r[:feishuScriptLimit])
		}

		fields := map[string]any{
			"视频标题":  vs.Title,
			"发布日期":  vs.PublishDate,
			"播放量":   vs.Views,
			"互动率":   vs.InteractionRate,
			"完播率":   vs.CompletionRate,
			"达人名称":  vs.TalentName,
			"达人粉丝数": vs.TalentFollowers,
			"抖音号":   vs.DouyinID,
			"内容公式":  strings.Join(vs.ContentFormula, ", "),
			"视频脚本":  script,
			"数据来源":  vs.Source,
			"抓取时间":  vs.ScrapedAt,
		}
		if err := fc.CreateRecord(ctx, appToken, tableID, fields); err != nil {
			logf("同步失败：%s：%v", truncateTitle(vs.Title), err)
			continue
		}
		logf("已同步：%s", truncateTitle(vs.Title))
		synced++
	}
	return synced
}

func truncateTitle(s string) string {
	r := []rune(s)
	if len(r) <= 30 {
		return s
	}
	return fmt.Sprintf("%s…", string(r[:30]))
}
