// Package run 编排一次完整的同步：认证 → 拉全表 → 分组 → 规划 → 批量抓取 →
// 回写。所有单条失败都降级为条目级结果，只有配置/后端级失败才让整次同步失败。
package run

import (
	"context"
	"fmt"
	"time"

	"github.com/clawbot/dysync/internal/app"
	"github.com/clawbot/dysync/internal/app/planner"
	"github.com/clawbot/dysync/internal/domain"
	"github.com/clawbot/dysync/internal/feishu"
	"github.com/clawbot/dysync/internal/tikhub"
)

// Options 是一次同步的输入。
type Options struct {
	AppToken string
	TableID  string
	ViewID   string
	// Force 无视完整性判定，全量刷新。
	Force bool
}

// Execute 执行一次同步并返回对外稳定的报告。
// 报告的 Status/Error/ErrorCode 是 JSON 输出契约的一部分，不可随意改动。
func Execute(ctx context.Context, fc *feishu.Client, tc *tikhub.Client, opts Options, obs Observer) domain.SyncReport {
	if obs == nil {
		obs = nopObserver{}
	}
	obs.OnStart(opts.AppToken, opts.TableID)

	if err := fc.Authenticate(ctx); err != nil {
		return failed(domain.ErrCodeBackendFailed, fmt.Sprintf("飞书认证失败：%v", err))
	}

	listStarted := time.Now()
	records, err := fc.ListRecords(ctx, opts.AppToken, opts.TableID, opts.ViewID)
	if err != nil {
		return failed(domain.ErrCodeBackendFailed, fmt.Sprintf("拉取表格记录失败：%v", err))
	}
	obs.OnPhaseDone("list", map[string]any{"records": len(records)}, time.Since(listStarted))

	groupStarted := time.Now()
	groups, dropped := app.GroupByVideo(records)
	obs.OnPhaseDone("group", map[string]any{
		"videos":     len(groups),
		"unresolved": dropped,
	}, time.Since(groupStarted))

	toFetch := planner.Plan(groups, opts.Force)
	obs.OnPhaseDone("plan", map[string]any{
		"to_fetch": len(toFetch),
		"skipped":  len(groups) - len(toFetch),
	}, 0)

	fetchStarted := time.Now()
	fetched := tc.FetchVideosBatch(ctx, toFetch)
	var fetchFailed int
	for i, id := range toFetch {
		ok := fetched[id] != nil
		if !ok {
			fetchFailed++
		}
		obs.OnItemDone(i+1, len(toFetch), id, ok)
	}
	obs.OnPhaseDone("fetch", map[string]any{
		"ok":   len(toFetch) - fetchFailed,
		"fail": fetchFailed,
	}, time.Since(fetchStarted))

	updates := planner.ApplyResults(groups, toFetch, fetched)

	updateStarted := time.Now()
	if len(updates) > 0 {
		// 批内单条失败由 client 记日志后跳过；这里只处理传输级失败。
		if err := fc.UpdateRecords(ctx, opts.AppToken, opts.TableID, updates); err != nil {
			return failed(domain.ErrCodeBackendFailed, fmt.Sprintf("回写表格失败：%v", err))
		}
	}
	obs.OnPhaseDone("update", map[string]any{"rows": len(updates)}, time.Since(updateStarted))

	return domain.SyncReport{
		Status:       "success",
		TotalRecords: len(records),
		UniqueVideos: len(groups),
		Updated:      len(updates) - fetchFailed,
		Skipped:      len(groups) - len(toFetch),
		Failed:       fetchFailed,
		Unresolved:   dropped,
	}
}

func failed(code, msg string) domain.SyncReport {
	return domain.SyncReport{
		Status:    "error",
		Error:     msg,
		ErrorCode: code,
	}
}
