package planner

import (
	"strings"

	"github.com/clawbot/dysync/internal/domain"
	"github.com/clawbot/dysync/internal/feishu"
)

// IsComplete 判定某分组的 master 行是否已有可用数据。
//
// 口径（与既有表格数据兼容，不可单方面收紧）：
// - 标题非空、不是下架哨兵、不带 "⚠️" 前缀
// - 且 点赞数/播放量 至少一项非零
func IsComplete(g domain.VideoGroup) bool {
	fields := g.Master.Fields

	desc := feishu.CellString(fields[feishu.FieldTitle])
	isError := desc == "" || desc == domain.DeletedTitle || strings.HasPrefix(desc, "⚠️")
	if isError {
		return false
	}

	hasLikes := feishu.CellInt(fields[feishu.FieldDiggCount]) != 0
	hasPlays := feishu.CellInt(fields[feishu.FieldPlayCount]) != 0
	return hasLikes || hasPlays
}

// Plan 给出需要重新抓取的视频 ID 列表（保持分组出现顺序）。
// force=true 时无视完整性判定，全量刷新。
func Plan(groups []domain.VideoGroup, force bool) []domain.VideoID {
	toFetch := make([]domain.VideoID, 0, len(groups))
	for i := range groups {
		if force || !IsComplete(groups[i]) {
			toFetch = append(toFetch, groups[i].ID)
		}
	}
	return toFetch
}

// ApplyResults 把抓取结果转换为行更新列表。
//
// - 只有在 toFetch 里的分组才产生更新，目标永远是 master 行
// - 抓取成功：整行字段映射
// - 抓取失败/未找到（nil）：只写标题哨兵，不触碰其他字段
// - 输出按分组出现顺序排列（确定性，便于测试与比对）
func ApplyResults(groups []domain.VideoGroup, toFetch []domain.VideoID, fetched map[domain.VideoID]*domain.VideoMetadata) []domain.RowUpdate {
	planned := make(map[domain.VideoID]struct{}, len(toFetch))
	for _, id := range toFetch {
		planned[id] = struct{}{}
	}

	updates := make([]domain.RowUpdate, 0, len(toFetch))
	for i := range groups {
		g := groups[i]
		if _, ok := planned[g.ID]; !ok {
			continue
		}

		meta := fetched[g.ID]
		if meta == nil {
			updates = append(updates, domain.RowUpdate{
				RecordID: g.Master.ID,
				Fields:   map[string]any{feishu.FieldTitle: domain.DeletedTitle},
			})
			continue
		}

		updates = append(updates, domain.RowUpdate{
			RecordID: g.Master.ID,
			Fields:   feishu.RecordFields(*meta),
		})
	}
	return updates
}
