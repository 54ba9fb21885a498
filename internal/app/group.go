package app

import (
	"github.com/clawbot/dysync/internal/domain"
	"github.com/clawbot/dysync/internal/feishu"
	"github.com/clawbot/dysync/internal/vid"
)

// GroupByVideo 把表格行按规范化后的视频 ID 分组。
//
// - 每个 ID 第一条命中的行是 master，后续命中按出现顺序记为 duplicates
// - 解析不出 ID 的行直接丢弃（历史行为：静默；只体现在 dropped 计数上）
// - groups 保持 ID 首次出现的顺序（不排序，后续 toFetch 依赖该顺序）
// - 批量路径逐行用 ResolveLocal：不允许每行做网络调用
func GroupByVideo(records []domain.Record) (groups []domain.VideoGroup, dropped int) {
	index := make(map[domain.VideoID]int, len(records))
	groups = make([]domain.VideoGroup, 0, len(records))

	for i := range records {
		raw := feishu.CellString(records[i].Fields[feishu.FieldVideoID])
		id, ok := vid.ResolveLocal(raw)
		if !ok {
			dropped++
			continue
		}

		if gi, seen := index[id]; seen {
			groups[gi].Duplicates = append(groups[gi].Duplicates, records[i])
			continue
		}
		index[id] = len(groups)
		groups = append(groups, domain.VideoGroup{
			ID:     id,
			Master: records[i],
		})
	}
	return groups, dropped
}
