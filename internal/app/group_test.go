package app

import (
	"testing"

	"github.com/clawbot/dysync/internal/domain"
	"github.com/clawbot/dysync/internal/feishu"
)

func rec(id, videoCell string) domain.Record {
	return domain.Record{ID: id, Fields: map[string]any{feishu.FieldVideoID: videoCell}}
}

func TestGroupByVideo_MasterIsFirstEncountered(t *testing.T) {
	records := []domain.Record{
		rec("r1", "7000000000000000001"),
		rec("r2", "7000000000000000001"),
		rec("r3", "7000000000000000001"),
	}

	groups, dropped := GroupByVideo(records)
	if dropped != 0 {
		t.Fatalf("不期望丢弃，实际 %d", dropped)
	}
	if len(groups) != 1 {
		t.Fatalf("期望 1 个分组，实际 %d", len(groups))
	}
	g := groups[0]
	if g.Master.ID != "r1" {
		t.Fatalf("master 必须是首条命中行 r1，实际 %q", g.Master.ID)
	}
	if len(g.Duplicates) != 2 || g.Duplicates[0].ID != "r2" || g.Duplicates[1].ID != "r3" {
		t.Fatalf("duplicates 必须按出现顺序 [r2 r3]，实际 %+v", g.Duplicates)
	}
}

func TestGroupByVideo_PreservesEncounterOrder(t *testing.T) {
	records := []domain.Record{
		rec("r1", "7000000000000000002"),
		rec("r2", "7000000000000000001"),
		rec("r3", "7000000000000000002"),
	}

	groups, _ := GroupByVideo(records)
	if len(groups) != 2 {
		t.Fatalf("期望 2 个分组，实际 %d", len(groups))
	}
	if groups[0].ID != "7000000000000000002" || groups[1].ID != "7000000000000000001" {
		t.Fatalf("分组顺序必须是 ID 首次出现顺序，实际 %v %v", groups[0].ID, groups[1].ID)
	}
}

func TestGroupByVideo_DropsUnresolvedSilently(t *testing.T) {
	records := []domain.Record{
		rec("r1", "不是ID"),
		rec("r2", "7000000000000000001"),
		rec("r3", ""),
	}

	groups, dropped := GroupByVideo(records)
	if len(groups) != 1 || dropped != 2 {
		t.Fatalf("期望 1 组 + 丢弃 2 行，实际 groups=%d dropped=%d", len(groups), dropped)
	}
}

func TestGroupByVideo_NormalizesCellShapes(t *testing.T) {
	// 视频ID 列可能是富文本列表形态；分组键必须仍是规范化后的 19 位 ID。
	records := []domain.Record{
		{ID: "r1", Fields: map[string]any{
			feishu.FieldVideoID: []any{map[string]any{"text": "https://www.douyin.com/video/7000000000000000001"}},
		}},
		rec("r2", "7000000000000000001"),
	}

	groups, dropped := GroupByVideo(records)
	if dropped != 0 || len(groups) != 1 {
		t.Fatalf("富文本与纯文本必须并入同一分组，实际 groups=%d dropped=%d", len(groups), dropped)
	}
	if groups[0].Master.ID != "r1" || len(groups[0].Duplicates) != 1 {
		t.Fatalf("期望 r1 为 master、r2 为 duplicate，实际 %+v", groups[0])
	}
}
