package feishu

import (
	"math"
	"time"

	"github.com/clawbot/dysync/internal/domain"
)

// 表格字段名是对外契约：既有表格按这些列名建表，改名会静默写失败。
const (
	FieldVideoID    = "视频ID"
	FieldVideoLink  = "视频链接"
	FieldTitle      = "标题描述"
	FieldAuthorName = "作者昵称"
	FieldAuthorID   = "作者ID"
	FieldPublishAt  = "发布时间"
	FieldDuration   = "视频时长(秒)"
	FieldFetchedAt  = "采集时间"
	FieldPlayCount  = "播放量"
	FieldDiggCount  = "点赞数"
	FieldComments   = "评论数"
	FieldShares     = "分享数"
	FieldCollects   = "收藏数"
	FieldSource     = "数据来源"
	FieldHashtags   = "话题标签"
	FieldHasCart    = "是否挂车"
	FieldProdTitle  = "商品标题"
	FieldProdPrice  = "商品价格(元)"
	FieldProdSales  = "商品销量"
	FieldProdLink   = "商品链接"
)

// LinkCell 构造超链接单元格；url 为空时返回 nil（写 null 等价于清空）。
func LinkCell(text, url string) any {
	if url == "" {
		return nil
	}
	return map[string]any{"text": text, "link": url}
}

// RecordFields 把规范化元数据转换为一次整行更新的字段映射。
//
// 下架哨兵规则：已删除，或 ID 非空但标题与发布时间都为空（典型的
// 半失效响应），标题统一写哨兵值。
func RecordFields(m domain.VideoMetadata) map[string]any {
	desc := m.Desc
	if m.IsDeleted || (m.AwemeID != "" && desc == "" && m.CreateTime == 0) {
		desc = domain.DeletedTitle
	}

	fetchedAt := m.FetchedAt * 1000
	if m.FetchedAt == 0 {
		fetchedAt = time.Now().UnixMilli()
	}

	fields := map[string]any{
		FieldVideoID:    string(m.AwemeID),
		FieldVideoLink:  LinkCell("查看视频", m.ShareURL),
		FieldTitle:      desc,
		FieldAuthorName: m.Author.Nickname,
		FieldAuthorID:   m.Author.UniqueID,
		FieldPublishAt:  m.CreateTime * 1000,
		FieldDuration:   round2(m.DurationSeconds()),
		FieldFetchedAt:  fetchedAt,
		FieldPlayCount:  m.Statistics.PlayCount,
		FieldDiggCount:  m.Statistics.DiggCount,
		FieldComments:   m.Statistics.CommentCount,
		FieldShares:     m.Statistics.ShareCount,
		FieldCollects:   m.Statistics.CollectCount,
		FieldSource:     m.DataSource,
		FieldHashtags:   m.HashtagLine(),
	}

	if len(m.Promotions) > 0 {
		p := m.Promotions[0]
		fields[FieldHasCart] = true
		fields[FieldProdTitle] = p.Title
		fields[FieldProdPrice] = round2(float64(p.Price) / 100)
		fields[FieldProdSales] = p.Sales
		fields[FieldProdLink] = LinkCell("查看商品", p.URL)
	} else {
		fields[FieldHasCart] = false
		fields[FieldProdTitle] = ""
		fields[FieldProdPrice] = float64(0)
		fields[FieldProdSales] = int64(0)
		fields[FieldProdLink] = nil
	}

	return fields
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
