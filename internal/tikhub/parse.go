package tikhub

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/clawbot/dysync/internal/domain"
)

// metadataFromAweme 把 aweme_detail 节点规范化为 domain.VideoMetadata。
//
// 字段缺失一律取零值，不报错：上游接口的字段经常随版本缺失或改名，
// 解析层的职责是"尽量取到"，完整性判断交给规划器。
func metadataFromAweme(aweme gjson.Result, id domain.VideoID, source string) *domain.VideoMetadata {
	awemeID := aweme.Get("aweme_id").String()
	if awemeID == "" {
		awemeID = string(id)
	}

	m := &domain.VideoMetadata{
		AwemeID:    domain.VideoID(awemeID),
		ShareURL:   domain.VideoID(awemeID).ShareURL(),
		Desc:       aweme.Get("desc").String(),
		CreateTime: aweme.Get("create_time").Int(),
		DurationMS: aweme.Get("video.duration").Int(),
		DataSource: source,
		FetchedAt:  time.Now().Unix(),
	}

	m.Author.Nickname = aweme.Get("author.nickname").String()
	m.Author.UniqueID = aweme.Get("author.unique_id").String()
	if m.Author.UniqueID == "" {
		m.Author.UniqueID = aweme.Get("author.sec_uid").String()
	}

	st := aweme.Get("statistics")
	m.Statistics = domain.Statistics{
		PlayCount:    st.Get("play_count").Int(),
		DiggCount:    st.Get("digg_count").Int(),
		CommentCount: st.Get("comment_count").Int(),
		ShareCount:   st.Get("share_count").Int(),
		CollectCount: st.Get("collect_count").Int(),
	}

	// 话题标签：text_extra 里 type==1 的条目。
	aweme.Get("text_extra").ForEach(func(_, v gjson.Result) bool {
		if v.Get("type").Int() == 1 {
			if name := v.Get("hashtag_name").String(); name != "" {
				m.Hashtags = append(m.Hashtags, name)
			}
		}
		return true
	})

	// 挂车商品：不是每个视频都有，缺失时保持空切片。
	for _, key := range []string{"promotions", "simple_promotions"} {
		aweme.Get(key).ForEach(func(_, v gjson.Result) bool {
			p := domain.Promotion{
				Title: v.Get("title").String(),
				Price: v.Get("price").Int(),
				Sales: v.Get("sales").Int(),
				URL:   v.Get("detail_url").String(),
			}
			if p.Title != "" || p.URL != "" {
				m.Promotions = append(m.Promotions, p)
			}
			return true
		})
		if len(m.Promotions) > 0 {
			break
		}
	}

	return m
}

// syntheticDeleted 合成一条"已下架"记录：调用方拿到的是正常元数据，
// 只是标题为占位文案、统计全零。
func syntheticDeleted(id domain.VideoID, desc string) *domain.VideoMetadata {
	return &domain.VideoMetadata{
		AwemeID:    id,
		ShareURL:   id.ShareURL(),
		Desc:       desc,
		IsDeleted:  true,
		DataSource: "N/A",
		FetchedAt:  time.Now().Unix(),
	}
}
