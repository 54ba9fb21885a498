package tikhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/clawbot/dysync/internal/domain"
)

func newTestClient(srvURL string) *Client {
	c := NewClient("test-key", &http.Client{})
	c.BaseURL = srvURL
	c.Sleep = func(time.Duration) {}
	return c
}

func TestFetchVideo_SuccessMergesStatistics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(webDetailPath, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("期望 Bearer 认证头，实际 %q", got)
		}
		w.Write([]byte(`{"code":200,"data":{"aweme_detail":{
			"aweme_id":"7300000000000000001",
			"desc":"今天的穿搭",
			"create_time":1700000000,
			"author":{"nickname":"小红","unique_id":"xiaohong"},
			"video":{"duration":15500},
			"statistics":{"play_count":0,"digg_count":100,"comment_count":5},
			"text_extra":[
				{"type":1,"hashtag_name":"穿搭"},
				{"type":0,"hashtag_name":"忽略我"},
				{"type":1,"hashtag_name":"OOTD"}
			]
		}}}`))
	})
	mux.HandleFunc(statsPath, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"data":{"statistics_list":[
			{"aweme_id":"7300000000000000001","play_count":88000,"digg_count":60}
		]}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	m, err := c.FetchVideo(context.Background(), "7300000000000000001")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	if m.Desc != "今天的穿搭" {
		t.Errorf("标题不符：%q", m.Desc)
	}
	if m.Statistics.PlayCount != 88000 {
		t.Errorf("播放量应由统计接口补充为 88000，实际 %d", m.Statistics.PlayCount)
	}
	if m.Statistics.DiggCount != 100 {
		t.Errorf("点赞数 100 不应被更小的 60 覆盖，实际 %d", m.Statistics.DiggCount)
	}
	if m.DurationSeconds() != 15.5 {
		t.Errorf("时长应为 15.5 秒，实际 %v", m.DurationSeconds())
	}
	if got := m.HashtagLine(); got != "#穿搭 #OOTD" {
		t.Errorf("话题标签不符：%q", got)
	}
}

func TestFetchVideo_404FallsBackToMobileAPI(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(webDetailPath, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
	})
	mux.HandleFunc(mobileVideoPath, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"data":{"aweme_detail":{
			"aweme_id":"7300000000000000002","desc":"移动端兜底",
			"statistics":{"digg_count":7}
		}}}`))
	})
	mux.HandleFunc(statsPath, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"data":{"statistics_list":[]}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	m, err := c.FetchVideo(context.Background(), "7300000000000000002")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if m.Desc != "移动端兜底" {
		t.Errorf("应使用 Mobile API 的结果，实际标题 %q", m.Desc)
	}
	if m.IsDeleted {
		t.Errorf("回退成功不应标记为已下架")
	}
}

func TestFetchVideo_NotFoundBecomesSyntheticDeleted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(webDetailPath, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
	})
	mux.HandleFunc(mobileVideoPath, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	m, err := c.FetchVideo(context.Background(), "7300000000000000003")
	if err != nil {
		t.Fatalf("已下架应返回合成记录而不是错误：%v", err)
	}
	if !m.IsDeleted {
		t.Fatalf("期望 IsDeleted=true")
	}
	if m.Desc != "视频不存在或已下架" {
		t.Errorf("占位标题不符：%q", m.Desc)
	}
	if m.Statistics.PlayCount != 0 || m.Statistics.DiggCount != 0 {
		t.Errorf("合成记录的统计应全零")
	}
}

func TestFetchVideo_FilterDetailBecomesSyntheticDeleted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(webDetailPath, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"data":{"filter_detail":{"detail_msg":"作品已删除"}}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	m, err := c.FetchVideo(context.Background(), "7300000000000000004")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if !m.IsDeleted || m.Desc != domain.DeletedTitle {
		t.Fatalf("期望合成的已下架记录，实际 %+v", m)
	}
}

func TestFetchVideo_RetriesThreeTimesThenFails(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	var slept int
	c := newTestClient(srv.URL)
	c.Sleep = func(time.Duration) { slept++ }

	if _, err := c.FetchVideo(context.Background(), "7300000000000000005"); err == nil {
		t.Fatalf("期望错误，但得到 nil")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("期望固定 3 次尝试，实际 %d", got)
	}
	if slept != 2 {
		t.Errorf("3 次尝试之间应休眠 2 次，实际 %d", slept)
	}
}

func TestFetchVideo_EmptyID(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0")
	if _, err := c.FetchVideo(context.Background(), ""); err == nil {
		t.Fatalf("空 ID 期望错误")
	}
}

func TestMergeStatistics_MaxWinsZeroNeverOverwrites(t *testing.T) {
	dst := domain.Statistics{PlayCount: 100, DiggCount: 0, CommentCount: 8}
	MergeStatistics(&dst, domain.Statistics{PlayCount: 0, DiggCount: 50, CommentCount: 3})

	if dst.PlayCount != 100 {
		t.Errorf("0 不应覆盖正值：play=%d", dst.PlayCount)
	}
	if dst.DiggCount != 50 {
		t.Errorf("正值应填入空位：digg=%d", dst.DiggCount)
	}
	if dst.CommentCount != 8 {
		t.Errorf("较小值不应覆盖较大值：comment=%d", dst.CommentCount)
	}
}
