package run

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clawbot/dysync/internal/domain"
	"github.com/clawbot/dysync/internal/feishu"
	"github.com/clawbot/dysync/internal/tikhub"
)

type recordingObserver struct {
	phases []string
	items  int
}

func (o *recordingObserver) OnStart(string, string) {}
func (o *recordingObserver) OnPhaseDone(name string, _ map[string]any, _ time.Duration) {
	o.phases = append(o.phases, name)
}
func (o *recordingObserver) OnItemDone(_, _ int, _ domain.VideoID, _ bool) { o.items++ }

// 完整链路：表里有 A、A（重复）、B（缺数据）、一条解析不出 ID 的行。
// 期望只抓 B、只回写 B 的 master 行，其他计数与报告口径一致。
func TestExecute_EndToEnd(t *testing.T) {
	const (
		idA = "7300000000000000001"
		idB = "7300000000000000002"
	)

	var updated struct {
		Records []domain.RowUpdate `json:"records"`
	}

	fsMux := http.NewServeMux()
	fsMux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"tenant_access_token":"t-xyz"}`))
	})
	fsMux.HandleFunc("/apps/app1/tables/tbl1/records", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"data":{"has_more":false,"items":[
			{"record_id":"recA1","fields":{"视频ID":"` + idA + `","标题描述":"已有标题","点赞数":10}},
			{"record_id":"recA2","fields":{"视频ID":"` + idA + `","标题描述":"已有标题","点赞数":10}},
			{"record_id":"recB","fields":{"视频ID":"` + idB + `","标题描述":""}},
			{"record_id":"recX","fields":{"视频ID":"解析不出来的内容"}}
		]}}`))
	})
	fsMux.HandleFunc("/apps/app1/tables/tbl1/records/batch_update", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer t-xyz" {
			t.Errorf("回写请求缺少 token：%q", got)
		}
		json.NewDecoder(r.Body).Decode(&updated)
		w.Write([]byte(`{"code":0}`))
	})
	fsSrv := httptest.NewServer(fsMux)
	defer fsSrv.Close()

	thMux := http.NewServeMux()
	thMux.HandleFunc("/api/v1/douyin/web/fetch_multi_video", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"data":{"aweme_list":[
			{"aweme_id":"` + idB + `","desc":"第二条视频","statistics":{"digg_count":66}}
		]}}`))
	})
	thMux.HandleFunc("/api/v1/douyin/app/v3/fetch_video_statistics", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"data":{"statistics_list":[
			{"aweme_id":"` + idB + `","play_count":999}
		]}}`))
	})
	thSrv := httptest.NewServer(thMux)
	defer thSrv.Close()

	fc := feishu.NewClient("cli_x", "sec", &http.Client{})
	fc.BaseURL = fsSrv.URL + "/apps"
	fc.AuthURL = fsSrv.URL + "/auth"

	tc := tikhub.NewClient("tk", &http.Client{})
	tc.BaseURL = thSrv.URL

	obs := &recordingObserver{}
	rep := Execute(context.Background(), fc, tc, Options{
		AppToken: "app1",
		TableID:  "tbl1",
	}, obs)

	if rep.Status != "success" {
		t.Fatalf("期望 success，实际 %+v", rep)
	}
	if rep.TotalRecords != 4 || rep.UniqueVideos != 2 {
		t.Errorf("记录/视频计数不符：%+v", rep)
	}
	if rep.Skipped != 1 || rep.Updated != 1 || rep.Failed != 0 {
		t.Errorf("规划计数不符：%+v", rep)
	}
	if rep.Unresolved != 1 {
		t.Errorf("解析失败的行应计入 unresolved：%+v", rep)
	}

	if len(updated.Records) != 1 {
		t.Fatalf("期望回写 1 行，实际 %d", len(updated.Records))
	}
	u := updated.Records[0]
	if u.RecordID != "recB" {
		t.Errorf("应回写 B 的 master 行，实际 %q", u.RecordID)
	}
	if got := u.Fields[feishu.FieldTitle]; got != "第二条视频" {
		t.Errorf("标题不符：%v", got)
	}
	if got, ok := u.Fields[feishu.FieldPlayCount].(float64); !ok || got != 999 {
		t.Errorf("播放量应由统计接口补充：%v", u.Fields[feishu.FieldPlayCount])
	}

	if obs.items != 1 {
		t.Errorf("只抓 1 条，条目事件应为 1，实际 %d", obs.items)
	}
	wantPhases := []string{"list", "group", "plan", "fetch", "update"}
	if len(obs.phases) != len(wantPhases) {
		t.Fatalf("阶段事件不符：%v", obs.phases)
	}
	for i, p := range wantPhases {
		if obs.phases[i] != p {
			t.Errorf("第 %d 个阶段应为 %s，实际 %s", i, p, obs.phases[i])
		}
	}
}

// 抓取失败的视频降级为"只写标题哨兵"，整次同步仍然成功。
func TestExecute_NullFetchDegradesToSentinel(t *testing.T) {
	const idA = "7300000000000000001"

	var updated struct {
		Records []domain.RowUpdate `json:"records"`
	}

	fsMux := http.NewServeMux()
	fsMux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"tenant_access_token":"t"}`))
	})
	fsMux.HandleFunc("/apps/a/tables/t/records", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"data":{"has_more":false,"items":[
			{"record_id":"rec1","fields":{"视频ID":"` + idA + `","标题描述":""}}
		]}}`))
	})
	fsMux.HandleFunc("/apps/a/tables/t/records/batch_update", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&updated)
		w.Write([]byte(`{"code":0}`))
	})
	fsSrv := httptest.NewServer(fsMux)
	defer fsSrv.Close()

	// TikHub 全接口 500：批量与单条补捞都失败。
	thSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer thSrv.Close()

	fc := feishu.NewClient("cli_x", "sec", &http.Client{})
	fc.BaseURL = fsSrv.URL + "/apps"
	fc.AuthURL = fsSrv.URL + "/auth"
	tc := tikhub.NewClient("tk", &http.Client{})
	tc.BaseURL = thSrv.URL
	tc.Sleep = func(time.Duration) {}

	rep := Execute(context.Background(), fc, tc, Options{AppToken: "a", TableID: "t"}, nil)

	if rep.Status != "success" {
		t.Fatalf("单条失败不应让整次同步失败：%+v", rep)
	}
	if rep.Failed != 1 || rep.Updated != 0 {
		t.Errorf("计数不符：%+v", rep)
	}
	if len(updated.Records) != 1 {
		t.Fatalf("失败视频也应回写哨兵行，实际 %d 行", len(updated.Records))
	}
	f := updated.Records[0].Fields
	if len(f) != 1 || f[feishu.FieldTitle] != domain.DeletedTitle {
		t.Errorf("降级更新应只写标题哨兵：%v", f)
	}
}

func TestExecute_AuthFailureIsBackendError(t *testing.T) {
	fsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":99991663,"msg":"app not found"}`))
	}))
	defer fsSrv.Close()

	fc := feishu.NewClient("bad", "bad", &http.Client{})
	fc.BaseURL = fsSrv.URL
	fc.AuthURL = fsSrv.URL
	tc := tikhub.NewClient("tk", &http.Client{})

	rep := Execute(context.Background(), fc, tc, Options{AppToken: "a", TableID: "t"}, nil)

	if rep.Status != "error" || rep.ErrorCode != domain.ErrCodeBackendFailed {
		t.Fatalf("认证失败应为 backend_failed：%+v", rep)
	}
}
