package main

import (
	"fmt"
	"io"
	"time"

	"github.com/clawbot/dysync/internal/app/run"
	"github.com/clawbot/dysync/internal/domain"
)

var _ run.Observer = (*progressUI)(nil)

// progressUI 是交互终端上的同步进度输出。
//
// 约束：所有过程信息写 stderr，不污染 stdout 的 JSON 输出契约。
type progressUI struct {
	w         io.Writer
	startedAt time.Time
}

func newProgressUI(w io.Writer) *progressUI {
	return &progressUI{w: w}
}

func (p *progressUI) OnStart(appToken, tableID string) {
	p.startedAt = time.Now()
	fmt.Fprintf(p.w, "[%s] dysync sync\n", p.startedAt.Format("15:04:05"))
	fmt.Fprintf(p.w, "  app_token: %s\n", maskToken(appToken))
	fmt.Fprintf(p.w, "  table_id:  %s\n\n", tableID)
}

func (p *progressUI) OnPhaseDone(name string, fields map[string]any, dur time.Duration) {
	switch name {
	case "list":
		fmt.Fprintf(p.w, "拉取记录: records=%d (%s)\n", intField(fields, "records"), shortDur(dur))
	case "group":
		fmt.Fprintf(p.w, "分组: videos=%d unresolved=%d (%s)\n",
			intField(fields, "videos"), intField(fields, "unresolved"), shortDur(dur))
	case "plan":
		fmt.Fprintf(p.w, "规划: to_fetch=%d skipped=%d\n",
			intField(fields, "to_fetch"), intField(fields, "skipped"))
	case "fetch":
		fmt.Fprintf(p.w, "抓取: ok=%d fail=%d (%s)\n",
			intField(fields, "ok"), intField(fields, "fail"), shortDur(dur))
	case "update":
		fmt.Fprintf(p.w, "回写: rows=%d (%s)\n", intField(fields, "rows"), shortDur(dur))
	default:
		// 未知阶段也不要静默（便于调试/演进）。
		fmt.Fprintf(p.w, "%s (%s)\n", name, shortDur(dur))
	}
}

func (p *progressUI) OnItemDone(idx, total int, id domain.VideoID, ok bool) {
	mark := "✓"
	if !ok {
		mark = "✗"
	}
	fmt.Fprintf(p.w, "  [%d/%d] %s %s\n", idx, total, id, mark)
}

func intField(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func shortDur(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func maskToken(s string) string {
	r := []rune(s)
	if len(r) <= 6 {
		return "***"
	}
	return string(r[:4]) + "…" + string(r[len(r)-2:])
}
