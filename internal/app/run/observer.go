package run

import (
	"time"

	"github.com/clawbot/dysync/internal/domain"
)

// Observer 把同步过程中的进度事件从核心流程里解耦出来。
//
// 约束：
// - run 包只发事件，不做任何输出（stdout 的 JSON 契约由 CLI 层守护）
// - 实现不要求并发安全：同步流程是串行的
type Observer interface {
	// OnStart 在同步开始时调用（尽早，保证用户很快看到输出）。
	OnStart(appToken, tableID string)
	// OnPhaseDone 在某阶段结束时调用（打印阶段统计与耗时）。
	OnPhaseDone(name string, fields map[string]any, dur time.Duration)
	// OnItemDone 在某个视频处理完成时调用。
	OnItemDone(idx, total int, id domain.VideoID, ok bool)
}

// nopObserver 让核心流程不必到处判 nil。
type nopObserver struct{}

func (nopObserver) OnStart(string, string)                            {}
func (nopObserver) OnPhaseDone(string, map[string]any, time.Duration) {}
func (nopObserver) OnItemDone(int, int, domain.VideoID, bool)         {}
