package transcript

import (
	"strings"
	"testing"
)

func TestToSRT_OneCuePerSentence(t *testing.T) {
	got := ToSRT("大家好。今天给大家开箱！值不值得买？")

	if !strings.HasPrefix(got, "1\n00:00:00,000 --> ") {
		t.Fatalf("第一条字幕格式不符：\n%s", got)
	}
	for _, want := range []string{"大家好", "今天给大家开箱", "值不值得买"} {
		if !strings.Contains(got, want) {
			t.Errorf("缺少句子 %q：\n%s", want, got)
		}
	}
	if n := strings.Count(got, " --> "); n != 3 {
		t.Errorf("期望 3 条字幕，实际 %d", n)
	}
}

func TestToSRT_TimestampsAreMonotonic(t *testing.T) {
	got := ToSRT("第一句话说得比较长一些。短句。")
	lines := strings.Split(got, "\n")

	var stamps []string
	for _, l := range lines {
		if strings.Contains(l, " --> ") {
			stamps = append(stamps, l)
		}
	}
	if len(stamps) != 2 {
		t.Fatalf("期望 2 条时间轴，实际 %v", stamps)
	}
	// 第二条的开始时间 == 第一条的结束时间。
	first := strings.Split(stamps[0], " --> ")
	second := strings.Split(stamps[1], " --> ")
	if first[1] != second[0] {
		t.Errorf("时间轴应连续：%q vs %q", first[1], second[0])
	}
}

func TestToSRT_Empty(t *testing.T) {
	if got := ToSRT(""); got != "" {
		t.Fatalf("空文本应得到空输出，实际 %q", got)
	}
	if got := ToSRT("。。。"); got != "" {
		t.Fatalf("只有标点应得到空输出，实际 %q", got)
	}
}
