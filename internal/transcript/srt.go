package transcript

import (
	"fmt"
	"strings"
	"time"
)

// 转写接口不回时间轴，SRT 时间只能按语速估算。
const charsPerSecond = 4.0

// ToSRT 把纯文本转写渲染成 SRT 字幕：按句切条，
// 时间轴按每秒 4 字的语速估算。
func ToSRT(text string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}

	var b strings.Builder
	var cursor time.Duration
	for i, s := range sentences {
		dur := time.Duration(float64(len([]rune(s)))/charsPerSecond*float64(time.Second) + 0.5)
		if dur < time.Second {
			dur = time.Second
		}

		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, srtTimestamp(cursor), srtTimestamp(cursor+dur), s)
		cursor += dur
	}
	return b.String()
}

// splitSentences 按中英文句末标点切句；没有标点的长文本整体算一句。
func splitSentences(text string) []string {
	var out []string
	var cur strings.Builder

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}

	for _, r := range text {
		switch r {
		case '。', '！', '？', '!', '?', '.', '\n', '；', ';':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

func srtTimestamp(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	ms := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
