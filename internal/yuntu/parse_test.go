package yuntu

import (
	"strings"
	"testing"
)

const samplePage = `云图品牌中心
达人热门内容
超好玩的新款积木开箱！#乐高 #积木 #玩具测评
发布日期：2025-08-10
总曝光量
1,234,567
总互动率
5.6%
完播率
32.1%
达人信息
小小测评家
粉丝量：120.5万
抖音号：88996677
本视频内容公式
开场钩子、商品卖点、使用感受
本视频脚本
（开场）大家好，今天给大家带来一款超好玩的积木。
（商品卖点）这款积木有 500 个零件，性价比非常高。
（使用感受）拼完之后成就感满满，强烈推荐。
元素拆解
这里是不相关的内容
`

func TestParsePage_Fields(t *testing.T) {
	vs := ParsePage(samplePage, "https://yuntu.example/page")

	if vs.Title != "超好玩的新款积木开箱！#乐高 #积木 #玩具测评" {
		t.Errorf("标题不符：%q", vs.Title)
	}
	if vs.PublishDate != "2025-08-10" {
		t.Errorf("发布日期不符：%q", vs.PublishDate)
	}
	if vs.Views != "1,234,567" {
		t.Errorf("曝光量不符：%q", vs.Views)
	}
	if vs.InteractionRate != "5.6%" {
		t.Errorf("互动率不符：%q", vs.InteractionRate)
	}
	if vs.CompletionRate != "32.1%" {
		t.Errorf("完播率不符：%q", vs.CompletionRate)
	}
	if vs.TalentFollowers != "120.5万" {
		t.Errorf("粉丝量不符：%q", vs.TalentFollowers)
	}
	if vs.DouyinID != "88996677" {
		t.Errorf("抖音号不符：%q", vs.DouyinID)
	}
	if vs.Source != "yuntu" || vs.SourceURL != "https://yuntu.example/page" {
		t.Errorf("来源标记不符：%q %q", vs.Source, vs.SourceURL)
	}
}

func TestParsePage_ScriptStopsAtTerminator(t *testing.T) {
	vs := ParsePage(samplePage, "")

	if vs.RawScript == "" {
		t.Fatalf("脚本区块未提取到")
	}
	if containsAny(vs.RawScript, "元素拆解", "不相关的内容") {
		t.Errorf("脚本区块应止于「元素拆解」：%q", vs.RawScript)
	}
}

func TestParsePage_ContentFormula(t *testing.T) {
	vs := ParsePage(samplePage, "")

	want := []string{"开场钩子", "商品卖点", "使用感受"}
	if len(vs.ContentFormula) != len(want) {
		t.Fatalf("内容公式不符：%v", vs.ContentFormula)
	}
	for i := range want {
		if vs.ContentFormula[i] != want[i] {
			t.Errorf("第 %d 个公式标签应为 %q，实际 %q", i, want[i], vs.ContentFormula[i])
		}
	}
}

func TestParseScriptSegments(t *testing.T) {
	raw := "（开场）大家好。（商品卖点）零件很多，性价比高。（使用感受）成就感满满。（未知标签）忽略这段。"
	segments := ParseScriptSegments(raw)

	if len(segments) != 3 {
		t.Fatalf("期望 3 个段落，实际 %d：%+v", len(segments), segments)
	}
	if segments[0].Tag != "开场" || segments[0].Content != "大家好。" {
		t.Errorf("第一段不符：%+v", segments[0])
	}
	if segments[1].Tag != "商品卖点" {
		t.Errorf("第二段标签不符：%+v", segments[1])
	}
}

func TestParseScriptSegments_HalfWidthParens(t *testing.T) {
	segments := ParseScriptSegments("(开场)半角括号也要认。")
	if len(segments) != 1 || segments[0].Tag != "开场" {
		t.Fatalf("半角括号解析失败：%+v", segments)
	}
}

func TestParseScriptSegments_EmptyContentSkipped(t *testing.T) {
	segments := ParseScriptSegments("（开场）（商品卖点)有内容。")
	if len(segments) != 1 || segments[0].Tag != "商品卖点" {
		t.Fatalf("空内容段落应跳过：%+v", segments)
	}
}

func TestExtractPageText(t *testing.T) {
	html := `<html><head><style>.x{color:red}</style></head>
	<body><div>发布日期：2025-08-10</div><script>var x=1;</script><p>总曝光量 9,999</p></body></html>`

	text, err := ExtractPageText(html)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if !containsAny(text, "发布日期：2025-08-10") || !containsAny(text, "9,999") {
		t.Errorf("正文内容缺失：%q", text)
	}
	if containsAny(text, "var x=1", "color:red") {
		t.Errorf("script/style 内容应剔除：%q", text)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
