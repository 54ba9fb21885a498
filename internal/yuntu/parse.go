// Package yuntu 抓取巨量云图的品牌热门内容页，把页面里的视频脚本
// 解析成结构化数据。页面渲染依赖无头浏览器（构建标签 browser），
// 解析本身是纯文本处理，可独立测试。
package yuntu

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/clawbot/dysync/internal/domain"
)

var (
	dateRE        = regexp.MustCompile(`发布日期[：:]\s*(\d{4}-\d{2}-\d{2})`)
	viewsRE       = regexp.MustCompile(`总曝光量\s*([\d,]+)`)
	interactionRE = regexp.MustCompile(`总互动率\s*([\d.]+%?)`)
	completionRE  = regexp.MustCompile(`完播率\s*([\d.]+%?)`)
	followersRE   = regexp.MustCompile(`(?s)达人信息.*?粉丝量[：:]\s*([\d.]+[万wW]?)`)
	douyinIDRE    = regexp.MustCompile(`抖音号[：:]\s*(\d+)`)

	// 脚本段落：形如「（开场）内容…（商品卖点）内容…」。
	segmentRE = regexp.MustCompile(`(?s)[（(](适用人群|品牌信息|话题/玩法|适用场景|商品信息|商品卖点|使用感受|开场)[）)]([^（(]*)`)
)

// 「本视频脚本」区块到下列任一小节标题为止。
var scriptTerminators = []string{"元素拆解", "评论口碑", "热门评论", "标签分布"}

// ExtractPageText 把渲染后的 HTML 还原成接近 body.innerText 的纯文本。
func ExtractPageText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()
	return doc.Find("body").Text(), nil
}

// ParsePage 在页面纯文本上提取一条视频脚本记录。
// 字段缺失取空值：云图页面改版频繁，解析层只负责"尽量取到"。
func ParsePage(text, sourceURL string) domain.VideoScript {
	vs := domain.VideoScript{
		Title:           findTitle(text),
		PublishDate:     firstGroup(dateRE, text),
		Views:           firstGroup(viewsRE, text),
		InteractionRate: firstGroup(interactionRE, text),
		CompletionRate:  firstGroup(completionRE, text),
		TalentFollowers: firstGroup(followersRE, text),
		DouyinID:        firstGroup(douyinIDRE, text),
		RawScript:       sectionUntil(text, "本视频脚本", scriptTerminators),
		Source:          "yuntu",
		SourceURL:       sourceURL,
		ScrapedAt:       time.Now().Format(time.RFC3339),
	}

	formula := sectionUntil(text, "本视频内容公式", []string{"本视频脚本"})
	vs.ContentFormula = parseContentFormula(formula)
	vs.ScriptSegments = ParseScriptSegments(vs.RawScript)
	return vs
}

// ParseScriptSegments 把原始脚本切成带标签的段落。
func ParseScriptSegments(raw string) []domain.ScriptSegment {
	var segments []domain.ScriptSegment
	for _, m := range segmentRE.FindAllStringSubmatch(raw, -1) {
		content := strings.TrimSpace(m[2])
		if content == "" {
			continue
		}
		segments = append(segments, domain.ScriptSegment{Tag: m[1], Content: content})
	}
	return segments
}

// findTitle 找第一行像视频标题的文本：长度适中且带话题标签。
func findTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		n := len([]rune(line))
		if n >= 10 && n <= 200 && strings.Contains(line, "#") {
			return line
		}
	}
	return ""
}

// sectionUntil 截取从 marker 开始、到最近一个终止标题（或文本结尾）的区块。
func sectionUntil(text, marker string, terminators []string) string {
	start := strings.Index(text, marker)
	if start < 0 {
		return ""
	}
	rest := text[start+len(marker):]

	end := len(rest)
	for _, t := range terminators {
		if i := strings.Index(rest, t); i >= 0 && i < end {
			end = i
		}
	}
	return strings.TrimSpace(rest[:end])
}

func parseContentFormula(block string) []string {
	var tags []string
	for _, f := range strings.FieldsFunc(block, func(r rune) bool {
		return r == '\n' || r == '、' || r == '，' || r == ',' || r == ' ' || r == '\t'
	}) {
		f = strings.TrimSpace(f)
		if f != "" {
			tags = append(tags, f)
		}
	}
	return tags
}

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
