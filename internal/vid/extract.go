package vid

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/clawbot/dysync/internal/domain"
)

// 短链接/分享链接需要先跟随重定向还原成标准链接，才能做数字提取。
var shortLinkHosts = []string{"v.douyin.com", "douyin.com/share/"}

var (
	embeddedURLRE = regexp.MustCompile(`https?://[^\s]+`)
	// 泛匹配：任何 19 位数字串即视为视频 ID；多个命中取最左侧的一个。
	id19RE = regexp.MustCompile(`\d{19}`)
)

// 兼容旧链接格式的提取规则（按序尝试，以防 ID 长度变化）。
var legacyREs = []*regexp.Regexp{
	regexp.MustCompile(`/video/(\d+)`),
	regexp.MustCompile(`aweme_id=(\d+)`),
	regexp.MustCompile(`modal_id=(\d+)`),
}

const redirectTimeout = 10 * time.Second

// Resolve 把任意视频引用（纯 ID、链接、含 ID 的自由文本）规范化为 VideoID。
//
// 优先级固定：
// 1) 文本内嵌 URL 且匹配短链接形态 → 跟随重定向，用最终 URL 替换输入继续解析；
//    重定向失败不致命，退回原始输入。
// 2) 第一个 19 位数字串。
// 3) 旧规则（/video/、aweme_id=、modal_id=）。
// 4) 解析失败。
func Resolve(ctx context.Context, ref string, c *http.Client) (domain.VideoID, bool) {
	s := strings.TrimSpace(ref)
	if s == "" {
		return "", false
	}

	if strings.Contains(s, "http") {
		if u := embeddedURLRE.FindString(s); u != "" && isShortLink(u) {
			if final, err := followRedirects(ctx, u, c); err == nil && final != "" {
				s = final
			}
		}
	}

	return ResolveLocal(s)
}

// ResolveLocal 是不做网络调用的解析尾部（批量路径逐行调用时必须用它）。
func ResolveLocal(ref string) (domain.VideoID, bool) {
	s := strings.TrimSpace(ref)
	if s == "" {
		return "", false
	}

	if m := id19RE.FindString(s); m != "" {
		return domain.ParseVideoID(m)
	}

	for _, re := range legacyREs {
		if m := re.FindStringSubmatch(s); len(m) == 2 {
			return domain.ParseVideoID(m[1])
		}
	}

	return "", false
}

func isShortLink(u string) bool {
	for _, h := range shortLinkHosts {
		if strings.Contains(u, h) {
			return true
		}
	}
	return false
}

// followRedirects 发一次 HEAD 并跟随重定向，返回最终落点 URL。
func followRedirects(ctx context.Context, rawURL string, c *http.Client) (string, error) {
	if c == nil {
		c = &http.Client{Timeout: redirectTimeout}
	}

	ctx, cancel := context.WithTimeout(ctx, redirectTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// 跟随重定向后 Request.URL 即最终落点。
	return resp.Request.URL.String(), nil
}
