package vid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveLocal_Plain19DigitID(t *testing.T) {
	got, ok := ResolveLocal("7567352731951164082")
	if !ok {
		t.Fatalf("期望解析成功")
	}
	if string(got) != "7567352731951164082" {
		t.Fatalf("期望 7567352731951164082，实际 %q", got)
	}
}

func TestResolveLocal_IDInsideFreeText(t *testing.T) {
	got, ok := ResolveLocal("这条视频 7567352731951164082 数据很好")
	if !ok || string(got) != "7567352731951164082" {
		t.Fatalf("期望从自由文本中提取 ID，实际 ok=%v got=%q", ok, got)
	}
}

func TestResolveLocal_MultipleRunsTakesLeftmost(t *testing.T) {
	got, ok := ResolveLocal("1111111111111111111 vs 2222222222222222222")
	if !ok || string(got) != "1111111111111111111" {
		t.Fatalf("期望取最左侧的 19 位数字串，实际 ok=%v got=%q", ok, got)
	}
}

func TestResolveLocal_CanonicalURL(t *testing.T) {
	got, ok := ResolveLocal("https://www.douyin.com/video/7567352731951164082")
	if !ok || string(got) != "7567352731951164082" {
		t.Fatalf("期望从标准链接提取，实际 ok=%v got=%q", ok, got)
	}
}

func TestResolveLocal_LegacyPatterns(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://www.douyin.com/video/123456789", "123456789"},
		{"https://www.douyin.com/user/x?aweme_id=987654321", "987654321"},
		{"https://www.douyin.com/discover?modal_id=555666777", "555666777"},
	}
	for _, c := range cases {
		got, ok := ResolveLocal(c.in)
		if !ok || string(got) != c.want {
			t.Fatalf("输入 %q：期望 %q，实际 ok=%v got=%q", c.in, c.want, ok, got)
		}
	}
}

func TestResolveLocal_NoMatch(t *testing.T) {
	for _, in := range []string{"", "hello world", "https://www.douyin.com/"} {
		if got, ok := ResolveLocal(in); ok {
			t.Fatalf("输入 %q：期望解析失败，实际 got=%q", in, got)
		}
	}
}

func TestResolve_ShortLinkFollowsRedirect(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/video/7001002003004005006?from=share", http.StatusFound)
	}))
	defer redirector.Close()

	// httptest 的 host 不在短链接白名单内，临时加入以走完整的 Resolve 路径。
	old := shortLinkHosts
	shortLinkHosts = append([]string{"127.0.0.1"}, old...)
	defer func() { shortLinkHosts = old }()

	// 短链接本身不含数字 ID：结果必须完全由重定向落点决定。
	in := "看看这个 " + redirector.URL + "/abc123 不错"
	got, ok := Resolve(context.Background(), in, target.Client())
	if !ok || string(got) != "7001002003004005006" {
		t.Fatalf("期望通过重定向解析出 ID，实际 ok=%v got=%q", ok, got)
	}
}

func TestResolve_RedirectFailureFallsBackToOriginal(t *testing.T) {
	// 重定向目标不可达：原始输入仍可走数字提取。
	old := shortLinkHosts
	shortLinkHosts = append([]string{"127.0.0.1"}, old...)
	defer func() { shortLinkHosts = old }()

	in := "http://127.0.0.1:1/dead-link 7567352731951164082"
	got, ok := Resolve(context.Background(), in, nil)
	if !ok || string(got) != "7567352731951164082" {
		t.Fatalf("期望回退到原始输入解析，实际 ok=%v got=%q", ok, got)
	}
}
