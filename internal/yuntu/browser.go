//go:build browser

package yuntu

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/clawbot/dysync/internal/domain"
)

// searchJS 在云图页的搜索框里输入视频 ID 并触发搜索。
const searchJS = `(id) => {
	const input = document.querySelector('input[placeholder*="搜索"], input[placeholder*="视频"], input[type="text"]');
	if (!input) return false;
	input.value = id;
	input.dispatchEvent(new Event('input', { bubbles: true }));
	const btn = document.querySelector('button[class*="search"], [class*="search-btn"]');
	if (btn) btn.click();
	return true;
}`

// FetchVideoPage 打开品牌热门内容页，搜索指定视频后返回渲染完成的 HTML。
//
// 每次调用独立拉起一个无头浏览器：云图对长连接会话风控敏感，
// 短生命周期实例反而更稳。
func (b *Browser) FetchVideoPage(ctx context.Context, brandURL string, id domain.VideoID) (string, error) {
	l := launcher.New().Headless(true)
	if b.ProxyURL != "" {
		l = l.Proxy(b.ProxyURL)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("启动浏览器失败：%w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("连接浏览器失败：%w", err)
	}
	defer browser.Close()

	page, err := stealth.Page(browser)
	if err != nil {
		return "", fmt.Errorf("创建页面失败：%w", err)
	}
	page = page.Context(ctx)

	if err := page.Navigate(brandURL); err != nil {
		return "", fmt.Errorf("打开云图页面失败：%w", err)
	}
	if err := page.WaitStable(3 * time.Second); err != nil {
		return "", fmt.Errorf("等待页面加载失败：%w", err)
	}

	if id != "" {
		if _, err := page.Eval(searchJS, string(id)); err != nil {
			b.logf("搜索视频 %s 失败：%v", id, err)
		} else if err := page.WaitStable(3 * time.Second); err != nil {
			b.logf("等待搜索结果失败：%v", err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("读取页面失败：%w", err)
	}
	return html, nil
}
