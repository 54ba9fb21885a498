package httpx

import (
	"errors"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	xproxy "golang.org/x/net/proxy"
)

const (
	apiTimeout      = 30 * time.Second
	redirectTimeout = 10 * time.Second
)

// Transport 把“UA 池 + 代理 + 有界重试”固化为统一策略。
//
// 设计目标：各 API 客户端只负责“组请求 + 解析响应”，不关心网络策略细节。
// 注意：抓取级的固定次数重试（3 次 + 固定休眠）在 tikhub 包内实现，属于
// 既有行为；这里的重试只针对可重放请求的传输层错误。
type Transport struct {
	Base http.RoundTripper

	ua *uaPool

	// RetryMax 表示最大重试次数（不含首次尝试）。只对 GET/HEAD 且无 body 生效。
	RetryMax int
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if t.Base == nil {
		return nil, errors.New("nil base transport")
	}

	canRetry := (req.Method == http.MethodGet || req.Method == http.MethodHead) && req.Body == nil
	max := t.RetryMax
	if max < 0 || !canRetry {
		max = 0
	}

	var lastErr error
	for attempt := 0; attempt <= max; attempt++ {
		r := req.Clone(req.Context())
		if r.Header.Get("User-Agent") == "" {
			r.Header.Set("User-Agent", t.ua.random())
		}

		resp, err := t.Base.RoundTrip(r)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if req.Context().Err() != nil {
			// ctx 已取消：不再重试，直接返回最后错误（更可解释）。
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// NewAPIClient 构造 TikHub / 飞书 API 用的 HTTP client。
//
// 规则：
// - proxyURL 支持 http/https/socks5（空串则直连）
// - 内置 UA 池：每个请求随机 UA
// - 传输层不重试：抓取级重试由调用方的固定循环负责
func NewAPIClient(proxyURL string) (*http.Client, error) {
	return newClient(proxyURL, apiTimeout, 0)
}

// NewRedirectClient 构造短链接重定向解析用的 client（短超时 + 一次传输层重试）。
func NewRedirectClient(proxyURL string) (*http.Client, error) {
	return newClient(proxyURL, redirectTimeout, 1)
}

// NewDownloadClient 构造视频下载用的 client：不设总超时（流式大响应），
// 只限制握手与首字节。
func NewDownloadClient(proxyURL string) (*http.Client, error) {
	return newClient(proxyURL, 0, 0)
}

func newClient(proxyURL string, timeout time.Duration, retryMax int) (*http.Client, error) {
	base := &http.Transport{
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	proxyURL = strings.TrimSpace(proxyURL)
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, err
		}
		switch u.Scheme {
		case "http", "https":
			base.Proxy = http.ProxyURL(u)
		case "socks5":
			// socks5 走 Dialer 而不是 Proxy 字段。
			dialer, err := xproxy.FromURL(u, xproxy.Direct)
			if err != nil {
				return nil, err
			}
			cd, ok := dialer.(xproxy.ContextDialer)
			if !ok {
				return nil, errors.New("socks5 代理不支持按 context 拨号")
			}
			base.DialContext = cd.DialContext
		default:
			return nil, errors.New("代理只支持 http/https/socks5：" + u.Scheme)
		}
	}

	tr := &Transport{
		Base:     base,
		ua:       globalUA,
		RetryMax: retryMax,
	}
	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}, nil
}

type uaPool struct {
	mu  sync.Mutex
	rnd *rand.Rand
	uas []string
}

func (p *uaPool) random() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uas[p.rnd.Intn(len(p.uas))]
}

var globalUA = newUAPool()

func newUAPool() *uaPool {
	// 尽量保持 UA 列表短小但多样；未来可扩充（不对外暴露配置）。
	uas := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_6) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.3 Safari/605.1.15",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	}
	return &uaPool{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		uas: uas,
	}
}
