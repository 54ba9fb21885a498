package tikhub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// 翻译接口的单次内容上限（按字符计，不是字节）。
const translateMaxChars = 5000

// Translation 是一次翻译调用的结果。
type Translation struct {
	Source     string `json:"source"`
	TargetLang string `json:"target_lang"`
	Translated string `json:"translated"`
}

// TranslateContent 调内容翻译接口。targetLang 为空时默认简体中文。
// 超长内容按字符截断到 5000，而不是报错。
func (c *Client) TranslateContent(ctx context.Context, content, targetLang string) (*Translation, error) {
	if content == "" {
		return nil, errors.New("待翻译内容不能为空")
	}
	if targetLang == "" {
		targetLang = "zh-Hans"
	}
	if r := []rune(content); len(r) > translateMaxChars {
		c.Logf("内容超过 %d 字符，已截断", translateMaxChars)
		content = string(r[:translateMaxChars])
	}

	payload, err := json.Marshal(map[string]string{
		"trg_lang":    targetLang,
		"src_content": content,
	})
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, detailTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.BaseURL+translatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("翻译请求失败：%w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("翻译接口返回 HTTP %d", resp.StatusCode)
	}

	root := gjson.ParseBytes(b)
	if root.Get("code").Int() != 200 {
		msg := root.Get("message").String()
		if msg == "" {
			msg = "未知错误"
		}
		return nil, fmt.Errorf("翻译接口返回错误：%s", msg)
	}

	translated := root.Get("data.translated_content_list.0.translated_content").String()
	if translated == "" {
		return nil, errors.New("翻译结果为空")
	}
	return &Translation{
		Source:     content,
		TargetLang: targetLang,
		Translated: translated,
	}, nil
}
