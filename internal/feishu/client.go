package feishu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/clawbot/dysync/internal/domain"
)

const (
	defaultBaseURL = "https://open.feishu.cn/open-apis/bitable/v1/apps"
	defaultAuthURL = "https://open.feishu.cn/open-apis/auth/v3/tenant_access_token/internal"

	listPageSize     = 100
	batchGetSize     = 100
	batchUpdateSize  = 500
	authTimeout      = 30 * time.Second
	listTimeout      = 60 * time.Second
	updateTimeout    = 60 * time.Second
	fieldListTimeout = 30 * time.Second
)

// APIError 表示后端返回了业务错误码（HTTP 200 但 code != 0）。
type APIError struct {
	Op   string
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("feishu %s 失败（code %d）：%s", e.Op, e.Code, e.Msg)
}

// Client 是多维表格客户端（仅保留同步所需能力）。
//
// 约束：
// - 调用任何数据接口前必须先 Authenticate
// - 所有列表接口内部吃掉分页（page_token / has_more）
// - BaseURL/AuthURL 可覆盖（镜像/测试）
type Client struct {
	BaseURL string
	AuthURL string

	// Logf 输出批次级的非致命告警；默认丢弃。
	Logf func(format string, args ...any)

	appID     string
	appSecret string
	http      *http.Client
	token     string
}

func NewClient(appID, appSecret string, c *http.Client) *Client {
	if c == nil {
		c = &http.Client{}
	}
	return &Client{
		BaseURL: defaultBaseURL,
		AuthURL: defaultAuthURL,
		Logf:    func(string, ...any) {},

		appID:     appID,
		appSecret: appSecret,
		http:      c,
	}
}

// Authenticate 获取 tenant_access_token 并缓存到本次进程生命周期。
func (c *Client) Authenticate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	body, err := c.postJSON(ctx, c.AuthURL, map[string]any{
		"app_id":     c.appID,
		"app_secret": c.appSecret,
	})
	if err != nil {
		return fmt.Errorf("获取 access token 失败：%w", err)
	}

	var resp struct {
		Code              int    `json:"code"`
		Msg               string `json:"msg"`
		TenantAccessToken string `json:"tenant_access_token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("解析 access token 响应失败：%w", err)
	}
	if resp.Code != 0 {
		return &APIError{Op: "auth", Code: resp.Code, Msg: resp.Msg}
	}

	c.token = resp.TenantAccessToken
	return nil
}

type recordsPage struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Items     []domain.Record `json:"items"`
		Records   []domain.Record `json:"records"`
		HasMore   bool            `json:"has_more"`
		PageToken string          `json:"page_token"`
	} `json:"data"`
}

// ListRecords 列出表格全部记录（内部翻页直到 has_more=false）。
func (c *Client) ListRecords(ctx context.Context, appToken, tableID, viewID string) ([]domain.Record, error) {
	base := fmt.Sprintf("%s/%s/tables/%s/records", c.BaseURL, appToken, tableID)

	var records []domain.Record
	pageToken := ""
	for {
		q := url.Values{}
		q.Set("page_size", fmt.Sprint(listPageSize))
		if viewID != "" {
			q.Set("view_id", viewID)
		}
		if pageToken != "" {
			q.Set("page_token", pageToken)
		}

		reqCtx, cancel := context.WithTimeout(ctx, listTimeout)
		body, err := c.getJSON(reqCtx, base+"?"+q.Encode())
		cancel()
		if err != nil {
			return nil, fmt.Errorf("获取记录失败：%w", err)
		}

		var page recordsPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("解析记录响应失败：%w", err)
		}
		if page.Code != 0 {
			return nil, &APIError{Op: "list_records", Code: page.Code, Msg: page.Msg}
		}

		records = append(records, page.Data.Items...)
		if !page.Data.HasMore {
			return records, nil
		}
		pageToken = page.Data.PageToken
	}
}

// BatchGetRecords 按 record_id 批量取行（每批 100；批次级失败只告警不中断）。
func (c *Client) BatchGetRecords(ctx context.Context, appToken, tableID string, recordIDs []string) ([]domain.Record, error) {
	if len(recordIDs) == 0 {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/%s/tables/%s/records/batch_get", c.BaseURL, appToken, tableID)

	var all []domain.Record
	for i := 0; i < len(recordIDs); i += batchGetSize {
		end := i + batchGetSize
		if end > len(recordIDs) {
			end = len(recordIDs)
		}

		reqCtx, cancel := context.WithTimeout(ctx, listTimeout)
		body, err := c.postJSON(reqCtx, endpoint, map[string]any{"record_ids": recordIDs[i:end]})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("批量获取记录失败：%w", err)
		}

		var page recordsPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("解析批量获取响应失败：%w", err)
		}
		if page.Code != 0 {
			c.Logf("批量获取失败（code %d）：%s", page.Code, page.Msg)
			continue
		}
		all = append(all, page.Data.Records...)
	}
	return all, nil
}

// UpdateRecords 批量更新记录（每批 500，field_id_type=name）。
// 批次级业务错误沿用既有口径：告警后继续下一批，不让单批失败放弃整次同步。
func (c *Client) UpdateRecords(ctx context.Context, appToken, tableID string, updates []domain.RowUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	endpoint := fmt.Sprintf("%s/%s/tables/%s/records/batch_update?field_id_type=name", c.BaseURL, appToken, tableID)

	for i := 0; i < len(updates); i += batchUpdateSize {
		end := i + batchUpdateSize
		if end > len(updates) {
			end = len(updates)
		}
		batch := updates[i:end]

		reqCtx, cancel := context.WithTimeout(ctx, updateTimeout)
		body, err := c.postJSON(reqCtx, endpoint, map[string]any{"records": batch})
		cancel()
		if err != nil {
			return fmt.Errorf("更新记录失败：%w", err)
		}

		var resp struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return fmt.Errorf("解析更新响应失败：%w", err)
		}
		if resp.Code != 0 {
			c.Logf("更新批次 %d 失败（code %d）：%s", i, resp.Code, resp.Msg)
			continue
		}
		c.Logf("成功更新 %d 条记录", len(batch))
	}
	return nil
}

// CreateRecord 新增一行（云图脚本同步用）。
func (c *Client) CreateRecord(ctx context.Context, appToken, tableID string, fields map[string]any) error {
	endpoint := fmt.Sprintf("%s/%s/tables/%s/records", c.BaseURL, appToken, tableID)

	reqCtx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	body, err := c.postJSON(reqCtx, endpoint, map[string]any{"fields": fields})
	if err != nil {
		return fmt.Errorf("新增记录失败：%w", err)
	}

	var resp struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("解析新增响应失败：%w", err)
	}
	if resp.Code != 0 {
		return &APIError{Op: "create_record", Code: resp.Code, Msg: resp.Msg}
	}
	return nil
}

// Field 是表格字段的元信息（建表校验用）。
type Field struct {
	FieldID   string `json:"field_id"`
	FieldName string `json:"field_name"`
	Type      int    `json:"type"`
}

// ListFields 列出表格字段；失败时返回空列表（与既有行为一致，不中断流程）。
func (c *Client) ListFields(ctx context.Context, appToken, tableID string) []Field {
	base := fmt.Sprintf("%s/%s/tables/%s/fields", c.BaseURL, appToken, tableID)

	var fields []Field
	pageToken := ""
	for {
		q := url.Values{}
		q.Set("page_size", "100")
		if pageToken != "" {
			q.Set("page_token", pageToken)
		}

		reqCtx, cancel := context.WithTimeout(ctx, fieldListTimeout)
		body, err := c.getJSON(reqCtx, base+"?"+q.Encode())
		cancel()
		if err != nil {
			c.Logf("获取字段失败：%v", err)
			return nil
		}

		var page struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
			Data struct {
				Items     []Field `json:"items"`
				HasMore   bool    `json:"has_more"`
				PageToken string  `json:"page_token"`
			} `json:"data"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			c.Logf("解析字段响应失败：%v", err)
			return nil
		}
		if page.Code != 0 {
			c.Logf("获取字段失败（code %d）：%s", page.Code, page.Msg)
			return nil
		}

		fields = append(fields, page.Data.Items...)
		if !page.Data.HasMore {
			return fields
		}
		pageToken = page.Data.PageToken
	}
}

func (c *Client) getJSON(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, rawURL string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d：%s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
