package rest

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/store"
)

// Client 为 emulator 后端的HTTP客户端，同时实现文档库、认证与
// 对象存储三个接口。登录/注册返回的 Bearer token 保存在客户端内，
// 之后的请求自动携带。
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
	uid   string
}

// NewClient 创建一个新的 Client 实例
func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: http.DefaultClient}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do 发起请求并解包统一响应结构，非200响应按返回的错误码还原 AppError
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrInternal, "encode request body", err)
		}
		reader = bytes.NewReader(encoded)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrNetwork, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Code    errors.ErrorCode `json:"code"`
			Message string           `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Code == 0 {
			return errors.New(errors.ErrUnknown, "unexpected backend response")
		}
		return errors.New(errResp.Code, errResp.Message)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrap(errors.ErrInternal, "decode response", err)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(errors.ErrInternal, "decode response data", err)
		}
	}
	return nil
}

func (c *Client) Get(ctx context.Context, collection, id string) (store.Fields, error) {
	q := url.Values{"collection": {collection}, "id": {id}}
	var out struct {
		Fields store.Fields `json:"fields"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/documents", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Fields, nil
}

func (c *Client) List(ctx context.Context, collection string, opts ...store.QueryOption) ([]store.Document, error) {
	var out struct {
		Documents []struct {
			ID     string       `json:"id"`
			Fields store.Fields `json:"fields"`
		} `json:"documents"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/documents/list", listQuery(collection, opts), nil, &out); err != nil {
		return nil, err
	}

	docs := make([]store.Document, 0, len(out.Documents))
	for _, d := range out.Documents {
		docs = append(docs, store.Document{ID: d.ID, Fields: d.Fields})
	}
	return docs, nil
}

func (c *Client) Count(ctx context.Context, collection string, opts ...store.QueryOption) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/documents/count", listQuery(collection, opts), nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) Exists(ctx context.Context, collection, id string) (bool, error) {
	q := url.Values{"collection": {collection}, "id": {id}}
	var out struct {
		Exists bool `json:"exists"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/documents/exists", q, nil, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

func (c *Client) Set(ctx context.Context, collection, id string, fields store.Fields) error {
	body := map[string]interface{}{"collection": collection, "id": id, "fields": fields}
	return c.do(ctx, http.MethodPost, "/api/documents", nil, body, nil)
}

func (c *Client) Add(ctx context.Context, collection string, fields store.Fields) (string, error) {
	body := map[string]interface{}{"collection": collection, "fields": fields}
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/documents", nil, body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) Update(ctx context.Context, collection, id string, fields store.Fields) error {
	body := map[string]interface{}{"collection": collection, "id": id, "fields": fields}
	return c.do(ctx, http.MethodPatch, "/api/documents", nil, body, nil)
}

func (c *Client) Delete(ctx context.Context, collection, id string) error {
	q := url.Values{"collection": {collection}, "id": {id}}
	return c.do(ctx, http.MethodDelete, "/api/documents", q, nil, nil)
}

func (c *Client) CreateAccount(ctx context.Context, email, password string) (string, error) {
	return c.signIn(ctx, "/api/accounts/register", email, password)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (string, error) {
	return c.signIn(ctx, "/api/accounts/login", email, password)
}

func (c *Client) signIn(ctx context.Context, path, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		UID   string `json:"uid"`
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return "", err
	}

	c.mu.Lock()
	c.token = out.Token
	c.uid = out.UID
	c.mu.Unlock()
	return out.UID, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.uid = ""
	c.mu.Unlock()
	return nil
}

func (c *Client) CurrentUID(ctx context.Context) (string, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token == "" {
		return "", errors.New(errors.ErrMissingToken, "no session token")
	}

	var out struct {
		UID string `json:"uid"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/accounts/me", nil, nil, &out); err != nil {
		return "", err
	}
	return out.UID, nil
}

// Upload 通过 emulator 的对象存储接口上传数据并返回可访问URL
func (c *Client) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	body := map[string]string{
		"path":        path,
		"contentType": contentType,
		"data":        base64.StdEncoding.EncodeToString(data),
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/blobs", nil, body, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

func listQuery(collection string, opts []store.QueryOption) url.Values {
	spec := store.BuildQuery(opts)
	q := url.Values{"collection": {collection}}
	for _, w := range spec.Wheres {
		q.Set("where_field", w.Field)
		q.Set("where_value", toString(w.Value))
	}
	if spec.OrderField != "" {
		q.Set("order_by", spec.OrderField)
		q.Set("desc", strconv.FormatBool(spec.Descending))
	}
	return q
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	encoded, _ := json.Marshal(v)
	return string(encoded)
}

var (
	_ store.DocumentStore = (*Client)(nil)
	_ store.Authenticator = (*Client)(nil)
)
