package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"HyperAdmin/config"
	"HyperAdmin/pkg/log"
	"HyperAdmin/pkg/session"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type tokenKey struct{}

// WithToken 在 ctx 上携带调用方的 token，优先于 Session Provider。
// BFF 用它把前端的 token 透传给后端。
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey{}).(string)
	return t, ok && t != ""
}

// Client 访问平台 REST API 的唯一客户端：base URL、鉴权头、401 处理都在这里
type Client struct {
	baseURL  string
	header   string
	scheme   string
	http     *http.Client
	sessions session.Provider
}

func New(conf *config.Backend, sessions session.Provider) *Client {
	timeout := time.Duration(conf.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	header := conf.TokenHeader
	if header == "" {
		header = "Authorization"
	}
	scheme := conf.TokenScheme
	if scheme == "" {
		scheme = "Bearer"
	}
	return &Client{
		baseURL:  strings.TrimRight(conf.BaseURL, "/"),
		header:   header,
		scheme:   scheme,
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
	}
}

// Envelope 后端统一响应 {success, message, data, pagination}
type Envelope struct {
	Status     int
	Message    string
	Data       gjson.Result
	Pagination gjson.Result
}

// Decode 把 data 字段解到 out
func (e *Envelope) Decode(out any) error {
	if !e.Data.Exists() || out == nil {
		return nil
	}
	return unmarshal(e.Data.Raw, out)
}

// unmarshal 数字保留为 json.Number，避免 snowflake ID 丢精度
func unmarshal(raw string, out any) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(out)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Envelope, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, fromProvider, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set(c.header, c.scheme+" "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	backendRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		backendRequestsTotal.WithLabelValues(method, "error").Inc()
		return nil, &NetworkError{Method: method, URL: u, Err: err}
	}
	defer resp.Body.Close()
	backendRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: u, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if fromProvider && c.sessions != nil {
			if err := c.sessions.ClearSession(ctx); err != nil {
				log.L.Warn("clear session after 401", zap.Error(err))
			}
		}
		return nil, ErrUnauthorized
	}

	env := &Envelope{Status: resp.StatusCode}
	if gjson.ValidBytes(raw) {
		doc := gjson.ParseBytes(raw)
		env.Message = firstString(doc, "message", "msg", "error")
		env.Data = doc.Get("data")
		env.Pagination = doc.Get("pagination")
		if success := doc.Get("success"); success.Exists() && !success.Bool() {
			return nil, &ServerError{Status: resp.StatusCode, Message: messageOr(env.Message, resp.StatusCode)}
		}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &ServerError{Status: resp.StatusCode, Message: messageOr(env.Message, resp.StatusCode)}
	}
	return env, nil
}

func (c *Client) token(ctx context.Context) (string, bool, error) {
	if t, ok := tokenFromContext(ctx); ok {
		return t, false, nil
	}
	if c.sessions == nil {
		return "", false, nil
	}
	t, err := c.sessions.GetToken(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return t, true, nil
}

func firstString(doc gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := doc.Get(p); v.Exists() && v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}

func messageOr(msg string, status int) string {
	if msg != "" {
		return msg
	}
	return http.StatusText(status)
}
