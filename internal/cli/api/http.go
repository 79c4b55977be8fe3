package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	fsrepo "TapShare/internal/cli/repo/fs"
)

// Client — тонкий HTTP-клиент к серверу TapShare. Токен передаётся
// в заголовке Authorization: Bearer.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New создаёт клиента, подхватывая сохранённый auth-токен, если он есть.
func New(baseURL, tokenFile string) *Client {
	token, _ := fsrepo.AuthFSStore{Path: tokenFile}.Load()
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Token: token, HTTP: http.DefaultClient}
}

// DoJSON выполняет запрос с JSON-телом (payload=nil — без тела) и
// возвращает ответ вместе с прочитанным телом.
func (c *Client) DoJSON(ctx context.Context, method, path string, payload any) (*http.Response, []byte, error) {
	var rdr io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

// apiError — конверт ошибки сервера.
type apiError struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// AsError превращает не-2xx ответ в ошибку с кодом и сообщением сервера.
func AsError(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.ErrorCode != "" {
		return fmt.Errorf("%s: %s", e.ErrorCode, e.Message)
	}
	return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
