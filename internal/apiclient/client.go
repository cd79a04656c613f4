package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response mirrors the server envelope.
type Response struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	TraceID string          `json:"trace_id,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// DecodeData unmarshals the envelope payload into out.
func (r *Response) DecodeData(out any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("response has no data")
	}
	return json.Unmarshal(r.Data, out)
}

type APIError struct {
	StatusCode int
	Message    string
	TraceID    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

type User struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Avatar          string     `json:"avatar"`
	Token           string     `json:"token"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
}

type Client struct {
	http *resty.Client
}

// New builds a client without retries: a failed submit is reported, not replayed.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	return c.do(req, http.MethodPost, path)
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(c.http.R().SetContext(ctx), http.MethodGet, path)
}

func (c *Client) do(req *resty.Request, method, path string) (*Response, error) {
	var ok, failed Response
	resp, err := req.SetResult(&ok).SetError(&failed).Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Message:    failed.Message,
			TraceID:    failed.TraceID,
		}
	}
	return &ok, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	resp, err := c.Post(ctx, "/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	var u User
	if err := resp.DecodeData(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) SendResetEmail(ctx context.Context, email string) error {
	_, err := c.Post(ctx, "/password/email", map[string]string{"email": email})
	return err
}

func (c *Client) SendVerifyEmail(ctx context.Context) error {
	_, err := c.Post(ctx, "/user/verify-email/send", nil)
	return err
}

func (c *Client) VerifyEmail(ctx context.Context, sign string) error {
	_, err := c.Post(ctx, "/verification", map[string]string{"sign": sign})
	return err
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	resp, err := c.Get(ctx, "/user/profile")
	if err != nil {
		return nil, err
	}
	var u User
	if err := resp.DecodeData(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
