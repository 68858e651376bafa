package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/common"
	"github.com/dmitrijs2005/alumnet/internal/logging"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 4 << 20
	maxPlainMsg    = 200
)

var errEmptyPayload = errors.New("empty payload")

// HTTPClient implements Client over the backend's JSON API. Every call
// goes through a circuit breaker and carries an X-Request-ID.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	token    string
	timeout  time.Duration
	settings BreakerSettings
	breaker  *gobreaker.CircuitBreaker
	logger   logging.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// WithToken sets the session token sent in the x-auth-token header.
func WithToken(token string) Option {
	return func(c *HTTPClient) { c.token = token }
}

// WithTimeout bounds every round trip, on top of the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBreaker overrides the default circuit breaker settings.
func WithBreaker(s BreakerSettings) Option {
	return func(c *HTTPClient) { c.settings = s }
}

// WithLogger logs each backend response at debug level.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient builds a client for the backend rooted at baseURL
// (e.g. "http://127.0.0.1:5000").
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must be absolute http(s)", baseURL)
	}

	c := &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		timeout:  defaultTimeout,
		settings: DefaultBreakerSettings(),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = newBreaker(c.settings, c.logger)
	return c, nil
}

// GetProfile calls GET /api/users/{id}.
func (c *HTTPClient) GetProfile(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetAuthUsers calls GET /api/users/auth/.
func (c *HTTPClient) GetAuthUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/auth/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetMyProfile calls GET /api/auth.
func (c *HTTPClient) GetMyProfile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetAlumni calls GET /api/college/{collegeID}.
func (c *HTTPClient) GetAlumni(ctx context.Context, collegeID string) ([]models.User, error) {
	var alumni []models.User
	if err := c.do(ctx, http.MethodGet, "/api/college/"+url.PathEscape(collegeID), nil, &alumni); err != nil {
		return nil, err
	}
	return alumni, nil
}

// GetUsers calls GET /api/college.
func (c *HTTPClient) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/college", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetColleges calls GET /api/dir.
func (c *HTTPClient) GetColleges(ctx context.Context) ([]models.College, error) {
	var colleges []models.College
	if err := c.do(ctx, http.MethodGet, "/api/dir", nil, &colleges); err != nil {
		return nil, err
	}
	return colleges, nil
}

// UpdateProfile calls PUT /api/users with fields as the body.
func (c *HTTPClient) UpdateProfile(ctx context.Context, fields models.Form) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPut, "/api/users", fields, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// AuthenticateUser calls PUT /api/college/{userID}.
func (c *HTTPClient) AuthenticateUser(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPut, "/api/college/"+url.PathEscape(userID), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SendEmail calls PUT /api/dir.
func (c *HTTPClient) SendEmail(ctx context.Context, form models.Form) error {
	return c.do(ctx, http.MethodPut, "/api/dir", form, nil)
}

// SendSMS calls PUT /api/dir/1.
func (c *HTTPClient) SendSMS(ctx context.Context, form models.Form) error {
	return c.do(ctx, http.MethodPut, "/api/dir/1", form, nil)
}

// GetNotifications calls GET /api/notf/{userID}.
func (c *HTTPClient) GetNotifications(ctx context.Context, userID string) (*models.Notifications, error) {
	return c.notifications(ctx, http.MethodGet, "/api/notf/"+url.PathEscape(userID), nil)
}

// SendRequest calls PUT /api/notf/req; the answer is the new snapshot.
func (c *HTTPClient) SendRequest(ctx context.Context, form models.Form) (*models.Notifications, error) {
	return c.notifications(ctx, http.MethodPut, "/api/notf/req", form)
}

// notifications decodes a three-list snapshot and rejects one that puts a
// pair in two lists; such a snapshot must never reach state.
func (c *HTTPClient) notifications(ctx context.Context, method, path string, body any) (*models.Notifications, error) {
	var n models.Notifications
	if err := c.do(ctx, method, path, body, &n); err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, &DecodeError{Op: method + " " + path, Err: err}
	}
	n = n.Clone()
	return &n, nil
}

// do runs one round trip through the circuit breaker. out == nil means the
// response body is ignored.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	op := method + " " + path

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, op, method, path, body, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &TransportError{Op: op, Err: err}
	}
	return err
}

func (c *HTTPClient) roundTrip(ctx context.Context, op, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &DecodeError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", common.ContentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", common.ContentTypeJSON)
	}
	requestID, ok := logging.RequestIDFrom(ctx)
	if !ok {
		requestID = uuid.NewString()
		ctx = logging.ContextWithRequestID(ctx, requestID)
	}
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if c.token != "" {
		req.Header.Set(common.AuthTokenHeaderName, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	c.logger.Debug(ctx, "backend response", "op", op, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ResponseError{Op: op, StatusCode: resp.StatusCode, Message: serverMessage(resp.StatusCode, data)}
	}
	if out == nil {
		return nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &DecodeError{Op: op, Err: errEmptyPayload}
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// serverMessage extracts the human-readable message of an error answer.
// Express backends reply with {"msg": ...}, validator arrays
// {"errors":[{"msg": ...}]} or a plain text body.
func serverMessage(status int, data []byte) string {
	var body struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Errors  []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Msg != "" {
			return body.Msg
		}
		msgs := make([]string, 0, len(body.Errors))
		for _, e := range body.Errors {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
		if body.Message != "" {
			return body.Message
		}
	}

	text := strings.TrimSpace(string(data))
	if text != "" && len(text) <= maxPlainMsg && !strings.HasPrefix(text, "<") && !strings.HasPrefix(text, "{") {
		return text
	}
	return http.StatusText(status)
}
