package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/httperr"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/models"
)

const (
	SessionCookie = "access_token"

	DefaultTimeout = 15 * time.Second
)

const (
	clientsPath        = "/cliente/api/v1/cliente/"
	establishmentsPath = "/establecimiento/api/v1/establecimiento/"
	reservationsPath   = "/reserva/api/v1/reserva/"

	loginPath    = "/usuario/login/"
	registerPath = "/usuario/register/"
	logoutPath   = "/usuario/logout/"
)

// Session carries the browser cookies that are forwarded to the API on
// every call.
type Session struct {
	Cookies []*http.Cookie
}

func (s Session) Token() string {
	for _, c := range s.Cookies {
		if c.Name == SessionCookie {
			return c.Value
		}
	}
	return ""
}

func (s Session) key() string {
	var b strings.Builder
	for _, c := range s.Cookies {
		b.WriteString(c.Name)
		b.WriteByte('=')
		b.WriteString(c.Value)
		b.WriteByte(';')
	}
	return b.String()
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	lists   singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return nil, fmt.Errorf("apiclient: invalid base url %q", baseURL)
	}

	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Clients() Resource[models.Client, models.ClientInput] {
	return Resource[models.Client, models.ClientInput]{c: c, path: clientsPath}
}

func (c *Client) Establishments() Resource[models.Establishment, models.EstablishmentInput] {
	return Resource[models.Establishment, models.EstablishmentInput]{c: c, path: establishmentsPath}
}

func (c *Client) Reservations() Resource[models.Reservation, models.ReservationInput] {
	return Resource[models.Reservation, models.ReservationInput]{c: c, path: reservationsPath}
}

// do performs one request. On 2xx the body is decoded into out (when both are
// present) and the response cookies are returned.
func (c *Client) do(
	ctx context.Context,
	sess Session,
	method string,
	path string,
	in any,
	out any,
) ([]*http.Cookie, error) {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range sess.Cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", zap.String("op", op), zap.Error(err))
		return nil, &httperr.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &httperr.TransportError{Op: op, Err: err}
	}

	c.logger.Debug("api request",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%s: %w", op, httperr.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s: %w", op, httperr.ErrForbidden)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%s: %w", op, &httperr.APIError{
			Status: resp.StatusCode,
			Body:   httperr.DecodeErrorBody(raw),
		})
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("%s: decode body: %w", op, err)
		}
	}

	return resp.Cookies(), nil
}

// --------- Session ---------

// Login returns the cookies the API set on success; they must be relayed to
// the browser.
func (c *Client) Login(ctx context.Context, creds models.Credentials) ([]*http.Cookie, error) {
	return c.do(ctx, Session{}, http.MethodPost, loginPath, creds, nil)
}

func (c *Client) Register(ctx context.Context, sess Session, user models.AppUser) error {
	_, err := c.do(ctx, sess, http.MethodPost, registerPath, user, nil)
	return err
}

func (c *Client) Logout(ctx context.Context, sess Session) ([]*http.Cookie, error) {
	return c.do(ctx, sess, http.MethodPost, logoutPath, nil, nil)
}
