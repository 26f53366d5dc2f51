package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	logx "homeworkbot/pkg/logx"
)

// DefaultEndpoint is the Practicum homework statuses API.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const maxResponseBodySize = 1 << 20 // 1MB

const defaultTimeout = 30 * time.Second

// Config configures a Client.
type Config struct {
	Endpoint string
	Token    string
	// Timeout bounds one Fetch, connect to last body byte.
	Timeout time.Duration
}

// Client fetches homework statuses for a time window.
//
// Timeouts are applied per request via context; the underlying http.Client
// has none of its own.
type Client struct {
	cfg        Config
	log        logx.Logger
	httpClient *http.Client
}

func NewClient(cfg Config, log logx.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if _, err := url.ParseRequestURI(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("poller: invalid endpoint %q: %w", cfg.Endpoint, err)
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("poller: token is empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Client{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}, nil
}

// Fetch performs one GET with from_date=window.
//
// On success the decoded JSON document is returned as produced by
// encoding/json with UseNumber (map[string]any, []any, json.Number, ...).
// Every failure is a *PollError.
func (c *Client) Fetch(ctx context.Context, window int64) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return nil, c.fail(ConnectionFailure, 0, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(window, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, c.fail(ConnectionFailure, 0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Authorization", "OAuth "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, c.fail(Timeout, 0, err)
		}
		return nil, c.fail(ConnectionFailure, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	c.log.Debug("poll response",
		logx.Int("status", resp.StatusCode),
		logx.Int64("from_date", window),
		logx.Duration("latency", time.Since(start)),
		logx.Int("bytes", len(body)),
	)
	if err != nil {
		if isTimeout(err) {
			return nil, c.fail(Timeout, resp.StatusCode, err)
		}
		return nil, c.fail(ConnectionFailure, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil, c.fail(EmptyResponse, resp.StatusCode, nil)
	case resp.StatusCode != http.StatusOK:
		return nil, c.fail(HTTPError, resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, c.fail(DecodeFailure, resp.StatusCode, err)
	}
	if dec.More() {
		return nil, c.fail(DecodeFailure, resp.StatusCode, errors.New("trailing data after JSON document"))
	}
	return out, nil
}

// Close releases idle connections. Safe on a nil receiver.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	c.httpClient.CloseIdleConnections()
}

func (c *Client) fail(kind Kind, code int, err error) *PollError {
	return &PollError{Kind: kind, StatusCode: code, Endpoint: redactEndpoint(c.cfg.Endpoint), Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// redactEndpoint drops query and userinfo so diagnostics never carry secrets.
func redactEndpoint(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "endpoint"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
