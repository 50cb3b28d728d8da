package feedsource

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/draft-roster/internal/domain/feed"
	"github.com/riskibarqy/draft-roster/internal/platform/logging"
	"github.com/riskibarqy/draft-roster/internal/platform/resilience"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultMaxBodyBytes = 16 << 20
	userAgent           = "draft-roster-feed/1.0"
)

var errFeedTransient = crerr.New("feed transient failure")

type ClientConfig struct {
	HTTPClient   *fasthttp.Client
	Timeout      time.Duration
	MaxRetries   int
	MaxBodyBytes int
	// BaseDir resolves relative descriptor paths.
	BaseDir        string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client loads feed records over HTTP or from local files. Every failure is
// logged and reported as an empty record set.
type Client struct {
	http       *fasthttp.Client
	timeout    time.Duration
	maxRetries int
	maxBody    int
	baseDir    string
	logger     *logging.Logger
	breakers   *resilience.BreakerGroup
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                userAgent,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxBody,
		}
	}

	return &Client{
		http:       httpClient,
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		maxBody:    maxBody,
		baseDir:    strings.TrimSpace(cfg.BaseDir),
		logger:     logger.Named("feedsource"),
		breakers:   resilience.NewBreakerGroup(cfg.CircuitBreaker),
	}
}

// Fetch returns the decoded records of one feed. Records that do not match
// the feed schema are skipped.
func (c *Client) Fetch(ctx context.Context, desc feed.Descriptor) []feed.Record {
	start := time.Now()
	raw, err := c.load(ctx, desc)
	if err != nil {
		c.logger.WarnContext(ctx, "feed unavailable",
			"feed", desc.Name,
			"league", desc.League,
			"location", desc.Location(),
			"error", err,
		)
		return nil
	}

	items, err := unwrapRecords(raw)
	if err != nil {
		c.logger.WarnContext(ctx, "feed payload malformed",
			"feed", desc.Name,
			"location", desc.Location(),
			"body", abbreviateBody(raw),
			"error", err,
		)
		return nil
	}

	out := make([]feed.Record, 0, len(items))
	skipped := 0
	for _, item := range items {
		rec, err := feed.Decode(desc.Schema, item)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, rec)
	}
	if skipped > 0 {
		c.logger.WarnContext(ctx, "feed records skipped", "feed", desc.Name, "skipped", skipped)
	}

	c.logger.DebugContext(ctx, "feed fetched",
		"feed", desc.Name,
		"records", len(out),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out
}

func (c *Client) load(ctx context.Context, desc feed.Descriptor) ([]byte, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(desc.URL) != "" {
		return c.loadURL(ctx, desc)
	}
	return c.loadFile(desc.Path)
}

func (c *Client) loadURL(ctx context.Context, desc feed.Descriptor) ([]byte, error) {
	breaker := c.breakers.Get(desc.Name)

	var raw []byte
	err := breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, strings.TrimSpace(desc.URL))
		return reqErr
	}, isTransient)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		return nil, fmt.Errorf("%w: state=%s", err, breaker.State())
	}
	return raw, err
}

func (c *Client) executeRequest(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.get(ctx, url)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errFeedTransient, err)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: status=%d body=%s", errFeedTransient, status, abbreviateBody(raw))
		default:
			return nil, fmt.Errorf("status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * 250 * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

func (c *Client) loadFile(path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if !filepath.IsAbs(path) && c.baseDir != "" {
		path = filepath.Join(c.baseDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open feed file %s", path)
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, int64(c.maxBody)+1))
	if err != nil {
		return nil, crerr.Wrapf(err, "read feed file %s", path)
	}
	if len(raw) > c.maxBody {
		return nil, crerr.Newf("feed file %s exceeds %d bytes", path, c.maxBody)
	}
	return raw, nil
}

type envelope struct {
	Players *[]json.RawMessage `json:"players"`
}

// unwrapRecords accepts a bare array or an object carrying a players array.
func unwrapRecords(raw []byte) ([]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, crerr.New("empty payload")
	}

	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := sonic.Unmarshal(raw, &items); err != nil {
			return nil, crerr.Wrap(err, "decode record array")
		}
		return items, nil
	case '{':
		var env envelope
		if err := sonic.Unmarshal(raw, &env); err != nil {
			return nil, crerr.Wrap(err, "decode envelope")
		}
		if env.Players == nil {
			return nil, crerr.New("envelope has no players array")
		}
		return *env.Players, nil
	default:
		return nil, crerr.Newf("unexpected payload start %q", raw[0])
	}
}

func isTransient(err error) bool {
	return stderrors.Is(err, errFeedTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
