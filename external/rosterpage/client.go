package rosterpage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/draft-roster/internal/domain/roster"
	"github.com/riskibarqy/draft-roster/internal/platform/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout      = 20 * time.Second
	defaultMaxBodyBytes = 4 << 20
	defaultUserAgent    = "Mozilla/5.0 (compatible; DraftRoster/1.0)"
)

type ClientConfig struct {
	HTTPClient   *http.Client
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string
	Logger       *logging.Logger
}

// Client fetches team roster pages and extracts per-player detail rows.
type Client struct {
	http      *http.Client
	maxBody   int64
	userAgent string
	logger    *logging.Logger
}

var _ roster.DetailSource = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		http:      httpClient,
		maxBody:   maxBody,
		userAgent: userAgent,
		logger:    logger.Named("rosterpage"),
	}
}

func (c *Client) FetchDetails(ctx context.Context, team, pageURL string) ([]roster.Detail, error) {
	pageURL = strings.TrimSpace(pageURL)
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, crerr.Newf("invalid roster page url %q", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build roster page request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch roster page %s", pageURL)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, crerr.Wrapf(err, "read roster page %s", pageURL)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch roster page %s: status=%d", pageURL, resp.StatusCode)
	}

	details, err := Parse(bytes.NewReader(body), team, resp.Request.URL.String())
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "roster page parsed",
		"team", team,
		"url", pageURL,
		"rows", len(details),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return details, nil
}
