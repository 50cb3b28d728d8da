package docstore

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/draft-roster/internal/platform/logging"
	"github.com/riskibarqy/draft-roster/internal/platform/resilience"
	"github.com/riskibarqy/draft-roster/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4096
)

var (
	errDocstoreTransient = crerr.New("docstore transient failure")
	errDocstoreConflict  = crerr.New("docstore conflict")
)

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	HTTPClient     *http.Client
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to a PostgREST style document store. Rows are addressed with
// column filters such as ?id=eq.abc.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
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
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		logger:  logger.Named("docstore"),
		breaker: resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
}

type request struct {
	method     string
	collection string
	filters    url.Values
	body       any
	prefer     string
}

// do sends req and decodes a 2xx JSON response into out when out is non-nil.
// Transport failures, 429 and 5xx trip the breaker and surface as
// usecase.ErrDependencyUnavailable.
func (c *Client) do(ctx context.Context, req request, out any) error {
	err := c.breaker.Execute(func() error {
		return c.send(ctx, req, out)
	}, isTransient)

	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "docstore circuit breaker rejected request",
			"collection", req.collection,
			"state", c.breaker.State(),
		)
		return fmt.Errorf("%w: docstore %s: %v", usecase.ErrDependencyUnavailable, req.collection, err)
	case isTransient(err):
		return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	default:
		return err
	}
}

func (c *Client) send(ctx context.Context, req request, out any) error {
	endpoint := c.baseURL + "/" + req.collection
	if len(req.filters) > 0 {
		endpoint += "?" + req.filters.Encode()
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if req.body != nil {
		raw, err := sonic.Marshal(req.body)
		if err != nil {
			return crerr.Wrapf(err, "marshal %s payload", req.collection)
		}
		_, _ = buf.Write(raw)
	}

	var body io.Reader
	if buf.Len() > 0 {
		body = bytes.NewReader(buf.B)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return crerr.Wrapf(err, "create %s request", req.collection)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("apikey", c.apiKey)
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if req.prefer != "" {
		httpReq.Header.Set("Prefer", req.prefer)
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("docstore.collection", req.collection),
			attribute.String("docstore.method", req.method),
		)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", errDocstoreTransient, req.method, req.collection, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if isRetryableStatus(resp.StatusCode) {
			return fmt.Errorf("%w: %s %s status=%d body=%s", errDocstoreTransient, req.method, req.collection, resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		if resp.StatusCode == http.StatusConflict {
			return fmt.Errorf("%w: %s %s body=%s", errDocstoreConflict, req.method, req.collection, strings.TrimSpace(string(raw)))
		}
		return crerr.Newf("%s %s status=%d body=%s", req.method, req.collection, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", errDocstoreTransient, req.collection, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return crerr.Wrapf(err, "decode %s response", req.collection)
	}
	return nil
}

func eq(value string) string {
	return "eq." + value
}

func isTransient(err error) bool {
	return stderrors.Is(err, errDocstoreTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
