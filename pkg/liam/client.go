package liam

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fyrsmithlabs/liam-go/internal/logging"
	"github.com/fyrsmithlabs/liam-go/pkg/signer"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.liam.netxd.com/api"
	// DefaultTimeout is the per-request timeout used when Config.Timeout
	// is zero. Uniform across all calls of a client.
	DefaultTimeout = 30 * time.Second
	// DefaultListLimit is the result cap sent when a list request leaves
	// Limit unset.
	DefaultListLimit = 50
)

// Config holds client construction parameters. APIKey is required;
// everything else is optional.
type Config struct {
	// APIKey authenticates every request via the "apiKey" header.
	APIKey string
	// BaseURL overrides DefaultBaseURL. A trailing slash is stripped.
	BaseURL string
	// PrivateKeyPEM enables signed mode: every request body is signed
	// with this P-256 key. Takes precedence over PrivateKeyPath.
	PrivateKeyPEM []byte
	// PrivateKeyPath reads the private key from a PEM file at
	// construction time.
	PrivateKeyPath string
	// Timeout is the per-request timeout. Zero means DefaultTimeout.
	Timeout time.Duration
	// RateLimit caps outbound requests per second. Zero means unlimited.
	RateLimit float64
	// Logger receives client debug logs. Nil disables logging.
	Logger *zap.Logger
	// HTTPClient overrides the pooled transport. When set, the caller
	// owns its lifecycle and Close becomes a no-op.
	HTTPClient *http.Client
}

// Client is a LIAM API client. It is safe for concurrent use; the
// underlying HTTP transport pools connections across calls.
type Client struct {
	apiKey         string
	baseURL        string
	signer         *signer.Signer
	httpClient     *http.Client
	ownsHTTPClient bool
	logger         *zap.Logger
	limiter        *rate.Limiter
	metrics        *clientMetrics
}

// New builds a client, failing fast on configuration and credential
// problems: a missing API key returns ErrConfiguration, an unreadable or
// malformed private key returns ErrAuthentication. No network calls are
// made.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key required", ErrConfiguration)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	keyPEM := cfg.PrivateKeyPEM
	if len(keyPEM) == 0 && cfg.PrivateKeyPath != "" {
		content, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("%w: read private key: %v", ErrAuthentication, err)
		}
		keyPEM = content
	}

	var sg *signer.Signer
	if len(keyPEM) > 0 {
		parsed, err := signer.Parse(keyPEM)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		sg = parsed
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	ownsHTTPClient := false
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
		ownsHTTPClient = true
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	c := &Client{
		apiKey:         cfg.APIKey,
		baseURL:        baseURL,
		signer:         sg,
		httpClient:     httpClient,
		ownsHTTPClient: ownsHTTPClient,
		logger:         logger,
		limiter:        limiter,
		metrics:        newClientMetrics(logger),
	}

	logger.Debug("liam client ready",
		zap.String("base_url", baseURL),
		zap.Bool("signed", sg != nil),
		zap.String("api_key", logging.Redact(cfg.APIKey)))
	return c, nil
}

// Signed reports whether the client adds a signature header to requests.
func (c *Client) Signed() bool {
	return c.signer != nil
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases pooled connections. Callers that construct a client for
// a scoped batch of work should defer Close so the transport resource is
// released on every exit path. No-op when the caller supplied its own
// HTTP client.
func (c *Client) Close() {
	if c.ownsHTTPClient {
		c.httpClient.CloseIdleConnections()
	}
}
