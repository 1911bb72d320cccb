package recognizer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

const (
	defaultEndpoint = "http://localhost:5000"
	// Recognition runs a model server side; a single request rarely takes more than a few seconds.
	defaultHTTPTimeout = 30 * time.Second
)

// Config describes how to build a recognizer client.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the handwriting recognition service.
type Client interface {
	Recognize(ctx context.Context, req RecognizeRequest) (RecognizeResponse, error)
	Hints(ctx context.Context, req HintsRequest) (HintsResponse, error)
	Name() string
}

// StatusError reports a non-2xx answer from the service.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("recognizer %s: %d %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("recognizer %s: %d %s (%s)", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode), body)
}

// New builds an HTTP client. The endpoint falls back to RECOGNIZER_HOST and
// then to the local default.
func New(cfg Config) (Client, error) {
	host := strings.TrimRight(cfg.Endpoint, "/")
	if host == "" {
		if env := os.Getenv("RECOGNIZER_HOST"); env != "" {
			host = strings.TrimRight(env, "/")
		} else {
			host = defaultEndpoint
		}
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		return nil, fmt.Errorf("recognizer endpoint %q must start with http:// or https://", host)
	}
	client, err := pickHTTPClient(cfg.HTTPClient, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &httpClient{host: host, client: client}, nil
}

// The service keeps per-session state in a cookie, so the client always
// carries a jar.
func pickHTTPClient(custom *http.Client, timeout time.Duration) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if custom != nil {
		if custom.Jar == nil {
			clone := *custom
			clone.Jar = jar
			return &clone, nil
		}
		return custom, nil
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout, Jar: jar}, nil
}
