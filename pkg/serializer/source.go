package serializer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mchmarny/basket/pkg/defaults"
	cnserrors "github.com/mchmarny/basket/pkg/errors"
)

const (
	// DefaultUserAgent identifies remote fetches.
	DefaultUserAgent = "basket-loader/1.0"

	// DefaultMaxBytes caps the size of a fetched rule table or product file.
	DefaultMaxBytes int64 = 256 << 20
)

// IsRemote reports whether p is an http or https URL.
func IsRemote(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// OpenSource opens a local file or fetches an http(s) URL with the default
// Fetcher. The caller closes the returned reader.
func OpenSource(ctx context.Context, p string) (io.ReadCloser, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "source path is empty")
	}

	if IsRemote(p) {
		data, err := NewFetcher().Fetch(ctx, p)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	f, err := os.Open(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound,
			"source file not found", err, map[string]any{"path": p})
	case err != nil:
		return nil, fmt.Errorf("failed to open %s: %w", p, err)
	}
	return f, nil
}

// FetchOption configures a Fetcher.
type FetchOption func(*Fetcher)

// Fetcher downloads remote rule tables and product files.
type Fetcher struct {
	userAgent string
	maxBytes  int64
	client    *http.Client
}

func WithUserAgent(ua string) FetchOption {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithTimeout bounds the whole request including the body read.
func WithTimeout(d time.Duration) FetchOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithMaxBytes limits the body size. Zero or less disables the limit.
func WithMaxBytes(n int64) FetchOption {
	return func(f *Fetcher) { f.maxBytes = n }
}

func WithHTTPClient(c *http.Client) FetchOption {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// NewFetcher returns a Fetcher using a dedicated transport tuned with the
// timeouts in the defaults package.
func NewFetcher(opts ...FetchOption) *Fetcher {
	f := &Fetcher{
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
		client: &http.Client{
			Timeout: defaults.HTTPClientTimeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   defaults.HTTPConnectTimeout,
					KeepAlive: defaults.HTTPKeepAlive,
				}).DialContext,
				TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
				ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
				IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
				MaxIdleConns:          4,
				ForceAttemptHTTP2:     true,
				TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			},
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the body of url. A 404 maps to NOT_FOUND, a transport
// failure or any other non-200 status to SERVICE_UNAVAILABLE, and an
// oversized body to INVALID_REQUEST.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid url", err, map[string]any{"url": url})
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable,
			"remote source unreachable", err, map[string]any{"url": url})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		code := cnserrors.ErrCodeUnavailable
		if resp.StatusCode == http.StatusNotFound {
			code = cnserrors.ErrCodeNotFound
		}
		return nil, cnserrors.NewWithContext(code, "remote source returned "+resp.Status,
			map[string]any{"url": url})
	}

	body := io.Reader(resp.Body)
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable,
			"failed to read remote source", err, map[string]any{"url": url})
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"remote source exceeds size limit", map[string]any{"url": url, "limit": f.maxBytes})
	}
	return data, nil
}
