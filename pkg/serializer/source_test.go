package serializer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/mchmarny/basket/pkg/errors"
)

func newSourceServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rules.csv":
			w.Header().Set("X-Agent", r.UserAgent())
			_, _ = io.WriteString(w, "antecedents,consequents\n")
		case "/agent":
			_, _ = io.WriteString(w, r.UserAgent())
		case "/big":
			_, _ = io.WriteString(w, strings.Repeat("x", 64))
		case "/broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("http://x/rules.csv"))
	assert.True(t, IsRemote("https://x/rules.csv"))
	assert.False(t, IsRemote("/tmp/rules.csv"))
	assert.False(t, IsRemote("ftp://x/rules.csv"))
}

func TestFetcherFetch(t *testing.T) {
	srv := newSourceServer(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		fetcher  *Fetcher
		path     string
		wantCode cnserrors.ErrorCode
		wantBody string
	}{
		{name: "ok", fetcher: NewFetcher(), path: "/rules.csv", wantBody: "antecedents,consequents\n"},
		{name: "default agent", fetcher: NewFetcher(), path: "/agent", wantBody: DefaultUserAgent},
		{name: "custom agent", fetcher: NewFetcher(WithUserAgent("tests")), path: "/agent", wantBody: "tests"},
		{name: "not found", fetcher: NewFetcher(), path: "/missing", wantCode: cnserrors.ErrCodeNotFound},
		{name: "upstream error", fetcher: NewFetcher(), path: "/broken", wantCode: cnserrors.ErrCodeUnavailable},
		{name: "too large", fetcher: NewFetcher(WithMaxBytes(16)), path: "/big", wantCode: cnserrors.ErrCodeInvalidRequest},
		{name: "unlimited", fetcher: NewFetcher(WithMaxBytes(0)), path: "/big", wantBody: strings.Repeat("x", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.fetcher.Fetch(ctx, srv.URL+tt.path)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, cnserrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(data))
		})
	}
}

func TestFetcherErrors(t *testing.T) {
	_, err := NewFetcher().Fetch(context.Background(), "")
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFetcher().Fetch(ctx, srv.URL)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeUnavailable))

	_, err = NewFetcher(WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeUnavailable))
}

func TestFetcherOptions(t *testing.T) {
	custom := &http.Client{}
	f := NewFetcher(WithHTTPClient(custom), WithTimeout(3*time.Second))
	assert.Same(t, custom, f.client)
	assert.Equal(t, 3*time.Second, custom.Timeout)

	f = NewFetcher(WithHTTPClient(nil), WithTimeout(0))
	require.NotNil(t, f.client)
	assert.NotZero(t, f.client.Timeout)
	assert.Equal(t, DefaultMaxBytes, f.maxBytes)
}

func TestOpenSource(t *testing.T) {
	ctx := context.Background()

	_, err := OpenSource(ctx, " ")
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))

	_, err = OpenSource(ctx, filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeNotFound))

	p := filepath.Join(t.TempDir(), "rules.csv")
	require.NoError(t, os.WriteFile(p, []byte("a,b\n"), 0o600))
	rc, err := OpenSource(ctx, p)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "a,b\n", string(data))

	srv := newSourceServer(t)
	rc, err = OpenSource(ctx, srv.URL+"/rules.csv")
	require.NoError(t, err)
	defer rc.Close()
	data, err = io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "antecedents")
}
