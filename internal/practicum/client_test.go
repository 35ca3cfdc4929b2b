package practicum

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	l, _ := test.NewNullLogger()
	c := NewClient(ClientConfig{
		Token:    "secret",
		Endpoint: srv.URL + "/api/user_api/homework_statuses/",
		Logger:   l,
	})
	return c, srv
}

func TestFetchUpdates_OK(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "OAuth secret", r.Header.Get("Authorization"))
		assert.Equal(t, "1700000000", r.URL.Query().Get("from_date"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"homeworks":[{"homework_name":"hw1","status":"approved"}],"current_date":1700000600}`))
	})

	resp, err := c.FetchUpdates(context.Background(), 1700000000)
	require.NoError(t, err)

	ts, err := resp.Timestamp()
	require.NoError(t, err)
	assert.Equal(t, int64(1700000600), ts)

	hws, err := ExtractHomeworks(resp)
	require.NoError(t, err)
	require.Len(t, hws, 1)
	assert.Equal(t, "hw1", hws[0].HomeworkName)
}

func TestFetchUpdates_ZeroSinceUsesNow(t *testing.T) {
	before := time.Now().Unix()
	var got string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("from_date")
		_, _ = w.Write([]byte(`{"homeworks":[],"current_date":1}`))
	})

	_, err := c.FetchUpdates(context.Background(), 0)
	require.NoError(t, err)

	sent, err := strconv.ParseInt(got, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sent, before)
}

func TestFetchUpdates_Moved(t *testing.T) {
	for _, code := range []int{http.StatusMovedPermanently, http.StatusFound} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Location", "https://example.com/elsewhere")
				w.WriteHeader(code)
			})

			_, err := c.FetchUpdates(context.Background(), 1)
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, KindEndpointMoved, apiErr.Kind)
			assert.Equal(t, code, apiErr.StatusCode)
			assert.Equal(t, "https://example.com/elsewhere", apiErr.Header.Get("Location"))
			assert.Contains(t, apiErr.Error(), "перенаправить")
		})
	}
}

func TestFetchUpdates_NotFound(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.FetchUpdates(context.Background(), 1)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindEndpointNotFound, apiErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Endpoint, srv.URL)
	assert.Contains(t, apiErr.Error(), "500")
}

func TestFetchUpdates_MalformedJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"homeworks":`))
	})

	_, err := c.FetchUpdates(context.Background(), 1)
	assert.True(t, IsKind(err, KindEndpointUnreachable))
}

func TestFetchUpdates_TrailingGarbage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"homeworks":[],"current_date":1} xyz`))
	})

	_, err := c.FetchUpdates(context.Background(), 1)
	assert.True(t, IsKind(err, KindEndpointUnreachable))
	assert.Contains(t, err.Error(), "некорректный JSON")
}

func TestFetchUpdates_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	l, _ := test.NewNullLogger()
	c := NewClient(ClientConfig{Token: "secret", Endpoint: endpoint, Logger: l})

	_, err := c.FetchUpdates(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, KindEndpointUnreachable, KindOf(err))
	assert.NotNil(t, errors.Unwrap(err))
}

func TestNewClient_DefaultEndpoint(t *testing.T) {
	c := NewClient(ClientConfig{Token: "x"})
	assert.Equal(t, Endpoint, c.endpoint)
}
