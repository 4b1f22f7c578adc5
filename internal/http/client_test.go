package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ctfhttp "github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// MockTokenManager for testing.
type MockTokenManager struct {
	token string
	err   error
}

func (m *MockTokenManager) GetToken(_ context.Context) (string, error) {
	return m.token, m.err
}

func (m *MockTokenManager) RefreshToken(_ context.Context) error {
	return nil
}

func (m *MockTokenManager) SetToken(token string, _ time.Time) {
	m.token = token
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

func TestClientDo(t *testing.T) {
	t.Parallel()

	t.Run("GET with query and bearer token", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/ctfrest/foundation/v1/projects", request.URL.Path)
			assert.Equal(t, "42", request.URL.Query().Get("count"))
			assert.Equal(t, "Bearer session-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"items": []interface{}{}})
		}))
		defer server.Close()

		client := ctfhttp.NewClient(server.URL, &MockTokenManager{token: "session-token"})

		query := url.Values{}
		query.Set("count", "42")

		resp, err := client.Get(context.Background(), "/ctfrest/foundation/v1/projects", query)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"items":[]}`, string(resp.Body))
	})

	t.Run("POST marshals body as JSON", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			err := json.NewDecoder(request.Body).Decode(&body)
			assert.NoError(t, err)
			assert.Equal(t, "Alpha", body["title"])

			writer.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(writer).Encode(map[string]string{"id": "prj1", "title": "Alpha"})
		}))
		defer server.Close()

		client := ctfhttp.NewClient(server.URL, nil)

		resp, err := client.Post(context.Background(), "/ctfrest/foundation/v1/projects", map[string]string{"title": "Alpha"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("token manager failure stops before dialing", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := ctfhttp.NewClient(server.URL, &MockTokenManager{err: ctf.ErrNotAuthenticated})

		resp, err := client.Get(context.Background(), "/ctfrest/foundation/v1/projects", nil)
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ctf.ErrNotAuthenticated)
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("non-success status yields APIError and the response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(writer).Encode(map[string]string{"message": "no such artifact"})
		}))
		defer server.Close()

		client := ctfhttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/ctfrest/tracker/v1/artifacts/artf1", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		apiErr := &ctf.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, ctf.KindNotFound, apiErr.Kind)
		assert.Equal(t, "no such artifact", apiErr.Message)
	})

	t.Run("custom headers and user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "ctf-cli/2.0", request.Header.Get("User-Agent"))
			assert.Equal(t, "binary", request.Header.Get("X-Custom"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := ctfhttp.NewClient(server.URL, nil, ctfhttp.WithUserAgent("ctf-cli/2.0"))

		_, err := client.Do(context.Background(), &ctfhttp.Request{
			Method:  http.MethodGet,
			Path:    "/ctfrest/foundation/v1/projects",
			Headers: map[string]string{"X-Custom": "binary"},
		})
		require.NoError(t, err)
	})

	t.Run("debug logging records request and response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := ctfhttp.NewClient(server.URL, nil, ctfhttp.WithLogger(logger), ctfhttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/ctfrest/foundation/v1/projects", nil)
		require.NoError(t, err)
		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

func TestClientRetries(t *testing.T) {
	t.Parallel()

	t.Run("GET retries transient 5xx", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			if hits.Add(1) == 1 {
				writer.WriteHeader(http.StatusBadGateway)

				return
			}

			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := ctfhttp.NewClient(server.URL, nil,
			ctfhttp.WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))

		resp, err := client.Get(context.Background(), "/ctfrest/foundation/v1/projects", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("GET retries 429", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			if hits.Add(1) == 1 {
				writer.WriteHeader(http.StatusTooManyRequests)

				return
			}

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := ctfhttp.NewClient(server.URL, nil,
			ctfhttp.WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))

		resp, err := client.Get(context.Background(), "/ctfrest/foundation/v1/projects", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("GET does not retry 4xx", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := ctfhttp.NewClient(server.URL, nil,
			ctfhttp.WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))

		_, err := client.Get(context.Background(), "/ctfrest/foundation/v1/projects", nil)
		require.Error(t, err)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("POST is never retried", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			writer.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := ctfhttp.NewClient(server.URL, nil,
			ctfhttp.WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

		_, err := client.Post(context.Background(), "/ctfrest/frs/v1/packages", map[string]string{"title": "pkg"})
		require.Error(t, err)
		assert.Equal(t, int32(1), hits.Load())

		var apiErr *ctf.APIError

		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, ctf.KindServerError, apiErr.Kind)
	})
}

func TestClientPostRaw(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "multipart/form-data; boundary=xyz", request.Header.Get("Content-Type"))
		writer.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(writer).Encode(map[string]string{"guid": "file-guid"})
	}))
	defer server.Close()

	client := ctfhttp.NewClient(server.URL, nil)

	resp, err := client.PostRaw(context.Background(), "/ctfrest/filestorage/v1/files",
		[]byte("--xyz--"), "multipart/form-data; boundary=xyz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "file-guid")
}
