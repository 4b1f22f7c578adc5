package client

import (
	"sync"

	"github.com/teamforge-io/ctf/internal/http"
)

// NewTestClient creates a client against the given base URL with a fixed
// session token, for use with httptest servers.
func NewTestClient(baseURL string) *Client {
	client := &Client{
		serverURL:    baseURL,
		username:     "test-user",
		tokenManager: &staticTokenManager{token: "test-token"},
	}

	client.httpClient = http.NewClient(baseURL, client.tokenManager)
	client.initializeResourceClients()

	return client
}

// NewTestClientWithLogger is NewTestClient with a logging sink wired into
// the transport, so tests can observe warnings from lenient list decoding.
func NewTestClientWithLogger(baseURL string, logger *RecordingLogger) *Client {
	client := &Client{
		serverURL:    baseURL,
		username:     "test-user",
		tokenManager: &staticTokenManager{token: "test-token"},
	}

	client.httpClient = http.NewClient(baseURL, client.tokenManager, http.WithLogger(logger))
	client.initializeResourceClients()

	return client
}

// RecordingLogger captures log messages for assertions.
type RecordingLogger struct {
	mu       sync.Mutex
	Messages []string
}

func (l *RecordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, msg)
}

// Recorded returns a snapshot of the captured messages.
func (l *RecordingLogger) Recorded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.Messages))
	copy(out, l.Messages)

	return out
}

func (l *RecordingLogger) Debug(msg string, _ map[string]interface{}) { l.record(msg) }
func (l *RecordingLogger) Info(msg string, _ map[string]interface{})  { l.record(msg) }
func (l *RecordingLogger) Warn(msg string, _ map[string]interface{})  { l.record(msg) }
func (l *RecordingLogger) Error(msg string, _ map[string]interface{}) { l.record(msg) }
