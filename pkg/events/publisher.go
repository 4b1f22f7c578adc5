// Package events publishes build notifications to a NATS subject, so CI
// integrations can announce TeamForge activity to downstream consumers.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/teamforge-io/ctf/internal/constants"
)

// Event is a build notification tied to a TeamForge project.
type Event struct {
	Project     string    `json:"project"`
	BuildNumber int       `json:"buildNumber"`
	Status      string    `json:"status"`
	URL         string    `json:"url,omitempty"`
	Artifacts   []string  `json:"artifacts,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
	Flush() error
}

// Publisher sends events to a fixed subject over an established NATS
// connection.
type Publisher struct {
	conn    Conn
	subject string
}

// NewPublisher creates a publisher for the given subject.
func NewPublisher(conn Conn, subject string) (*Publisher, error) {
	if subject == "" {
		return nil, constants.ErrSubjectRequired
	}

	return &Publisher{conn: conn, subject: subject}, nil
}

// Publish marshals the event and sends it. A zero Timestamp is stamped with
// the current time.
func (p *Publisher) Publish(event *Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	err = p.conn.Publish(p.subject, data)
	if err != nil {
		return fmt.Errorf("publishing event: %w", err)
	}

	return p.conn.Flush()
}

// Connect dials a NATS server and returns a connection usable with
// NewPublisher. The caller owns the connection and must Close it.
func Connect(url string) (*nats.Conn, error) {
	if url == "" {
		return nil, constants.ErrNatsURLRequired
	}

	conn, err := nats.Connect(url,
		nats.Timeout(constants.ShortHTTPTimeout),
		nats.MaxReconnects(constants.DefaultRetryMax),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}

	return conn, nil
}
