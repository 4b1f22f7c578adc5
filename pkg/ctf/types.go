package ctf

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Resource is the base structure shared by all TeamForge REST resources.
type Resource struct {
	ID           string    `json:"id"                     yaml:"id"`
	Title        string    `json:"title"                  yaml:"title"`
	CreatedDate  Timestamp `json:"createdDate,omitempty"  yaml:"createdDate,omitempty"`
	ModifiedDate Timestamp `json:"lastModifiedDate,omitempty" yaml:"lastModifiedDate,omitempty"`
	CreatedBy    string    `json:"createdBy,omitempty"    yaml:"createdBy,omitempty"`
}

// GetID returns the resource id.
func (r Resource) GetID() string { return r.ID }

// GetTitle returns the resource title.
func (r Resource) GetTitle() string { return r.Title }

// Titled is satisfied by any resource addressable by id and title.
type Titled interface {
	GetID() string
	GetTitle() string
}

// ItemList represents the server's list envelope {"items": [...]}.
// A body without an "items" key decodes to an empty list, never an error.
type ItemList[T any] struct {
	Items []T `json:"items"`
}

// Timestamp is a time value that tolerates the formats TeamForge emits:
// RFC 3339, HTTP dates, and a plain "2006-01-02 15:04:05" form. A JSON null
// or empty string decodes to the zero time.
type Timestamp struct {
	time.Time
}

var timestampFormats = []string{
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}

		return nil
	}

	var raw string

	err := json.Unmarshal(data, &raw)
	if err != nil {
		// Some endpoints emit epoch milliseconds.
		var millis int64
		if json.Unmarshal(data, &millis) == nil {
			t.Time = time.UnixMilli(millis).UTC()

			return nil
		}

		return err
	}

	if raw == "" {
		t.Time = time.Time{}

		return nil
	}

	for _, format := range timestampFormats {
		parsed, parseErr := time.Parse(format, raw)
		if parseErr == nil {
			t.Time = parsed

			return nil
		}
	}

	// Unknown date shape degrades to the zero time rather than failing the
	// whole entity decode.
	t.Time = time.Time{}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.Format(time.RFC3339))
}

// IntString is an int field that the server may emit as a number, a numeric
// string, null, or garbage. Anything non-numeric decodes to zero.
type IntString int

// UnmarshalJSON implements json.Unmarshaler.
func (i *IntString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*i = 0

		return nil
	}

	var number int
	if json.Unmarshal(data, &number) == nil {
		*i = IntString(number)

		return nil
	}

	var raw string
	if json.Unmarshal(data, &raw) == nil {
		parsed, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil {
			*i = IntString(parsed)

			return nil
		}
	}

	*i = 0

	return nil
}

// MarshalJSON implements json.Marshaler.
func (i IntString) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(i))
}

// Int returns the plain int value.
func (i IntString) Int() int { return int(i) }

// BoolString is a bool field that the server may emit as a bool or as the
// strings "true"/"false". Null and unknown values decode to false.
type BoolString bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *BoolString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*b = false

		return nil
	}

	var value bool
	if json.Unmarshal(data, &value) == nil {
		*b = BoolString(value)

		return nil
	}

	var raw string
	if json.Unmarshal(data, &raw) == nil {
		*b = BoolString(strings.EqualFold(strings.TrimSpace(raw), "true"))

		return nil
	}

	*b = false

	return nil
}

// MarshalJSON implements json.Marshaler.
func (b BoolString) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// Bool returns the plain bool value.
func (b BoolString) Bool() bool { return bool(b) }

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
