package accesslog

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

const (
	LogFileName  = "access.log"
	MaxLogSizeMB = 10
	MaxLogFiles  = 5
	LogDirPerm   = 0o700
	timeLayout   = "2006-01-02 15:04:05.000 UTC"
	keyAccesses  = "access_log_accesses"
	keyLogger    = "access_logger"
)

type AccessType string

const (
	AccessTypeList   AccessType = "list"
	AccessTypeRead   AccessType = "read"
	AccessTypeWrite  AccessType = "write"
	AccessTypeDelete AccessType = "delete"
)

// AccessLogEntry is one line of the access log
type AccessLogEntry struct {
	Timestamp  time.Time  `json:"timestamp"`
	Path       string     `json:"path"`
	AccessType AccessType `json:"access_type"`
	IP         string     `json:"ip"`
	UserAgent  string     `json:"user_agent"`
	Method     string     `json:"method"`
	Route      string     `json:"route"`
	StatusCode int        `json:"status_code"`
	Allowed    bool       `json:"allowed"`
	Error      string     `json:"error,omitempty"`
}

type entryAlias AccessLogEntry

type entryJSON struct {
	entryAlias
	Timestamp string `json:"timestamp"`
}

// MarshalJSON writes the timestamp in a fixed human readable UTC layout
func (e AccessLogEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(&entryJSON{
		entryAlias: entryAlias(e),
		Timestamp:  e.Timestamp.UTC().Format(timeLayout),
	})
}

// UnmarshalJSON accepts the layout written by MarshalJSON as well as RFC3339
func (e *AccessLogEntry) UnmarshalJSON(data []byte) error {
	var aux entryJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	t, err := time.Parse(timeLayout, aux.Timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339, aux.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to parse timestamp: %w", err)
		}
	}

	*e = AccessLogEntry(aux.entryAlias)
	e.Timestamp = t
	return nil
}
