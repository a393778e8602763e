package letsosdk

import (
	"errors"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"github.com/vauradkar/letso/internal/version"
)

const (
	HeaderLetsoVersion = "X-Letso-Version"

	apiBrowsePath     = "/api/browse/path"
	apiBrowseLookup   = "/api/browse/lookup"
	apiExchangeDeltas = "/api/browse/exchange_deltas"
	apiUploadFile     = "/api/upload/file"
	apiDeleteFiles    = "/api/delete/files"
	apiDownloadFile   = "/api/download/file"
	apiServerVersion  = "/api/server_version"
	apiAPIVersion     = "/api/api_version"
	apiCacheStats     = "/api/cache/stats"
)

// LetsoSDK is the client for a Letso file server
type LetsoSDK struct {
	client  *req.Client
	baseURL string
}

// New creates a client for the server at baseURL, e.g. "http://localhost:3000".
func New(baseURL string) (*LetsoSDK, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, ErrNoServerURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, errors.Join(ErrNoServerURL, errors.New("server url must be http(s)"))
	}

	client := req.C().
		SetBaseURL(baseURL).
		SetCommonRetryCount(3).
		SetCommonRetryFixedInterval(1*time.Second).
		SetUserAgent(version.UserAgent()).
		SetCommonHeader(HeaderLetsoVersion, version.Version).
		SetCommonErrorResult(&APIError{}).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal)

	return &LetsoSDK{
		client:  client,
		baseURL: baseURL,
	}, nil
}

// BaseURL returns the server url the client talks to.
func (s *LetsoSDK) BaseURL() string {
	return s.baseURL
}

// SetDebug dumps requests and responses to stdout.
func (s *LetsoSDK) SetDebug(enabled bool) {
	if enabled {
		s.client.EnableDumpAll()
	} else {
		s.client.DisableDumpAll()
	}
}
