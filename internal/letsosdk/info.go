package letsosdk

import (
	"context"
	"strings"

	"github.com/vauradkar/letso/internal/pfs"
)

// ServerVersion returns the version of the server build.
func (s *LetsoSDK) ServerVersion(ctx context.Context) (string, error) {
	return s.getText(ctx, apiServerVersion, "server version")
}

// APIVersion returns the api revision the server speaks.
func (s *LetsoSDK) APIVersion(ctx context.Context) (string, error) {
	return s.getText(ctx, apiAPIVersion, "api version")
}

// CacheStats returns the server's snapshot cache counters.
func (s *LetsoSDK) CacheStats(ctx context.Context) (result *pfs.CacheStats, err error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetSuccessResult(&result).
		Get(apiCacheStats)

	if err := handleAPIError(resp, err, "cache stats"); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *LetsoSDK) getText(ctx context.Context, url, operation string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(url)

	if err := handleAPIError(resp, err, operation); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}
