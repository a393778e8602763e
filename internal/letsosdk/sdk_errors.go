package letsosdk

import (
	"errors"
	"fmt"
	"io"

	"github.com/imroc/req/v3"
)

var (
	ErrNoServerURL  = errors.New("sdk: server url missing")
	ErrFileNotFound = errors.New("sdk: file not found")
)

// Codes returned by the server in APIError.Code
const (
	CodeInvalidRequest  = "E_INVALID_REQUEST"
	CodeRateLimited     = "E_RATE_LIMITED"
	CodeInternalError   = "E_INTERNAL_ERROR"
	CodeNotFound        = "E_NOT_FOUND"
	CodeReadFailure     = "E_READ_FAILURE"
	CodeWriteFailure    = "E_WRITE_FAILURE"
	CodeDeleteFailure   = "E_DELETE_FAILURE"
	CodeCreateFailure   = "E_CREATE_FAILURE"
	CodeParseFailure    = "E_PARSE_FAILURE"
	CodeInvalidArgument = "E_INVALID_ARGUMENT"
	CodeInvalidPath     = "E_INVALID_PATH"
	CodeAlreadyExists   = "E_ALREADY_EXISTS"
	CodeSyncFailure     = "E_SYNC_FAILURE"
)

// APIError is the error body of a failed request
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s - %s", e.Code, e.Message)
}

// IsCode reports whether err carries an APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// handleAPIError is a helper function that handles the common error pattern
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("http request error: %s %w", operation, requestErr)
	}

	// got a response, but api returned an error
	if resp.IsErrorState() {
		if err, ok := resp.ErrorResult().(*APIError); ok && err.Code != "" {
			return fmt.Errorf("%s %w", operation, err)
		}

		return fmt.Errorf("api error: %s %s", operation, resp.Status)
	}

	return nil
}

// handleStreamError is handleAPIError for requests whose body is not read automatically.
func handleStreamError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("http request error: %s %w", operation, requestErr)
	}
	if !resp.IsErrorState() {
		return nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var apiErr APIError
	if err := jsonUnmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		return fmt.Errorf("%s %w", operation, &apiErr)
	}
	return fmt.Errorf("api error: %s %s", operation, resp.Status)
}
