package api

import (
	"errors"
	"fmt"

	"github.com/vauradkar/letso/internal/pfs"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("letso api error: code=%s, message=%s", e.Code, e.Message)
}

var storeCodes = []struct {
	kind error
	code string
}{
	{pfs.ErrReadFailure, CodeReadFailure},
	{pfs.ErrWriteFailure, CodeWriteFailure},
	{pfs.ErrDeleteFailure, CodeDeleteFailure},
	{pfs.ErrCreateFailure, CodeCreateFailure},
	{pfs.ErrParseFailure, CodeParseFailure},
	{pfs.ErrInvalidArgument, CodeInvalidArgument},
	{pfs.ErrInvalidPath, CodeInvalidPath},
	{pfs.ErrAlreadyExists, CodeAlreadyExists},
	{pfs.ErrSyncFailure, CodeSyncFailure},
}

// StoreErrorCode maps a store error to its API code.
func StoreErrorCode(err error) string {
	for _, sc := range storeCodes {
		if errors.Is(err, sc.kind) {
			return sc.code
		}
	}
	return CodeInternalError
}
