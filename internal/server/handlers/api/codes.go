package api

const (
	// Generic request/server errors
	CodeInvalidRequest = "E_INVALID_REQUEST" // bad or invalid request
	CodeRateLimited    = "E_RATE_LIMITED"    // rate limit exceeded
	CodeInternalError  = "E_INTERNAL_ERROR"  // internal server error
	CodeNotFound       = "E_NOT_FOUND"       // no such route

	// Store errors, one per failure kind
	CodeReadFailure     = "E_READ_FAILURE"     // reading metadata, a directory or file content failed.
	CodeWriteFailure    = "E_WRITE_FAILURE"    // writing file content or its modification time failed.
	CodeDeleteFailure   = "E_DELETE_FAILURE"   // removing a file failed.
	CodeCreateFailure   = "E_CREATE_FAILURE"   // creating parent directories failed.
	CodeParseFailure    = "E_PARSE_FAILURE"    // a timestamp or payload could not be parsed.
	CodeInvalidArgument = "E_INVALID_ARGUMENT" // the target is missing, a directory where a file was expected, or similar.
	CodeInvalidPath     = "E_INVALID_PATH"     // a path could not be represented portably.
	CodeAlreadyExists   = "E_ALREADY_EXISTS"   // the target exists and overwrite was not requested.
	CodeSyncFailure     = "E_SYNC_FAILURE"     // a streamed listing was interrupted.
)
