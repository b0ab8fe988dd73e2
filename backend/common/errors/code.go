package errors

// Generic error codes
const (
	ErrInternalServer = "ERR_INTERNAL_SERVER"
	ErrValidation     = "ERR_VALIDATION"
	ErrNotFound       = "ERR_NOT_FOUND"
)

// User error codes
const (
	ErrEmptyCredentials   = "ERR_EMPTY_CREDENTIALS"
	ErrInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrUsernameTaken      = "ERR_USERNAME_TAKEN"
	ErrUserNotFound       = "ERR_USER_NOT_FOUND"
)

// Media error codes
const (
	ErrMediaNotFound = "ERR_MEDIA_NOT_FOUND"
	ErrRemoteStore   = "ERR_REMOTE_STORE"
)
