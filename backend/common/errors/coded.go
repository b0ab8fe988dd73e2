package errors

import stderrors "errors"

// CodedError attaches a machine-readable code to a user-facing message.
type CodedError struct {
	Code    string
	Message string
	Err     error
}

func (e *CodedError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

func New(code string, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

func Wrap(err error, code string, message string) *CodedError {
	return &CodedError{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the outermost CodedError in err's chain, or
// ErrInternalServer when there is none.
func CodeOf(err error) string {
	var coded *CodedError
	if stderrors.As(err, &coded) {
		return coded.Code
	}
	return ErrInternalServer
}

func HasCode(err error, code string) bool {
	var coded *CodedError
	if stderrors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// IsNotFound reports whether err carries one of the not-found codes.
func IsNotFound(err error) bool {
	code := CodeOf(err)
	return code == ErrNotFound || code == ErrMediaNotFound || code == ErrUserNotFound
}
