package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// InputError describes rejected user input together with the text shown for it.
// It matches ErrInvalidInput under errors.Is.
type InputError struct {
	Code    ErrorCode
	Message string
}

// NewInputError creates an InputError for the given code. An empty message
// falls back to the code's default message.
func NewInputError(code ErrorCode, message string) *InputError {
	if message == "" {
		message = GetErrorMessage(code)
	}
	return &InputError{Code: code, Message: message}
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Message)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// Notice is the message box shown to the user for an outcome
type Notice struct {
	Code      ErrorCode
	Title     string
	Message   string
	Details   []string
	SessionID string
}

// NoticeOption is a functional option for configuring notices
type NoticeOption func(*Notice)

// WithDetails adds detail lines to the notice
func WithDetails(details ...string) NoticeOption {
	return func(n *Notice) {
		n.Details = append(n.Details, details...)
	}
}

// WithMessage overrides the default message for the error code
func WithMessage(message string) NoticeOption {
	return func(n *Notice) {
		n.Message = message
	}
}

// WithTitle overrides the default title for the error code
func WithTitle(title string) NoticeOption {
	return func(n *Notice) {
		n.Title = title
	}
}

// WithSessionID tags the notice with the session it was raised in
func WithSessionID(id string) NoticeOption {
	return func(n *Notice) {
		n.SessionID = id
	}
}

// NewNotice creates a notice for the given error code.
// Optional details can be added using functional options
func NewNotice(code ErrorCode, opts ...NoticeOption) *Notice {
	notice := &Notice{
		Code:    code,
		Title:   GetErrorTitle(code),
		Message: GetErrorMessage(code),
		Details: []string{},
	}

	for _, opt := range opts {
		opt(notice)
	}

	return notice
}

// NoticeFromError classifies err and builds the notice for it. Input errors
// carry their own message; system errors never expose the underlying cause.
func NoticeFromError(err error, opts ...NoticeOption) *Notice {
	code := Classify(err)

	var inputErr *InputError
	if !IsSystemCode(code) && stderrors.As(err, &inputErr) {
		opts = append([]NoticeOption{WithMessage(inputErr.Message)}, opts...)
	}

	return NewNotice(code, opts...)
}

// IsSystemError returns true if the notice reports an infrastructure failure
func (n *Notice) IsSystemError() bool {
	return IsSystemCode(n.Code)
}

// Text renders the message and details as the body of a message box
func (n *Notice) Text() string {
	if len(n.Details) == 0 {
		return n.Message
	}
	return n.Message + "\n" + strings.Join(n.Details, "\n")
}

// String returns a string representation of the notice
func (n *Notice) String() string {
	if n.SessionID == "" {
		return fmt.Sprintf("[%s] %s", n.Code, n.Message)
	}
	return fmt.Sprintf("[%s] %s (session: %s)", n.Code, n.Message, n.SessionID)
}
