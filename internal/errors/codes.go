package errors

import stderrors "errors"

// ErrorCode represents a standardized error code shown alongside user notices
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidPIN    ErrorCode = "VALIDATION_004"
	ValidationInvalidAmount ErrorCode = "VALIDATION_005"
)

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound            ErrorCode = "ACCOUNT_001"
	AccountInsufficientBalance ErrorCode = "ACCOUNT_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError ErrorCode = "SYSTEM_001"
	SystemDatabaseError ErrorCode = "SYSTEM_002"
)

// Error kinds shared by every layer. Services wrap these so callers can
// classify any failure with errors.Is.
var (
	ErrInvalidInput      = stderrors.New("invalid input")
	ErrAuthFailed        = stderrors.New("authentication failed")
	ErrInsufficientFunds = stderrors.New("insufficient funds")
	ErrNotFound          = stderrors.New("not found")
	ErrStorageFailure    = stderrors.New("storage failure")
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Invalid input",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Please enter a valid number",
	ValidationInvalidPIN:    "PIN must be 4 digits",
	ValidationInvalidAmount: "Amount must be a positive number",

	// Authentication errors
	AuthInvalidCredentials: "Invalid Account Number or PIN",

	// Account errors
	AccountNotFound:            "Account not found",
	AccountInsufficientBalance: "Insufficient Balance",

	// System errors
	SystemInternalError: "An unexpected error occurred",
	SystemDatabaseError: "Could not reach the bank records. Please try again",
}

// errorTitles maps error codes to the title of the notice shown for them
var errorTitles = map[ErrorCode]string{
	ValidationGeneral:          "Invalid Input",
	ValidationRequiredField:    "Invalid Input",
	ValidationInvalidFormat:    "Invalid Input",
	ValidationInvalidPIN:       "Error",
	ValidationInvalidAmount:    "Invalid Input",
	AuthInvalidCredentials:     "Error",
	AccountNotFound:            "Error",
	AccountInsufficientBalance: "Error",
	SystemInternalError:        "System Error",
	SystemDatabaseError:        "System Error",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// GetErrorTitle returns the notice title for a given error code
func GetErrorTitle(code ErrorCode) string {
	if title, ok := errorTitles[code]; ok {
		return title
	}
	return "Error"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}

// Classify maps an error onto the code used to report it.
// Storage failures take precedence over any domain kind they also wrap.
func Classify(err error) ErrorCode {
	var inputErr *InputError
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, ErrStorageFailure):
		return SystemDatabaseError
	case stderrors.As(err, &inputErr) && inputErr.Code != "":
		return inputErr.Code
	case stderrors.Is(err, ErrInvalidInput):
		return ValidationGeneral
	case stderrors.Is(err, ErrAuthFailed):
		return AuthInvalidCredentials
	case stderrors.Is(err, ErrInsufficientFunds):
		return AccountInsufficientBalance
	case stderrors.Is(err, ErrNotFound):
		return AccountNotFound
	default:
		return SystemInternalError
	}
}

// IsSystemCode reports whether the code describes an infrastructure failure
func IsSystemCode(code ErrorCode) bool {
	return code == SystemInternalError || code == SystemDatabaseError
}
