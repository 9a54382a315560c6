// Package errors provides error wrapping and AWS error classification.
//
// It is conventionally imported as apperrors to avoid shadowing the standard
// library errors package.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// Kind classifies an error into a coarse category for display and retry
// decisions.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAccessDenied
	KindThrottling
	KindResourceInUse
	KindValidation
)

// String returns a short human-readable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindAccessDenied:
		return "access denied"
	case KindThrottling:
		return "throttled"
	case KindResourceInUse:
		return "resource in use"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Wrap annotates err with an operation description, preserving the chain.
// Returns nil when err is nil.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Wrapf annotates err with a formatted operation description.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Classify maps an error to its Kind.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case IsNotFound(err):
		return KindNotFound
	case IsAccessDenied(err):
		return KindAccessDenied
	case IsThrottling(err):
		return KindThrottling
	case IsResourceInUse(err):
		return KindResourceInUse
	case IsValidationError(err):
		return KindValidation
	default:
		return KindUnknown
	}
}

var notFoundCodes = map[string]bool{
	"ResourceNotFoundException": true,
	"NotFound":                  true,
	"NotFoundException":         true,
	"NoSuchEntity":              true,
	"NoSuchBucket":              true,
	"NoSuchKey":                 true,
	"ClusterNotFoundException":  true,
	"ServiceNotFoundException":  true,
}

// IsNotFound reports whether err indicates a missing resource.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if code := GetErrorCode(err); notFoundCodes[code] {
		return true
	}
	return strings.Contains(err.Error(), "NotFound")
}

// IsAccessDenied reports whether err indicates missing permissions.
func IsAccessDenied(err error) bool {
	switch GetErrorCode(err) {
	case "AccessDenied", "AccessDeniedException", "Forbidden", "UnauthorizedOperation":
		return true
	}
	return false
}

// IsThrottling reports whether err indicates API rate limiting.
func IsThrottling(err error) bool {
	switch GetErrorCode(err) {
	case "Throttling", "ThrottlingException", "TooManyRequestsException", "RequestLimitExceeded":
		return true
	}
	return false
}

// IsResourceInUse reports whether err indicates a dependency conflict.
func IsResourceInUse(err error) bool {
	switch GetErrorCode(err) {
	case "ResourceInUseException", "DependencyViolation", "DeleteConflict", "ResourceInUse":
		return true
	}
	return false
}

// IsValidationError reports whether err indicates rejected input.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	switch GetErrorCode(err) {
	case "ValidationError", "ValidationException", "InvalidParameterException",
		"InvalidParameterValue", "MalformedInput", "InvalidInput":
		return true
	}
	return strings.Contains(err.Error(), "ValidationError")
}

// GetErrorCode extracts the AWS error code, or "" for non-API errors.
func GetErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// GetErrorMessage extracts the AWS error message, falling back to Error().
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorMessage()
	}
	return err.Error()
}
