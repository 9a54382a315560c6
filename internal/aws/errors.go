package aws

import (
	apperrors "github.com/loupecli/loupe/internal/errors"
)

// Error classification helpers re-exported for callers already importing this
// package. The logic lives in internal/errors.

func IsNotFound(err error) bool        { return apperrors.IsNotFound(err) }
func IsAccessDenied(err error) bool    { return apperrors.IsAccessDenied(err) }
func IsThrottling(err error) bool      { return apperrors.IsThrottling(err) }
func IsResourceInUse(err error) bool   { return apperrors.IsResourceInUse(err) }
func IsValidationError(err error) bool { return apperrors.IsValidationError(err) }
func GetErrorCode(err error) string    { return apperrors.GetErrorCode(err) }
func GetErrorMessage(err error) string { return apperrors.GetErrorMessage(err) }
