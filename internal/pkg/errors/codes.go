package errors

import "net/http"

var (
	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrSessionExpired = New(
		"SESSION_EXPIRED",
		"Session expired, please log in again",
		http.StatusUnauthorized,
	)

	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrValidationFailed = New(
		"VALIDATION_FAILED",
		"Request validation failed",
		http.StatusBadRequest,
	)

	ErrAttractionNotFound = New(
		"ATTRACTION_NOT_FOUND",
		"Attraction not found",
		http.StatusNotFound,
	)

	ErrTripNotFound = New(
		"TRIP_NOT_FOUND",
		"Trip plan not found",
		http.StatusNotFound,
	)

	ErrFavoriteNotFound = New(
		"FAVORITE_NOT_FOUND",
		"Attraction is not in favorites",
		http.StatusNotFound,
	)

	ErrConflict = New(
		"CONFLICT",
		"Resource already exists",
		http.StatusConflict,
	)

	ErrUnsupportedOperation = New(
		"UNSUPPORTED_OPERATION",
		"Operation is not supported in this mode",
		http.StatusBadRequest,
	)

	ErrBackendUnavailable = New(
		"BACKEND_UNAVAILABLE",
		"Travel service is unavailable, please retry",
		http.StatusBadGateway,
	)

	ErrMLUnavailable = New(
		"ML_UNAVAILABLE",
		"Recommendation service is unavailable, please retry",
		http.StatusServiceUnavailable,
	)

	ErrRateLimited = New(
		"RATE_LIMITED",
		"Too many attempts, slow down",
		http.StatusTooManyRequests,
	)

	ErrStorageError = New(
		"STORAGE_ERROR",
		"Storage operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
