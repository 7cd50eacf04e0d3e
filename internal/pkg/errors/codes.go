package errors

import "net/http"

var (
	ErrUnionNotFound = New(
		KindNotFound,
		"UNION_NOT_FOUND",
		"Union not found",
		http.StatusNotFound,
	)

	ErrLocationNotFound = New(
		KindNotFound,
		"LOCATION_NOT_FOUND",
		"Location not found",
		http.StatusNotFound,
	)

	ErrValidation = New(
		KindValidationFailed,
		"VALIDATION_FAILED",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDuplicateField = New(
		KindValidationFailed,
		"DUPLICATE_FIELD",
		"Duplicate field value entered",
		http.StatusBadRequest,
	)

	ErrInvalidDistance = New(
		KindValidationFailed,
		"INVALID_DISTANCE",
		"Distance must be a non-negative number",
		http.StatusBadRequest,
	)

	ErrUnauthorized = New(
		KindUnauthorized,
		"UNAUTHORIZED",
		"Not authorized to access this route",
		http.StatusUnauthorized,
	)

	ErrGeocoderUnavailable = New(
		KindUpstream,
		"GEOCODER_ERROR",
		"Geocoding service unavailable",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		KindUpstream,
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		KindInternal,
		"INTERNAL_SERVER_ERROR",
		"Server Error",
		http.StatusInternalServerError,
	)
)

var ErrTooManyRequests = New(
	KindRateLimited,
	"TOO_MANY_REQUESTS",
	"Too many requests, please try again later",
	http.StatusTooManyRequests,
)
