package core

import (
	"encoding/json"
	"net/http"
)

// Standard response codes.
//
// Every failure belongs to one taxonomy entry with a fixed status:
// validation 400, authentication 401, authorization 403, not found 404,
// conflict 409, dependency failure 502.
const (
	// oks
	CodeOkRegistered             = "ok_registered"
	CodeOkEmailVerified          = "ok_email_verified"
	CodeOkPasswordResetRequested = "ok_password_reset_requested"
	CodeOkPasswordReset          = "ok_password_reset"
	CodeOkCreated                = "ok_created"
	CodeOkUpdated                = "ok_updated"
	CodeOkDeleted                = "ok_deleted"

	// errors
	CodeErrorInvalidRequest     = "err_invalid_input"
	CodeErrorMissingFields      = "err_missing_fields"
	CodeErrorPasswordComplexity = "err_password_complexity"
	CodeErrorInvalidContentType = "err_invalid_content_type"
	CodeErrorInvalidCredentials = "err_invalid_credentials"
	CodeErrorNoAuthHeader       = "err_no_auth_header"
	CodeErrorInvalidTokenFormat = "err_invalid_token_format"
	CodeErrorJwtTokenExpired    = "err_token_expired"
	CodeErrorJwtInvalidToken    = "err_invalid_token"
	CodeErrorRoleNotAllowed     = "err_role_not_allowed"
	CodeErrorNotFound           = "err_not_found"
	CodeErrorEmailConflict      = "err_email_conflict"
	CodeErrorInvalidActionToken = "err_invalid_action_token"
	CodeErrorAlreadyVerified    = "err_already_verified"
	CodeErrorTokenGeneration    = "err_token_generation"
	CodeErrorInternal           = "err_internal"
	CodeErrorStoreFailure       = "err_store_failure"
	CodeErrorMailDelivery       = "err_mail_delivery"
)

// precomputeBasicResponse marshals a short response once, during package
// initialization, so request handlers only write precomputed bytes.
func precomputeBasicResponse(status int, code, message string) jsonResponse {
	basic := JsonBasic{
		Status:  status,
		Code:    code,
		Message: message,
	}
	body, _ := json.Marshal(basic)
	return jsonResponse{status: status, body: body}
}

// Precomputed error and ok responses with status codes
var (
	// errors
	errorInvalidRequest     = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidRequest, "The request contains invalid data")
	errorMissingFields      = precomputeBasicResponse(http.StatusBadRequest, CodeErrorMissingFields, "Required fields are missing")
	errorPasswordComplexity = precomputeBasicResponse(http.StatusBadRequest, CodeErrorPasswordComplexity, "Password must be at least 8 characters")
	errorInvalidContentType = precomputeBasicResponse(http.StatusUnsupportedMediaType, CodeErrorInvalidContentType, "Unsupported media type")
	errorInvalidCredentials = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidCredentials, "Invalid credentials provided")
	errorNoAuthHeader       = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorNoAuthHeader, "Authorization header is required")
	errorInvalidTokenFormat = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidTokenFormat, "Invalid authorization token format")
	errorJwtTokenExpired    = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtTokenExpired, "Authentication token has expired")
	errorJwtInvalidToken    = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtInvalidToken, "Invalid authentication token")
	errorRoleNotAllowed     = precomputeBasicResponse(http.StatusForbidden, CodeErrorRoleNotAllowed, "Insufficient permissions for this operation")
	errorNotFound           = precomputeBasicResponse(http.StatusNotFound, CodeErrorNotFound, "Requested resource not found")
	errorEmailConflict      = precomputeBasicResponse(http.StatusConflict, CodeErrorEmailConflict, "Email address is already registered")
	errorInvalidActionToken = precomputeBasicResponse(http.StatusConflict, CodeErrorInvalidActionToken, "Invalid or expired token for this email")
	errorAlreadyVerified    = precomputeBasicResponse(http.StatusConflict, CodeErrorAlreadyVerified, "Account is already verified")
	errorTokenGeneration    = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorTokenGeneration, "Failed to generate authentication token")
	errorInternal           = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorInternal, "Something went wrong processing the request")
	errorStoreFailure       = precomputeBasicResponse(http.StatusBadGateway, CodeErrorStoreFailure, "Data store is temporarily unavailable")
	errorMailDelivery       = precomputeBasicResponse(http.StatusBadGateway, CodeErrorMailDelivery, "Failed to deliver email")

	// oks
	okRegistered             = precomputeBasicResponse(http.StatusOK, CodeOkRegistered, "Account created. Check your mailbox to verify your email")
	okEmailVerified          = precomputeBasicResponse(http.StatusOK, CodeOkEmailVerified, "Email verified successfully")
	okPasswordResetRequested = precomputeBasicResponse(http.StatusOK, CodeOkPasswordResetRequested, "Password reset instructions sent. Check your mailbox")
	okPasswordReset          = precomputeBasicResponse(http.StatusOK, CodeOkPasswordReset, "Password reset successfully")
	okCreated                = precomputeBasicResponse(http.StatusCreated, CodeOkCreated, "Created successfully")
	okUpdated                = precomputeBasicResponse(http.StatusOK, CodeOkUpdated, "Updated successfully")
	okDeleted                = precomputeBasicResponse(http.StatusOK, CodeOkDeleted, "Deleted successfully")
)
