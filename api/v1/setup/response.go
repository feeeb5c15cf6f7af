package setup

// StatusResponse reports whether setup is still required
type StatusResponse struct {
	Code       int16 `json:"code"`
	NeedsSetup bool  `json:"needsSetup"`
}

// CompleteResponse is returned after the owner account is created
type CompleteResponse struct {
	Code   int16  `json:"code"`
	UserID string `json:"userId"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code   int16  `json:"code"`
	Detail string `json:"detail"`
}

// NewStatusResponse creates a new setup status response
func NewStatusResponse(needsSetup bool, code int16) StatusResponse {
	return StatusResponse{
		Code:       code,
		NeedsSetup: needsSetup,
	}
}

// NewCompleteResponse creates a new setup completion response
func NewCompleteResponse(userID string, code int16) CompleteResponse {
	return CompleteResponse{
		Code:   code,
		UserID: userID,
	}
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string, code int16) ErrorResponse {
	return ErrorResponse{
		Code:   code,
		Detail: message,
	}
}
