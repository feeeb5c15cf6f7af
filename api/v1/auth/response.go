package auth

import (
	"strings"

	"cloudvault-api/internal/jwt"
	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/status"

	"github.com/go-playground/validator/v10"
)

// User represents a user in the response
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	DisplayName   string `json:"displayName"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     int64  `json:"createdAt"`
	LastLogin     int64  `json:"lastLogin"`
}

// Session represents a session in the response
type Session struct {
	ID        string `json:"id"`
	ExpiresAt int64  `json:"expiresAt"`
}

// BaseResponse contains fields common to all responses
type BaseResponse struct {
	Code int16 `json:"code"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	BaseResponse
	Detail string `json:"detail"`
}

// LoginResponse represents the response from successful authentication
type LoginResponse struct {
	BaseResponse
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	TokenType    string   `json:"tokenType"`
	Scopes       []string `json:"scopes"`
	Session      Session  `json:"session"`
	User         User     `json:"user"`
	ExpiresIn    int64    `json:"expiresIn"`
}

// MeResponse represents the current user profile response
type MeResponse struct {
	BaseResponse
	User User `json:"user"`
}

// SignupResponse represents the response from successful registration
type SignupResponse struct {
	BaseResponse
	User User `json:"user"`
}

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	BaseResponse
	Detail string `json:"detail"`
}

// RefreshTokenResponse represents the response from token refresh
type RefreshTokenResponse struct {
	BaseResponse
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	TokenType    string   `json:"tokenType"`
	Scopes       []string `json:"scopes"`
	Session      Session  `json:"session"`
	User         User     `json:"user"`
	ExpiresIn    int64    `json:"expiresIn"`
}

// NewValidationError creates a new validation error response
func NewValidationError(err error, code int16) ErrorResponse {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		full := errs[0].Error()
		parts := strings.SplitN(full, "Error:", 2)
		if len(parts) == 2 {
			return NewErrorResponse(strings.TrimSpace(parts[1]), code)
		}
		return NewErrorResponse(full, code)
	}
	return NewErrorResponse("Invalid request format", code)
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string, code int16) ErrorResponse {
	return ErrorResponse{
		BaseResponse: BaseResponse{Code: code},
		Detail:       message,
	}
}

// newUserData converts a user model into its response shape
func newUserData(user *models.User) User {
	return User{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		DisplayName:   user.DisplayName,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		LastLogin:     user.LastLogin,
	}
}

// NewLoginResponse creates a new login response
func NewLoginResponse(
	token jwt.TokenPair,
	user *models.User,
	session *models.UserSession,
	code int16,
) LoginResponse {
	return LoginResponse{
		BaseResponse: BaseResponse{Code: code},
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Scopes:       token.Scopes,
		User:         newUserData(user),
		Session: Session{
			ID:        session.ID,
			ExpiresAt: session.ExpiresAt,
		},
		ExpiresIn: token.ExpiresIn,
	}
}

// NewSignupResponse creates a new signup response
func NewSignupResponse(user *models.User, code int16) SignupResponse {
	return SignupResponse{
		BaseResponse: BaseResponse{Code: code},
		User:         newUserData(user),
	}
}

// NewSuccessResponse creates a success response worded from the status code
func NewSuccessResponse(code int16) SuccessResponse {
	return SuccessResponse{
		BaseResponse: BaseResponse{Code: code},
		Detail:       status.CodeToString(code),
	}
}

// NewRefreshTokenResponse creates a new token refresh response
func NewRefreshTokenResponse(
	token jwt.TokenPair,
	user *models.User,
	session *models.UserSession,
	code int16,
) RefreshTokenResponse {
	return RefreshTokenResponse{
		BaseResponse: BaseResponse{Code: code},
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Scopes:       token.Scopes,
		User:         newUserData(user),
		Session: Session{
			ID:        session.ID,
			ExpiresAt: session.ExpiresAt,
		},
		ExpiresIn: token.ExpiresIn,
	}
}
