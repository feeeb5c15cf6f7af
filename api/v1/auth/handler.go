package auth

import (
	"context"
	"net/http"
	"time"

	"cloudvault-api/internal/auth"
	"cloudvault-api/internal/models"
	"cloudvault-api/internal/session"
	"cloudvault-api/internal/user"
	"cloudvault-api/internal/utils"
	"cloudvault-api/pkg/status"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// secureLog logs errors without sensitive data that might expose credentials
func (h *Handler) secureLog(err error, message string, route string) {
	requestID := utils.GenerateShortID()
	h.logger.WithFields(logrus.Fields{
		"requestID": requestID,
		"route":     route,
		"errorMsg":  err.Error(),
	}).Error(message)
}

// HandleSignup registers a new user account
func (h *Handler) HandleSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid signup request format", "/auth/signup")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	newUser, err := h.authService.Signup(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		h.secureLog(err, "Signup failed", "/auth/signup")

		statusCode := http.StatusInternalServerError
		apiStatus := status.StatusInternalServerError

		switch err {
		case auth.ErrSetupRequired:
			statusCode = http.StatusForbidden
			apiStatus = status.StatusSetupRequired
		case auth.ErrEmailAlreadyExists:
			statusCode = http.StatusConflict
			apiStatus = status.StatusEmailAlreadyExists
		case auth.ErrUsernameAlreadyExists:
			statusCode = http.StatusConflict
			apiStatus = status.StatusConflict
		case auth.ErrInvalidEmail:
			statusCode = http.StatusUnprocessableEntity
			apiStatus = status.StatusInvalidEmail
		case auth.ErrInvalidUsername:
			statusCode = http.StatusUnprocessableEntity
			apiStatus = status.StatusValidationFailed
		case auth.ErrInvalidPassword:
			statusCode = http.StatusUnprocessableEntity
			apiStatus = status.StatusWeakPassword
		}

		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusCreated, NewSignupResponse(newUser, status.StatusSignupSuccess))
}

// HandleLogin authenticates a user and establishes a session
func (h *Handler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid login request format", "/auth/login")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	loggedInUser, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.secureLog(err, "Login failed", "/auth/login")

		statusCode := http.StatusInternalServerError
		apiStatus := status.StatusInternalServerError

		switch err {
		case auth.ErrInvalidCredentials:
			statusCode = http.StatusUnauthorized
			apiStatus = status.StatusInvalidCredentials
		case auth.ErrAccountDeactivated:
			statusCode = http.StatusForbidden
			apiStatus = status.StatusAccountLocked
		case auth.ErrInvalidInput:
			statusCode = http.StatusBadRequest
			apiStatus = status.StatusBadRequest
		}

		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	userSession, err := h.sessionService.CreateSession(c.Request.Context(), loggedInUser, GetDeviceDetails(c), c.ClientIP())
	if err != nil {
		h.secureLog(err, "Failed to create session", "/auth/login")
		c.JSON(http.StatusInternalServerError, NewErrorResponse("Failed to create session", status.StatusInternalServerError))
		return
	}

	tokenPair, err := h.jwtService.GenerateAuthTokens(*loggedInUser, userSession.ID)
	if err != nil {
		h.secureLog(err, "Failed to generate tokens", "/auth/login")
		c.JSON(http.StatusInternalServerError, NewErrorResponse("Failed to generate tokens", status.StatusJWTError))
		return
	}

	h.setAuthCookies(c, userSession.ID, tokenPair.AccessToken, tokenPair.RefreshToken, userSession.ExpiresAt)
	c.JSON(http.StatusOK, NewLoginResponse(tokenPair, loggedInUser, userSession, status.StatusLoginSuccess))
}

// HandleLogout invalidates the current session.
// The session invalidation runs asynchronously so the client gets a fast
// response; cookies are cleared regardless.
func (h *Handler) HandleLogout(c *gin.Context) {
	sessionID, err := h.getSessionIDFromContext(c)
	if err != nil {
		h.secureLog(err, "Session ID not found in context", "/auth/logout")
		h.clearAuthCookies(c)
		c.JSON(http.StatusOK, NewSuccessResponse(status.StatusLogoutSuccess))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.sessionService.InvalidateSession(ctx, sessionID); err != nil {
			h.secureLog(err, "Failed to invalidate session on logout", "/auth/logout")
		}
	}()

	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, NewSuccessResponse(status.StatusLogoutSuccess))
}

// HandleRefreshToken issues a new token pair from a valid refresh token.
// The user and session are fetched concurrently before the session expiry
// is extended.
func (h *Handler) HandleRefreshToken(c *gin.Context) {
	refreshToken := extractRefreshToken(c)
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("Refresh token required", status.StatusUnauthorized))
		return
	}

	claims, err := h.jwtService.ValidateToken(refreshToken)
	if err != nil {
		h.secureLog(err, "Invalid refresh token", "/auth/refresh")
		c.JSON(http.StatusUnauthorized, NewErrorResponse("Invalid refresh token", status.StatusInvalidToken))
		return
	}

	if !h.sessionService.IsSessionValid(c.Request.Context(), claims.SessionID) {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("Session is no longer valid", status.StatusInvalidSession))
		return
	}

	tokenPair, err := h.jwtService.RefreshTokenPair(refreshToken)
	if err != nil {
		h.secureLog(err, "Failed to refresh token pair", "/auth/refresh")
		c.JSON(http.StatusUnauthorized, NewErrorResponse("Failed to refresh tokens", status.StatusInvalidToken))
		return
	}

	var (
		currentUser    *models.User
		currentSession *models.UserSession
	)

	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		u, err := h.userService.GetUserById(gctx, claims.UserID)
		if err != nil {
			return err
		}
		currentUser = u
		return nil
	})
	g.Go(func() error {
		s, err := h.sessionService.GetSessionByID(gctx, claims.SessionID)
		if err != nil {
			return err
		}
		currentSession = s
		return nil
	})

	if err := g.Wait(); err != nil {
		h.secureLog(err, "Failed to load user or session for refresh", "/auth/refresh")

		statusCode := http.StatusInternalServerError
		apiStatus := status.StatusInternalServerError

		switch err {
		case user.ErrUserNotFound:
			statusCode = http.StatusUnauthorized
			apiStatus = status.StatusUnauthorized
		case session.ErrSessionNotFound, session.ErrSessionExpired, session.ErrSessionInvalid:
			statusCode = http.StatusUnauthorized
			apiStatus = status.StatusInvalidSession
		}

		c.JSON(statusCode, NewErrorResponse("Failed to refresh tokens", apiStatus))
		return
	}

	// Sliding expiry, best effort
	if err := h.sessionService.RefreshSession(c.Request.Context(), currentSession.ID); err != nil {
		h.secureLog(err, "Failed to extend session expiry", "/auth/refresh")
	}

	h.setAuthCookies(c, currentSession.ID, tokenPair.AccessToken, tokenPair.RefreshToken, currentSession.ExpiresAt)
	c.JSON(http.StatusOK, NewRefreshTokenResponse(tokenPair, currentUser, currentSession, status.StatusTokenRefreshed))
}

// HandleMe returns the authenticated user's profile
func (h *Handler) HandleMe(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("Authentication required", status.StatusUnauthorized))
		return
	}

	currentUser, err := h.userService.GetUserById(c.Request.Context(), userID)
	if err != nil {
		h.secureLog(err, "Failed to load current user", "/auth/me")

		statusCode := http.StatusInternalServerError
		apiStatus := status.StatusInternalServerError
		if err == user.ErrUserNotFound {
			statusCode = http.StatusUnauthorized
			apiStatus = status.StatusUnauthorized
		}

		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		BaseResponse: BaseResponse{Code: status.StatusOK},
		User:         newUserData(currentUser),
	})
}

// HandleChangePassword changes the authenticated user's password
func (h *Handler) HandleChangePassword(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("Authentication required", status.StatusUnauthorized))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid change password request format", "/auth/change-password")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		h.secureLog(err, "Password change failed", "/auth/change-password")

		statusCode := http.StatusInternalServerError
		apiStatus := status.StatusInternalServerError

		switch err {
		case auth.ErrInvalidCredentials:
			statusCode = http.StatusUnauthorized
			apiStatus = status.StatusInvalidCredentials
		case auth.ErrInvalidPassword:
			statusCode = http.StatusUnprocessableEntity
			apiStatus = status.StatusWeakPassword
		case auth.ErrInvalidInput:
			statusCode = http.StatusBadRequest
			apiStatus = status.StatusBadRequest
		}

		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(status.StatusPasswordChanged))
}
