package auth

import (
	"net/http"
	"strings"
	"time"

	"cloudvault-api/internal/session"

	"github.com/gin-gonic/gin"
)

// GetDeviceDetails extracts the device details from headers
func GetDeviceDetails(c *gin.Context) session.DeviceInfo {
	return session.DeviceInfo{
		DeviceName: c.GetHeader("X-Client-Name"),
		UserAgent:  c.Request.UserAgent(),
	}
}

// getUserIDFromContext extracts and validates user ID from context
func (h *Handler) getUserIDFromContext(c *gin.Context) (string, error) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		return "", session.ErrSessionNotFound
	}
	userID, ok := userIDInterface.(string)
	if !ok {
		return "", session.ErrSessionNotFound
	}
	return userID, nil
}

// getSessionIDFromContext extracts and validates session ID from context
func (h *Handler) getSessionIDFromContext(c *gin.Context) (string, error) {
	sessionIDInterface, exists := c.Get("sessionID")
	if !exists {
		return "", session.ErrSessionNotFound
	}
	sessionID, ok := sessionIDInterface.(string)
	if !ok {
		return "", session.ErrSessionNotFound
	}
	return sessionID, nil
}

// extractRefreshToken pulls the refresh token from header or cookie
func extractRefreshToken(c *gin.Context) string {
	header := c.GetHeader("X-Refresh-Token")
	if header != "" {
		return header
	}

	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	cookie, err := c.Cookie("refreshToken")
	if err == nil && cookie != "" {
		return cookie
	}

	return ""
}

// setAuthCookies sets the session and token cookies after authentication
func (h *Handler) setAuthCookies(c *gin.Context, sessionID, accessToken, refreshToken string, sessionExpiresAt int64) {
	c.SetSameSite(http.SameSiteStrictMode)

	sessionMaxAge := int(time.Until(time.Unix(sessionExpiresAt, 0)).Seconds())
	c.SetCookie("sessionID", sessionID, sessionMaxAge, "/", "localhost", false, true)
	c.SetCookie("accessToken", accessToken, 60*60, "/api/v1", "localhost", false, true)
	c.SetCookie("refreshToken", refreshToken, 24*60*60, "/api/v1/auth/refresh", "localhost", false, true)
}

// clearAuthCookies removes the session and token cookies
func (h *Handler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("sessionID", "", -1, "/", "localhost", false, true)
	c.SetCookie("accessToken", "", -1, "/api/v1", "localhost", false, true)
	c.SetCookie("refreshToken", "", -1, "/api/v1/auth/refresh", "localhost", false, true)
}
