package status

// Status codes for API responses
// 1000-1999: Success codes
// 2000-2999: Challenge/Verification codes
// 4000-4999: Client error codes
// 5000-5999: Server error codes

const (
	// Success codes (1000-1999)
	StatusOK              int16 = 1000
	StatusCreated         int16 = 1001
	StatusAccepted        int16 = 1002
	StatusUpdated         int16 = 1003
	StatusDeleted         int16 = 1004
	StatusLoginSuccess    int16 = 1010
	StatusSignupSuccess   int16 = 1011
	StatusTokenRefreshed  int16 = 1012
	StatusLogoutSuccess   int16 = 1013
	StatusPasswordChanged int16 = 1014
	StatusSetupComplete   int16 = 1020
	StatusFileUploaded    int16 = 1030
	StatusFileDeleted     int16 = 1031
	StatusFolderCreated   int16 = 1032
	StatusUploadInitiated int16 = 1033
	StatusSessionRevoked  int16 = 1040

	// Challenge codes (2000-2999)
	StatusSetupRequired         int16 = 2000
	StatusEmailVerificationSent int16 = 2002

	// Client error codes (4000-4999)
	StatusBadRequest           int16 = 4000
	StatusUnauthorized         int16 = 4001
	StatusForbidden            int16 = 4002
	StatusNotFound             int16 = 4003
	StatusConflict             int16 = 4004
	StatusTooManyRequests      int16 = 4005
	StatusValidationFailed     int16 = 4010
	StatusInvalidCredentials   int16 = 4011
	StatusInvalidToken         int16 = 4012
	StatusTokenExpired         int16 = 4013
	StatusInvalidEmail         int16 = 4020
	StatusEmailAlreadyExists   int16 = 4021
	StatusWeakPassword         int16 = 4022
	StatusAccountLocked        int16 = 4023
	StatusCSRFTokenMismatch    int16 = 4040
	StatusSessionExpired       int16 = 4051
	StatusInvalidSession       int16 = 4052
	StatusStorageQuotaExceeded int16 = 4060
	StatusFileAlreadyExists    int16 = 4061
	StatusFolderNotEmpty       int16 = 4062
	StatusSetupAlreadyDone     int16 = 4070

	// Server error codes (5000-5999)
	StatusInternalServerError  int16 = 5000
	StatusNotImplemented       int16 = 5001
	StatusServiceUnavailable   int16 = 5002
	StatusDBError              int16 = 5010
	StatusRedisError           int16 = 5011
	StatusJWTError             int16 = 5030
	StatusObjectStoreError     int16 = 5040
	StatusExternalServiceError int16 = 5050
)

// CodeToString returns a descriptive string for the status code
func CodeToString(code int16) string {
	switch code {
	case StatusOK:
		return "OK"
	case StatusCreated:
		return "Resource created successfully"
	case StatusAccepted:
		return "Request accepted for processing"
	case StatusUpdated:
		return "Resource updated successfully"
	case StatusDeleted:
		return "Resource deleted successfully"
	case StatusLoginSuccess:
		return "Login successful"
	case StatusSignupSuccess:
		return "Signup successful"
	case StatusTokenRefreshed:
		return "Token refreshed successfully"
	case StatusLogoutSuccess:
		return "Logout successful"
	case StatusPasswordChanged:
		return "Password changed successfully"
	case StatusSetupComplete:
		return "Initial setup completed"
	case StatusFileUploaded:
		return "File uploaded successfully"
	case StatusFileDeleted:
		return "File deleted successfully"
	case StatusFolderCreated:
		return "Folder created successfully"
	case StatusUploadInitiated:
		return "Upload initiated"
	case StatusSessionRevoked:
		return "Session revoked"
	case StatusSetupRequired:
		return "Initial setup required"
	case StatusBadRequest:
		return "Bad request"
	case StatusUnauthorized:
		return "Unauthorized"
	case StatusForbidden:
		return "Forbidden"
	case StatusNotFound:
		return "Resource not found"
	case StatusConflict:
		return "Resource conflict"
	case StatusTooManyRequests:
		return "Too many requests"
	case StatusValidationFailed:
		return "Validation failed"
	case StatusInvalidCredentials:
		return "Invalid credentials"
	case StatusInvalidToken:
		return "Invalid token"
	case StatusTokenExpired:
		return "Token expired"
	case StatusStorageQuotaExceeded:
		return "Storage quota exceeded"
	case StatusFileAlreadyExists:
		return "File already exists"
	case StatusFolderNotEmpty:
		return "Folder is not empty"
	case StatusSetupAlreadyDone:
		return "Setup already completed"
	case StatusInternalServerError:
		return "Internal server error"
	case StatusDBError:
		return "Database error"
	case StatusRedisError:
		return "Cache error"
	case StatusJWTError:
		return "Token service error"
	case StatusObjectStoreError:
		return "Object storage error"
	default:
		return "Unknown status code"
	}
}
