package router

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	authAPI "cloudvault-api/api/v1/auth"
	csrfAPI "cloudvault-api/api/v1/csrf"
	filesAPI "cloudvault-api/api/v1/files"
	sessionAPI "cloudvault-api/api/v1/sessions"
	setupAPI "cloudvault-api/api/v1/setup"
	userAPI "cloudvault-api/api/v1/users"
	internalAuth "cloudvault-api/internal/auth"
	internalFiles "cloudvault-api/internal/files"
	jwt "cloudvault-api/internal/jwt"
	log "cloudvault-api/internal/logger"
	"cloudvault-api/internal/middleware"
	"cloudvault-api/internal/session"
	internalStorage "cloudvault-api/internal/storage"
	internalUser "cloudvault-api/internal/user"
	"cloudvault-api/pkg/config"
	"cloudvault-api/pkg/db"
	"cloudvault-api/pkg/redis"
	"cloudvault-api/pkg/s3"

	"github.com/getsentry/sentry-go"
	sentrylogrus "github.com/getsentry/sentry-go/logrus"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Package-level services to avoid recreation
var (
	jwtService     *jwt.JWTService
	sessionService *session.Service
	userService    *internalUser.Service
	authService    *internalAuth.Service
	storageService *internalStorage.Service
	fileService    *internalFiles.Service
	logger         *logrus.Logger
	customLogger   *log.Logger
)

// InitServices initializes all required services
func InitServices(database *gorm.DB, redisClient *redis.Client) error {
	// Initialize logger with Sentry hook
	logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Setup Sentry hook for logrus if DSN is provided
	sentryDSN := os.Getenv("SENTRY_DSN")
	if sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         sentryDSN,
			Environment: os.Getenv("ENVIRONMENT"),
			Release:     os.Getenv("APP_VERSION"),
		})
		if err != nil {
			return errors.New("failed to initialize Sentry: " + err.Error())
		}

		levels := []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
		hook, err := sentrylogrus.New(levels, sentry.ClientOptions{
			Dsn: sentryDSN,
		})
		if err != nil {
			logger.WithError(err).Error("Failed to initialize Sentry hook")
		} else {
			logger.AddHook(hook)
			logger.Info("Sentry integration initialized successfully")
		}
	}

	// Initialize custom logger wrapper
	customLogger = log.New(logger)

	// Initialize JWT service
	appConfig := config.GetConfig()
	var err error
	jwtService, err = jwt.NewJWTService(
		appConfig.JWTPrivateKeyPath,
		appConfig.JWTPublicKeyPath,
		appConfig.JWTIssuer,
		1*time.Hour,
		24*time.Hour,
	)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize JWT service")
		return err
	}

	// Initialize user repository and service
	userRepo := internalUser.NewRepository(database)
	userService = internalUser.NewService(userRepo, redisClient, customLogger)

	// Initialize session repository and service
	sessionRepo := session.NewRepository(database)
	sessionService = session.NewService(sessionRepo, redisClient, customLogger)

	// Initialize storage repository and service
	storageRepo := internalStorage.NewRepository(database)
	storageService = internalStorage.NewService(storageRepo, redisClient, customLogger)

	// Initialize files service on top of storage and S3
	fileRepo := internalFiles.NewRepository(database)
	fileService = internalFiles.NewService(fileRepo, storageService, s3.GetS3Client(), customLogger)

	// Initialize auth service
	authService = internalAuth.NewService(userService, redisClient, customLogger)

	logger.Info("All services initialized successfully")
	return nil
}

// CSRFMiddleware creates a middleware for CSRF protection
func CSRFMiddleware(secret string, secure bool) gin.HandlerFunc {
	csrfMiddleware := csrf.Protect(
		[]byte(secret),
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.Path("/"),
		csrf.CookieName("csrfToken"),
		csrf.MaxAge(3600), // 1 hour
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Domain("localhost"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Ensure CORS headers are set even for CSRF errors
			c, _ := gin.CreateTestContext(w)
			c.Request = r

			logger.WithFields(logrus.Fields{
				"remoteIP":  c.ClientIP(),
				"path":      r.URL.Path,
				"method":    r.Method,
				"userAgent": r.UserAgent(),
			}).Error("CSRF token mismatch")

			c.IndentedJSON(http.StatusForbidden, gin.H{"error": "CSRF token mismatch"})
			c.Abort()
		})),
	)

	return func(c *gin.Context) {
		csrfMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
		c.Abort()
	}
}

// SetupEngine creates a new Gin engine with default middleware
func SetupEngine() *gin.Engine {
	return gin.Default()
}

// SetupCsrfRoutes configures CSRF-related routes
func SetupCsrfRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	csrfHandler := csrfAPI.NewHandler(customLogger)

	csrfAPI.RegisterPublicRoutes(v1, csrfHandler)
}

// SetupSetupRoutes configures first-run setup routes
func SetupSetupRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	setupHandler := setupAPI.NewHandler(authService, customLogger)

	setupAPI.RegisterPublicRoutes(v1, setupHandler)
}

// SetupAuthRoutes configures auth-related routes
func SetupAuthRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	authHandler := authAPI.NewHandler(authService, userService, jwtService, sessionService, customLogger)

	// Register public auth routes
	authAPI.RegisterPublicRoutes(v1, authHandler)

	// Create authenticated route group
	authGroup := v1.Group("/auth")
	authGroup.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
	authAPI.RegisterProtectedRoutes(authGroup, authHandler)
}

// SetupUsersRoutes configures user-related routes
func SetupUsersRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	userHandler := userAPI.NewHandler(userService, storageService, sessionService, customLogger)

	userGroup := v1.Group("/users")
	userGroup.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
	userAPI.RegisterProtectedRoutes(userGroup, userHandler)
}

// SetupSessionsRoutes configures session management routes
func SetupSessionsRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	sessionHandler := sessionAPI.NewHandler(sessionService, customLogger)

	sessionGroup := v1.Group("/sessions")
	sessionGroup.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
	sessionAPI.RegisterProtectedRoutes(sessionGroup, sessionHandler)
}

// SetupFilesRoutes configures file management routes
func SetupFilesRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	filesHandler := filesAPI.NewHandler(fileService, customLogger)

	fileGroup := v1.Group("/files")
	fileGroup.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
	filesAPI.RegisterProtectedRoutes(fileGroup, filesHandler)
}

// SetupCSRFProtection configures CSRF protection
func SetupCSRFProtection(r *gin.Engine) error {
	csrfSecret := os.Getenv("CSRF_SECRET")
	if csrfSecret == "" {
		logger.Error("CSRF_SECRET environment variable is required")
		return errors.New("CSRF_SECRET environment variable is required")
	}

	csrfSecureStr := os.Getenv("CSRF_SECURE")
	csrfSecure, _ := strconv.ParseBool(csrfSecureStr)

	r.Use(CSRFMiddleware(csrfSecret, csrfSecure))

	return nil
}

// SetupCORS configures CORS settings
func SetupCORS(r *gin.Engine) {
	// Trusted Proxies
	r.SetTrustedProxies([]string{"http://localhost:1420"})

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:1420"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-TOKEN", "X-Refresh-Token", "X-Client-Name"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 24 * time.Hour

	r.Use(cors.New(corsConfig))
}

// SetupRouter creates and configures the main router with all routes
func SetupRouter(database *gorm.DB) (*gin.Engine, error) {
	// Set global database reference
	db.DB = database

	// Get Redis client
	redisClient := redis.GetDefault()

	// Initialize all services
	if err := InitServices(database, redisClient); err != nil {
		// This error is already logged in InitServices
		return nil, err
	}

	// Create and configure Gin router
	r := SetupEngine()

	// Setup CORS
	SetupCORS(r)

	// Setup CSRF protection
	if err := SetupCSRFProtection(r); err != nil {
		logger.WithError(err).Error("Failed to setup CSRF protection")
		return nil, err
	}

	// Configure routes
	SetupCsrfRoutes(r)
	SetupSetupRoutes(r)
	SetupAuthRoutes(r)
	SetupUsersRoutes(r)
	SetupSessionsRoutes(r)
	SetupFilesRoutes(r)

	logger.Info("Router setup completed successfully")
	return r, nil
}
