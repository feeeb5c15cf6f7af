package user

import (
	"context"
	"fmt"
	"time"

	"cloudvault-api/internal/models"
)

// Redis key generators
func redisKeyForUser(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

func redisKeyForUserByEmail(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

func redisKeyForUserByUsername(username string) string {
	return fmt.Sprintf("user:username:%s", username)
}

// Matches every key namespaced under a user, the session set included
func redisPatternForUserNamespace(userID string) string {
	return fmt.Sprintf("user:%s:*", userID)
}

// cacheUser saves a user and its lookup keys to Redis
func (s *Service) cacheUser(ctx context.Context, user *models.User) error {
	// Cache with an hour expiration
	userKey := redisKeyForUser(user.ID)
	err := s.cache.SetJSON(ctx, userKey, user, time.Hour)
	if err != nil {
		s.logger.Error("Failed to cache user", "error", err)
		return ErrCacheError
	}

	// Cache email and username lookups
	emailKey := redisKeyForUserByEmail(user.Email)
	err = s.cache.Set(ctx, emailKey, user.ID, time.Hour)
	if err != nil {
		s.logger.Warn("Failed to cache user email lookup", "error", err)
		// Not returning error as this is not critical
	}

	usernameKey := redisKeyForUserByUsername(user.Username)
	err = s.cache.Set(ctx, usernameKey, user.ID, time.Hour)
	if err != nil {
		s.logger.Warn("Failed to cache user username lookup", "error", err)
		// Not returning error as this is not critical
	}

	return nil
}

// getUserFromCache retrieves a user from Redis cache
func (s *Service) getUserFromCache(ctx context.Context, userID string) (*models.User, error) {
	userKey := redisKeyForUser(userID)

	var user models.User
	err := s.cache.GetJSON(ctx, userKey, &user)
	if err != nil || user.ID == "" {
		return nil, ErrUserNotFound
	}

	return &user, nil
}

// getUserIdFromEmailCache resolves a cached email lookup
func (s *Service) getUserIdFromEmailCache(ctx context.Context, email string) (string, error) {
	emailKey := redisKeyForUserByEmail(email)
	userID, err := s.cache.Get(ctx, emailKey)
	if err != nil || userID == "" {
		return "", ErrUserNotFound
	}

	return userID, nil
}

// getUserIdFromUsernameCache resolves a cached username lookup
func (s *Service) getUserIdFromUsernameCache(ctx context.Context, username string) (string, error) {
	usernameKey := redisKeyForUserByUsername(username)
	userID, err := s.cache.Get(ctx, usernameKey)
	if err != nil || userID == "" {
		return "", ErrUserNotFound
	}

	return userID, nil
}

// invalidateUserCache removes a user and its lookup keys from Redis
func (s *Service) invalidateUserCache(ctx context.Context, user *models.User) {
	keys := []string{
		redisKeyForUser(user.ID),
		redisKeyForUserByEmail(user.Email),
		redisKeyForUserByUsername(user.Username),
	}

	if _, err := s.cache.DeleteMany(ctx, keys...); err != nil {
		s.logger.Warn("Failed to invalidate user cache", "error", err)
	}
}
