package user

import (
	"context"
	"errors"

	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/db"

	"gorm.io/gorm"
)

// NewRepository creates a new user repository
func NewRepository(database *gorm.DB) Repository {
	return &repo{
		userRepo:    db.NewRepositoryWithDB[models.User](database),
		storageRepo: db.NewRepositoryWithDB[models.UserStorage](database),
	}
}

// SaveUser creates a new user
func (r *repo) SaveUser(user *models.User) (*models.User, error) {
	err := r.userRepo.Create(context.Background(), user)
	return user, err
}

// UpdateUserById updates a user with built-in locking
func (r *repo) UpdateUserById(id string, user *models.User) (*models.User, error) {
	user.ID = id
	err := r.userRepo.Update(context.Background(), user)
	return user, err
}

// FindUserByID finds a user by ID
func (r *repo) FindUserByID(id string) (*models.User, error) {
	return r.userRepo.FindByID(context.Background(), id)
}

// FindUserOneWhere finds a user by email or username
func (r *repo) FindUserOneWhere(email *string, username *string) (*models.User, error) {
	var user models.User

	// First check by email if provided
	if email != nil {
		err := r.userRepo.DB().Where("email = ?", *email).First(&user).Error
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	// Then check by username if provided
	if username != nil {
		err := r.userRepo.DB().Where("username = ?", *username).First(&user).Error
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	// No user was found by either email or username
	return nil, gorm.ErrRecordNotFound
}

// DeleteUser deletes a user by ID
func (r *repo) DeleteUser(id string) error {
	return r.userRepo.Delete(context.Background(), id)
}

// CountUsers returns the total number of registered users
func (r *repo) CountUsers() (int64, error) {
	var count int64
	err := r.userRepo.DB().Model(&models.User{}).Count(&count).Error
	return count, err
}

// CreateUserStorage creates storage tracking for a user
func (r *repo) CreateUserStorage(storage *models.UserStorage) error {
	return r.storageRepo.Create(context.Background(), storage)
}

// GetUserStorage retrieves storage tracking for a user
func (r *repo) GetUserStorage(userID string) (*models.UserStorage, error) {
	storage, err := r.storageRepo.FindOneWhere(context.Background(), "user_id = ?", userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStorageNotFound
		}
		return nil, err
	}
	return storage, nil
}

// UpdateUserStorage updates storage tracking for a user
func (r *repo) UpdateUserStorage(storage *models.UserStorage) error {
	return r.storageRepo.Update(context.Background(), storage)
}
