package models

import (
	"time"

	"gorm.io/gorm"

	"cloudvault-api/internal/utils"
)

// User represents a user in the system
type User struct {
	ID            string         `gorm:"primaryKey;column:id"`
	Username      string         `gorm:"column:username;size:50;not null;unique;index:idx_users_username"`
	DisplayName   string         `gorm:"column:display_name;size:50"`
	Email         string         `gorm:"column:email;size:100;not null;unique;index:idx_users_email"`
	EmailVerified bool           `gorm:"column:email_verified;default:false;not null"`
	PasswordHash  string         `gorm:"column:password_hash;size:100;not null" json:"-"`
	Role          string         `gorm:"column:role;size:20;default:'user';not null"`
	CreatedAt     int64          `gorm:"column:created_at;autoCreateTime:false;not null"`
	ModifiedAt    int64          `gorm:"column:modified_at;autoCreateTime:false;not null"`
	LastLogin     int64          `gorm:"column:last_login;autoCreateTime:false"`
	Active        bool           `gorm:"column:active;default:true"`
	Deleted       bool           `gorm:"column:deleted;default:false"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at,omitempty"`

	// Relationships
	Sessions []UserSession `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Storage  *UserStorage  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Files    []FileItem    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Role values
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook for User
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if u.ID == "" {
		u.ID = utils.GenerateUserID()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.CreatedAt == 0 {
		u.CreatedAt = now
	}
	if u.ModifiedAt == 0 {
		u.ModifiedAt = now
	}
	if u.LastLogin == 0 {
		u.LastLogin = now
	}
	return nil
}

// BeforeUpdate hook for User
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.ModifiedAt = time.Now().Unix()
	return nil
}

// UserSession represents an active session for a user
type UserSession struct {
	ID         string `gorm:"primaryKey;column:id"`
	UserID     string `gorm:"column:user_id;not null;index:idx_sessions_user_expires,priority:1"`
	Email      string `gorm:"column:email;not null"`
	Username   string `gorm:"column:username;not null"`
	DeviceName string `gorm:"column:device_name;size:100"`
	IPAddress  string `gorm:"column:ip_address;size:45"`
	UserAgent  string `gorm:"column:user_agent;size:255"`
	ExpiresAt  int64  `gorm:"column:expires_at;not null;index:idx_sessions_user_expires,priority:2;index:idx_sessions_inactive,priority:2"`
	CreatedAt  int64  `gorm:"column:created_at;autoCreateTime:false;not null"`
	ModifiedAt int64  `gorm:"column:modified_at;autoCreateTime:false;not null"`
	IsValid    bool   `gorm:"column:is_valid;default:true;not null"`
	LastActive int64  `gorm:"column:last_active;autoCreateTime:false;not null;index:idx_sessions_inactive,priority:1"`

	// Relationships
	User User `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for UserSession
func (UserSession) TableName() string {
	return "users_sessions"
}

// BeforeCreate hook for UserSession
func (us *UserSession) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if us.ID == "" {
		us.ID = utils.GenerateSessionID()
	}
	if us.CreatedAt == 0 {
		us.CreatedAt = now
	}
	if us.ModifiedAt == 0 {
		us.ModifiedAt = now
	}
	if us.LastActive == 0 {
		us.LastActive = now
	}
	return nil
}

// BeforeUpdate hook for UserSession
func (us *UserSession) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now().Unix()
	us.ModifiedAt = now
	us.LastActive = now
	return nil
}

// UserStorage tracks per-user storage quota and usage
type UserStorage struct {
	ID         string `gorm:"primaryKey;column:id"`
	UserID     string `gorm:"column:user_id;not null;unique;index:idx_user_storage_user_id"`
	UsedSpace  int64  `gorm:"column:used_space;default:0"`
	MaxSpace   int64  `gorm:"column:max_space;default:3221225472"` // 3GiB default
	CreatedAt  int64  `gorm:"column:created_at;autoCreateTime:false;not null"`
	ModifiedAt int64  `gorm:"column:modified_at;autoCreateTime:false;not null"`

	// Relationships
	User User `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for UserStorage
func (UserStorage) TableName() string {
	return "user_storage"
}

// BeforeCreate hook for UserStorage
func (us *UserStorage) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if us.ID == "" {
		us.ID = utils.GenerateID()
	}
	if us.CreatedAt == 0 {
		us.CreatedAt = now
	}
	if us.ModifiedAt == 0 {
		us.ModifiedAt = now
	}
	return nil
}

// BeforeUpdate hook for UserStorage
func (us *UserStorage) BeforeUpdate(tx *gorm.DB) error {
	us.ModifiedAt = time.Now().Unix()
	return nil
}
