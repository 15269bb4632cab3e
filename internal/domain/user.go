package domain

import (
	"time"
)

// Editor levels. Admin unlocks banner management and final sends.
const (
	LevelEditor = 5
	LevelAdmin  = 10
)

// User is an editorial account with access to the admin API
// Table: users
type User struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"column:username;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	Nickname     string    `gorm:"column:nickname" json:"nickname"`
	Level        int       `gorm:"column:level" json:"level"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Nickname     string `json:"nickname"`
	Level        int    `json:"level"`
}
