package auth

import (
	"time"
)

// User account entity.
// IDs are UUID strings to avoid ObjectID conversions.
type User struct {
	ID          string       `bson:"_id,omitempty" json:"id"`
	Username    string       `bson:"username" json:"username"`
	Email       string       `bson:"email" json:"email"`
	Password    string       `bson:"password" json:"-"` // bcrypt hash, never returned
	Role        UserRole     `bson:"role" json:"role"`
	Status      UserStatus   `bson:"status" json:"status"`
	Profile     *UserProfile `bson:"profile,omitempty" json:"profile,omitempty"`
	LastLoginAt *time.Time   `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt   time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `bson:"updated_at" json:"updated_at"`
}

// UserProfile optional profile details
type UserProfile struct {
	Nickname string `bson:"nickname,omitempty" json:"nickname,omitempty"`
	Avatar   string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// UserRole account role
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RolePatient  UserRole = "patient"
	RoleProvider UserRole = "provider"
)

// IsValid reports whether the role is known
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RolePatient || r == RoleProvider
}

// String returns the role string
func (r UserRole) String() string {
	return string(r)
}

// UserStatus account status
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBanned   UserStatus = "banned"
)

// IsValid reports whether the status is known
func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusInactive || s == UserStatusBanned
}

// String returns the status string
func (s UserStatus) String() string {
	return string(s)
}
