package models

import (
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleEmployee   = "employee"
)

// Account is a flat record: framework-style base fields (password hash,
// activity and staff flags, timestamps) live next to the domain fields
// instead of being split across a type hierarchy.
type Account struct {
	ID           uint       `gorm:"primaryKey;autoIncrement"    json:"id"`
	Username     string     `gorm:"uniqueIndex;not null"        json:"username"`
	Email        string     `gorm:"uniqueIndex;not null"        json:"email"`
	FirstName    string     `gorm:"not null"                    json:"first_name"`
	LastName     string     `gorm:"not null"                    json:"last_name"`
	PasswordHash string     `gorm:"not null"                    json:"-"`
	Role         string     `gorm:"not null;default:technician" json:"role"`
	IsActive     bool       `gorm:"not null;default:true"       json:"is_active"`
	IsStaff      bool       `gorm:"not null"                    json:"is_staff"`
	IsSuperuser  bool       `gorm:"not null"                    json:"is_superuser"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

// RevokedToken is the permanent revocation record for a refresh token.
// Rows are only ever inserted; the unique jti index makes a second
// revocation of the same token a conflict rather than a silent no-op.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"           json:"id"`
	JTI       string    `gorm:"uniqueIndex;not null" json:"jti"`
	UserID    uint      `gorm:"index;not null"       json:"user_id"`
	ExpiresAt int64     `gorm:"not null"             json:"expires_at"`
	RevokedAt time.Time `json:"revoked_at"`
}
