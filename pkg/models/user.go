package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleStaff
}

// User is an operator of the API, not an inventory employee.
type User struct {
	Base         `bson:",inline"`
	Email        string     `bson:"email" json:"email"`
	Name         string     `bson:"name" json:"name"`
	PasswordHash string     `bson:"password_hash" json:"-"`
	Role         Role       `bson:"role" json:"role"`
	TOTPSecret   string     `bson:"totp_secret,omitempty" json:"-"`
	MFAEnabled   bool       `bson:"mfa_enabled" json:"mfa_enabled"`
	LastLoginAt  *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
}
