package models

import (
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User types
const (
	UserTypeClient     = "client"
	UserTypeTechnician = "technician"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Phone        string    `db:"phone" json:"phone"`
	Name         string    `db:"name" json:"name"`
	Email        *string   `db:"email" json:"email,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	UserType     string    `db:"user_type" json:"user_type"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type SignupRequest struct {
	Phone    string `json:"phone" validate:"required,min=10,max=15"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type UserResponse struct {
	ID       string  `json:"id"`
	Phone    string  `json:"phone"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	UserType string  `json:"user_type"`
	Role     string  `json:"role"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Phone:    u.Phone,
		Name:     u.Name,
		Email:    u.Email,
		UserType: u.UserType,
		Role:     u.Role,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
