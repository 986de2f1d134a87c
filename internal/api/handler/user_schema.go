package handler

import (
	"time"

	"github.com/storefront/shop-api/internal/core/domain"
)

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=2,max=70"`
	Email    string `json:"email"    validate:"required,min=5,max=110,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *registerRequest) normalize() {
	trim(&r.Username)
	trim(&r.Email)
	trim(&r.Password)
}

type loginRequest struct {
	Username string `json:"username" validate:"required,min=2,max=70"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *loginRequest) normalize() {
	trim(&r.Username)
	trim(&r.Password)
}

// updateUserRequest fields are optional; a nil pointer leaves the stored
// value untouched.
type updateUserRequest struct {
	Username *string `json:"username" validate:"omitnil,min=2,max=70"`
	Email    *string `json:"email"    validate:"omitnil,min=5,max=110,email"`
	Password *string `json:"password" validate:"omitnil,min=8,max=72"`
}

func (r *updateUserRequest) normalize() {
	trim(r.Username)
	trim(r.Email)
	trim(r.Password)
}

// --- Response types ---

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// authResponse is the user record with the issued token alongside.
type authResponse struct {
	userResponse
	Token string `json:"token"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
