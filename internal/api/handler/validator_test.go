package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/shop-api/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func float64Ptr(f float64) *float64 { return &f }

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		req       any
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing username",
			req:       &registerRequest{Email: "a@example.com", Password: "password1"},
			wantField: "username",
			wantMsg:   "username is required",
		},
		{
			name:      "bad email",
			req:       &registerRequest{Username: "alice", Email: "alice-at-example", Password: "password1"},
			wantField: "email",
			wantMsg:   "email must be a valid email",
		},
		{
			name:      "short password",
			req:       &registerRequest{Username: "alice", Email: "alice@example.com", Password: "1234"},
			wantField: "password",
			wantMsg:   "password length must be at least 8 characters long",
		},
		{
			name:      "password over bcrypt limit",
			req:       &registerRequest{Username: "alice", Email: "alice@example.com", Password: strings.Repeat("a", 73)},
			wantField: "password",
			wantMsg:   "password length must be less than or equal to 72 characters long",
		},
		{
			name:      "long password on update",
			req:       &updateUserRequest{Password: strPtr(strings.Repeat("a", 73))},
			wantField: "password",
			wantMsg:   "password length must be less than or equal to 72 characters long",
		},
		{
			name:      "long username on update",
			req:       &updateUserRequest{Username: strPtr(strings.Repeat("a", 71))},
			wantField: "username",
			wantMsg:   "username length must be less than or equal to 70 characters long",
		},
		{
			name:      "negative price",
			req:       &createProductRequest{Title: "carpet", Description: "about carpet", Price: float64Ptr(-1)},
			wantField: "price",
			wantMsg:   "price must be greater than or equal to 0",
		},
		{
			name:      "short description on update",
			req:       &updateProductRequest{Description: strPtr("short")},
			wantField: "description",
			wantMsg:   "description length must be at least 10 characters long",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}

func TestValidator_AcceptsValidPayloads(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&registerRequest{Username: "Danial", Email: "danial@gmail.com", Password: "1111111111"}))
	assert.NoError(t, v.Validate(&loginRequest{Username: "Danial", Password: "1111111111"}))
	assert.NoError(t, v.Validate(&updateUserRequest{}))
	assert.NoError(t, v.Validate(&createProductRequest{Title: "carpet", Description: "about carpet of kashan", Price: float64Ptr(0)}))
	assert.NoError(t, v.Validate(&updateProductRequest{Price: float64Ptr(12.5)}))
}

func TestNormalize_TrimsStrings(t *testing.T) {
	req := &updateProductRequest{Title: strPtr("  carpet  "), Photo: strPtr(" p.png ")}
	req.normalize()

	assert.Equal(t, "carpet", *req.Title)
	assert.Equal(t, "p.png", *req.Photo)
	assert.Nil(t, req.Description)
}
