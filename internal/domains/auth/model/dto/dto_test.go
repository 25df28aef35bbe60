package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"folio/infras/jwt"
	"folio/internal/domains/auth/model"
	"folio/internal/domains/auth/model/dto"
	"folio/shared/constant"
	"folio/shared/validator"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	}

	session := model.Session{
		ID:        "session-1",
		UserID:    constant.BootstrapAdminID,
		Email:     "owner@example.com",
		Role:      constant.RoleSuperAdmin,
		ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair, session)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, int64(3600), response.ExpiresIn)
	assert.True(t, response.User.Bootstrap)
	assert.Equal(t, "session-1", response.User.SessionID)
}

func TestSignupRequest_ToCreateUser(t *testing.T) {
	req := dto.SignupRequest{Token: "abc", Email: "sam@example.com", Password: "password123", FullName: "Sam"}

	user := req.ToCreateUser(constant.RoleAdmin)

	assert.Equal(t, "sam@example.com", user.Email)
	assert.Equal(t, "password123", user.Password)
	assert.Equal(t, constant.RoleAdmin, user.Role)
}

func TestChangePasswordRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.ChangePasswordRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"},
		},
		{
			name:    "too short",
			req:     dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "short"},
			wantErr: true,
		},
		{
			name:    "unchanged",
			req:     dto.ChangePasswordRequest{CurrentPassword: "same-password", NewPassword: "same-password"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
