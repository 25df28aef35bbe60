package dto

import (
	"folio/infras/jwt"
	"folio/internal/domains/auth/model"
	userDto "folio/internal/domains/user/model/dto"
	"folio/shared/constant"
	"folio/shared/timezone"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Token    string `json:"token"     validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
}

func (r *SignupRequest) ToCreateUser(role string) userDto.CreateUserRequest {
	return userDto.CreateUserRequest{
		Email:    r.Email,
		Password: r.Password,
		FullName: r.FullName,
		Role:     role,
	}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password"`
}

type MeResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	Role             string `json:"role"`
	Bootstrap        bool   `json:"bootstrap"`
	SessionID        string `json:"session_id"`
	SessionExpiresAt string `json:"session_expires_at"`
}

func (r *MeResponse) FromSession(session model.Session) {
	r.ID = session.UserID
	r.Email = session.Email
	r.FullName = session.FullName
	r.Role = session.Role
	r.Bootstrap = session.UserID == constant.BootstrapAdminID
	r.SessionID = session.ID
	r.SessionExpiresAt = timezone.Format(session.ExpiresAt, constant.DateFormat)
}

type LoginResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type"`
	ExpiresIn    int64      `json:"expires_in"`
	User         MeResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair, session model.Session) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
	l.User.FromSession(session)
}
