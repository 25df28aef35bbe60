package dto

import (
	"strings"

	"folio/internal/domains/user/model"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"
)

type CreateUserRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Role     string `json:"role"      validate:"omitempty,oneof=admin superadmin"`
}

func (r *CreateUserRequest) ToModel(id, hashedPassword string) model.User {
	now := timezone.Now()

	role := r.Role
	if role == "" {
		role = constant.RoleAdmin
	}

	return model.User{
		ID:       id,
		Email:    strings.ToLower(r.Email),
		Password: hashedPassword,
		FullName: r.FullName,
		Role:     role,
		Metadata: gModel.NewMetadata(now),
	}
}

type UpdateProfileRequest struct {
	FullName *string `db:"full_name" json:"full_name" validate:"omitempty,max=100"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	Bootstrap bool    `json:"bootstrap"`
	LastLogin *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.FullName = model.FullName
	r.Role = model.Role
	r.Bootstrap = model.ID == constant.BootstrapAdminID
	r.Metadata.FromModel(model.Metadata)

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}

// Bootstrap describes the configured admin account, which has no stored row.
func Bootstrap(email string) model.User {
	return model.User{
		ID:       constant.BootstrapAdminID,
		Email:    email,
		FullName: "Administrator",
		Role:     constant.RoleSuperAdmin,
	}
}

type GetUsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

func (r *GetUsersResponse) FromModels(models []model.User) {
	r.Total = len(models)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
