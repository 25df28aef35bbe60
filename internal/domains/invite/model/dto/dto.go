package dto

import (
	"time"

	"folio/internal/domains/invite/model"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"

	"github.com/google/uuid"
)

const (
	StatusValid   = "valid"
	StatusUsed    = "used"
	StatusExpired = "expired"
)

type CreateInviteRequest struct {
	Email    string `json:"email"     validate:"omitempty,email"`
	Role     string `json:"role"      validate:"omitempty,oneof=admin superadmin"`
	TTLHours int    `json:"ttl_hours" validate:"omitempty,min=1,max=8760"`
}

func (c *CreateInviteRequest) ToModel(token string, ttl time.Duration, createdBy string) model.InviteToken {
	now := timezone.Now()

	role := c.Role
	if role == "" {
		role = constant.RoleAdmin
	}

	return model.InviteToken{
		ID:        uuid.NewString(),
		Token:     token,
		Email:     c.Email,
		Role:      role,
		ExpiresAt: now.Add(ttl),
		CreatedBy: createdBy,
		Metadata:  gModel.NewMetadata(now),
	}
}

type InviteResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at"`
	UsedBy    string `json:"used_by,omitempty"`
	CreatedBy string `json:"created_by"`
	gDto.Metadata
}

func (r *InviteResponse) FromModel(model model.InviteToken, now time.Time) {
	r.ID = model.ID
	r.Token = model.Token
	r.Email = model.Email
	r.Role = model.Role
	r.ExpiresAt = timezone.Format(model.ExpiresAt, constant.DateFormat)
	r.UsedBy = model.UsedBy
	r.CreatedBy = model.CreatedBy
	r.Metadata.FromModel(model.Metadata)

	switch {
	case model.Used:
		r.Status = StatusUsed
	case model.Expired(now):
		r.Status = StatusExpired
	default:
		r.Status = StatusValid
	}
}

func FromModels(models []model.InviteToken, now time.Time) []InviteResponse {
	res := make([]InviteResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m, now)
	}

	return res
}

// ValidInviteResponse is what an unauthenticated visitor learns about a valid invite.
type ValidInviteResponse struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expires_at"`
}

func (r *ValidInviteResponse) FromModel(model model.InviteToken) {
	r.Email = model.Email
	r.Role = model.Role
	r.ExpiresAt = timezone.Format(model.ExpiresAt, constant.DateFormat)
}

type PruneResponse struct {
	Deleted int `json:"deleted"`
}
