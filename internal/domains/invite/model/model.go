package model

import (
	"time"

	"folio/shared/model"
)

const (
	TableName  = "invite_tokens"
	EntityName = "invite_token"

	FieldID        = "id"
	FieldToken     = "token"
	FieldExpiresAt = "expires_at"
	FieldUsed      = "used"
	FieldUsedBy    = "used_by"
	FieldUsedAt    = "used_at"
)

// InviteToken is a single-use credential that lets someone create an admin account.
type InviteToken struct {
	ID        string     `db:"id"         json:"id"`
	Token     string     `db:"token"      json:"token"`
	Email     string     `db:"email"      json:"email"`
	Role      string     `db:"role"       json:"role"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	Used      bool       `db:"used"       json:"used"`
	UsedBy    string     `db:"used_by"    json:"used_by"`
	UsedAt    *time.Time `db:"used_at"    json:"used_at"`
	CreatedBy string     `db:"created_by" json:"created_by"`
	model.Metadata
}

// Expired reports whether the invite can no longer be redeemed at now.
func (i InviteToken) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
