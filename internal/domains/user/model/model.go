package model

import (
	"time"

	"folio/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldRole      = "role"
	FieldLastLogin = "last_login"
)

// User is an admin account created through an invite. The bootstrap admin from configuration
// never has a row.
type User struct {
	ID        string     `db:"id"         json:"id"`
	Email     string     `db:"email"      json:"email"`
	Password  string     `db:"password"   json:"password"`
	FullName  string     `db:"full_name"  json:"full_name"`
	Role      string     `db:"role"       json:"role"`
	LastLogin *time.Time `db:"last_login" json:"last_login"`
	model.Metadata
}
