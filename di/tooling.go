package di

import (
	"folio/config"
	"folio/internal/seed"

	contactService "folio/internal/domains/contact/service"
	inviteService "folio/internal/domains/invite/service"
	storageService "folio/internal/domains/storage/service"
)

// Tooling is the slice of the application the admin CLI drives.
type Tooling struct {
	Config  *config.Config
	Invites inviteService.Invite
	Storage storageService.Storage
	Contact contactService.Contact
	Seeder  *seed.Seeder
}
