package dto

import (
	"folio/shared/constant"
	"folio/shared/model"
	"folio/shared/timezone"
)

// Metadata is the wire form of model.Metadata, rendered in the application timezone.
type Metadata struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (m *Metadata) FromModel(meta model.Metadata) {
	*m = MetadataFromModel(meta)
}

func MetadataFromModel(meta model.Metadata) Metadata {
	return Metadata{
		CreatedAt: timezone.Format(meta.CreatedAt, constant.DateFormat),
		UpdatedAt: timezone.Format(meta.UpdatedAt, constant.DateFormat),
	}
}
