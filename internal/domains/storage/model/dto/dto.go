package dto

import (
	"folio/infras/storage"
	"folio/shared/constant"
	"folio/shared/timezone"
)

type ListObjectsRequest struct {
	Directory string `validate:"omitempty,oneof=gallery events projects about"`
}

type ObjectRef struct {
	Directory string `json:"directory" validate:"required,oneof=gallery events projects about"`
	Name      string `json:"name"      validate:"required,excludesall=/"`
}

type DeleteObjectsRequest struct {
	Objects []ObjectRef `json:"objects" validate:"required,min=1,max=100,dive"`
}

type ObjectResponse struct {
	Directory   string `json:"directory"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
	CreatedAt   string `json:"created_at"`
}

func (r *ObjectResponse) FromObject(obj storage.Object) {
	r.Directory = obj.Directory
	r.Name = obj.Name
	r.ContentType = obj.ContentType
	r.Size = obj.Size
	r.URL = obj.URL
	r.CreatedAt = timezone.Format(obj.CreatedAt, constant.DateFormat)
}

func FromObjects(objects []storage.Object) []ObjectResponse {
	res := make([]ObjectResponse, len(objects))
	for i, obj := range objects {
		res[i].FromObject(obj)
	}

	return res
}

type ListObjectsResponse struct {
	Objects []ObjectResponse `json:"objects"`
	Count   int              `json:"count"`
	Bytes   int64            `json:"bytes"`
}

func (r *ListObjectsResponse) FromObjects(objects []storage.Object) {
	r.Objects = FromObjects(objects)
	r.Count = len(objects)

	for _, obj := range objects {
		r.Bytes += obj.Size
	}
}

type DeleteObjectsResponse struct {
	Deleted int `json:"deleted"`
}

type OrphansResponse struct {
	ListObjectsResponse
	Deleted bool `json:"deleted"`
}
