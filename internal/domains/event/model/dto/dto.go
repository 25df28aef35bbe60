package dto

import (
	"time"

	"folio/internal/domains/event/model"
	"folio/shared"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title       string            `json:"title"       validate:"required,min=1,max=200"`
	Description string            `json:"description" validate:"omitempty,max=5000"`
	Date        time.Time         `json:"date"        validate:"required"`
	CoverImage  string            `json:"cover_image" validate:"omitempty,url"`
	ImageURLs   []string          `json:"image_urls"  validate:"omitempty,max=100,dive,url"`
	Cover       *gDto.FileUpload  `json:"-"           swaggerignore:"true"                    validate:"omitempty,mimetypes=image/jpeg image/jpg image/png image/webp image/gif,maxfilesize=10"`
	Images      []gDto.FileUpload `json:"-"           swaggerignore:"true"                    validate:"omitempty,max=100,dive,mimetypes=image/jpeg image/jpg image/png image/webp image/gif,maxfilesize=10"`
}

func (c *CreateEventRequest) ToModel(coverImage string) model.Event {
	now := timezone.Now()

	return model.Event{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Description: c.Description,
		Date:        c.Date,
		CoverImage:  coverImage,
		Metadata:    gModel.NewMetadata(now),
	}
}

type UpdateEventRequest struct {
	Title       *string          `db:"title"       json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string          `db:"description" json:"description" validate:"omitempty,max=5000"`
	Date        *time.Time       `db:"date"        json:"date"`
	CoverImage  *string          `db:"cover_image" json:"cover_image" validate:"omitempty,url"`
	Cover       *gDto.FileUpload `json:"-"         swaggerignore:"true" validate:"omitempty,mimetypes=image/jpeg image/jpg image/png image/webp image/gif,maxfilesize=10"`
}

type AddEventImagesRequest struct {
	Title  string            `json:"title"  validate:"omitempty,max=200"`
	URLs   []string          `json:"urls"   validate:"omitempty,max=100,dive,url"`
	Images []gDto.FileUpload `json:"-"      swaggerignore:"true"                 validate:"omitempty,max=100,dive,mimetypes=image/jpeg image/jpg image/png image/webp image/gif,maxfilesize=10"`
}

// ToModels builds one row per url. Creation times are spaced a microsecond apart so that
// sorting by created_at keeps the upload order on every backend.
func (a *AddEventImagesRequest) ToModels(eventID string, urls []string) []model.EventImage {
	now := timezone.Now()
	images := make([]model.EventImage, len(urls))

	for i, url := range urls {
		createdAt := now.Add(time.Duration(i) * time.Microsecond)

		images[i] = model.EventImage{
			ID:       uuid.NewString(),
			EventID:  eventID,
			Title:    a.Title,
			URL:      url,
			Metadata: gModel.NewMetadata(createdAt),
		}
	}

	return images
}

type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	CoverImage  string `json:"cover_image"`
	ImageCount  int    `json:"image_count"`
	gDto.Metadata
}

func (r *EventResponse) FromModel(model model.Event) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Date = timezone.Format(model.Date, constant.DateFormat)
	r.CoverImage = model.CoverImage
	r.ImageCount = model.ImageCount
	r.Metadata.FromModel(model.Metadata)
}

type GetEventsResponse struct {
	Events    []EventResponse `json:"events"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEventsResponse) FromModels(models []model.Event, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Events = make([]EventResponse, len(models))
	for i, m := range models {
		r.Events[i].FromModel(m)
	}
}

type EventImageResponse struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	gDto.Metadata
}

func (r *EventImageResponse) FromModel(model model.EventImage) {
	r.ID = model.ID
	r.EventID = model.EventID
	r.Title = model.Title
	r.URL = model.URL
	r.Metadata.FromModel(model.Metadata)
}

func EventImagesFromModels(models []model.EventImage) []EventImageResponse {
	res := make([]EventImageResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
