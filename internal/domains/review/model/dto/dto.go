package dto

import (
	"math"

	"folio/internal/domains/review/model"
	"folio/shared"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"

	"github.com/google/uuid"
)

type SubmitReviewRequest struct {
	Name   string `json:"name"   validate:"required,min=1,max=100"`
	Email  string `json:"email"  validate:"required,email,max=200"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text"   validate:"required,min=1,max=2000"`
}

func (r *SubmitReviewRequest) ToModel(published bool) model.Review {
	now := timezone.Now()

	return model.Review{
		ID:        uuid.NewString(),
		Name:      r.Name,
		Email:     r.Email,
		Rating:    r.Rating,
		Text:      r.Text,
		Published: published,
		Metadata:  gModel.NewMetadata(now),
	}
}

type SetPublishedRequest struct {
	Published *bool `db:"published" json:"published" validate:"required"`
}

// PublicReviewResponse leaves out the reviewer's email.
type PublicReviewResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type ReviewResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	Published bool   `json:"published"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Rating = model.Rating
	r.Text = model.Text
	r.Published = model.Published
	r.Metadata.FromModel(model.Metadata)
}

func (r *PublicReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.Name = model.Name
	r.Rating = model.Rating
	r.Text = model.Text
	r.CreatedAt = gDto.MetadataFromModel(model.Metadata).CreatedAt
}

type RatingSummary struct {
	Average float64     `json:"average"`
	Count   int         `json:"count"`
	Stars   map[int]int `json:"stars"`
}

// SummaryFromModels averages ratings, rounded to one decimal.
func SummaryFromModels(models []model.Review) RatingSummary {
	summary := RatingSummary{Stars: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}

	total := 0
	for _, m := range models {
		total += m.Rating
		summary.Stars[m.Rating]++
	}

	summary.Count = len(models)
	if summary.Count > 0 {
		summary.Average = math.Round(float64(total)/float64(summary.Count)*10) / 10
	}

	return summary
}

type GetPublicReviewsResponse struct {
	Reviews   []PublicReviewResponse `json:"reviews"`
	Summary   RatingSummary          `json:"summary"`
	TotalPage int                    `json:"total_page"`
	TotalData int                    `json:"total_data"`
}

func (r *GetPublicReviewsResponse) FromModels(models []model.Review, summary RatingSummary, limit int) {
	r.Summary = summary
	r.TotalData = summary.Count
	r.TotalPage = shared.CalculateTotalPage(summary.Count, limit)

	r.Reviews = make([]PublicReviewResponse, len(models))
	for i, m := range models {
		r.Reviews[i].FromModel(m)
	}
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, m := range models {
		r.Reviews[i].FromModel(m)
	}
}

// SubmittedMessage is published on the reviews topic for every submission.
type SubmittedMessage struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Published bool   `json:"published"`
}
