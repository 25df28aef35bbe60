package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"folio/internal/domains/review/model"
	"folio/internal/domains/review/model/dto"
	"folio/shared/validator"
)

func TestSummaryFromModels(t *testing.T) {
	summary := dto.SummaryFromModels([]model.Review{{Rating: 5}, {Rating: 5}, {Rating: 4}})

	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 4.7, summary.Average, 0.001)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 1, 5: 2}, summary.Stars)

	empty := dto.SummaryFromModels(nil)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Average)
}

func TestSubmitReviewRequest_Validation(t *testing.T) {
	valid := dto.SubmitReviewRequest{Name: "Ana", Email: "ana@example.com", Rating: 5, Text: "great"}
	assert.NoError(t, validator.ValidateStruct(&valid))

	for name, mutate := range map[string]func(*dto.SubmitReviewRequest){
		"rating too high": func(r *dto.SubmitReviewRequest) { r.Rating = 6 },
		"rating missing":  func(r *dto.SubmitReviewRequest) { r.Rating = 0 },
		"bad email":       func(r *dto.SubmitReviewRequest) { r.Email = "nope" },
		"empty text":      func(r *dto.SubmitReviewRequest) { r.Text = "" },
	} {
		t.Run(name, func(t *testing.T) {
			req := valid
			mutate(&req)
			assert.Error(t, validator.ValidateStruct(&req))
		})
	}
}
