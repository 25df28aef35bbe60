package dto

import (
	aboutDto "folio/internal/domains/about/model/dto"
	contentDto "folio/internal/domains/content/model/dto"
	counterDto "folio/internal/domains/counter/model/dto"
	projectDto "folio/internal/domains/project/model/dto"
	reviewDto "folio/internal/domains/review/model/dto"
)

// HomeResponse is everything the landing page renders in one payload.
type HomeResponse struct {
	Counters    []counterDto.CounterResponse          `json:"counters"`
	Projects    []projectDto.ProjectResponse          `json:"projects"`
	Reviews     reviewDto.GetPublicReviewsResponse    `json:"reviews"`
	AboutImages []aboutDto.AboutImageResponse         `json:"about_images"`
	Content     map[string]contentDto.ContentResponse `json:"content"`
}

func (r *HomeResponse) SetContent(sections []contentDto.ContentResponse) {
	r.Content = make(map[string]contentDto.ContentResponse, len(sections))
	for _, section := range sections {
		r.Content[section.Name] = section
	}
}
