// Package seed loads demo or initial site content from a YAML file through the domain services.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	contentDto "folio/internal/domains/content/model/dto"
	contentService "folio/internal/domains/content/service"
	counterDto "folio/internal/domains/counter/model/dto"
	counterService "folio/internal/domains/counter/service"
	galleryDto "folio/internal/domains/gallery/model/dto"
	galleryService "folio/internal/domains/gallery/service"
	pricingDto "folio/internal/domains/pricing/model/dto"
	pricingService "folio/internal/domains/pricing/service"
	"folio/shared/validator"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Counter struct {
	Label  string `yaml:"label"`
	Value  int    `yaml:"value"`
	Suffix string `yaml:"suffix"`
}

type PricingCard struct {
	Title       string   `yaml:"title"`
	Price       float64  `yaml:"price"`
	Currency    string   `yaml:"currency"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
	IsFeatured  bool     `yaml:"is_featured"`
}

type ContentSection struct {
	Title    string `yaml:"title"`
	Body     string `yaml:"body"`
	ImageURL string `yaml:"image_url"`
}

type GalleryImage struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// File is the seed document. Content sections are keyed by their unique name.
type File struct {
	Counters []Counter                 `yaml:"counters"`
	Pricing  []PricingCard             `yaml:"pricing"`
	Content  map[string]ContentSection `yaml:"content"`
	Gallery  []GalleryImage            `yaml:"gallery"`
}

type requests struct {
	counters []counterDto.CreateCounterRequest
	pricing  []pricingDto.CreatePricingCardRequest
	content  map[string]contentDto.UpsertContentRequest
	gallery  []galleryDto.CreateGalleryImageRequest
}

type Summary struct {
	Counters int `json:"counters"`
	Pricing  int `json:"pricing"`
	Content  int `json:"content"`
	Gallery  int `json:"gallery"`
}

type Seeder struct {
	counters counterService.Counter
	pricing  pricingService.Pricing
	content  contentService.Content
	gallery  galleryService.Gallery
}

func New(
	counters counterService.Counter,
	pricing pricingService.Pricing,
	content contentService.Content,
	gallery galleryService.Gallery,
) *Seeder {
	return &Seeder{
		counters: counters,
		pricing:  pricing,
		content:  content,
		gallery:  gallery,
	}
}

func Decode(r io.Reader) (File, error) {
	var file File

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return file, fmt.Errorf("decoding seed file: %w", err)
	}

	return file, nil
}

func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// requests converts and validates every entry before anything is written, so a bad file
// changes nothing.
func (file *File) requests() (reqs requests, err error) {
	for i, c := range file.Counters {
		req := counterDto.CreateCounterRequest{Label: c.Label, Value: c.Value, Suffix: c.Suffix}
		if err = validator.ValidateStruct(&req); err != nil {
			return reqs, fmt.Errorf("counters[%d]: %w", i, err)
		}

		reqs.counters = append(reqs.counters, req)
	}

	for i, p := range file.Pricing {
		req := pricingDto.CreatePricingCardRequest{
			Title:       p.Title,
			Price:       p.Price,
			Currency:    p.Currency,
			Description: p.Description,
			Features:    p.Features,
			IsFeatured:  p.IsFeatured,
		}
		if err = validator.ValidateStruct(&req); err != nil {
			return reqs, fmt.Errorf("pricing[%d]: %w", i, err)
		}

		reqs.pricing = append(reqs.pricing, req)
	}

	reqs.content = make(map[string]contentDto.UpsertContentRequest, len(file.Content))

	for name, c := range file.Content {
		if err = validator.ValidateVar(name, "required,max=64,slug"); err != nil {
			return reqs, fmt.Errorf("content name %q: %w", name, err)
		}

		req := contentDto.UpsertContentRequest{Title: c.Title, Body: c.Body, ImageURL: c.ImageURL}
		if err = validator.ValidateStruct(&req); err != nil {
			return reqs, fmt.Errorf("content[%s]: %w", name, err)
		}

		reqs.content[name] = req
	}

	for i, g := range file.Gallery {
		if g.URL == "" {
			return reqs, fmt.Errorf("gallery[%d]: url is required", i)
		}

		req := galleryDto.CreateGalleryImageRequest{Title: g.Title, URL: g.URL}
		if err = validator.ValidateStruct(&req); err != nil {
			return reqs, fmt.Errorf("gallery[%d]: %w", i, err)
		}

		reqs.gallery = append(reqs.gallery, req)
	}

	return reqs, nil
}

// Apply writes the file through the services in document order. Content sections are upserted,
// everything else is appended.
func (s *Seeder) Apply(ctx context.Context, file File) (Summary, error) {
	var summary Summary

	reqs, err := file.requests()
	if err != nil {
		return summary, err
	}

	for _, req := range reqs.counters {
		if _, err := s.counters.Create(ctx, req); err != nil {
			return summary, fmt.Errorf("seeding counter %q: %w", req.Label, err)
		}

		summary.Counters++
	}

	for _, req := range reqs.pricing {
		if _, err := s.pricing.Create(ctx, req); err != nil {
			return summary, fmt.Errorf("seeding pricing card %q: %w", req.Title, err)
		}

		summary.Pricing++
	}

	names := make([]string, 0, len(reqs.content))
	for name := range reqs.content {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if _, _, err := s.content.Upsert(ctx, name, reqs.content[name]); err != nil {
			return summary, fmt.Errorf("seeding content %q: %w", name, err)
		}

		summary.Content++
	}

	for _, req := range reqs.gallery {
		if _, err := s.gallery.Create(ctx, req); err != nil {
			return summary, fmt.Errorf("seeding gallery image %q: %w", req.Title, err)
		}

		summary.Gallery++
	}

	log.Info().
		Int("counters", summary.Counters).
		Int("pricing", summary.Pricing).
		Int("content", summary.Content).
		Int("gallery", summary.Gallery).
		Msg("seed applied")

	return summary, nil
}
