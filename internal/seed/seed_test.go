package seed_test

import (
	"context"
	"strings"
	"testing"

	contentRepo "folio/internal/domains/content/repository"
	contentService "folio/internal/domains/content/service"
	counterRepo "folio/internal/domains/counter/repository"
	counterService "folio/internal/domains/counter/service"
	galleryRepo "folio/internal/domains/gallery/repository"
	galleryService "folio/internal/domains/gallery/service"
	pricingRepo "folio/internal/domains/pricing/repository"
	pricingService "folio/internal/domains/pricing/service"
	"folio/internal/seed"
	"folio/internal/testsupport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
counters:
  - label: Weddings shot
    value: 120
    suffix: "+"
  - label: Years behind the lens
    value: 9
pricing:
  - title: Portrait
    price: 250
    currency: USD
    features: ["1 hour session", "20 edited photos"]
  - title: Wedding
    price: 2400
    is_featured: true
content:
  hero:
    title: Light, kept.
    body: Documentary wedding and portrait photography.
  about:
    title: About the studio
gallery:
  - title: Dunes at dusk
    url: https://cdn.example.com/gallery/dunes.jpg
`

type services struct {
	counters counterService.Counter
	pricing  pricingService.Pricing
	content  contentService.Content
	gallery  galleryService.Gallery
}

func newSeeder(t *testing.T) (*seed.Seeder, services) {
	t.Helper()

	stack := testsupport.NewStack(t)

	svc := services{
		counters: counterService.New(counterRepo.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel),
		pricing:  pricingService.New(pricingRepo.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel),
		content:  contentService.New(contentRepo.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel),
		gallery:  galleryService.New(galleryRepo.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel, stack.Storage),
	}

	return seed.New(svc.counters, svc.pricing, svc.content, svc.gallery), svc
}

func TestSeedApply(t *testing.T) {
	ctx := context.Background()
	seeder, svc := newSeeder(t)

	file, err := seed.Decode(strings.NewReader(seedYAML))
	require.NoError(t, err)

	summary, err := seeder.Apply(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, seed.Summary{Counters: 2, Pricing: 2, Content: 2, Gallery: 1}, summary)

	counters, err := svc.counters.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, counters, 2)
	assert.Equal(t, "Weddings shot", counters[0].Label)
	assert.Equal(t, "Years behind the lens", counters[1].Label)

	cards, err := svc.pricing.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, []string{"1 hour session", "20 edited photos"}, cards[0].Features)
	assert.True(t, cards[1].IsFeatured)

	hero, err := svc.content.GetByName(ctx, "hero")
	require.NoError(t, err)
	assert.Equal(t, "Light, kept.", hero.Title)

	// Content is upserted, so seeding twice keeps one row per name.
	_, err = seeder.Apply(ctx, seed.File{Content: file.Content})
	require.NoError(t, err)

	sections, err := svc.content.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, sections, 2)
}

func TestSeedRejectsInvalidFileBeforeWriting(t *testing.T) {
	ctx := context.Background()
	seeder, svc := newSeeder(t)

	file := seed.File{
		Counters: []seed.Counter{{Label: "ok", Value: 1}},
		Pricing:  []seed.PricingCard{{Title: "", Price: 10}},
	}

	_, err := seeder.Apply(ctx, file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pricing[0]")

	counters, err := svc.counters.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, counters)
}

func TestSeedDecodeRejectsUnknownFields(t *testing.T) {
	_, err := seed.Decode(strings.NewReader("counters:\n  - lable: typo\n"))
	assert.Error(t, err)
}
