package services_test

import (
	"errors"
	"testing"

	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentService_Pages(t *testing.T) {
	svc := services.NewContentService()
	assert.Equal(t, []string{"home", "logos", "purple-paper", "tiers", "tokenomics"}, svc.Slugs())

	for _, slug := range svc.Slugs() {
		page, err := svc.Page(slug)
		require.NoError(t, err, slug)
		assert.Equal(t, slug, page.Slug)
		assert.NotEmpty(t, page.Title)
		assert.NotEmpty(t, page.Sections)
	}
}

func TestContentService_TokenomicsSumsToWhole(t *testing.T) {
	page, err := services.NewContentService().Page(services.PageTokenomics)
	require.NoError(t, err)

	total := 0.0
	for _, item := range page.Sections[0].Items {
		total += item.Share
		assert.NotEmpty(t, item.Value)
	}
	assert.InDelta(t, 100, total, 1e-9)
}

func TestContentService_TiersAscend(t *testing.T) {
	for i := 1; i < len(services.StakingTiers); i++ {
		assert.Greater(t, services.StakingTiers[i].MinimumStake, services.StakingTiers[i-1].MinimumStake)
		assert.Greater(t, services.StakingTiers[i].LockDays, services.StakingTiers[i-1].LockDays)
	}
}

func TestContentService_PageIsCopy(t *testing.T) {
	svc := services.NewContentService()
	page, err := svc.Page(services.PageHome)
	require.NoError(t, err)
	page.Sections[0].Items[0].Label = "changed"

	again, err := svc.Page(services.PageHome)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.Sections[0].Items[0].Label)
}

func TestContentService_UnknownPage(t *testing.T) {
	_, err := services.NewContentService().Page("roadmap")
	assert.True(t, errors.Is(err, services.ErrPageNotFound))
}
