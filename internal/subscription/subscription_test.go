package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/epquotient/epq/pkg/models"
)

func TestWhitelisted(t *testing.T) {
	s := &Service{whitelist: []string{"founder@example.com", "Coach@example.com"}}

	assert.True(t, s.Whitelisted("founder@example.com"))
	assert.True(t, s.Whitelisted("FOUNDER@EXAMPLE.COM"))
	assert.True(t, s.Whitelisted("coach@example.com"))
	assert.False(t, s.Whitelisted("someone@example.com"))
	assert.False(t, s.Whitelisted(""))
}

func TestTierTable(t *testing.T) {
	free := models.Tiers[models.TierFree]
	assert.Equal(t, 1, free.VideoLimit)
	assert.Equal(t, 2, free.TrialDays)
	assert.False(t, free.CanDownload)

	basic := models.Tiers[models.TierBasic]
	assert.Equal(t, 7, basic.VideoLimit)
	assert.True(t, basic.CanDownload)

	pro := models.Tiers[models.TierPro]
	assert.Equal(t, -1, pro.VideoLimit)
	assert.Contains(t, pro.Features, "report_sharing")

	enterprise := models.Tiers[models.TierEnterprise]
	assert.Equal(t, -1, enterprise.VideoLimit)
}
