package retention

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epquotient/epq/pkg/models"
)

func TestScheduledDeletion(t *testing.T) {
	from := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		policy string
		want   *time.Time
	}{
		{models.Retention7Days, timePtr(from.AddDate(0, 0, 7))},
		{models.Retention30Days, timePtr(from.AddDate(0, 0, 30))},
		{models.Retention90Days, timePtr(from.AddDate(0, 0, 90))},
		{models.Retention1Year, timePtr(from.AddDate(0, 0, 365))},
		{models.RetentionPermanent, nil},
	}

	for _, tc := range cases {
		got := ScheduledDeletion(tc.policy, from)
		if tc.want == nil {
			assert.Nil(t, got, tc.policy)
			continue
		}
		require.NotNil(t, got, tc.policy)
		assert.Equal(t, *tc.want, *got, tc.policy)
	}
}

func TestValidRetentionPolicy(t *testing.T) {
	for _, policy := range models.RetentionPolicies {
		assert.True(t, models.ValidRetentionPolicy(policy), policy)
	}
	assert.False(t, models.ValidRetentionPolicy("14_days"))
	assert.False(t, models.ValidRetentionPolicy(""))
}

func timePtr(t time.Time) *time.Time { return &t }
