package camp

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCamp(t *testing.T) *Camp {
	t.Helper()
	c, err := NewCamp(
		"summer-hoops-2026",
		"Summer Hoops",
		time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		40,
		decimal.NewFromInt(199),
	)
	require.NoError(t, err)
	return c
}

func TestNewCamp(t *testing.T) {
	t.Run("creates camp in draft", func(t *testing.T) {
		c := newTestCamp(t)

		assert.Equal(t, "summer-hoops-2026", c.Slug)
		assert.Equal(t, CampStatusDraft, c.Status)
		assert.False(t, c.HasTenant())
		assert.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("lowercases slug", func(t *testing.T) {
		c, err := NewCamp("Summer-Hoops", "Summer Hoops",
			time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
			40, decimal.NewFromInt(199))
		require.NoError(t, err)
		assert.Equal(t, "summer-hoops", c.Slug)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := NewCamp("x", "X",
			time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC),
			40, decimal.NewFromInt(199))
		assert.Error(t, err)
	})

	t.Run("rejects zero capacity", func(t *testing.T) {
		_, err := NewCamp("x", "X",
			time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
			0, decimal.NewFromInt(199))
		assert.Error(t, err)
	})

	t.Run("rejects invalid slug characters", func(t *testing.T) {
		_, err := NewCamp("bad slug!", "X",
			time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
			40, decimal.NewFromInt(199))
		assert.Error(t, err)
	})
}

func TestCampEffectivePriceAt(t *testing.T) {
	deadline := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("base price without early bird", func(t *testing.T) {
		c := newTestCamp(t)
		price := c.EffectivePriceAt(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
		assert.True(t, price.Equal(decimal.NewFromInt(199)))
	})

	t.Run("early bird before deadline", func(t *testing.T) {
		c := newTestCamp(t)
		require.NoError(t, c.SetEarlyBird(decimal.NewFromInt(149), deadline))

		price := c.EffectivePriceAt(deadline.Add(-time.Second))
		assert.True(t, price.Equal(decimal.NewFromInt(149)))
	})

	t.Run("base price exactly at deadline", func(t *testing.T) {
		c := newTestCamp(t)
		require.NoError(t, c.SetEarlyBird(decimal.NewFromInt(149), deadline))

		price := c.EffectivePriceAt(deadline)
		assert.True(t, price.Equal(decimal.NewFromInt(199)))
	})

	t.Run("base price after deadline", func(t *testing.T) {
		c := newTestCamp(t)
		require.NoError(t, c.SetEarlyBird(decimal.NewFromInt(149), deadline))

		price := c.EffectivePriceAt(deadline.Add(time.Hour))
		assert.True(t, price.Equal(decimal.NewFromInt(199)))
	})

	t.Run("early bird cannot exceed base price", func(t *testing.T) {
		c := newTestCamp(t)
		assert.Error(t, c.SetEarlyBird(decimal.NewFromInt(250), deadline))
	})
}

func TestCampAssignTenant(t *testing.T) {
	t.Run("assigns once", func(t *testing.T) {
		c := newTestCamp(t)
		tid := uuid.New()

		require.NoError(t, c.AssignTenant(tid))
		assert.True(t, c.HasTenant())
		assert.Equal(t, tid, c.TenantID)

		// Re-assigning the same tenant is a no-op
		version := c.GetVersion()
		require.NoError(t, c.AssignTenant(tid))
		assert.Equal(t, version, c.GetVersion())
	})

	t.Run("rejects switching tenants", func(t *testing.T) {
		c := newTestCamp(t)
		require.NoError(t, c.AssignTenant(uuid.New()))
		assert.Error(t, c.AssignTenant(uuid.New()))
	})

	t.Run("rejects nil tenant", func(t *testing.T) {
		c := newTestCamp(t)
		assert.Error(t, c.AssignTenant(uuid.Nil))
	})
}

func TestCampPublish(t *testing.T) {
	c := newTestCamp(t)

	require.NoError(t, c.Publish())
	assert.True(t, c.IsPublished())
	assert.Error(t, c.Publish())

	require.NoError(t, c.Archive())
	assert.Error(t, c.Publish())
}
