package party

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	t.Run("creates profile with normalized email", func(t *testing.T) {
		profile, err := NewProfile("  Parent@Example.COM ", "Alex", "Rivera")

		require.NoError(t, err)
		assert.Equal(t, "parent@example.com", profile.Email)
		assert.Equal(t, "Alex Rivera", profile.FullName())
		assert.NotEqual(t, uuid.Nil, profile.ID)
		assert.Len(t, profile.GetDomainEvents(), 1)
	})

	t.Run("fails with empty email", func(t *testing.T) {
		_, err := NewProfile("", "Alex", "Rivera")
		assert.Error(t, err)
	})

	t.Run("fails with malformed email", func(t *testing.T) {
		_, err := NewProfile("not-an-email", "Alex", "Rivera")
		assert.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProfile("parent@example.com", "", "Rivera")
		assert.Error(t, err)
	})
}

func TestNewProfileWithAuthUser(t *testing.T) {
	t.Run("uses auth account id as profile id", func(t *testing.T) {
		authID := uuid.New()
		profile, err := NewProfileWithAuthUser(authID, "parent@example.com", "Alex", "Rivera")

		require.NoError(t, err)
		assert.Equal(t, authID, profile.ID)
	})

	t.Run("rejects nil auth id", func(t *testing.T) {
		_, err := NewProfileWithAuthUser(uuid.Nil, "parent@example.com", "Alex", "Rivera")
		assert.Error(t, err)
	})
}

func TestProfileApply(t *testing.T) {
	newProfile := func(t *testing.T) *Profile {
		profile, err := NewProfile("parent@example.com", "Alex", "Rivera")
		require.NoError(t, err)
		return profile
	}

	t.Run("nil pointers leave fields untouched", func(t *testing.T) {
		profile := newProfile(t)
		version := profile.GetVersion()

		profile.Apply(ProfileUpdate{})

		assert.Equal(t, "Alex", profile.FirstName)
		assert.Equal(t, version, profile.GetVersion())
	})

	t.Run("non-nil pointers are applied", func(t *testing.T) {
		profile := newProfile(t)
		phone := "555-0142"
		city := "Austin"

		profile.Apply(ProfileUpdate{Phone: &phone, City: &city})

		assert.Equal(t, "555-0142", profile.Phone)
		assert.Equal(t, "Austin", profile.City)
		assert.Equal(t, 2, profile.GetVersion())
	})

	t.Run("non-nil empty string clears the field", func(t *testing.T) {
		profile := newProfile(t)
		phone := "555-0142"
		profile.Apply(ProfileUpdate{Phone: &phone})

		empty := ""
		profile.Apply(ProfileUpdate{Phone: &empty})

		assert.Equal(t, "", profile.Phone)
	})
}

func TestNormalizeEmail(t *testing.T) {
	email, err := NormalizeEmail("Mixed.Case+tag@Example.ORG")
	require.NoError(t, err)
	assert.Equal(t, "mixed.case+tag@example.org", email)

	_, err = NormalizeEmail("   ")
	assert.Error(t, err)
}
