package registration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfirmationNumber(t *testing.T) {
	t.Run("has the expected shape", func(t *testing.T) {
		number, err := GenerateConfirmationNumber()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(number, "EA-"))
		assert.Len(t, number, len("EA-")+6)
		assert.True(t, IsValidConfirmationNumber(number))
	})

	t.Run("only uses unambiguous symbols", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			number, err := GenerateConfirmationNumber()
			require.NoError(t, err)
			body := strings.TrimPrefix(number, "EA-")
			assert.NotContains(t, body, "O")
			assert.NotContains(t, body, "I")
			assert.NotContains(t, body, "0")
		}
	})

	t.Run("generates distinct numbers", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			number, err := GenerateConfirmationNumber()
			require.NoError(t, err)
			assert.False(t, seen[number], "duplicate confirmation number %s", number)
			seen[number] = true
		}
	})
}

func TestIsValidConfirmationNumber(t *testing.T) {
	assert.True(t, IsValidConfirmationNumber("EA-ABC123"))
	assert.False(t, IsValidConfirmationNumber("ABC123"))
	assert.False(t, IsValidConfirmationNumber("EA-ABC12"))
	assert.False(t, IsValidConfirmationNumber("EA-ABC1234"))
	assert.False(t, IsValidConfirmationNumber("EA-ABC12O"))
	assert.False(t, IsValidConfirmationNumber("EA-abc123"))
}
