package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "emend/pkg/domain-errors"
)

func TestExtractUniqueID(t *testing.T) {
	svc := NewJWTService("test-signing-key", "emend", "emend-api")

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateToken("40db7fee-6d60-4d73-824f-1bf87edc4491", time.Minute)
		require.NoError(t, err)

		uniqueID, err := svc.ExtractUniqueID(token)
		require.NoError(t, err)
		assert.Equal(t, "40db7fee-6d60-4d73-824f-1bf87edc4491", uniqueID)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		_, err := svc.ExtractUniqueID("not-a-token")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects expired token", func(t *testing.T) {
		token, err := svc.GenerateToken("abc", -time.Minute)
		require.NoError(t, err)

		_, err = svc.ExtractUniqueID(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects token signed with another key", func(t *testing.T) {
		other := NewJWTService("different-key", "emend", "emend-api")
		token, err := other.GenerateToken("abc", time.Minute)
		require.NoError(t, err)

		_, err = svc.ExtractUniqueID(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects token without unique id", func(t *testing.T) {
		token, err := svc.GenerateToken("", time.Minute)
		require.NoError(t, err)

		_, err = svc.ExtractUniqueID(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
