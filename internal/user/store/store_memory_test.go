package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emend/internal/review/models"
	dErrors "emend/pkg/domain-errors"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get returns not found for unknown unique id", func(t *testing.T) {
		s := NewMemory()
		_, err := s.Get(ctx, "missing")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("get returns a copy, not the stored record", func(t *testing.T) {
		s := NewMemory()
		s.Seed(&models.Record{UniqueID: "u-1", Personal: models.PersonalData{Email: "a@x.com"}})

		got, err := s.Get(ctx, "u-1")
		require.NoError(t, err)
		got.Personal.Email = "mutated@x.com"

		again, err := s.Get(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", again.Personal.Email)
	})

	t.Run("update reports matched count", func(t *testing.T) {
		s := NewMemory()
		s.Seed(&models.Record{UniqueID: "u-1"})

		matched, err := s.Update(ctx, "u-1", &models.Record{UniqueID: "u-1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), matched)

		matched, err = s.Update(ctx, "gone", &models.Record{UniqueID: "gone"})
		require.NoError(t, err)
		assert.Zero(t, matched)
	})
}
