package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emend/internal/review/models"
	dErrors "emend/pkg/domain-errors"
)

func TestPublisher(t *testing.T) {
	t.Run("stamps id and timestamp on emitted entries", func(t *testing.T) {
		store := NewMemoryStore()
		pub := NewPublisher(store)

		err := pub.RecordRegistrationChange(context.Background(), RegistrationChange{
			UniqueID: "u-1",
			ModifiedFields: []models.FieldChange{
				{Section: "personal", Field: "email", Old: "a@x.com", New: "b@x.com"},
			},
		})
		require.NoError(t, err)

		entries := store.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, KindRegistrationChange, entries[0].Kind)
		assert.Equal(t, "u-1", entries[0].UniqueID)
		assert.NotEmpty(t, entries[0].ID)
		assert.False(t, entries[0].Timestamp.IsZero())
	})

	t.Run("append failure surfaces as a downstream error", func(t *testing.T) {
		store := NewMemoryStore()
		store.FailWith(errors.New("disk full"))
		pub := NewPublisher(store)

		err := pub.RecordRiskAssessment(context.Background(), RiskAssessment{UniqueID: "u-1"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeDownstream))
	})
}
