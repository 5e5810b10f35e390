package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emend/internal/review/models"
)

func sourced[T any](v T) *models.Sourced[T] {
	return &models.Sourced[T]{Value: v, Source: "app"}
}

func storedRecord() *models.Record {
	return &models.Record{
		ID:       "65a0c1",
		UniqueID: "u-1",
		Personal: models.PersonalData{
			Name:      "João Silva",
			Email:     "old@example.com",
			Patrimony: 100_000,
		},
		Marital: models.MaritalData{StatusCode: 1},
		Address: models.AddressData{Country: "BRA", State: "SP", City: 3550308},
		Risk:    &models.RiskBlock{Rating: models.RiskRatingLow, Score: 0.1},
	}
}

func TestBuild(t *testing.T) {
	t.Run("present fields overwrite, absent fields stay untouched", func(t *testing.T) {
		stored := storedRecord()
		merged, changes := Build(stored, &models.UpdateRequest{
			Personal: &models.PersonalUpdate{Email: sourced("new@example.com")},
		})

		assert.Equal(t, "new@example.com", merged.Personal.Email)
		assert.Equal(t, "João Silva", merged.Personal.Name)
		assert.Equal(t, float64(100_000), merged.Personal.Patrimony)
		assert.Equal(t, "BRA", merged.Address.Country)

		require.Len(t, changes, 1)
		assert.Equal(t, "personal", changes[0].Section)
		assert.Equal(t, "email", changes[0].Field)
		assert.Equal(t, "old@example.com", changes[0].Old)
		assert.Equal(t, "new@example.com", changes[0].New)
	})

	t.Run("identical submitted value produces no change", func(t *testing.T) {
		stored := storedRecord()
		merged, changes := Build(stored, &models.UpdateRequest{
			Personal: &models.PersonalUpdate{Email: sourced("old@example.com")},
		})

		assert.Empty(t, changes)
		assert.Equal(t, "old@example.com", merged.Personal.Email)
	})

	t.Run("stored record is never mutated", func(t *testing.T) {
		stored := storedRecord()
		_, _ = Build(stored, &models.UpdateRequest{
			Personal: &models.PersonalUpdate{Email: sourced("new@example.com")},
		})
		assert.Equal(t, "old@example.com", stored.Personal.Email)
	})

	t.Run("storage id is stripped from the merge output", func(t *testing.T) {
		merged, _ := Build(storedRecord(), &models.UpdateRequest{
			Personal: &models.PersonalUpdate{Email: sourced("new@example.com")},
		})
		assert.Empty(t, merged.ID)
	})

	t.Run("submitted spouse replaces the stored block", func(t *testing.T) {
		stored := storedRecord()
		merged, changes := Build(stored, &models.UpdateRequest{
			Marital: &models.MaritalUpdate{
				Status: sourced(int64(2)),
				Spouse: &models.SpouseUpdate{
					Name:        models.Sourced[string]{Value: "Maria Silva", Source: "app"},
					CPF:         models.Sourced[string]{Value: "52998224725", Source: "app"},
					Nationality: models.Sourced[int64]{Value: 1, Source: "app"},
				},
			},
		})

		require.NotNil(t, merged.Marital.Spouse)
		assert.Equal(t, "Maria Silva", merged.Marital.Spouse.Name)
		assert.Equal(t, int64(2), merged.Marital.StatusCode)
		assert.Len(t, changes, 2)
	})

	t.Run("marital section without spouse clears the stored block", func(t *testing.T) {
		stored := storedRecord()
		stored.Marital.Spouse = &models.SpouseData{Name: "Maria Silva"}

		merged, changes := Build(stored, &models.UpdateRequest{
			Marital: &models.MaritalUpdate{Status: sourced(int64(1))},
		})

		assert.Nil(t, merged.Marital.Spouse)
		require.Len(t, changes, 1)
		assert.Equal(t, "spouse", changes[0].Field)
	})

	t.Run("tax residences compare as a whole slice", func(t *testing.T) {
		stored := storedRecord()
		stored.Personal.TaxResidences = []models.TaxResidence{{Country: "USA", TaxNumber: "1"}}

		_, changes := Build(stored, &models.UpdateRequest{
			Personal: &models.PersonalUpdate{
				TaxResidences: sourced([]models.TaxResidence{{Country: "USA", TaxNumber: "1"}}),
			},
		})
		assert.Empty(t, changes)

		_, changes = Build(stored, &models.UpdateRequest{
			Personal: &models.PersonalUpdate{
				TaxResidences: sourced([]models.TaxResidence{{Country: "GBR", TaxNumber: "2"}}),
			},
		})
		require.Len(t, changes, 1)
		assert.Equal(t, "foreign_tax_residences", changes[0].Field)
	})

	t.Run("changes across sections keep section order", func(t *testing.T) {
		stored := storedRecord()
		_, changes := Build(stored, &models.UpdateRequest{
			Personal: &models.PersonalUpdate{Email: sourced("new@example.com")},
			Address:  &models.AddressUpdate{ZipCode: sourced("04538-132")},
		})

		require.Len(t, changes, 2)
		assert.Equal(t, "personal", changes[0].Section)
		assert.Equal(t, "address", changes[1].Section)
	})
}
