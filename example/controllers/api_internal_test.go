package controllers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplefw/example/models"
	"github.com/dmitrymomot/simplefw/pkg/entity"
)

func TestToDTO(t *testing.T) {
	t.Parallel()

	t.Run("copies fields and category name", func(t *testing.T) {
		t.Parallel()

		id := int64(4)
		dto, err := toDTO(&models.Contact{
			ContactID:    &id,
			ContactName:  "Jean",
			ContactEmail: "jean@example.com",
			CategoryID:   1,
			Category:     &models.Category{CategoryName: "Amis"},
		})
		require.NoError(t, err)
		require.Equal(t, &id, dto.ContactID)
		require.Equal(t, "Jean", dto.ContactName)
		require.Equal(t, "jean@example.com", dto.ContactEmail)
		require.EqualValues(t, 1, dto.CategoryID)
		require.Equal(t, "Amis", dto.CategoryName)
	})

	t.Run("mapping failure is returned", func(t *testing.T) {
		t.Parallel()

		_, err := toDTO(nil)
		require.ErrorIs(t, err, entity.ErrNotStruct)
	})
}
