package models_test

import (
	"testing"

	"skytrip/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(flags ...bool) []models.SavedCreditCard {
	out := make([]models.SavedCreditCard, len(flags))
	for i, d := range flags {
		out[i] = models.SavedCreditCard{ID: string(rune('a' + i)), IsDefault: d}
	}
	return out
}

func defaults(cards []models.SavedCreditCard) []string {
	var ids []string
	for _, c := range cards {
		if c.IsDefault {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func TestReconcileDefaultCards(t *testing.T) {
	t.Run("empty slice unchanged", func(t *testing.T) {
		assert.Empty(t, models.ReconcileDefaultCards(nil, ""))
	})

	t.Run("preferred id wins over existing default", func(t *testing.T) {
		got := models.ReconcileDefaultCards(cards(true, false, false), "c")
		assert.Equal(t, []string{"c"}, defaults(got))
	})

	t.Run("existing default kept without preference", func(t *testing.T) {
		got := models.ReconcileDefaultCards(cards(false, true, false), "")
		assert.Equal(t, []string{"b"}, defaults(got))
	})

	t.Run("first card promoted when nothing is default", func(t *testing.T) {
		got := models.ReconcileDefaultCards(cards(false, false, false), "")
		assert.Equal(t, []string{"a"}, defaults(got))
	})

	t.Run("multiple defaults collapse to one", func(t *testing.T) {
		got := models.ReconcileDefaultCards(cards(true, true, true), "")
		require.Len(t, defaults(got), 1)
		assert.Equal(t, []string{"a"}, defaults(got))
	})

	t.Run("unknown preferred id falls back to existing default", func(t *testing.T) {
		got := models.ReconcileDefaultCards(cards(false, true), "zz")
		assert.Equal(t, []string{"b"}, defaults(got))
	})
}
