package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should parse every defined status", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			parsed, err := order.ParseStatus(string(s))

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown tags", func(t *testing.T) {
		for _, s := range []string{"", "Shipped", "processinginmerchant", "Unknown"} {
			_, err := order.ParseStatus(s)
			require.Error(t, err, s)
		}
	})
}

func TestStatus_InTransit(t *testing.T) {
	inTransit := map[order.Status]bool{
		order.PickedUpByCourier:  true,
		order.SendBackToMerchant: true,
	}

	for _, s := range order.AllStatuses() {
		assert.Equal(t, inTransit[s], s.InTransit(), s)
	}
}

func TestStatusHistory(t *testing.T) {
	t.Run("new history starts with the initial entry", func(t *testing.T) {
		h, err := order.NewStatusHistory(order.ProcessingInMerchant)

		require.NoError(t, err)
		require.Len(t, h, 1)
		assert.Equal(t, order.ProcessingInMerchant, h.Current())
	})

	t.Run("new history rejects invalid status", func(t *testing.T) {
		_, err := order.NewStatusHistory(order.Status("bogus"))

		require.Error(t, err)
	})

	t.Run("restore rejects empty history", func(t *testing.T) {
		_, err := order.RestoreStatusHistory(nil)

		require.Error(t, err)
	})

	t.Run("Entries returns a copy", func(t *testing.T) {
		h, _ := order.NewStatusHistory(order.ProcessingInMerchant)

		entries := h.Entries()
		entries[0].Type = order.ArrivedInDestination

		assert.Equal(t, order.ProcessingInMerchant, h.Current())
	})
}
