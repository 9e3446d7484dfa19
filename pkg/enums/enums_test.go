package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPending, status)

	_, err = ParseOrderStatus("shipped")
	assert.Error(t, err)
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.True(t, OrderStatusFinalized.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

func TestParsePaymentStatus(t *testing.T) {
	status, err := ParsePaymentStatus("refunded")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusRefunded, status)

	_, err = ParsePaymentStatus("chargeback")
	assert.Error(t, err)
}

func TestEveryOrderStatusHasABadge(t *testing.T) {
	for _, status := range validOrderStatuses {
		assert.NotEqual(t, BadgeTone(""), status.Badge(), "status %s", status)
	}
}

func TestEveryPaymentStatusHasABadge(t *testing.T) {
	for _, status := range validPaymentStatuses {
		assert.NotEqual(t, BadgeTone(""), status.Badge(), "status %s", status)
	}
}

func TestPaymentMethodValidity(t *testing.T) {
	assert.True(t, PaymentMethodPix.IsValid())
	assert.False(t, PaymentMethod("check").IsValid())
}
