package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentPending.CanTransition(PaymentCompleted))
	assert.True(t, PaymentPending.CanTransition(PaymentFailed))

	// Terminal states accept only themselves, so a repeated
	// confirmation is legal but a reversal is not.
	assert.True(t, PaymentCompleted.CanTransition(PaymentCompleted))
	assert.False(t, PaymentCompleted.CanTransition(PaymentPending))
	assert.False(t, PaymentCompleted.CanTransition(PaymentFailed))
	assert.False(t, PaymentFailed.CanTransition(PaymentCompleted))
	assert.False(t, PaymentFailed.CanTransition(PaymentPending))
}

func TestPaymentStatusTerminal(t *testing.T) {
	assert.False(t, PaymentPending.Terminal())
	assert.True(t, PaymentCompleted.Terminal())
	assert.True(t, PaymentFailed.Terminal())
}
