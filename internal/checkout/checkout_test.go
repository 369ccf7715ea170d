package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_LinearFlow(t *testing.T) {
	s := &Session{State: StateCartReview}

	require.NoError(t, s.Advance())
	assert.Equal(t, StateDeliveryAddress, s.State)
	require.NoError(t, s.Advance())
	assert.Equal(t, StatePayment, s.State)

	// Payment does not advance; only Place reaches the terminal state
	assert.ErrorIs(t, s.Advance(), ErrInvalidTransition)
}

func TestSession_BackwardNavigation(t *testing.T) {
	s := &Session{State: StatePayment}

	require.NoError(t, s.Back())
	assert.Equal(t, StateDeliveryAddress, s.State)
	require.NoError(t, s.Back())
	assert.Equal(t, StateCartReview, s.State)

	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)
}

func TestSession_PlacedIsTerminal(t *testing.T) {
	s := &Session{State: StatePlaced}

	assert.ErrorIs(t, s.Advance(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)
}
