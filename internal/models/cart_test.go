package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartUpsert(t *testing.T) {
	cart := &Cart{}

	cart.Upsert(1, 2)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Adding to an existing line accumulates.
	cart.Upsert(1, 3)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	cart.Upsert(2, 1)
	require.Len(t, cart.Items, 2)

	// Negative delta below zero removes the line.
	cart.Upsert(1, -10)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].ProductID)
}

func TestCartUpsertIgnoresNonPositiveNewLine(t *testing.T) {
	cart := &Cart{}
	cart.Upsert(1, 0)
	cart.Upsert(2, -1)
	assert.Empty(t, cart.Items)
}

func TestCartSetQuantity(t *testing.T) {
	cart := &Cart{Items: []CartItem{{ProductID: 1, Quantity: 2}}}

	cart.SetQuantity(1, 7)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	// Setting an unknown product appends it.
	cart.SetQuantity(3, 1)
	require.Len(t, cart.Items, 2)

	// Zero removes.
	cart.SetQuantity(1, 0)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].ProductID)
}
