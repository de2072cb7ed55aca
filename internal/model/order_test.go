package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	all := []OrderStatus{OrderStatusPending, OrderStatusApproved, OrderStatusRejected, OrderStatusShipped, OrderStatusDelivered}
	allowed := map[OrderStatus]map[OrderStatus]bool{
		OrderStatusPending:  {OrderStatusApproved: true, OrderStatusRejected: true},
		OrderStatusApproved: {OrderStatusShipped: true},
		OrderStatusShipped:  {OrderStatusDelivered: true},
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				assert.Equal(t, allowed[from][to], from.CanTransitionTo(to))
			})
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderStatusRejected.IsTerminal())
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatus("cancelled").IsValid())
	assert.True(t, OrderStatusShipped.IsValid())
}
