package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []CartItem
		want  float64
	}{
		{
			name:  "empty cart",
			items: nil,
			want:  0,
		},
		{
			name: "single item",
			items: []CartItem{
				{ProductID: "p1", Quantity: 3, UnitPrice: 10},
			},
			want: 30,
		},
		{
			name: "multiple items",
			items: []CartItem{
				{ProductID: "p1", Quantity: 2, UnitPrice: 10.50},
				{ProductID: "p2", Quantity: 1, UnitPrice: 99.90},
			},
			want: 120.90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := &Cart{Items: tt.items}
			assert.InDelta(t, tt.want, cart.ComputeTotal(), 0.0001)
		})
	}
}

func TestFindItemIndex(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{ProductID: "aaa"},
			{ProductID: "bbb"},
		},
	}

	assert.Equal(t, 0, cart.FindItemIndex("aaa"))
	assert.Equal(t, 1, cart.FindItemIndex("bbb"))
	assert.Equal(t, -1, cart.FindItemIndex("ccc"))
}
