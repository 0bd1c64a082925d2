package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotals(t *testing.T) {
	price, err := ParseMoney("19.90")
	require.NoError(t, err)

	cases := []struct {
		name      string
		cart      Cart
		wantTotal string
		wantCount int
		wantEmpty bool
	}{
		{name: "empty", cart: nil, wantTotal: "0", wantCount: 0, wantEmpty: true},
		{
			name:      "single line",
			cart:      Cart{{ProductID: 1, Price: NewMoney(100), Quantity: 2}},
			wantTotal: "200",
			wantCount: 2,
		},
		{
			name: "mixed lines",
			cart: Cart{
				{ProductID: 1, Price: NewMoney(100), Quantity: 1},
				{ProductID: 2, Price: price, Quantity: 3},
			},
			wantTotal: "159.7",
			wantCount: 4,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := tc.cart.Totals()
			assert.Equal(t, tc.wantTotal, totals.Total.String())
			assert.Equal(t, tc.wantCount, totals.ItemsCount)
			assert.Equal(t, tc.wantEmpty, totals.Empty)
		})
	}
}

func TestCartIndexOfMatchesProduct(t *testing.T) {
	c := Cart{
		{ID: 10, ProductID: 1},
		{ID: 11, ProductID: 2},
	}
	assert.Equal(t, 1, c.IndexOf(2))
	assert.Equal(t, -1, c.IndexOf(10))
}

func TestCartCloneIsIndependent(t *testing.T) {
	c := Cart{{ProductID: 1, Quantity: 1}}
	cp := c.Clone()
	cp[0].Quantity = 5
	assert.Equal(t, 1, c[0].Quantity)
}

func TestCartItemJSON(t *testing.T) {
	item := CartItem{OrderID: 7, ProductID: 1, Price: NewMoney(100), Quantity: 1}
	b, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":null,"id_orden":7,"id_producto":1,"precio":100,"cantidad":1}`, string(b))

	var decoded CartItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"3","id_orden":7,"id_producto":1,"nombre_producto":"Product 1","precio":"100.50","cantidad":2}`), &decoded))
	assert.Equal(t, ID(3), decoded.ID)
	assert.Equal(t, "201", decoded.Subtotal().String())
}

func TestOrderState(t *testing.T) {
	assert.Equal(t, StateNoOrder, EmptyOrder().State())
	assert.Equal(t, StateOrderOpen, Order{ID: 1}.State())
	assert.Equal(t, StateOrderPaid, Order{ID: 1, Paid: true}.State())
}
