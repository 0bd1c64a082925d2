package domain

// CartItem is one line of an order. A zero ID marks an item that has not
// been persisted remotely.
type CartItem struct {
	ID          ID     `json:"id"`
	OrderID     ID     `json:"id_orden"`
	ProductID   ID     `json:"id_producto"`
	ProductName string `json:"nombre_producto,omitempty"`
	Price       Money  `json:"precio"`
	Quantity    int    `json:"cantidad"`
}

func (i CartItem) Subtotal() Money {
	return i.Price.Mul(i.Quantity)
}

// Cart is the local mirror of an order's items. It holds at most one item
// per product.
type Cart []CartItem

// Totals are derived from a cart on every read.
type Totals struct {
	Total      Money
	ItemsCount int
	Empty      bool
}

func (c Cart) Total() Money {
	var total Money
	for _, it := range c {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c Cart) ItemsCount() int {
	n := 0
	for _, it := range c {
		n += it.Quantity
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

func (c Cart) Totals() Totals {
	return Totals{
		Total:      c.Total(),
		ItemsCount: c.ItemsCount(),
		Empty:      c.IsEmpty(),
	}
}

// IndexOf returns the position of the item for productID, or -1.
func (c Cart) IndexOf(productID ID) int {
	for i, it := range c {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
