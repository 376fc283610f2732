package domain

// CartItem is a product selection with a quantity. Identity is the
// product ID; a cart holds at most one item per product.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart is an insertion-ordered sequence of items, unique by product ID.
// Every quantity is >= 1.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount is the sum of quantities, used for badge display.
func (c Cart) ItemCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
