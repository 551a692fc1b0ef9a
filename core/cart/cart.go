// Package cart holds the visitor's selection of products. A Cart is a plain
// value; Service persists it to a key-value store after every mutation.
package cart

import (
	"slices"

	"github.com/carriereplus/storefront/core/product"
	"github.com/shopspring/decimal"
)

// Item is a product snapshot plus a quantity. Quantity is at least 1 for
// every item held by a Cart.
type Item struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Category      string           `json:"category"`
	Type          product.Type     `json:"type"`
	Quantity      int              `json:"quantity"`
}

// Subtotal is Price × Quantity.
func (it Item) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Cart is an ordered list of items, one per product.
type Cart struct {
	Items []Item `json:"items"`
}

func (c *Cart) index(id string) int {
	return slices.IndexFunc(c.Items, func(it Item) bool { return it.ID == id })
}

// Add increments the quantity of an item already in the cart, otherwise
// appends the product with quantity 1.
func (c *Cart) Add(p product.Product) {
	if i := c.index(p.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}

	c.Items = append(c.Items, Item{
		ID:            p.ID,
		Title:         p.Title,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Category:      p.Category,
		Type:          p.Type,
		Quantity:      1,
	})
}

// Remove deletes the item with id. Unknown ids are ignored.
func (c *Cart) Remove(id string) {
	c.Items = slices.DeleteFunc(c.Items, func(it Item) bool { return it.ID == id })
}

// UpdateQuantity sets the quantity of id; n <= 0 removes it.
func (c *Cart) UpdateQuantity(id string, n int) {
	if n <= 0 {
		c.Remove(id)
		return
	}
	if i := c.index(id); i >= 0 {
		c.Items[i].Quantity = n
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Empty reports whether the cart holds no item.
func (c Cart) Empty() bool { return len(c.Items) == 0 }

// Settle takes the ordered quantities out of the cart. Items added after
// the order was taken, or added again on top of it, stay.
func (c *Cart) Settle(ordered []Item) {
	for _, o := range ordered {
		if i := c.index(o.ID); i >= 0 {
			c.UpdateQuantity(o.ID, c.Items[i].Quantity-o.Quantity)
		}
	}
}

// ItemCount is the sum of quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of price × quantity at the current price.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Summary is the priced breakdown shown next to the cart and the checkout.
type Summary struct {
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	VATRate   decimal.Decimal `json:"vatRate"`
	VAT       decimal.Decimal `json:"vat"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
}

// Summarize prices the cart with VAT on top of the subtotal, amounts
// rounded to the cent.
func (c Cart) Summarize(vatRate decimal.Decimal) Summary {
	sub := c.TotalPrice()
	vat := sub.Mul(vatRate)
	return Summary{
		ItemCount: c.ItemCount(),
		Subtotal:  sub.Round(2),
		VATRate:   vatRate,
		VAT:       vat.Round(2),
		Total:     sub.Add(vat).Round(2),
		Currency:  product.Currency.String(),
	}
}

// normalize drops items decoded from storage without a positive quantity,
// as UpdateQuantity would have.
func (c *Cart) normalize() {
	c.Items = slices.DeleteFunc(c.Items, func(it Item) bool { return it.Quantity < 1 })
}
