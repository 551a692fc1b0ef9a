package product

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Currency every catalog price is expressed in.
var Currency = currency.EUR

type Type string

const (
	Ebook    Type = "ebook"
	Template Type = "template"
	Video    Type = "video"
	Tool     Type = "tool"
)

func (t Type) Valid() bool {
	switch t {
	case Ebook, Template, Video, Tool:
		return true
	}
	return false
}

type Product struct {
	ID            string           `json:"id" validate:"required"`
	Title         string           `json:"title" validate:"required"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Category      string           `json:"category" validate:"required"`
	Type          Type             `json:"type" validate:"required,oneof=ebook template video tool"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	Bestseller    bool             `json:"bestseller,omitempty"`
	New           bool             `json:"new,omitempty"`
	Sale          bool             `json:"sale,omitempty"`
	Author        string           `json:"author,omitempty"`
}

// View is a product as listed to visitors, with its saving worked out.
type View struct {
	Product
	Discount decimal.Decimal `json:"discount"`
}

func (p Product) View() View {
	return View{Product: p, Discount: p.Discount()}
}

// Discount is the saving against OriginalPrice, zero when the product is
// not on sale.
func (p Product) Discount() decimal.Decimal {
	if p.OriginalPrice == nil || !p.OriginalPrice.GreaterThan(p.Price) {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Price)
}
