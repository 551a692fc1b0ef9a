// Package checkout walks a cart through the information, payment and
// confirmation steps and turns it into an order.
package checkout

import (
	"errors"
	"time"

	"github.com/carriereplus/storefront/core/cart"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart     = errors.New("no items to checkout")
	ErrStepOrder     = errors.New("customer information must be submitted before payment")
	ErrPaymentFailed = errors.New("payment failed")
)

type Step string

const (
	StepInformation  Step = "information"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

type Status string

const (
	Pending Status = "pending"
	Success Status = "success"
)

type Method string

const (
	Card   Method = "card"
	Bank   Method = "bank"
	Paypal Method = "paypal"
)

const DefaultCountry = "France"

type Information struct {
	FirstName  string `json:"firstName" validate:"required,max=100"`
	LastName   string `json:"lastName" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Address    string `json:"address" validate:"required,max=300"`
	City       string `json:"city" validate:"omitempty,max=100"`
	PostalCode string `json:"postalCode" validate:"omitempty,max=20"`
	Country    string `json:"country" validate:"omitempty,max=100"`
}

// Payment is the payment form. Card details are checked for presence and
// never stored.
type Payment struct {
	Method     Method `json:"paymentMethod" validate:"required,oneof=card bank paypal"`
	CardNumber string `json:"cardNumber" validate:"required_if=Method card"`
	CardName   string `json:"cardName" validate:"required_if=Method card"`
	CardExpiry string `json:"cardExpiry" validate:"required_if=Method card"`
	CardCvc    string `json:"cardCvc" validate:"required_if=Method card"`
}

type Order struct {
	Number        string          `json:"number"`
	Status        Status          `json:"status"`
	Items         []cart.Item     `json:"items"`
	ItemCount     int             `json:"itemCount"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VATRate       decimal.Decimal `json:"vatRate"`
	VAT           decimal.Decimal `json:"vat"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	Customer      Information     `json:"customer"`
	PaymentMethod Method          `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// State is the owner's progress through the checkout.
type State struct {
	Step        Step         `json:"step"`
	Information *Information `json:"information,omitempty"`
	Order       *Order       `json:"order,omitempty"`
}

func initial() State {
	return State{Step: StepInformation}
}
