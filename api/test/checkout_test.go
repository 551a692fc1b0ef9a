package test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/carriereplus/storefront/api/weberr"
	"github.com/carriereplus/storefront/core/checkout"
	"github.com/carriereplus/storefront/events"
)

type checkoutTest struct {
	*TestEnv
	client *http.Client
}

func TestCheckout(t *testing.T) {
	env, err := NewTestEnv(t, "checkout_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	client := env.Visitor(t)
	ot := &checkoutTest{TestEnv: env, client: client}
	rt := &cartTest{TestEnv: env, client: client}

	// an empty cart cannot be checked out
	w, b := ot.Do(t, client, http.MethodPost, "/checkout/information", information())
	expectStatus(t, w, b, http.StatusUnprocessableEntity)
	ot.expectStep(t, checkout.StepInformation)

	rt.createItemOK(t, "1")
	rt.createItemOK(t, "1")
	rt.createItemOK(t, "4")

	// incomplete forms are rejected without moving on
	incomplete := information()
	incomplete.Address = ""
	w, b = ot.Do(t, client, http.MethodPost, "/checkout/information", incomplete)
	expectStatus(t, w, b, http.StatusBadRequest)
	if !bytes.Contains(b, []byte("address is a required field")) {
		t.Fatalf("validation message missing: %s", b)
	}
	incomplete.Email = "jean"
	w, b = ot.Do(t, client, http.MethodPost, "/checkout/information", incomplete)
	expectStatus(t, w, b, http.StatusBadRequest)
	if er := decode[weberr.ErrorResponse](t, b); er.Fields["address"] == "" || er.Fields["email"] == "" {
		t.Fatalf("every failing field should be listed: %+v", er.Fields)
	}
	ot.expectStep(t, checkout.StepInformation)

	// payment before information
	w, b = ot.Do(t, client, http.MethodPost, "/checkout/payment", cardPayment())
	expectStatus(t, w, b, http.StatusConflict)

	w, b = ot.Do(t, client, http.MethodPost, "/checkout/information", information())
	expectStatus(t, w, b, http.StatusOK)
	st := decode[checkout.State](t, b)
	if st.Step != checkout.StepPayment || st.Information == nil || st.Information.Country != "France" {
		t.Fatalf("unexpected state after information: %+v", st)
	}

	noCvc := cardPayment()
	noCvc.CardCvc = ""
	w, b = ot.Do(t, client, http.MethodPost, "/checkout/payment", noCvc)
	expectStatus(t, w, b, http.StatusBadRequest)

	w, b = ot.Do(t, client, http.MethodPost, "/checkout/payment", cardPayment())
	expectStatus(t, w, b, http.StatusCreated)
	ord := decode[checkout.Order](t, b)

	if ord.ItemCount != 3 {
		t.Fatalf("order item count: got %d, want 3", ord.ItemCount)
	}
	if got := ord.Subtotal.StringFixed(2); got != "55.97" {
		t.Fatalf("order subtotal: got %s, want 55.97", got)
	}
	if got := ord.Total.StringFixed(2); got != "67.16" {
		t.Fatalf("order total: got %s, want 67.16", got)
	}

	if v := rt.showOK(t); len(v.Items) != 0 {
		t.Fatalf("cart should be cleared after confirmation, got %+v", v.Items)
	}

	view := ot.expectStep(t, checkout.StepConfirmation)
	if view.Order == nil || view.Order.Number != ord.Number {
		t.Fatalf("confirmation does not carry the order: %+v", view.Order)
	}

	// the event goes out in the background
	deadline := time.Now().Add(5 * time.Second)
	for len(ot.Publisher.published()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("order event was not published")
		}
		time.Sleep(10 * time.Millisecond)
	}
	e := ot.Publisher.published()[0]
	if e.Type != events.OrderConfirmed {
		t.Fatalf("event type: got %s", e.Type)
	}
}

func TestCheckoutBankTransfer(t *testing.T) {
	env, err := NewTestEnv(t, "checkout_bank_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	client := env.Visitor(t)
	rt := &cartTest{TestEnv: env, client: client}
	rt.createItemOK(t, "5")

	w, b := env.Do(t, client, http.MethodPost, "/checkout/information", information())
	expectStatus(t, w, b, http.StatusOK)

	w, b = env.Do(t, client, http.MethodPost, "/checkout/payment", checkout.Payment{Method: checkout.Bank})
	expectStatus(t, w, b, http.StatusCreated)

	if ord := decode[checkout.Order](t, b); ord.PaymentMethod != checkout.Bank {
		t.Fatalf("payment method: got %s", ord.PaymentMethod)
	}
}

func (ot *checkoutTest) expectStep(t *testing.T, want checkout.Step) checkout.View {
	t.Helper()

	w, b := ot.Do(t, ot.client, http.MethodGet, "/checkout", nil)
	expectStatus(t, w, b, http.StatusOK)

	v := decode[checkout.View](t, b)
	if v.Step != want {
		t.Fatalf("checkout step: got %s, want %s", v.Step, want)
	}
	return v
}

func information() checkout.Information {
	return checkout.Information{
		FirstName: "Jean",
		LastName:  "Dupont",
		Email:     "jean.dupont@example.com",
		Address:   "1 rue de la Paix",
		City:      "Paris",
	}
}

func cardPayment() checkout.Payment {
	return checkout.Payment{
		Method:     checkout.Card,
		CardNumber: "4242424242424242",
		CardName:   "Jean Dupont",
		CardExpiry: "12/30",
		CardCvc:    "123",
	}
}
