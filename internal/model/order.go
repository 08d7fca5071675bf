package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryDetails holds the customer data collected during checkout.
type DeliveryDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// Validate checks that every mandatory delivery field is filled in.
func (d DeliveryDetails) Validate() error {
	if strings.TrimSpace(d.Name) == "" ||
		strings.TrimSpace(d.Phone) == "" ||
		strings.TrimSpace(d.Address) == "" {
		return ErrMissingDeliveryInfo
	}
	return nil
}

// CartLineView is the presentation form of a cart line.
type CartLineView struct {
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartView is the presentation form of the cart with its derived totals.
type CartView struct {
	Lines          []CartLineView  `json:"lines"`
	TotalItems     int             `json:"totalItems"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	FormattedTotal string          `json:"formattedTotal"`
}

// PaymentInstructions describes the manual PIX payment step.
type PaymentInstructions struct {
	PixKey         string          `json:"pixKey"`
	Total          decimal.Decimal `json:"total"`
	FormattedTotal string          `json:"formattedTotal"`
}

// Receipt is issued when the customer confirms the PIX payment.
type Receipt struct {
	ID          uuid.UUID       `json:"id"`
	Delivery    DeliveryDetails `json:"delivery"`
	Lines       []CartLineView  `json:"lines"`
	TotalItems  int             `json:"totalItems"`
	Total       decimal.Decimal `json:"total"`
	ConfirmedAt time.Time       `json:"confirmedAt"`
}
