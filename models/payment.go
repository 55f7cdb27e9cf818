package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
)

type UPIApp string

const (
	UPIAppGPay    UPIApp = "gpay"
	UPIAppPhonePe UPIApp = "phonepe"
	UPIAppPaytm   UPIApp = "paytm"
)

type PaymentForm struct {
	Method     PaymentMethod `json:"method"`
	CardNumber string        `json:"cardNumber,omitempty"`
	UPIApp     UPIApp        `json:"upiApp,omitempty"`
	UPIID      string        `json:"upiId,omitempty"`
}

type PaymentReceipt struct {
	Reference string          `json:"reference"`
	BookingID string          `json:"bookingId"`
	Method    PaymentMethod   `json:"method"`
	UPIApp    UPIApp          `json:"upiApp,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paidAt"`
}
