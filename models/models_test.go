package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRequest_WireShape(t *testing.T) {
	req := BookingRequest{
		MovieID:    "movie-1",
		Seats:      []string{"A1", "K3"},
		UserID:     "user-1",
		MovieTime:  "4:00 PM",
		Date:       "2026-10-20",
		MovieTitle: "Interstellar",
		Place:      "PVR Kurla",
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))

	// movie id travels in the path
	assert.NotContains(t, wire, "MovieID")
	assert.NotContains(t, wire, "movieId")
	assert.Equal(t, "4:00 PM", wire["movieTime"])
	assert.Equal(t, "user-1", wire["userId"])
	assert.Equal(t, "Interstellar", wire["movieTitle"])
	assert.Equal(t, "PVR Kurla", wire["place"])
	assert.Len(t, wire["seats"], 2)
}

func TestBookingRecord_JSONKeys(t *testing.T) {
	record := BookingRecord{
		BookingID:   "B1",
		MovieTitle:  "Interstellar",
		Seats:       []string{"A1", "A2"},
		Timing:      "9:00 AM",
		Date:        "2026-10-20",
		Place:       "PVR Bandra",
		TotalAmount: 500,
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"bookingId": "B1",
		"movieTitle": "Interstellar",
		"seats": ["A1", "A2"],
		"timing": "9:00 AM",
		"date": "2026-10-20",
		"place": "PVR Bandra",
		"totalAmount": 500
	}`, string(data))
}

func TestTicketQRPayload_FieldOrder(t *testing.T) {
	payload := TicketQRPayload{
		MovieTitle: "Dune",
		Place:      "Kasturba Cinema",
		Seats:      []string{"K1"},
		Date:       "Tuesday, October 20, 2026",
		BookingID:  "B9",
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.Equal(t,
		`{"movieTitle":"Dune","place":"Kasturba Cinema","seats":["K1"],"date":"Tuesday, October 20, 2026","bookingId":"B9"}`,
		string(data))
}

func TestAuthResponse_UserIDFromUnderscoreID(t *testing.T) {
	var resp AuthResponse
	err := json.Unmarshal([]byte(`{"message":"ok","user":{"_id":"u-42","name":"Asha"}}`), &resp)
	require.NoError(t, err)

	require.NotNil(t, resp.User)
	assert.Equal(t, "u-42", resp.User.ID)
	assert.Equal(t, "Asha", resp.User.Name)
}

func TestSession_LoggedIn(t *testing.T) {
	assert.False(t, Session{}.LoggedIn())
	assert.False(t, Session{MovieTitle: "Dune"}.LoggedIn())
	assert.True(t, Session{UserID: "u-1"}.LoggedIn())
}

func TestPaymentReceipt_AmountIsDecimal(t *testing.T) {
	receipt := PaymentReceipt{
		Reference: "ABCD1234",
		BookingID: "B1",
		Method:    PaymentMethodUPI,
		UPIApp:    UPIAppPaytm,
		Amount:    decimal.NewFromInt(1000),
		PaidAt:    time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(receipt)
	require.NoError(t, err)

	var decoded PaymentReceipt
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.True(t, receipt.Amount.Equal(decoded.Amount))
	assert.Equal(t, "1000.00", decoded.Amount.StringFixed(2))
	assert.Equal(t, UPIAppPaytm, decoded.UPIApp)
}
