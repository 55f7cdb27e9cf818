package models

// SeatCategory is a pricing tier covering a set of rows.
type SeatCategory struct {
	Name         string   `json:"name"`
	RowLabels    []string `json:"rowLabels"`
	SeatsPerRow  int      `json:"seatsPerRow"`
	PricePerSeat int      `json:"pricePerSeat"`
}
